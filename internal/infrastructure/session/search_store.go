package session

import (
	"container/list"
	"sync"
	"time"

	"github.com/MGTheTrain/book-organiser/internal/domain/books"
)

// SearchResult is what a session remembers about its last catalog search
type SearchResult struct {
	Query string
	Kind  books.SearchKind
	Books []*books.Book
}

type searchEntry struct {
	sessionID string
	result    SearchResult
	expiresAt time.Time
	element   *list.Element
}

// SearchStore keeps the last search result of each session in memory,
// bounded by capacity with least-recently-used eviction and a TTL.
type SearchStore struct {
	mu       sync.Mutex
	entries  map[string]*searchEntry
	order    *list.List
	capacity int
	ttl      time.Duration
	now      func() time.Time
}

// NewSearchStore creates a store. Non-positive arguments fall back to 1000 entries and 30 minutes.
func NewSearchStore(capacity int, ttl time.Duration) *SearchStore {
	if capacity <= 0 {
		capacity = 1000
	}
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &SearchStore{
		entries:  make(map[string]*searchEntry),
		order:    list.New(),
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Put replaces the session's stored result
func (s *SearchStore) Put(sessionID string, result SearchResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[sessionID]; ok {
		e.result = result
		e.expiresAt = s.now().Add(s.ttl)
		s.order.MoveToFront(e.element)
		return
	}

	for len(s.entries) >= s.capacity {
		oldest := s.order.Back()
		if oldest == nil {
			break
		}
		s.remove(oldest.Value.(*searchEntry))
	}

	e := &searchEntry{
		sessionID: sessionID,
		result:    result,
		expiresAt: s.now().Add(s.ttl),
	}
	e.element = s.order.PushFront(e)
	s.entries[sessionID] = e
}

// Get returns the session's stored result if it has not expired
func (s *SearchStore) Get(sessionID string) (SearchResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[sessionID]
	if !ok {
		return SearchResult{}, false
	}
	if s.now().After(e.expiresAt) {
		s.remove(e)
		return SearchResult{}, false
	}
	s.order.MoveToFront(e.element)
	return e.result, true
}

// FindBook returns a book of the session's stored result by upstream ID
func (s *SearchStore) FindBook(sessionID, upstreamID string) (*books.Book, bool) {
	result, ok := s.Get(sessionID)
	if !ok {
		return nil, false
	}
	for _, b := range result.Books {
		if b.UpstreamID == upstreamID {
			return b, true
		}
	}
	return nil, false
}

// Delete drops the session's stored result
func (s *SearchStore) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[sessionID]; ok {
		s.remove(e)
	}
}

// Len returns the number of stored results, expired ones included
func (s *SearchStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// remove must be called with the lock held
func (s *SearchStore) remove(e *searchEntry) {
	s.order.Remove(e.element)
	delete(s.entries, e.sessionID)
}
