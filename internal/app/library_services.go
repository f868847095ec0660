package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/MGTheTrain/book-organiser/internal/domain/accounts"
	"github.com/MGTheTrain/book-organiser/internal/domain/books"
	"github.com/MGTheTrain/book-organiser/internal/pkg/logger"
)

// libraryService implements the LibraryService interface
type libraryService struct {
	catalog books.CatalogClient
	books   books.BookRepository
	users   accounts.UserAccountRepository
	logger  logger.Logger
}

// NewLibraryService creates a new instance of LibraryService
func NewLibraryService(catalog books.CatalogClient, bookRepo books.BookRepository, users accounts.UserAccountRepository, logger logger.Logger) (books.LibraryService, error) {
	return &libraryService{
		catalog: catalog,
		books:   bookRepo,
		users:   users,
		logger:  logger,
	}, nil
}

// Search queries the catalog by title, author or ISBN
func (s *libraryService) Search(ctx context.Context, kind books.SearchKind, query string) ([]*books.Book, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, books.ErrEmptyQuery
	}

	var (
		found []*books.Book
		err   error
	)
	switch kind {
	case books.SearchByTitle:
		found, err = s.catalog.SearchByTitle(ctx, query)
	case books.SearchByAuthor:
		found, err = s.catalog.SearchByAuthor(ctx, query)
	case books.SearchByISBN:
		var book *books.Book
		book, err = s.catalog.GetByISBN(ctx, query)
		if book != nil {
			found = []*books.Book{book}
		}
	default:
		return nil, fmt.Errorf("unsupported search kind %q", kind)
	}
	if err != nil {
		return nil, err
	}

	if len(found) == 0 {
		return nil, books.ErrNoResults
	}
	return found, nil
}

// AddFromUpstream fetches the volume and saves it to the user's library
func (s *libraryService) AddFromUpstream(ctx context.Context, userID, upstreamID string) (*books.Book, error) {
	if strings.TrimSpace(upstreamID) == "" {
		return nil, books.ErrNotFound
	}

	book, err := s.catalog.GetByUpstreamID(ctx, upstreamID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch volume %s: %w", upstreamID, err)
	}
	return s.save(ctx, userID, book)
}

// AddByISBN saves the first catalog match for isbn
func (s *libraryService) AddByISBN(ctx context.Context, userID, isbn string) (*books.Book, error) {
	if strings.TrimSpace(isbn) == "" {
		return nil, books.ErrEmptyQuery
	}

	book, err := s.catalog.GetByISBN(ctx, isbn)
	if err != nil {
		return nil, err
	}
	return s.save(ctx, userID, book)
}

func (s *libraryService) save(ctx context.Context, userID string, book *books.Book) (*books.Book, error) {
	book.ID = 0
	book.UserID = userID
	book.CustomCategories = nil

	if err := s.books.Create(ctx, book); err != nil {
		return nil, fmt.Errorf("failed to save book: %w", err)
	}

	s.logger.Info("Saved book", book.ID, "to library of user", userID)
	return book, nil
}

// Get returns the user's book
func (s *libraryService) Get(ctx context.Context, userID string, bookID uint) (*books.Book, error) {
	book, err := s.books.GetByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if book.UserID != userID {
		return nil, fmt.Errorf("book with ID %d: %w", bookID, books.ErrNotFound)
	}
	return book, nil
}

// List returns the user's books, optionally filtered by category
func (s *libraryService) List(ctx context.Context, userID, category string) ([]*books.Book, error) {
	return s.books.ListByUser(ctx, userID, accounts.NormalizeCategory(category))
}

// Delete removes the user's book and its summary
func (s *libraryService) Delete(ctx context.Context, userID string, bookID uint) error {
	if _, err := s.Get(ctx, userID, bookID); err != nil {
		return err
	}
	if err := s.books.DeleteByID(ctx, bookID); err != nil {
		return err
	}

	s.logger.Info("Deleted book", bookID, "of user", userID)
	return nil
}

// AddToCategory files the book under one of the user's categories
func (s *libraryService) AddToCategory(ctx context.Context, userID string, bookID uint, category string) error {
	book, err := s.Get(ctx, userID, bookID)
	if err != nil {
		return err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	category = accounts.NormalizeCategory(category)
	if !user.HasCategory(category) {
		return fmt.Errorf("%q: %w", category, books.ErrUnknownCategory)
	}

	if !book.AddCustomCategory(category) {
		return nil
	}
	return s.books.Update(ctx, book)
}

// RemoveFromCategory takes the book out of a category
func (s *libraryService) RemoveFromCategory(ctx context.Context, userID string, bookID uint, category string) error {
	book, err := s.Get(ctx, userID, bookID)
	if err != nil {
		return err
	}

	if !book.RemoveCustomCategory(accounts.NormalizeCategory(category)) {
		return nil
	}
	return s.books.Update(ctx, book)
}
