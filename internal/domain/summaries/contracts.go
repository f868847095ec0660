package summaries

import (
	"context"

	"github.com/MGTheTrain/book-organiser/internal/domain/books"
)

// Generator produces AI text for a book
type Generator interface {
	// Generate returns the text for one summary field of book
	Generate(ctx context.Context, field Field, book *books.Book) (string, error)
	// Model names the model that produced the text
	Model() string
}

// SummaryService serves summaries to their owners.
type SummaryService interface {
	// GetForUser returns the summary of one of the user's books.
	GetForUser(ctx context.Context, userID string, bookID uint) (*AISummary, error)

	// Regenerate resets the summary so the poller generates it again.
	Regenerate(ctx context.Context, userID string, bookID uint) error
}

// Poller fills in pending summaries
type Poller interface {
	// RunOnce performs a single pass over pending summaries and returns how many were completed
	RunOnce(ctx context.Context) (int, error)
}

// SummaryRepository defines the interface for AISummary persistence
type SummaryRepository interface {
	// GetByBookID retrieves the AISummary of a book, with the book loaded
	GetByBookID(ctx context.Context, bookID uint) (*AISummary, error)
	// ListPending returns pending summaries, with books loaded, whose owners accepted AI features
	ListPending(ctx context.Context) ([]*AISummary, error)
	// Update persists every field of the AISummary
	Update(ctx context.Context, summary *AISummary) error
	// SaveGenerated persists summary only if the stored row is still pending
	// with the text of previous, and returns ErrConflict otherwise
	SaveGenerated(ctx context.Context, previous, summary *AISummary) error
}
