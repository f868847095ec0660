package books

import "context"

// LibraryService defines searching the catalog and managing a user's saved books.
type LibraryService interface {
	// Search queries the catalog. It returns ErrNoResults when nothing matches.
	Search(ctx context.Context, kind SearchKind, query string) ([]*Book, error)

	// AddFromUpstream fetches the catalog volume and saves it to the user's
	// library together with a pending AI summary.
	AddFromUpstream(ctx context.Context, userID, upstreamID string) (*Book, error)

	// AddByISBN looks up the first catalog match for isbn and saves it like AddFromUpstream.
	AddByISBN(ctx context.Context, userID, isbn string) (*Book, error)

	// Get returns the user's book, or ErrNotFound when it belongs to someone else.
	Get(ctx context.Context, userID string, bookID uint) (*Book, error)

	// List returns the user's books, newest first, optionally filtered by custom category.
	List(ctx context.Context, userID, category string) ([]*Book, error)

	// Delete removes the book and its AI summary.
	Delete(ctx context.Context, userID string, bookID uint) error

	// AddToCategory files the book under one of the user's categories.
	AddToCategory(ctx context.Context, userID string, bookID uint, category string) error

	// RemoveFromCategory takes the book out of a category.
	RemoveFromCategory(ctx context.Context, userID string, bookID uint, category string) error
}

// CatalogClient is the interface to the external book catalog
type CatalogClient interface {
	// SearchByTitle returns volumes whose title matches query
	SearchByTitle(ctx context.Context, query string) ([]*Book, error)
	// SearchByAuthor returns volumes whose author matches query
	SearchByAuthor(ctx context.Context, query string) ([]*Book, error)
	// GetByISBN returns the first volume with the given ISBN, or ErrNoResults
	GetByISBN(ctx context.Context, isbn string) (*Book, error)
	// GetByUpstreamID returns a single volume by its catalog ID, or ErrNotFound
	GetByUpstreamID(ctx context.Context, upstreamID string) (*Book, error)
}

// BookRepository defines the interface for Book persistence
type BookRepository interface {
	// Create inserts the book and an empty, pending AI summary in one transaction
	Create(ctx context.Context, book *Book) error
	// GetByID retrieves a Book by ID
	GetByID(ctx context.Context, bookID uint) (*Book, error)
	// ListByUser returns the user's books newest first, filtered by custom category when set
	ListByUser(ctx context.Context, userID, category string) ([]*Book, error)
	// Update persists every field of the Book
	Update(ctx context.Context, book *Book) error
	// DeleteByID deletes the Book and its AI summary
	DeleteByID(ctx context.Context, bookID uint) error
	// RemoveCategoryForUser drops category from every book owned by userID
	RemoveCategoryForUser(ctx context.Context, userID, category string) error
}
