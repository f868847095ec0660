package books

import "errors"

var (
	// ErrNotFound is returned when a book does not exist or belongs to another user
	ErrNotFound = errors.New("book not found")
	// ErrNoResults is returned when the catalog has no match for a query
	ErrNoResults = errors.New("no search results found")
	// ErrEmptyQuery is returned for a blank search query
	ErrEmptyQuery = errors.New("search query is empty")
)

// ErrUnknownCategory is returned when filing a book under a category the user does not have
var ErrUnknownCategory = errors.New("category does not exist")
