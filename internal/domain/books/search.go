package books

import "fmt"

// SearchKind selects the catalog field a query is matched against.
type SearchKind string

// Supported search kinds
const (
	SearchByTitle  SearchKind = "title"
	SearchByAuthor SearchKind = "author"
	SearchByISBN   SearchKind = "isbn"
)

// ParseSearchKind validates a user supplied search kind.
func ParseSearchKind(s string) (SearchKind, error) {
	switch SearchKind(s) {
	case SearchByTitle, SearchByAuthor, SearchByISBN:
		return SearchKind(s), nil
	default:
		return "", fmt.Errorf("unsupported search kind %q", s)
	}
}
