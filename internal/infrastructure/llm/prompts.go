package llm

import (
	"fmt"
	"strings"

	"github.com/MGTheTrain/book-organiser/internal/domain/books"
	"github.com/MGTheTrain/book-organiser/internal/domain/summaries"
)

// BuildPrompt returns the user prompt that asks for one summary field of book.
func BuildPrompt(field summaries.Field, book *books.Book) (string, error) {
	var ask string
	switch field {
	case summaries.FieldSummary:
		ask = "Generate a concise summary for the book title"
	case summaries.FieldKeyQuotes:
		ask = "Generate ten key quotes from the book"
	case summaries.FieldKeyThemes:
		ask = "Summarise the key themes from the book"
	default:
		return "", fmt.Errorf("unknown summary field %q", field)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: '%s' by '%s'.", ask, book.Title, book.AuthorList())
	fmt.Fprintf(&sb, " The book is in the following categories: '%s'", strings.Join(book.UpstreamCategories, ", "))
	fmt.Fprintf(&sb, " and was published on %s.", book.PublishedDate)
	if book.Description != "" {
		fmt.Fprintf(&sb, " If available, consider these details from the description: %s", book.Description)
	}
	return sb.String(), nil
}
