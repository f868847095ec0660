package summaries

import (
	"time"

	"github.com/MGTheTrain/book-organiser/internal/domain/books"
)

// Field identifies one generated part of an AISummary
type Field string

// Generated fields
const (
	FieldSummary   Field = "summary"
	FieldKeyQuotes Field = "key_quotes"
	FieldKeyThemes Field = "key_themes"
)

// AISummary entity. Exactly one exists per saved book.
type AISummary struct {
	ID          uint
	BookID      uint
	Book        *books.Book
	Model       string
	Summary     string
	KeyQuotes   string
	KeyThemes   string
	GeneratedAt *time.Time
	IsGenerated bool
}

// IsPending reports whether the poller still has work to do for this summary.
func (s *AISummary) IsPending() bool {
	return !s.IsGenerated && (s.Summary == "" || s.KeyQuotes == "" || s.KeyThemes == "")
}

// MissingFields lists the generated fields that are still empty.
func (s *AISummary) MissingFields() []Field {
	var missing []Field
	if s.Summary == "" {
		missing = append(missing, FieldSummary)
	}
	if s.KeyQuotes == "" {
		missing = append(missing, FieldKeyQuotes)
	}
	if s.KeyThemes == "" {
		missing = append(missing, FieldKeyThemes)
	}
	return missing
}

// Set stores text in the given field.
func (s *AISummary) Set(field Field, text string) {
	switch field {
	case FieldSummary:
		s.Summary = text
	case FieldKeyQuotes:
		s.KeyQuotes = text
	case FieldKeyThemes:
		s.KeyThemes = text
	}
}

// MarkGenerated records that generation finished with model at now.
func (s *AISummary) MarkGenerated(model string, now time.Time) {
	at := now.UTC()
	s.Model = model
	s.IsGenerated = true
	s.GeneratedAt = &at
}

// Reset clears generated content so the summary becomes pending again.
func (s *AISummary) Reset() {
	s.Summary = ""
	s.KeyQuotes = ""
	s.KeyThemes = ""
	s.IsGenerated = false
	s.GeneratedAt = nil
}

// DefaultModel is recorded on new summaries until a generator fills them in
const DefaultModel = "llama3.2"
