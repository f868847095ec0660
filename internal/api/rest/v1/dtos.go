package v1

import (
	"time"

	"github.com/MGTheTrain/book-organiser/internal/domain/books"
	"github.com/MGTheTrain/book-organiser/internal/domain/summaries"
	"github.com/samber/lo"
)

// ErrorResponse is returned for every failed request
type ErrorResponse struct {
	Message string `json:"message"`
}

// BookResponse is a saved book
type BookResponse struct {
	ID                 uint      `json:"id"`
	UpstreamID         string    `json:"upstream_id"`
	Title              string    `json:"title"`
	Subtitle           string    `json:"subtitle,omitempty"`
	Authors            []string  `json:"authors"`
	Publisher          string    `json:"publisher,omitempty"`
	PublishedDate      string    `json:"published_date,omitempty"`
	Description        string    `json:"description,omitempty"`
	ISBN10             string    `json:"isbn10,omitempty"`
	ISBN13             string    `json:"isbn13,omitempty"`
	PageCount          int       `json:"page_count,omitempty"`
	UpstreamCategories []string  `json:"upstream_categories"`
	CustomCategories   []string  `json:"custom_categories"`
	Thumbnail          string    `json:"thumbnail,omitempty"`
	UpstreamLink       string    `json:"upstream_link,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

// SummaryResponse is the AI summary of a book
type SummaryResponse struct {
	BookID      uint       `json:"book_id"`
	Model       string     `json:"model"`
	Summary     string     `json:"summary"`
	KeyQuotes   string     `json:"key_quotes"`
	KeyThemes   string     `json:"key_themes"`
	IsGenerated bool       `json:"is_generated"`
	GeneratedAt *time.Time `json:"generated_at,omitempty"`
}

// CategoriesResponse lists the user's categories
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

func newBookResponse(b *books.Book) BookResponse {
	return BookResponse{
		ID:                 b.ID,
		UpstreamID:         b.UpstreamID,
		Title:              b.Title,
		Subtitle:           b.Subtitle,
		Authors:            nonNil(b.Authors),
		Publisher:          b.Publisher,
		PublishedDate:      b.PublishedDate,
		Description:        b.Description,
		ISBN10:             b.ISBN10,
		ISBN13:             b.ISBN13,
		PageCount:          b.PageCount,
		UpstreamCategories: nonNil(b.UpstreamCategories),
		CustomCategories:   nonNil(b.CustomCategories),
		Thumbnail:          b.CoverImage(),
		UpstreamLink:       b.UpstreamLink,
		CreatedAt:          b.CreatedAt,
	}
}

// newSummaryResponse hides generated content from users that did not opt into AI features
func newSummaryResponse(s *summaries.AISummary, acceptedAI bool) SummaryResponse {
	resp := SummaryResponse{
		BookID:      s.BookID,
		Model:       s.Model,
		IsGenerated: s.IsGenerated,
		GeneratedAt: s.GeneratedAt,
	}
	if acceptedAI {
		resp.Summary = s.Summary
		resp.KeyQuotes = s.KeyQuotes
		resp.KeyThemes = s.KeyThemes
	}
	return resp
}

func nonNil(values []string) []string {
	return lo.Ternary(values == nil, []string{}, values)
}
