package models

import (
	"time"

	"github.com/MGTheTrain/book-organiser/internal/domain/summaries"
)

// AISummaryModel is the GORM database model for the AI summary of a book
type AISummaryModel struct {
	ID          uint       `gorm:"primaryKey;autoIncrement"`
	BookID      uint       `gorm:"not null;uniqueIndex"`
	Book        *BookModel `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE"`
	Model       string     `gorm:"not null;type:varchar(100)"`
	Summary     string     `gorm:"column:summary;type:text"`
	KeyQuotes   string     `gorm:"column:key_quotes;type:text"`
	KeyThemes   string     `gorm:"column:key_themes;type:text"`
	GeneratedAt *time.Time
	IsGenerated bool `gorm:"column:is_generated;not null;default:false;index"`
}

// TableName specifies the table name for GORM
func (AISummaryModel) TableName() string {
	return "ai_summaries"
}

// ToDomain converts GORM model to domain entity. The book is included when it was preloaded.
func (m *AISummaryModel) ToDomain() *summaries.AISummary {
	s := &summaries.AISummary{
		ID:          m.ID,
		BookID:      m.BookID,
		Model:       m.Model,
		Summary:     m.Summary,
		KeyQuotes:   m.KeyQuotes,
		KeyThemes:   m.KeyThemes,
		GeneratedAt: m.GeneratedAt,
		IsGenerated: m.IsGenerated,
	}
	if m.Book != nil {
		s.Book = m.Book.ToDomain()
	}
	return s
}

// FromDomain converts domain entity to GORM model. The book association is
// never written through the summary.
func (m *AISummaryModel) FromDomain(s *summaries.AISummary) {
	m.ID = s.ID
	m.BookID = s.BookID
	m.Model = s.Model
	m.Summary = s.Summary
	m.KeyQuotes = s.KeyQuotes
	m.KeyThemes = s.KeyThemes
	m.GeneratedAt = s.GeneratedAt
	m.IsGenerated = s.IsGenerated
}

// All returns every model in migration order
func All() []interface{} {
	return []interface{}{
		&UserAccountModel{},
		&BookModel{},
		&AISummaryModel{},
	}
}
