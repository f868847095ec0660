//go:build unit
// +build unit

package models

import (
	"testing"
	"time"

	"github.com/MGTheTrain/book-organiser/internal/domain/accounts"
	"github.com/MGTheTrain/book-organiser/internal/domain/books"
	"github.com/MGTheTrain/book-organiser/internal/domain/summaries"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserAccountModel_RoundTrip(t *testing.T) {
	user := &accounts.UserAccount{
		ID:                 uuid.NewString(),
		FullName:           "Ada Lovelace",
		Email:              "ada@example.com",
		PasswordHash:       "hash",
		UserCategories:     []string{"history"},
		AcceptedAIFeatures: true,
		CreatedAt:          time.Now().UTC(),
	}

	var m UserAccountModel
	m.FromDomain(user)
	assert.Equal(t, "user_accounts", m.TableName())

	got := m.ToDomain()
	assert.Equal(t, user, got)

	got.UserCategories[0] = "changed"
	assert.Equal(t, "history", user.UserCategories[0], "model must not alias the domain slice")
}

func TestBookModel_NilListsBecomeEmpty(t *testing.T) {
	var m BookModel
	m.FromDomain(&books.Book{Title: "Dune"})

	assert.NotNil(t, []string(m.Authors))
	assert.Empty(t, m.Authors)
	assert.Equal(t, "books", m.TableName())
}

func TestAISummaryModel_ToDomainWithBook(t *testing.T) {
	now := time.Now().UTC()
	m := AISummaryModel{
		ID:          3,
		BookID:      7,
		Book:        &BookModel{ID: 7, Title: "Dune"},
		Model:       "llama3.2",
		Summary:     "s",
		GeneratedAt: &now,
		IsGenerated: true,
	}

	s := m.ToDomain()
	require.NotNil(t, s.Book)
	assert.Equal(t, "Dune", s.Book.Title)
	assert.Equal(t, uint(7), s.BookID)
	assert.True(t, s.IsGenerated)

	var back AISummaryModel
	back.FromDomain(&summaries.AISummary{ID: 3, BookID: 7, Model: "llama3.2"})
	assert.Nil(t, back.Book)
	assert.Equal(t, "ai_summaries", back.TableName())
}
