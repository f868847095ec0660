//go:build unit
// +build unit

package app

import (
	"context"
	"testing"
	"time"

	"github.com/MGTheTrain/book-organiser/internal/domain/books"
	"github.com/MGTheTrain/book-organiser/internal/domain/summaries"
	"github.com/MGTheTrain/book-organiser/internal/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func generatedSummary(owner string) *summaries.AISummary {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return &summaries.AISummary{
		ID:          1,
		BookID:      3,
		Book:        &books.Book{ID: 3, UserID: owner, Title: "Dune"},
		Model:       "llama3.2",
		Summary:     "A desert planet.",
		KeyQuotes:   "Fear is the mind-killer.",
		KeyThemes:   "Ecology",
		GeneratedAt: &at,
		IsGenerated: true,
	}
}

func TestSummaryService_GetForUser(t *testing.T) {
	ctx := context.Background()
	repo := new(testutil.MockSummaryRepository)
	svc := &summaryService{summaries: repo, logger: testutil.SetupTestLogger(t)}

	repo.On("GetByBookID", ctx, uint(3)).Return(generatedSummary("owner"), nil)
	repo.On("GetByBookID", ctx, uint(4)).Return(nil, summaries.ErrNotFound)

	got, err := svc.GetForUser(ctx, "owner", 3)
	require.NoError(t, err)
	assert.Equal(t, "A desert planet.", got.Summary)

	_, err = svc.GetForUser(ctx, "intruder", 3)
	assert.ErrorIs(t, err, summaries.ErrNotFound)

	_, err = svc.GetForUser(ctx, "owner", 4)
	assert.True(t, IsNotFound(err))
}

func TestSummaryService_Regenerate(t *testing.T) {
	ctx := context.Background()
	repo := new(testutil.MockSummaryRepository)
	svc := &summaryService{summaries: repo, logger: testutil.SetupTestLogger(t)}

	repo.On("GetByBookID", ctx, uint(3)).Return(generatedSummary("owner"), nil)
	repo.On("Update", ctx, mock.MatchedBy(func(s *summaries.AISummary) bool {
		return s.IsPending() && s.GeneratedAt == nil
	})).Return(nil)

	require.NoError(t, svc.Regenerate(ctx, "owner", 3))
	repo.AssertExpectations(t)

	assert.ErrorIs(t, svc.Regenerate(ctx, "intruder", 3), summaries.ErrNotFound)
}
