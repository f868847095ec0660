package app

import (
	"context"
	"fmt"

	"github.com/MGTheTrain/book-organiser/internal/domain/summaries"
	"github.com/MGTheTrain/book-organiser/internal/pkg/logger"
)

// summaryService implements the SummaryService interface
type summaryService struct {
	summaries summaries.SummaryRepository
	logger    logger.Logger
}

// NewSummaryService creates a new instance of SummaryService
func NewSummaryService(repo summaries.SummaryRepository, logger logger.Logger) (summaries.SummaryService, error) {
	return &summaryService{
		summaries: repo,
		logger:    logger,
	}, nil
}

// GetForUser returns the summary of one of the user's books
func (s *summaryService) GetForUser(ctx context.Context, userID string, bookID uint) (*summaries.AISummary, error) {
	summary, err := s.summaries.GetByBookID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if summary.Book == nil || summary.Book.UserID != userID {
		return nil, fmt.Errorf("ai summary for book %d: %w", bookID, summaries.ErrNotFound)
	}
	return summary, nil
}

// Regenerate clears the summary so the poller fills it again
func (s *summaryService) Regenerate(ctx context.Context, userID string, bookID uint) error {
	summary, err := s.GetForUser(ctx, userID, bookID)
	if err != nil {
		return err
	}

	summary.Reset()
	if err := s.summaries.Update(ctx, summary); err != nil {
		return fmt.Errorf("failed to reset ai summary: %w", err)
	}

	s.logger.Info("Queued ai summary of book", bookID, "for regeneration")
	return nil
}
