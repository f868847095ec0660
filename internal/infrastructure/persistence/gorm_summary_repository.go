package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/MGTheTrain/book-organiser/internal/domain/summaries"
	"github.com/MGTheTrain/book-organiser/internal/infrastructure/persistence/models"
	"github.com/MGTheTrain/book-organiser/internal/pkg/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormSummaryRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormSummaryRepository creates a new GORM-based SummaryRepository implementation
func NewGormSummaryRepository(db *gorm.DB, logger logger.Logger) (summaries.SummaryRepository, error) {
	return &gormSummaryRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormSummaryRepository) GetByBookID(ctx context.Context, bookID uint) (*summaries.AISummary, error) {
	var model models.AISummaryModel
	err := r.db.WithContext(ctx).
		Preload("Book").
		Where("book_id = ?", bookID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("ai summary for book %d: %w", bookID, summaries.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch ai summary: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormSummaryRepository) ListPending(ctx context.Context) ([]*summaries.AISummary, error) {
	var modelList []*models.AISummaryModel
	err := r.db.WithContext(ctx).
		Joins("JOIN books ON books.id = ai_summaries.book_id").
		Joins("JOIN user_accounts ON user_accounts.id = books.user_id").
		Where("ai_summaries.is_generated = ?", false).
		Where("(ai_summaries.summary = ? OR ai_summaries.key_quotes = ? OR ai_summaries.key_themes = ?)", "", "", "").
		Where("user_accounts.accepted_ai_features = ?", true).
		Preload("Book").
		Order("ai_summaries.id asc").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pending ai summaries: %w", err)
	}

	domainList := make([]*summaries.AISummary, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormSummaryRepository) Update(ctx context.Context, summary *summaries.AISummary) error {
	if summary.ID == 0 || summary.BookID == 0 {
		return fmt.Errorf("validation error: summary has no id or book")
	}

	model := &models.AISummaryModel{}
	model.FromDomain(summary)

	result := r.db.WithContext(ctx).
		Model(&models.AISummaryModel{}).
		Where("id = ? AND book_id = ?", summary.ID, summary.BookID).
		Select("*").
		Omit("id", clause.Associations).
		Updates(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update ai summary: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("ai summary with ID %d: %w", summary.ID, summaries.ErrNotFound)
	}

	r.logger.Info("Updated ai summary with id", summary.ID, "for book", summary.BookID)
	return nil
}

// SaveGenerated stores generated text only while the row still holds the
// text it had when generation started. A Regenerate or another pass that
// changed the row in the meantime makes it return ErrConflict.
func (r *gormSummaryRepository) SaveGenerated(ctx context.Context, previous, summary *summaries.AISummary) error {
	if summary.ID == 0 || summary.BookID == 0 {
		return fmt.Errorf("validation error: summary has no id or book")
	}

	model := &models.AISummaryModel{}
	model.FromDomain(summary)

	result := r.db.WithContext(ctx).
		Model(&models.AISummaryModel{}).
		Where("id = ? AND book_id = ?", summary.ID, summary.BookID).
		Where("is_generated = ?", false).
		Where("summary = ? AND key_quotes = ? AND key_themes = ?", previous.Summary, previous.KeyQuotes, previous.KeyThemes).
		Select("*").
		Omit("id", clause.Associations).
		Updates(model)
	if result.Error != nil {
		return fmt.Errorf("failed to store generated ai summary: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("ai summary with ID %d: %w", summary.ID, summaries.ErrConflict)
	}

	r.logger.Info("Stored generated ai summary with id", summary.ID, "for book", summary.BookID)
	return nil
}
