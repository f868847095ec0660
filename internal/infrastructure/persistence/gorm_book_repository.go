package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/MGTheTrain/book-organiser/internal/domain/books"
	"github.com/MGTheTrain/book-organiser/internal/domain/summaries"
	"github.com/MGTheTrain/book-organiser/internal/infrastructure/persistence/models"
	"github.com/MGTheTrain/book-organiser/internal/pkg/logger"
	"github.com/samber/lo"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormBookRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormBookRepository creates a new GORM-based BookRepository implementation
func NewGormBookRepository(db *gorm.DB, logger logger.Logger) (books.BookRepository, error) {
	return &gormBookRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormBookRepository) Create(ctx context.Context, book *books.Book) error {
	if book.UserID == "" {
		return fmt.Errorf("validation error: book has no owner")
	}
	if err := book.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.BookModel{}
	model.FromDomain(book)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(model).Error; err != nil {
			return fmt.Errorf("failed to create book: %w", err)
		}

		summary := &models.AISummaryModel{
			BookID: model.ID,
			Model:  summaries.DefaultModel,
		}
		if err := tx.Omit(clause.Associations).Create(summary).Error; err != nil {
			return fmt.Errorf("failed to create ai summary: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	book.ID = model.ID
	book.CreatedAt = model.CreatedAt

	r.logger.Info("Created book with id", book.ID, "for user", book.UserID)
	return nil
}

func (r *gormBookRepository) GetByID(ctx context.Context, bookID uint) (*books.Book, error) {
	var model models.BookModel
	if err := r.db.WithContext(ctx).Where("id = ?", bookID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("book with ID %d: %w", bookID, books.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch book: %w", err)
	}
	return model.ToDomain(), nil
}

// ListByUser filters by category in memory since JSON containment differs
// between sqlite and postgres, and a personal library stays small.
func (r *gormBookRepository) ListByUser(ctx context.Context, userID, category string) ([]*books.Book, error) {
	var modelList []*models.BookModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Order("id desc").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch books: %w", err)
	}

	domainList := make([]*books.Book, 0, len(modelList))
	for _, model := range modelList {
		book := model.ToDomain()
		if category != "" && !book.HasCustomCategory(category) {
			continue
		}
		domainList = append(domainList, book)
	}
	return domainList, nil
}

func (r *gormBookRepository) Update(ctx context.Context, book *books.Book) error {
	if err := book.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.BookModel{}
	model.FromDomain(book)

	// Updates instead of Save: Save re-inserts a row that was deleted meanwhile.
	result := r.db.WithContext(ctx).
		Model(&models.BookModel{}).
		Where("id = ? AND user_id = ?", book.ID, book.UserID).
		Select("*").
		Omit("id", "created_at", clause.Associations).
		Updates(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update book: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("book with ID %d: %w", book.ID, books.ErrNotFound)
	}

	r.logger.Info("Updated book with id", book.ID)
	return nil
}

func (r *gormBookRepository) DeleteByID(ctx context.Context, bookID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("book_id = ?", bookID).Delete(&models.AISummaryModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete ai summary: %w", err)
		}

		result := tx.Where("id = ?", bookID).Delete(&models.BookModel{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete book: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("book with ID %d: %w", bookID, books.ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.logger.Info("Deleted book with id", bookID)
	return nil
}

func (r *gormBookRepository) RemoveCategoryForUser(ctx context.Context, userID, category string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var modelList []*models.BookModel
		if err := tx.Where("user_id = ?", userID).Find(&modelList).Error; err != nil {
			return fmt.Errorf("failed to fetch books: %w", err)
		}

		for _, model := range modelList {
			if !lo.Contains([]string(model.CustomCategories), category) {
				continue
			}
			remaining := datatypes.NewJSONSlice(lo.Without([]string(model.CustomCategories), category))
			err := tx.Model(&models.BookModel{}).
				Where("id = ?", model.ID).
				Update("custom_categories", remaining).Error
			if err != nil {
				return fmt.Errorf("failed to update categories of book %d: %w", model.ID, err)
			}
		}
		return nil
	})
}
