package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MGTheTrain/book-organiser/internal/domain/accounts"
	"github.com/MGTheTrain/book-organiser/internal/infrastructure/persistence/models"
	"github.com/MGTheTrain/book-organiser/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormUserAccountRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormUserAccountRepository creates a new GORM-based UserAccountRepository implementation
func NewGormUserAccountRepository(db *gorm.DB, logger logger.Logger) (accounts.UserAccountRepository, error) {
	return &gormUserAccountRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormUserAccountRepository) Create(ctx context.Context, user *accounts.UserAccount) error {
	user.Email = accounts.NormalizeEmail(user.Email)
	if err := user.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.UserAccountModel{}
	model.FromDomain(user)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return accounts.ErrEmailTaken
		}
		return fmt.Errorf("failed to create user account: %w", err)
	}

	user.CreatedAt = model.CreatedAt
	user.UpdatedAt = model.UpdatedAt

	r.logger.Info("Created user account with id", user.ID)
	return nil
}

func (r *gormUserAccountRepository) GetByID(ctx context.Context, userID string) (*accounts.UserAccount, error) {
	var model models.UserAccountModel
	if err := r.db.WithContext(ctx).Where("id = ?", userID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user account with ID %s: %w", userID, accounts.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch user account: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormUserAccountRepository) GetByEmail(ctx context.Context, email string) (*accounts.UserAccount, error) {
	var model models.UserAccountModel
	err := r.db.WithContext(ctx).Where("email = ?", accounts.NormalizeEmail(email)).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user account with email %s: %w", email, accounts.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch user account: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormUserAccountRepository) List(ctx context.Context) ([]*accounts.UserAccount, error) {
	var modelList []*models.UserAccountModel
	if err := r.db.WithContext(ctx).Order("created_at asc").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch user accounts: %w", err)
	}

	domainList := make([]*accounts.UserAccount, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormUserAccountRepository) Update(ctx context.Context, user *accounts.UserAccount) error {
	user.Email = accounts.NormalizeEmail(user.Email)
	if err := user.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.UserAccountModel{}
	model.FromDomain(user)

	model.UpdatedAt = time.Now().UTC()

	result := r.db.WithContext(ctx).
		Model(&models.UserAccountModel{}).
		Where("id = ?", user.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return accounts.ErrEmailTaken
		}
		return fmt.Errorf("failed to update user account: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("user account with ID %s: %w", user.ID, accounts.ErrNotFound)
	}
	user.UpdatedAt = model.UpdatedAt

	r.logger.Info("Updated user account with id", user.ID)
	return nil
}
