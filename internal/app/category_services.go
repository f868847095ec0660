package app

import (
	"context"
	"fmt"
	"time"

	"github.com/MGTheTrain/book-organiser/internal/domain/accounts"
	"github.com/MGTheTrain/book-organiser/internal/domain/books"
	"github.com/MGTheTrain/book-organiser/internal/pkg/logger"
)

// categoryService implements the CategoryService interface
type categoryService struct {
	users  accounts.UserAccountRepository
	books  books.BookRepository
	logger logger.Logger
}

// NewCategoryService creates a new instance of CategoryService
func NewCategoryService(users accounts.UserAccountRepository, bookRepo books.BookRepository, logger logger.Logger) (accounts.CategoryService, error) {
	return &categoryService{
		users:  users,
		books:  bookRepo,
		logger: logger,
	}, nil
}

// List returns the user's categories
func (s *categoryService) List(ctx context.Context, userID string) ([]string, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.UserCategories, nil
}

// Add stores a normalized category unless it is empty or already present
func (s *categoryService) Add(ctx context.Context, userID, name string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !user.AddCategory(name) {
		return nil
	}

	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to add category: %w", err)
	}

	s.logger.Info("Added category", accounts.NormalizeCategory(name), "for user", userID)
	return nil
}

// Delete removes the category from the user's books first, then from the user
func (s *categoryService) Delete(ctx context.Context, userID, name string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	name = accounts.NormalizeCategory(name)
	if err := s.books.RemoveCategoryForUser(ctx, userID, name); err != nil {
		return fmt.Errorf("failed to remove category from books: %w", err)
	}

	if !user.RemoveCategory(name) {
		return nil
	}

	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	s.logger.Info("Deleted category", name, "for user", userID)
	return nil
}
