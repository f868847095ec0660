package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MGTheTrain/book-organiser/internal/domain/accounts"
	"github.com/MGTheTrain/book-organiser/internal/pkg/logger"
	"github.com/MGTheTrain/book-organiser/internal/pkg/validators"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// accountService implements the AccountService interface on a UserAccountRepository
type accountService struct {
	users    accounts.UserAccountRepository
	logger   logger.Logger
	hashCost int
}

// NewAccountService creates a new instance of AccountService
func NewAccountService(users accounts.UserAccountRepository, logger logger.Logger) (accounts.AccountService, error) {
	return &accountService{
		users:    users,
		logger:   logger,
		hashCost: bcrypt.DefaultCost,
	}, nil
}

// Register creates an account with a hashed password
func (s *accountService) Register(ctx context.Context, fullName, email, password string) (*accounts.UserAccount, error) {
	if !validators.IsStrongPassword(password) {
		return nil, accounts.ErrWeakPassword
	}

	email = accounts.NormalizeEmail(email)
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, accounts.ErrEmailTaken
	} else if !errors.Is(err, accounts.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := s.hash(password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &accounts.UserAccount{
		ID:             uuid.NewString(),
		FullName:       strings.TrimSpace(fullName),
		Email:          email,
		PasswordHash:   hash,
		UserCategories: []string{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to register account: %w", err)
	}

	s.logger.Info("Registered user account", user.ID)
	return user, nil
}

// Authenticate verifies the email/password pair
func (s *accountService) Authenticate(ctx context.Context, email, password string) (*accounts.UserAccount, error) {
	user, err := s.users.GetByEmail(ctx, accounts.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, accounts.ErrNotFound) {
			return nil, accounts.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	if !checkPassword(user.PasswordHash, password) {
		s.logger.Warn("Failed login for user account", user.ID)
		return nil, accounts.ErrInvalidCredentials
	}
	return user, nil
}

// GetByID retrieves an account by ID
func (s *accountService) GetByID(ctx context.Context, userID string) (*accounts.UserAccount, error) {
	return s.users.GetByID(ctx, userID)
}

// FindByEmail retrieves an account by email
func (s *accountService) FindByEmail(ctx context.Context, email string) (*accounts.UserAccount, error) {
	return s.users.GetByEmail(ctx, accounts.NormalizeEmail(email))
}

// List returns every account
func (s *accountService) List(ctx context.Context) ([]*accounts.UserAccount, error) {
	return s.users.List(ctx)
}

// ResetPassword replaces the password of the account owning email
func (s *accountService) ResetPassword(ctx context.Context, email, newPassword string) error {
	if !validators.IsStrongPassword(newPassword) {
		return accounts.ErrWeakPassword
	}

	user, err := s.users.GetByEmail(ctx, accounts.NormalizeEmail(email))
	if err != nil {
		return err
	}
	return s.setPassword(ctx, user, newPassword)
}

// ChangePassword replaces the password after verifying the current one
func (s *accountService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !checkPassword(user.PasswordHash, currentPassword) {
		return accounts.ErrInvalidCredentials
	}
	if !validators.IsStrongPassword(newPassword) {
		return accounts.ErrWeakPassword
	}
	return s.setPassword(ctx, user, newPassword)
}

// SetAIFeatures records the user's AI opt-in choice
func (s *accountService) SetAIFeatures(ctx context.Context, userID string, accepted bool) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	user.AcceptedAIFeatures = accepted
	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update ai choice: %w", err)
	}

	s.logger.Info("User account", userID, "set AI features to", accepted)
	return nil
}

func (s *accountService) setPassword(ctx context.Context, user *accounts.UserAccount, password string) error {
	hash, err := s.hash(password)
	if err != nil {
		return err
	}

	user.PasswordHash = hash
	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.logger.Info("Password changed for user account", user.ID)
	return nil
}

func (s *accountService) hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
