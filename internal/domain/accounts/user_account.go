package accounts

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

// UserAccount entity. Email doubles as the login name.
type UserAccount struct {
	ID                 string    `validate:"required,uuid4"`
	FullName           string    `validate:"required,min=1,max=100"`
	Email              string    `validate:"required,email,max=255"`
	PasswordHash       string    `validate:"required"`
	UserCategories     []string  `validate:"dive,required,max=100"`
	AcceptedAIFeatures bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Validate for validating UserAccount struct
func (u *UserAccount) Validate() error {
	validate := validator.New()

	err := validate.Struct(u)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var messages []string
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
			}
			return fmt.Errorf("validation failed: %v", messages)
		}
		return fmt.Errorf("validation error: %w", err)
	}

	return nil
}

// NormalizeCategory trims and lower-cases a category name.
func NormalizeCategory(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// NormalizeEmail is the canonical form used for lookups and uniqueness.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// HasCategory reports whether the normalized name is one of the user's categories.
func (u *UserAccount) HasCategory(name string) bool {
	return lo.Contains(u.UserCategories, NormalizeCategory(name))
}

// AddCategory appends the normalized name unless it is empty or already present.
// It reports whether the list changed.
func (u *UserAccount) AddCategory(name string) bool {
	name = NormalizeCategory(name)
	if name == "" || lo.Contains(u.UserCategories, name) {
		return false
	}
	u.UserCategories = append(u.UserCategories, name)
	return true
}

// RemoveCategory drops the normalized name and reports whether it was present.
func (u *UserAccount) RemoveCategory(name string) bool {
	name = NormalizeCategory(name)
	if !lo.Contains(u.UserCategories, name) {
		return false
	}
	u.UserCategories = lo.Without(u.UserCategories, name)
	return true
}
