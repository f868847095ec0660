//go:build unit
// +build unit

package accounts

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func validAccount() *UserAccount {
	return &UserAccount{
		ID:           uuid.New().String(),
		FullName:     "Ada Lovelace",
		Email:        "ada@example.com",
		PasswordHash: "$2a$10$hash",
		CreatedAt:    time.Now(),
	}
}

func TestUserAccountValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(u *UserAccount)
		wantErr bool
	}{
		{"valid", func(u *UserAccount) {}, false},
		{"invalid id", func(u *UserAccount) { u.ID = "abc" }, true},
		{"missing name", func(u *UserAccount) { u.FullName = "" }, true},
		{"invalid email", func(u *UserAccount) { u.Email = "not-an-email" }, true},
		{"missing hash", func(u *UserAccount) { u.PasswordHash = "" }, true},
		{"empty category", func(u *UserAccount) { u.UserCategories = []string{""} }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := validAccount()
			tt.mutate(u)

			err := u.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUserAccount_Categories(t *testing.T) {
	u := validAccount()

	assert.True(t, u.AddCategory("  History "))
	assert.Equal(t, []string{"history"}, u.UserCategories)

	assert.False(t, u.AddCategory("HISTORY"))
	assert.False(t, u.AddCategory("   "))
	assert.True(t, u.HasCategory("History"))

	assert.True(t, u.AddCategory("Fiction"))
	assert.True(t, u.RemoveCategory("history"))
	assert.False(t, u.RemoveCategory("history"))
	assert.Equal(t, []string{"fiction"}, u.UserCategories)
}
