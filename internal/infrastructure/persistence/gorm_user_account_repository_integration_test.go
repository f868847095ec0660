//go:build integration
// +build integration

package persistence

import (
	"testing"
	"time"

	"github.com/MGTheTrain/book-organiser/internal/domain/accounts"
	"github.com/MGTheTrain/book-organiser/internal/infrastructure/persistence/models"
	"github.com/MGTheTrain/book-organiser/internal/pkg/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserAccountRepository_CreateAndGet(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)

	user := &accounts.UserAccount{
		ID:           uuid.NewString(),
		FullName:     "Ada Lovelace",
		Email:        "  Ada@Example.com ",
		PasswordHash: "hash",
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, tc.UserRepo.Create(t.Context(), user))

	var stored models.UserAccountModel
	require.NoError(t, tc.DB.First(&stored, "id = ?", user.ID).Error)
	assert.Equal(t, "ada@example.com", stored.Email)

	byEmail, err := tc.UserRepo.GetByEmail(t.Context(), "ADA@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)
	assert.Empty(t, byEmail.UserCategories)

	byID, err := tc.UserRepo.GetByID(t.Context(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", byID.FullName)
}

func TestUserAccountRepository_DuplicateEmail(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)
	existing := CreateTestUser(t, tc, false)

	dup := &accounts.UserAccount{
		ID:           uuid.NewString(),
		FullName:     "Someone Else",
		Email:        existing.Email,
		PasswordHash: "hash",
	}
	err := tc.UserRepo.Create(t.Context(), dup)
	assert.ErrorIs(t, err, accounts.ErrEmailTaken)
}

func TestUserAccountRepository_NotFound(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)

	_, err := tc.UserRepo.GetByID(t.Context(), uuid.NewString())
	assert.ErrorIs(t, err, accounts.ErrNotFound)

	_, err = tc.UserRepo.GetByEmail(t.Context(), "nobody@example.com")
	assert.ErrorIs(t, err, accounts.ErrNotFound)
}

func TestUserAccountRepository_UpdateCategoriesAndList(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)
	user := CreateTestUser(t, tc, false)
	CreateTestUser(t, tc, true)

	user.AddCategory("History")
	user.AddCategory("science")
	user.AcceptedAIFeatures = true
	require.NoError(t, tc.UserRepo.Update(t.Context(), user))

	fetched, err := tc.UserRepo.GetByID(t.Context(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"history", "science"}, fetched.UserCategories)
	assert.True(t, fetched.AcceptedAIFeatures)

	all, err := tc.UserRepo.List(t.Context())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestUserAccountRepository_Update_DeletedAccount(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)
	user := CreateTestUser(t, tc, false)
	require.NoError(t, tc.DB.Where("id = ?", user.ID).Delete(&models.UserAccountModel{}).Error)

	user.AddCategory("history")
	err := tc.UserRepo.Update(t.Context(), user)
	assert.ErrorIs(t, err, accounts.ErrNotFound)

	_, err = tc.UserRepo.GetByID(t.Context(), user.ID)
	assert.ErrorIs(t, err, accounts.ErrNotFound)
}

func TestUserAccountRepository_Create_Invalid(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)

	err := tc.UserRepo.Create(t.Context(), &accounts.UserAccount{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation")
}
