//go:build unit
// +build unit

package app

import (
	"context"
	"testing"

	"github.com/MGTheTrain/book-organiser/internal/domain/accounts"
	"github.com/MGTheTrain/book-organiser/internal/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestCategoryService(t *testing.T) (*categoryService, *testutil.MockUserAccountRepository, *testutil.MockBookRepository) {
	t.Helper()
	users := new(testutil.MockUserAccountRepository)
	bookRepo := new(testutil.MockBookRepository)
	return &categoryService{users: users, books: bookRepo, logger: testutil.SetupTestLogger(t)}, users, bookRepo
}

func TestCategoryService_Add_LowerCases(t *testing.T) {
	ctx := context.Background()
	svc, users, _ := newTestCategoryService(t)
	user := &accounts.UserAccount{ID: "u1", UserCategories: []string{}}

	users.On("GetByID", ctx, "u1").Return(user, nil)
	users.On("Update", ctx, user).Return(nil).Once()

	require.NoError(t, svc.Add(ctx, "u1", "History"))
	assert.Equal(t, []string{"history"}, user.UserCategories)

	require.NoError(t, svc.Add(ctx, "u1", " HISTORY "))
	require.NoError(t, svc.Add(ctx, "u1", "   "))
	users.AssertNumberOfCalls(t, "Update", 1)
}

func TestCategoryService_Delete_RemovesFromBooks(t *testing.T) {
	ctx := context.Background()
	svc, users, bookRepo := newTestCategoryService(t)
	user := &accounts.UserAccount{ID: "u1", UserCategories: []string{"history", "poetry"}}

	users.On("GetByID", ctx, "u1").Return(user, nil)
	users.On("Update", ctx, user).Return(nil)
	bookRepo.On("RemoveCategoryForUser", ctx, "u1", "history").Return(nil)

	require.NoError(t, svc.Delete(ctx, "u1", "History"))
	assert.Equal(t, []string{"poetry"}, user.UserCategories)
	bookRepo.AssertExpectations(t)
	users.AssertExpectations(t)
}

func TestCategoryService_Delete_UnknownCategory(t *testing.T) {
	ctx := context.Background()
	svc, users, bookRepo := newTestCategoryService(t)
	user := &accounts.UserAccount{ID: "u1", UserCategories: []string{"poetry"}}

	users.On("GetByID", ctx, "u1").Return(user, nil)
	bookRepo.On("RemoveCategoryForUser", ctx, "u1", "history").Return(nil)

	require.NoError(t, svc.Delete(ctx, "u1", "history"))
	users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCategoryService_List_UserNotFound(t *testing.T) {
	ctx := context.Background()
	svc, users, _ := newTestCategoryService(t)
	users.On("GetByID", ctx, "ghost").Return(nil, accounts.ErrNotFound)

	_, err := svc.List(ctx, "ghost")
	assert.True(t, IsNotFound(err))
}
