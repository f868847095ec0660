//go:build unit
// +build unit

package testutil

import (
	"context"

	"github.com/MGTheTrain/book-organiser/internal/domain/accounts"
	"github.com/MGTheTrain/book-organiser/internal/domain/books"
	"github.com/MGTheTrain/book-organiser/internal/domain/summaries"
	"github.com/stretchr/testify/mock"
)

// MockAccountService is a mock implementation of AccountService
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) Register(ctx context.Context, fullName, email, password string) (*accounts.UserAccount, error) {
	args := m.Called(ctx, fullName, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounts.UserAccount), args.Error(1)
}

func (m *MockAccountService) Authenticate(ctx context.Context, email, password string) (*accounts.UserAccount, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounts.UserAccount), args.Error(1)
}

func (m *MockAccountService) GetByID(ctx context.Context, userID string) (*accounts.UserAccount, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounts.UserAccount), args.Error(1)
}

func (m *MockAccountService) FindByEmail(ctx context.Context, email string) (*accounts.UserAccount, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounts.UserAccount), args.Error(1)
}

func (m *MockAccountService) List(ctx context.Context) ([]*accounts.UserAccount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*accounts.UserAccount), args.Error(1)
}

func (m *MockAccountService) ResetPassword(ctx context.Context, email, newPassword string) error {
	args := m.Called(ctx, email, newPassword)
	return args.Error(0)
}

func (m *MockAccountService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	args := m.Called(ctx, userID, currentPassword, newPassword)
	return args.Error(0)
}

func (m *MockAccountService) SetAIFeatures(ctx context.Context, userID string, accepted bool) error {
	args := m.Called(ctx, userID, accepted)
	return args.Error(0)
}

// MockCategoryService is a mock implementation of CategoryService
type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) List(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockCategoryService) Add(ctx context.Context, userID, name string) error {
	args := m.Called(ctx, userID, name)
	return args.Error(0)
}

func (m *MockCategoryService) Delete(ctx context.Context, userID, name string) error {
	args := m.Called(ctx, userID, name)
	return args.Error(0)
}

// MockLibraryService is a mock implementation of LibraryService
type MockLibraryService struct {
	mock.Mock
}

func (m *MockLibraryService) Search(ctx context.Context, kind books.SearchKind, query string) ([]*books.Book, error) {
	args := m.Called(ctx, kind, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*books.Book), args.Error(1)
}

func (m *MockLibraryService) AddFromUpstream(ctx context.Context, userID, upstreamID string) (*books.Book, error) {
	args := m.Called(ctx, userID, upstreamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*books.Book), args.Error(1)
}

func (m *MockLibraryService) AddByISBN(ctx context.Context, userID, isbn string) (*books.Book, error) {
	args := m.Called(ctx, userID, isbn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*books.Book), args.Error(1)
}

func (m *MockLibraryService) Get(ctx context.Context, userID string, bookID uint) (*books.Book, error) {
	args := m.Called(ctx, userID, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*books.Book), args.Error(1)
}

func (m *MockLibraryService) List(ctx context.Context, userID, category string) ([]*books.Book, error) {
	args := m.Called(ctx, userID, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*books.Book), args.Error(1)
}

func (m *MockLibraryService) Delete(ctx context.Context, userID string, bookID uint) error {
	args := m.Called(ctx, userID, bookID)
	return args.Error(0)
}

func (m *MockLibraryService) AddToCategory(ctx context.Context, userID string, bookID uint, category string) error {
	args := m.Called(ctx, userID, bookID, category)
	return args.Error(0)
}

func (m *MockLibraryService) RemoveFromCategory(ctx context.Context, userID string, bookID uint, category string) error {
	args := m.Called(ctx, userID, bookID, category)
	return args.Error(0)
}

// MockSummaryService is a mock implementation of SummaryService
type MockSummaryService struct {
	mock.Mock
}

func (m *MockSummaryService) GetForUser(ctx context.Context, userID string, bookID uint) (*summaries.AISummary, error) {
	args := m.Called(ctx, userID, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*summaries.AISummary), args.Error(1)
}

func (m *MockSummaryService) Regenerate(ctx context.Context, userID string, bookID uint) error {
	args := m.Called(ctx, userID, bookID)
	return args.Error(0)
}
