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

// MockUserAccountRepository is a mock implementation of UserAccountRepository
type MockUserAccountRepository struct {
	mock.Mock
}

func (m *MockUserAccountRepository) Create(ctx context.Context, user *accounts.UserAccount) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserAccountRepository) GetByID(ctx context.Context, userID string) (*accounts.UserAccount, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounts.UserAccount), args.Error(1)
}

func (m *MockUserAccountRepository) GetByEmail(ctx context.Context, email string) (*accounts.UserAccount, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounts.UserAccount), args.Error(1)
}

func (m *MockUserAccountRepository) List(ctx context.Context) ([]*accounts.UserAccount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*accounts.UserAccount), args.Error(1)
}

func (m *MockUserAccountRepository) Update(ctx context.Context, user *accounts.UserAccount) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockBookRepository is a mock implementation of BookRepository
type MockBookRepository struct {
	mock.Mock
}

func (m *MockBookRepository) Create(ctx context.Context, book *books.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockBookRepository) GetByID(ctx context.Context, bookID uint) (*books.Book, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*books.Book), args.Error(1)
}

func (m *MockBookRepository) ListByUser(ctx context.Context, userID, category string) ([]*books.Book, error) {
	args := m.Called(ctx, userID, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*books.Book), args.Error(1)
}

func (m *MockBookRepository) Update(ctx context.Context, book *books.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockBookRepository) DeleteByID(ctx context.Context, bookID uint) error {
	args := m.Called(ctx, bookID)
	return args.Error(0)
}

func (m *MockBookRepository) RemoveCategoryForUser(ctx context.Context, userID, category string) error {
	args := m.Called(ctx, userID, category)
	return args.Error(0)
}

// MockSummaryRepository is a mock implementation of SummaryRepository
type MockSummaryRepository struct {
	mock.Mock
}

func (m *MockSummaryRepository) GetByBookID(ctx context.Context, bookID uint) (*summaries.AISummary, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*summaries.AISummary), args.Error(1)
}

func (m *MockSummaryRepository) ListPending(ctx context.Context) ([]*summaries.AISummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*summaries.AISummary), args.Error(1)
}

func (m *MockSummaryRepository) Update(ctx context.Context, summary *summaries.AISummary) error {
	args := m.Called(ctx, summary)
	return args.Error(0)
}

func (m *MockSummaryRepository) SaveGenerated(ctx context.Context, previous, summary *summaries.AISummary) error {
	args := m.Called(ctx, previous, summary)
	return args.Error(0)
}

// MockCatalogClient is a mock implementation of CatalogClient
type MockCatalogClient struct {
	mock.Mock
}

func (m *MockCatalogClient) SearchByTitle(ctx context.Context, query string) ([]*books.Book, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*books.Book), args.Error(1)
}

func (m *MockCatalogClient) SearchByAuthor(ctx context.Context, query string) ([]*books.Book, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*books.Book), args.Error(1)
}

func (m *MockCatalogClient) GetByISBN(ctx context.Context, isbn string) (*books.Book, error) {
	args := m.Called(ctx, isbn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*books.Book), args.Error(1)
}

func (m *MockCatalogClient) GetByUpstreamID(ctx context.Context, upstreamID string) (*books.Book, error) {
	args := m.Called(ctx, upstreamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*books.Book), args.Error(1)
}

// MockGenerator is a mock implementation of summaries.Generator
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, field summaries.Field, book *books.Book) (string, error) {
	args := m.Called(ctx, field, book)
	return args.String(0), args.Error(1)
}

func (m *MockGenerator) Model() string {
	args := m.Called()
	return args.String(0)
}
