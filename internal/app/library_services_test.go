//go:build unit
// +build unit

package app

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/MGTheTrain/book-organiser/internal/domain/accounts"
	"github.com/MGTheTrain/book-organiser/internal/domain/books"
	"github.com/MGTheTrain/book-organiser/internal/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type libraryMocks struct {
	catalog *testutil.MockCatalogClient
	books   *testutil.MockBookRepository
	users   *testutil.MockUserAccountRepository
}

func newTestLibraryService(t *testing.T) (*libraryService, libraryMocks) {
	t.Helper()
	m := libraryMocks{
		catalog: new(testutil.MockCatalogClient),
		books:   new(testutil.MockBookRepository),
		users:   new(testutil.MockUserAccountRepository),
	}
	return &libraryService{
		catalog: m.catalog,
		books:   m.books,
		users:   m.users,
		logger:  testutil.SetupTestLogger(t),
	}, m
}

func TestLibraryService_Search(t *testing.T) {
	ctx := context.Background()
	dune := &books.Book{UpstreamID: "vol-1", Title: "Dune"}

	tests := []struct {
		name    string
		kind    books.SearchKind
		query   string
		setup   func(c *testutil.MockCatalogClient)
		want    int
		wantErr error
	}{
		{
			name:  "by title",
			kind:  books.SearchByTitle,
			query: " dune ",
			setup: func(c *testutil.MockCatalogClient) {
				c.On("SearchByTitle", ctx, "dune").Return([]*books.Book{dune}, nil)
			},
			want: 1,
		},
		{
			name:  "by author",
			kind:  books.SearchByAuthor,
			query: "herbert",
			setup: func(c *testutil.MockCatalogClient) {
				c.On("SearchByAuthor", ctx, "herbert").Return([]*books.Book{dune, dune}, nil)
			},
			want: 2,
		},
		{
			name:  "by isbn",
			kind:  books.SearchByISBN,
			query: "9780441013593",
			setup: func(c *testutil.MockCatalogClient) {
				c.On("GetByISBN", ctx, "9780441013593").Return(dune, nil)
			},
			want: 1,
		},
		{
			name:    "empty query",
			kind:    books.SearchByTitle,
			query:   "   ",
			setup:   func(c *testutil.MockCatalogClient) {},
			wantErr: books.ErrEmptyQuery,
		},
		{
			name:  "no results",
			kind:  books.SearchByTitle,
			query: "zzzz",
			setup: func(c *testutil.MockCatalogClient) {
				c.On("SearchByTitle", ctx, "zzzz").Return([]*books.Book{}, nil)
			},
			wantErr: books.ErrNoResults,
		},
		{
			name:  "isbn not found",
			kind:  books.SearchByISBN,
			query: "123",
			setup: func(c *testutil.MockCatalogClient) {
				c.On("GetByISBN", ctx, "123").Return(nil, books.ErrNoResults)
			},
			wantErr: books.ErrNoResults,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newTestLibraryService(t)
			tt.setup(m.catalog)

			found, err := svc.Search(ctx, tt.kind, tt.query)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, found, tt.want)
			m.catalog.AssertExpectations(t)
		})
	}
}

func TestLibraryService_AddFromUpstream(t *testing.T) {
	ctx := context.Background()
	svc, m := newTestLibraryService(t)
	volume := &books.Book{UpstreamID: "vol-1", Title: "Dune", CustomCategories: []string{"stale"}}

	m.catalog.On("GetByUpstreamID", ctx, "vol-1").Return(volume, nil)
	m.books.On("Create", ctx, mock.MatchedBy(func(b *books.Book) bool {
		return b.UserID == "u1" && b.UpstreamID == "vol-1" && len(b.CustomCategories) == 0
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*books.Book).ID = 7
	}).Return(nil)

	book, err := svc.AddFromUpstream(ctx, "u1", "vol-1")
	require.NoError(t, err)
	assert.Equal(t, uint(7), book.ID)
	m.books.AssertExpectations(t)
}

func TestLibraryService_AddFromUpstream_CatalogFailure(t *testing.T) {
	ctx := context.Background()
	svc, m := newTestLibraryService(t)
	m.catalog.On("GetByUpstreamID", ctx, "vol-x").Return(nil, books.ErrNotFound)

	_, err := svc.AddFromUpstream(ctx, "u1", "vol-x")
	assert.ErrorIs(t, err, books.ErrNotFound)
	m.books.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)

	_, err = svc.AddFromUpstream(ctx, "u1", " ")
	assert.ErrorIs(t, err, books.ErrNotFound)
}

func TestLibraryService_Get_ChecksOwner(t *testing.T) {
	ctx := context.Background()
	svc, m := newTestLibraryService(t)
	m.books.On("GetByID", ctx, uint(3)).Return(&books.Book{ID: 3, UserID: "owner", Title: "Dune"}, nil)

	book, err := svc.Get(ctx, "owner", 3)
	require.NoError(t, err)
	assert.Equal(t, "Dune", book.Title)

	_, err = svc.Get(ctx, "intruder", 3)
	assert.ErrorIs(t, err, books.ErrNotFound)
	assert.True(t, IsNotFound(err))
}

func TestLibraryService_Delete(t *testing.T) {
	ctx := context.Background()
	svc, m := newTestLibraryService(t)
	m.books.On("GetByID", ctx, uint(3)).Return(&books.Book{ID: 3, UserID: "owner"}, nil)
	m.books.On("DeleteByID", ctx, uint(3)).Return(nil).Once()

	assert.ErrorIs(t, svc.Delete(ctx, "intruder", 3), books.ErrNotFound)
	require.NoError(t, svc.Delete(ctx, "owner", 3))
	m.books.AssertExpectations(t)
}

func TestLibraryService_AddToCategory(t *testing.T) {
	ctx := context.Background()
	svc, m := newTestLibraryService(t)
	book := &books.Book{ID: 3, UserID: "owner"}
	user := &accounts.UserAccount{ID: "owner", UserCategories: []string{"history"}}

	m.books.On("GetByID", ctx, uint(3)).Return(book, nil)
	m.users.On("GetByID", ctx, "owner").Return(user, nil)
	m.books.On("Update", ctx, book).Return(nil).Once()

	require.NoError(t, svc.AddToCategory(ctx, "owner", 3, "History"))
	assert.Equal(t, []string{"history"}, book.CustomCategories)

	require.NoError(t, svc.AddToCategory(ctx, "owner", 3, "history"))

	err := svc.AddToCategory(ctx, "owner", 3, "poetry")
	assert.ErrorIs(t, err, books.ErrUnknownCategory)
	m.books.AssertExpectations(t)
}

func TestLibraryService_AddToCategory_DeletedMeanwhile(t *testing.T) {
	ctx := context.Background()
	svc, m := newTestLibraryService(t)
	book := &books.Book{ID: 3, UserID: "owner"}
	user := &accounts.UserAccount{ID: "owner", UserCategories: []string{"history"}}

	m.books.On("GetByID", ctx, uint(3)).Return(book, nil)
	m.users.On("GetByID", ctx, "owner").Return(user, nil)
	m.books.On("Update", ctx, book).Return(fmt.Errorf("book with ID 3: %w", books.ErrNotFound))

	err := svc.AddToCategory(ctx, "owner", 3, "history")
	assert.ErrorIs(t, err, books.ErrNotFound)
	assert.True(t, IsNotFound(err))
}

func TestLibraryService_RemoveFromCategory(t *testing.T) {
	ctx := context.Background()
	svc, m := newTestLibraryService(t)
	book := &books.Book{ID: 3, UserID: "owner", CustomCategories: []string{"history", "poetry"}}

	m.books.On("GetByID", ctx, uint(3)).Return(book, nil)
	m.books.On("Update", ctx, book).Return(errors.New("write failed")).Once()

	err := svc.RemoveFromCategory(ctx, "owner", 3, "HISTORY")
	assert.ErrorContains(t, err, "write failed")

	require.NoError(t, svc.RemoveFromCategory(ctx, "owner", 3, "unknown"))
	m.books.AssertNumberOfCalls(t, "Update", 1)
}

func TestLibraryService_List_NormalizesCategory(t *testing.T) {
	ctx := context.Background()
	svc, m := newTestLibraryService(t)
	m.books.On("ListByUser", ctx, "owner", "history").Return([]*books.Book{{ID: 1}}, nil)

	found, err := svc.List(ctx, "owner", " History ")
	require.NoError(t, err)
	assert.Len(t, found, 1)
}
