//go:build integration
// +build integration

package persistence

import (
	"strings"
	"testing"
	"time"

	"github.com/MGTheTrain/book-organiser/internal/domain/accounts"
	"github.com/MGTheTrain/book-organiser/internal/domain/books"
	"github.com/MGTheTrain/book-organiser/internal/domain/summaries"
	"github.com/MGTheTrain/book-organiser/internal/pkg/config"
	"github.com/MGTheTrain/book-organiser/internal/pkg/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TestContext holds test database and repositories
type TestContext struct {
	DB          *gorm.DB
	UserRepo    accounts.UserAccountRepository
	BookRepo    books.BookRepository
	SummaryRepo summaries.SummaryRepository
}

// SetupTestDB initializes a migrated test database with automatic cleanup
func SetupTestDB(t *testing.T, dbType string) *TestContext {
	t.Helper()

	var settings config.DatabaseSettings
	cleanupFunc := func() {}

	switch dbType {
	case config.SqliteDbType:
		settings = config.DatabaseSettings{
			Type: config.SqliteDbType,
			DSN:  ":memory:",
		}

	case config.PostgresDbType:
		uniqueDBName := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
		settings = config.DatabaseSettings{
			Type: config.PostgresDbType,
			DSN:  "user=postgres password=postgres host=localhost port=5432 sslmode=disable",
			Name: uniqueDBName,
		}
		cleanupFunc = func() {
			adminDSN := "user=postgres password=postgres host=localhost port=5432 dbname=postgres sslmode=disable"
			_ = DropDatabase(adminDSN, uniqueDBName)
		}

	default:
		t.Fatalf("Unsupported database type: %s", dbType)
	}

	db, err := NewDBConnection(settings)
	require.NoError(t, err, "Failed to create database connection")

	t.Cleanup(func() {
		_ = CloseDB(db)
		cleanupFunc()
	})

	require.NoError(t, Migrate(db), "Failed to migrate schema")

	log := testutil.SetupTestLogger(t)

	userRepo, err := NewGormUserAccountRepository(db, log)
	require.NoError(t, err)
	bookRepo, err := NewGormBookRepository(db, log)
	require.NoError(t, err)
	summaryRepo, err := NewGormSummaryRepository(db, log)
	require.NoError(t, err)

	return &TestContext{
		DB:          db,
		UserRepo:    userRepo,
		BookRepo:    bookRepo,
		SummaryRepo: summaryRepo,
	}
}

// CreateTestUser persists a user account with default values
func CreateTestUser(t *testing.T, tc *TestContext, acceptedAI bool) *accounts.UserAccount {
	t.Helper()

	user := &accounts.UserAccount{
		ID:                 uuid.NewString(),
		FullName:           "Test Reader",
		Email:              uuid.NewString()[:8] + "@example.com",
		PasswordHash:       "$2a$10$abcdefghijklmnopqrstuv",
		AcceptedAIFeatures: acceptedAI,
		CreatedAt:          time.Now().UTC(),
	}
	require.NoError(t, tc.UserRepo.Create(t.Context(), user))
	return user
}

// CreateTestBook builds an unsaved book for the user
func CreateTestBook(userID, title string) *books.Book {
	return &books.Book{
		UserID:             userID,
		UpstreamID:         "vol-" + title,
		Title:              title,
		Authors:            []string{"Test Author"},
		PublishedDate:      "2001-01-01",
		UpstreamCategories: []string{"Fiction"},
	}
}
