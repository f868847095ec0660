//go:build integration
// +build integration

package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MGTheTrain/book-organiser/internal/domain/accounts"
	"github.com/MGTheTrain/book-organiser/internal/domain/books"
	"github.com/MGTheTrain/book-organiser/internal/domain/summaries"
	"github.com/MGTheTrain/book-organiser/internal/infrastructure/catalog"
	"github.com/MGTheTrain/book-organiser/internal/infrastructure/llm"
	"github.com/MGTheTrain/book-organiser/internal/infrastructure/persistence"
	"github.com/MGTheTrain/book-organiser/internal/pkg/config"
	"github.com/MGTheTrain/book-organiser/internal/pkg/testutil"

	"github.com/stretchr/testify/require"
)

// testVolume is the single volume served by the fake catalog
const testVolume = `{
  "id": "vol-dune",
  "volumeInfo": {
    "title": "Dune",
    "authors": ["Frank Herbert"],
    "publisher": "Ace",
    "publishedDate": "1990",
    "industryIdentifiers": [
      {"type": "ISBN_10", "identifier": "0441172717"},
      {"type": "ISBN_13", "identifier": "9780441172719"}
    ],
    "pageCount": 535,
    "categories": ["Fiction"]
  }
}`

// TestServices holds all application services and dependencies for testing
type TestServices struct {
	AccountService  accounts.AccountService
	CategoryService accounts.CategoryService
	LibraryService  books.LibraryService
	SummaryService  summaries.SummaryService
	Poller          *SummaryPoller

	// Infrastructure
	DBContext *persistence.TestContext
}

// SetupTestServices wires the services against a migrated database and fake
// Google Books and Ollama servers
func SetupTestServices(t *testing.T, dbType string) *TestServices {
	t.Helper()

	logger := testutil.SetupTestLogger(t)
	dbContext := persistence.SetupTestDB(t, dbType)

	catalogServer := httptest.NewServer(http.HandlerFunc(serveFakeCatalog))
	t.Cleanup(catalogServer.Close)

	ollamaServer := httptest.NewServer(http.HandlerFunc(serveFakeOllama))
	t.Cleanup(ollamaServer.Close)

	catalogClient, err := catalog.NewGoogleBooksClient(&config.CatalogSettings{
		BaseURL:           catalogServer.URL,
		MaxResults:        10,
		RequestsPerSecond: 100,
		Timeout:           5 * time.Second,
	}, logger, nil)
	require.NoError(t, err, "Failed to create catalog client")

	generator, err := llm.NewGenerator(&config.AISettings{
		Provider: config.AIProviderOllama,
		BaseURL:  ollamaServer.URL,
		Model:    config.DefaultAIModel,
		Timeout:  5 * time.Second,
	}, logger)
	require.NoError(t, err, "Failed to create generator")

	accountService, err := NewAccountService(dbContext.UserRepo, logger)
	require.NoError(t, err)
	categoryService, err := NewCategoryService(dbContext.UserRepo, dbContext.BookRepo, logger)
	require.NoError(t, err)
	libraryService, err := NewLibraryService(catalogClient, dbContext.BookRepo, dbContext.UserRepo, logger)
	require.NoError(t, err)
	summaryService, err := NewSummaryService(dbContext.SummaryRepo, logger)
	require.NoError(t, err)
	poller, err := NewSummaryPoller(dbContext.SummaryRepo, generator, &config.PollerSettings{Enabled: true, Schedule: "@every 1m"}, logger, nil)
	require.NoError(t, err)

	return &TestServices{
		AccountService:  accountService,
		CategoryService: categoryService,
		LibraryService:  libraryService,
		SummaryService:  summaryService,
		Poller:          poller,
		DBContext:       dbContext,
	}
}

func serveFakeCatalog(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.URL.Path == "/volumes/vol-dune":
		_, _ = w.Write([]byte(testVolume))
	case r.URL.Path == "/volumes" && strings.Contains(strings.ToLower(r.URL.Query().Get("q")), "dune"),
		r.URL.Path == "/volumes" && strings.Contains(r.URL.Query().Get("q"), "9780441172719"):
		_, _ = w.Write([]byte(`{"totalItems": 1, "items": [` + testVolume + `]}`))
	case r.URL.Path == "/volumes":
		_, _ = w.Write([]byte(`{"totalItems": 0}`))
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error": {"code": 404, "message": "The volume ID could not be found."}}`))
	}
}

func serveFakeOllama(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Model    string `json:"model"`
		Messages []struct {
			Content string `json:"content"`
		} `json:"messages"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Messages) == 0 {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"model":   req.Model,
		"done":    true,
		"message": map[string]string{"role": "assistant", "content": "Generated: " + req.Messages[0].Content[:20]},
	})
}
