//go:build unit
// +build unit

package v1

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MGTheTrain/book-organiser/internal/domain/accounts"
	"github.com/MGTheTrain/book-organiser/internal/infrastructure/session"
	"github.com/MGTheTrain/book-organiser/internal/pkg/config"
	"github.com/MGTheTrain/book-organiser/internal/pkg/testutil"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type apiTest struct {
	router     *gin.Engine
	sessions   *session.Manager
	accounts   *testutil.MockAccountService
	categories *testutil.MockCategoryService
	library    *testutil.MockLibraryService
	summaries  *testutil.MockSummaryService
	user       *accounts.UserAccount
	cookie     *http.Cookie
}

func newAPITest(t *testing.T) *apiTest {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sessions, err := session.NewManager(&config.SessionSettings{
		Secret:        "0123456789abcdef0123456789abcdef",
		CookieName:    config.DefaultSessionCookieName,
		IdleTimeout:   30 * time.Minute,
		RememberMeFor: 24 * time.Hour,
	})
	require.NoError(t, err)

	a := &apiTest{
		router:     gin.New(),
		sessions:   sessions,
		accounts:   new(testutil.MockAccountService),
		categories: new(testutil.MockCategoryService),
		library:    new(testutil.MockLibraryService),
		summaries:  new(testutil.MockSummaryService),
		user:       &accounts.UserAccount{ID: uuid.NewString(), FullName: "Ada", Email: "ada@example.com"},
	}
	a.accounts.On("GetByID", mock.Anything, a.user.ID).Return(a.user, nil)

	SetupRoutes(a.router, []string{"http://localhost:3000"}, sessions,
		a.accounts, a.categories, a.library, a.summaries, testutil.SetupTestLogger(t))

	s, err := sessions.New(a.user.ID, false)
	require.NoError(t, err)
	token, err := sessions.Encode(s)
	require.NoError(t, err)
	a.cookie = &http.Cookie{Name: sessions.CookieName(), Value: token}
	return a
}

func (a *apiTest) serve(method, target string, authenticated bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if authenticated {
		req.AddCookie(a.cookie)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func TestRequireSession(t *testing.T) {
	t.Run("missing cookie", func(t *testing.T) {
		a := newAPITest(t)
		rec := a.serve(http.MethodGet, BasePath+"/books", false)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "authentication required", resp.Message)
	})

	t.Run("deleted account", func(t *testing.T) {
		a := newAPITest(t)
		s, err := a.sessions.New(uuid.NewString(), false)
		require.NoError(t, err)
		token, err := a.sessions.Encode(s)
		require.NoError(t, err)
		a.accounts.On("GetByID", mock.Anything, s.UserID).Return(nil, accounts.ErrNotFound)

		req := httptest.NewRequest(http.MethodGet, BasePath+"/categories", nil)
		req.AddCookie(&http.Cookie{Name: a.sessions.CookieName(), Value: token})
		rec := httptest.NewRecorder()
		a.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("anonymous session", func(t *testing.T) {
		a := newAPITest(t)
		s, err := a.sessions.New("", false)
		require.NoError(t, err)
		token, err := a.sessions.Encode(s)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, BasePath+"/books", nil)
		req.AddCookie(&http.Cookie{Name: a.sessions.CookieName(), Value: token})
		rec := httptest.NewRecorder()
		a.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestCORSPreflight(t *testing.T) {
	a := newAPITest(t)

	req := httptest.NewRequest(http.MethodOptions, BasePath+"/books", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCategoryHandler_List(t *testing.T) {
	a := newAPITest(t)
	a.categories.On("List", mock.Anything, a.user.ID).Return([]string{"scifi", "classics"}, nil)

	rec := a.serve(http.MethodGet, BasePath+"/categories", true)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp CategoriesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"scifi", "classics"}, resp.Categories)
}

func TestCategoryHandler_List_Empty(t *testing.T) {
	a := newAPITest(t)
	a.categories.On("List", mock.Anything, a.user.ID).Return(nil, nil)

	rec := a.serve(http.MethodGet, BasePath+"/categories", true)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"categories":[]}`, rec.Body.String())
}

func TestCategoryHandler_List_Failure(t *testing.T) {
	a := newAPITest(t)
	a.categories.On("List", mock.Anything, a.user.ID).Return(nil, errors.New("db down"))

	rec := a.serve(http.MethodGet, BasePath+"/categories", true)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

