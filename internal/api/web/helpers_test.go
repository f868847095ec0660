//go:build unit
// +build unit

package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/MGTheTrain/book-organiser/internal/domain/accounts"
	"github.com/MGTheTrain/book-organiser/internal/infrastructure/session"
	"github.com/MGTheTrain/book-organiser/internal/pkg/config"
	"github.com/MGTheTrain/book-organiser/internal/pkg/testutil"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// testApp is the router wired to mocked services
type testApp struct {
	router     *gin.Engine
	accounts   *testutil.MockAccountService
	categories *testutil.MockCategoryService
	library    *testutil.MockLibraryService
	summaries  *testutil.MockSummaryService
	sessions   *session.Manager
	searches   *session.SearchStore
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sessions, err := session.NewManager(&config.SessionSettings{
		Secret:        testSecret,
		CookieName:    config.DefaultSessionCookieName,
		IdleTimeout:   30 * time.Minute,
		RememberMeFor: 14 * 24 * time.Hour,
	})
	require.NoError(t, err)

	a := &testApp{
		router:     gin.New(),
		accounts:   new(testutil.MockAccountService),
		categories: new(testutil.MockCategoryService),
		library:    new(testutil.MockLibraryService),
		summaries:  new(testutil.MockSummaryService),
		sessions:   sessions,
		searches:   session.NewSearchStore(10, time.Minute),
	}

	err = SetupRoutes(a.router, Services{
		Accounts:   a.accounts,
		Categories: a.categories,
		Library:    a.library,
		Summaries:  a.summaries,
	}, sessions, a.searches, testutil.SetupTestLogger(t))
	require.NoError(t, err)
	return a
}

// testUser returns a user account that GetByID resolves for the session middleware
func (a *testApp) testUser(categories ...string) *accounts.UserAccount {
	user := &accounts.UserAccount{
		ID:             uuid.NewString(),
		FullName:       "Ada Lovelace",
		Email:          "ada@example.com",
		UserCategories: append([]string{}, categories...),
	}
	a.accounts.On("GetByID", mock.Anything, user.ID).Return(user, nil)
	return user
}

// client carries the session cookie between requests like a browser
type client struct {
	app     *testApp
	session *session.Session
	cookie  *http.Cookie
}

// newClient starts a session for userID, anonymous when empty
func (a *testApp) newClient(t *testing.T, userID string) *client {
	t.Helper()
	s, err := a.sessions.New(userID, false)
	require.NoError(t, err)
	token, err := a.sessions.Encode(s)
	require.NoError(t, err)
	return &client{
		app:     a,
		session: s,
		cookie:  &http.Cookie{Name: a.sessions.CookieName(), Value: token},
	}
}

func (cl *client) do(req *http.Request) *httptest.ResponseRecorder {
	if cl.cookie != nil {
		req.AddCookie(cl.cookie)
	}
	rec := httptest.NewRecorder()
	cl.app.router.ServeHTTP(rec, req)

	for _, c := range rec.Result().Cookies() {
		if c.Name == cl.app.sessions.CookieName() {
			cl.cookie = c
			if s, err := cl.app.sessions.Decode(c.Value); err == nil {
				cl.session = s
			}
		}
	}
	return rec
}

func (cl *client) get(target string) *httptest.ResponseRecorder {
	return cl.do(httptest.NewRequest(http.MethodGet, target, nil))
}

// post submits a form including the session's CSRF token
func (cl *client) post(target string, values url.Values) *httptest.ResponseRecorder {
	if values == nil {
		values = url.Values{}
	}
	values.Set(csrfFormField, cl.session.CSRFToken)
	return cl.do(testutil.NewFormRequest(target, values))
}

func newGetWithCookie(target string, cookie *http.Cookie) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.AddCookie(cookie)
	return req
}
