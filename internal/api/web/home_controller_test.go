//go:build unit
// +build unit

package web

import (
	"encoding/xml"
	"errors"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/MGTheTrain/book-organiser/internal/domain/books"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestHomeController_Index_RequiresLogin(t *testing.T) {
	a := newTestApp(t)
	cl := a.newClient(t, "")

	for _, path := range []string{"/", "/Home/Index", "/Home/EditCategories", "/Home/Feed"} {
		rec := cl.get(path)
		assert.Equal(t, http.StatusFound, rec.Code, path)
		assert.Equal(t, "/Account/Login", rec.Header().Get("Location"), path)
	}
}

func TestHomeController_Index_ListsBooks(t *testing.T) {
	a := newTestApp(t)
	user := a.testUser("history", "poetry")
	cl := a.newClient(t, user.ID)

	a.library.On("List", mock.Anything, user.ID, "history").Return([]*books.Book{
		{ID: 1, Title: "SPQR", Authors: []string{"Mary Beard"}, CustomCategories: []string{"history"}},
	}, nil)

	rec := cl.get("/Home/Index?category=History")

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "SPQR")
	assert.Contains(t, body, `href="/Book/Details/1"`)
	assert.Contains(t, body, "Poetry")
}

func TestHomeController_Index_ListFailure(t *testing.T) {
	a := newTestApp(t)
	user := a.testUser()
	cl := a.newClient(t, user.ID)
	a.library.On("List", mock.Anything, user.ID, "").Return(nil, errors.New("db down"))

	rec := cl.get("/")

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/Home/Error?statusCode=500", rec.Header().Get("Location"))
}

func TestHomeController_Categories(t *testing.T) {
	a := newTestApp(t)
	user := a.testUser("history")
	cl := a.newClient(t, user.ID)
	a.categories.On("Add", mock.Anything, user.ID, "Poetry").Return(nil)
	a.categories.On("Delete", mock.Anything, user.ID, "history").Return(nil)

	rec := cl.get("/Home/EditCategories")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "History")

	rec = cl.post("/Home/AddCategory", url.Values{"category": {"Poetry"}})
	assert.Equal(t, "/Home/EditCategories", rec.Header().Get("Location"))

	rec = cl.post("/Home/DeleteCategory", url.Values{"category": {"history"}})
	assert.Equal(t, "/Home/EditCategories", rec.Header().Get("Location"))
	a.categories.AssertExpectations(t)
}

func TestHomeController_Error(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantBody   string
	}{
		{"defaults", "", http.StatusInternalServerError, DefaultErrorMessage},
		{"not found", "?statusCode=404&message=Gone", http.StatusNotFound, "Gone"},
		{"invalid status", "?statusCode=abc", http.StatusInternalServerError, DefaultErrorMessage},
		{"info text", "?showInfoText=true", http.StatusInternalServerError, "development environment"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestApp(t)
			cl := a.newClient(t, "")

			rec := cl.get("/Home/Error" + tt.query)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
			assert.Contains(t, rec.Header().Get("Cache-Control"), "no-store")
			assert.Contains(t, rec.Body.String(), rec.Header().Get("X-Request-ID"))
		})
	}
}

func TestHomeController_Feed(t *testing.T) {
	a := newTestApp(t)
	user := a.testUser()
	cl := a.newClient(t, user.ID)

	added := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	a.library.On("List", mock.Anything, user.ID, "").Return([]*books.Book{
		{ID: 2, Title: "Dune", Authors: []string{"Frank Herbert"}, CreatedAt: added},
		{ID: 1, Title: "SPQR", Authors: []string{"Mary Beard"}, CreatedAt: added.Add(-time.Hour)},
	}, nil)

	rec := cl.get("/Home/Feed")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/rss+xml")

	var rss struct {
		Channel struct {
			Title string `xml:"title"`
			Items []struct {
				Title string `xml:"title"`
				Link  string `xml:"link"`
			} `xml:"item"`
		} `xml:"channel"`
	}
	require.NoError(t, xml.Unmarshal(rec.Body.Bytes(), &rss))
	assert.Equal(t, "Ada Lovelace's library", rss.Channel.Title)
	require.Len(t, rss.Channel.Items, 2)
	assert.Equal(t, "Dune", rss.Channel.Items[0].Title)
	assert.Equal(t, "http://example.com/Book/Details/2", rss.Channel.Items[0].Link)
}

func TestRoutes_UnknownRouteRedirectsToError(t *testing.T) {
	a := newTestApp(t)
	cl := a.newClient(t, "")

	rec := cl.get("/Nowhere/Action")

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/Home/Error?statusCode=404", rec.Header().Get("Location"))
}
