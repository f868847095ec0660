//go:build unit
// +build unit

package web

import (
	"net/http"
	"testing"
	"time"

	"github.com/MGTheTrain/book-organiser/internal/domain/books"
	"github.com/MGTheTrain/book-organiser/internal/domain/summaries"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func generatedSummary(userID string) *summaries.AISummary {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return &summaries.AISummary{
		ID:          1,
		BookID:      3,
		Book:        &books.Book{ID: 3, UserID: userID, Title: "Dune"},
		Model:       "llama3.2",
		Summary:     "A **desert** planet.",
		KeyQuotes:   "- Fear is the mind-killer.",
		KeyThemes:   "Ecology",
		GeneratedAt: &at,
		IsGenerated: true,
	}
}

func TestAISummaryController_Summary_RendersMarkdown(t *testing.T) {
	a := newTestApp(t)
	user := a.testUser()
	user.AcceptedAIFeatures = true
	cl := a.newClient(t, user.ID)
	a.summaries.On("GetForUser", mock.Anything, user.ID, uint(3)).Return(generatedSummary(user.ID), nil)

	rec := cl.get("/AISummary/Summary/3")

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<strong>desert</strong>")
	assert.Contains(t, body, "<li>Fear is the mind-killer.</li>")
	assert.Contains(t, body, "Generated by llama3.2 on 1 May 2024")
}

func TestAISummaryController_Summary_OptInPrompt(t *testing.T) {
	a := newTestApp(t)
	user := a.testUser()
	cl := a.newClient(t, user.ID)
	a.summaries.On("GetForUser", mock.Anything, user.ID, uint(3)).Return(generatedSummary(user.ID), nil)

	rec := cl.get("/AISummary/Summary/3")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Enable AI features")
	assert.NotContains(t, rec.Body.String(), "desert")
}

func TestAISummaryController_Summary_Redirects(t *testing.T) {
	a := newTestApp(t)
	user := a.testUser()
	a.summaries.On("GetForUser", mock.Anything, user.ID, uint(9)).Return(nil, summaries.ErrNotFound)

	anonymous := a.newClient(t, "")
	rec := anonymous.get("/AISummary/Summary")
	assert.Contains(t, rec.Header().Get("Location"), "statusCode=404")

	rec = anonymous.get("/AISummary/Summary/3")
	assert.Equal(t, "/Account/Login", rec.Header().Get("Location"))

	cl := a.newClient(t, user.ID)
	rec = cl.get("/AISummary/Summary/9")
	assert.Contains(t, rec.Header().Get("Location"), "statusCode=404")
}

func TestAISummaryController_Regenerate(t *testing.T) {
	a := newTestApp(t)
	user := a.testUser()
	cl := a.newClient(t, user.ID)
	a.summaries.On("Regenerate", mock.Anything, user.ID, uint(3)).Return(nil)

	rec := cl.post("/AISummary/Regenerate/3", nil)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/AISummary/Summary/3", rec.Header().Get("Location"))
	a.summaries.AssertExpectations(t)
}
