package web

import (
	"net/http"
	"strconv"

	"github.com/MGTheTrain/book-organiser/internal/app"
	"github.com/MGTheTrain/book-organiser/internal/domain/summaries"
	"github.com/MGTheTrain/book-organiser/internal/pkg/logger"
	"github.com/MGTheTrain/book-organiser/internal/pkg/markdown"
	"github.com/gin-gonic/gin"
)

// AISummaryController defines the AI summary pages
type AISummaryController interface {
	Summary(c *gin.Context)
	Regenerate(c *gin.Context)
}

type aiSummaryController struct {
	summaries summaries.SummaryService
	logger    logger.Logger
}

// NewAISummaryController creates a new AISummaryController
func NewAISummaryController(summaryService summaries.SummaryService, logger logger.Logger) AISummaryController {
	return &aiSummaryController{
		summaries: summaryService,
		logger:    logger,
	}
}

// Summary shows the generated content. Users that have not opted into AI
// features get the opt-in prompt instead.
func (sc *aiSummaryController) Summary(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		redirectToError(c, http.StatusNotFound, unknownErrorMessage)
		return
	}
	user := currentUser(c)
	if user == nil {
		redirectToLogin(c)
		return
	}

	summary, err := sc.summaries.GetForUser(c.Request.Context(), user.ID, id)
	if err != nil {
		if !app.IsNotFound(err) {
			sc.logger.Error("Failed to load ai summary of book", id, ":", err)
		}
		redirectToError(c, http.StatusNotFound, unknownErrorMessage)
		return
	}

	vm := &SummaryViewModel{
		Book:               summary.Book,
		Summary:            summary,
		AcceptedAIFeatures: user.AcceptedAIFeatures,
	}
	if user.AcceptedAIFeatures {
		vm.SummaryHTML = markdown.MustRender(summary.Summary)
		vm.KeyQuotesHTML = markdown.MustRender(summary.KeyQuotes)
		vm.KeyThemesHTML = markdown.MustRender(summary.KeyThemes)
	}

	render(c, http.StatusOK, "summary.html", summary.Book.Title, vm)
}

// Regenerate queues the summary for another generation pass
func (sc *aiSummaryController) Regenerate(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		redirectToError(c, http.StatusNotFound, unknownErrorMessage)
		return
	}
	user := currentUser(c)

	if err := sc.summaries.Regenerate(c.Request.Context(), user.ID, id); err != nil {
		if app.IsNotFound(err) {
			redirectToError(c, http.StatusNotFound, unknownErrorMessage)
			return
		}
		sc.logger.Error("Failed to queue ai summary of book", id, ":", err)
		redirectToError(c, http.StatusInternalServerError, "")
		return
	}
	redirect(c, "/AISummary/Summary/"+strconv.FormatUint(uint64(id), 10))
}
