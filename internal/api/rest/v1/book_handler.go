package v1

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/MGTheTrain/book-organiser/internal/app"
	"github.com/MGTheTrain/book-organiser/internal/domain/books"
	"github.com/MGTheTrain/book-organiser/internal/domain/summaries"
	"github.com/gin-gonic/gin"
)

// BookHandler defines the interface for handling book-related operations
type BookHandler interface {
	List(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	DeleteByID(ctx *gin.Context)
	GetSummary(ctx *gin.Context)
}

// bookHandler struct holds the services
type bookHandler struct {
	libraryService books.LibraryService
	summaryService summaries.SummaryService
}

// NewBookHandler creates a new BookHandler
func NewBookHandler(libraryService books.LibraryService, summaryService summaries.SummaryService) BookHandler {
	return &bookHandler{
		libraryService: libraryService,
		summaryService: summaryService,
	}
}

// List handles the GET request to list the user's books
// @Summary List saved books
// @Description Fetch the books of the authenticated user, newest first, optionally filtered by custom category.
// @Tags Book
// @Produce json
// @Param category query string false "Custom category"
// @Success 200 {array} BookResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /books [get]
func (handler *bookHandler) List(ctx *gin.Context) {
	user := currentUser(ctx)

	found, err := handler.libraryService.List(ctx.Request.Context(), user.ID, ctx.Query("category"))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Message: fmt.Sprintf("list query failed: %v", err)})
		return
	}

	var listResponse = []BookResponse{}
	for _, book := range found {
		listResponse = append(listResponse, newBookResponse(book))
	}

	ctx.JSON(http.StatusOK, listResponse)
}

// GetByID handles the GET request to retrieve a book by ID
// @Summary Retrieve a saved book by ID
// @Tags Book
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} BookResponse
// @Failure 404 {object} ErrorResponse
// @Router /books/{id} [get]
func (handler *bookHandler) GetByID(ctx *gin.Context) {
	bookID, ok := parseID(ctx)
	if !ok {
		return
	}

	book, err := handler.libraryService.Get(ctx.Request.Context(), currentUser(ctx).ID, bookID)
	if err != nil {
		respondLookupError(ctx, "book", bookID, err)
		return
	}

	ctx.JSON(http.StatusOK, newBookResponse(book))
}

// DeleteByID handles the DELETE request to remove a book and its summary
// @Summary Delete a saved book by ID
// @Tags Book
// @Param id path int true "Book ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /books/{id} [delete]
func (handler *bookHandler) DeleteByID(ctx *gin.Context) {
	bookID, ok := parseID(ctx)
	if !ok {
		return
	}

	if err := handler.libraryService.Delete(ctx.Request.Context(), currentUser(ctx).ID, bookID); err != nil {
		respondLookupError(ctx, "book", bookID, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// GetSummary handles the GET request to retrieve the AI summary of a book
// @Summary Retrieve the AI summary of a saved book
// @Description Generated content is only included when the user accepted AI features.
// @Tags Book
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} SummaryResponse
// @Failure 404 {object} ErrorResponse
// @Router /books/{id}/summary [get]
func (handler *bookHandler) GetSummary(ctx *gin.Context) {
	bookID, ok := parseID(ctx)
	if !ok {
		return
	}

	user := currentUser(ctx)
	summary, err := handler.summaryService.GetForUser(ctx.Request.Context(), user.ID, bookID)
	if err != nil {
		respondLookupError(ctx, "summary of book", bookID, err)
		return
	}

	ctx.JSON(http.StatusOK, newSummaryResponse(summary, user.AcceptedAIFeatures))
}

func parseID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil || id == 0 {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("invalid id %q", ctx.Param("id"))})
		return 0, false
	}
	return uint(id), true
}

func respondLookupError(ctx *gin.Context, what string, id uint, err error) {
	if app.IsNotFound(err) {
		ctx.JSON(http.StatusNotFound, ErrorResponse{Message: fmt.Sprintf("%s with id %d not found", what, id)})
		return
	}
	ctx.JSON(http.StatusInternalServerError, ErrorResponse{Message: fmt.Sprintf("%s with id %d: %v", what, id, err)})
}
