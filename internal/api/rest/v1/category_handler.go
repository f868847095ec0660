package v1

import (
	"fmt"
	"net/http"

	"github.com/MGTheTrain/book-organiser/internal/domain/accounts"
	"github.com/gin-gonic/gin"
)

// CategoryHandler defines the interface for handling category-related operations
type CategoryHandler interface {
	List(ctx *gin.Context)
}

type categoryHandler struct {
	categoryService accounts.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService accounts.CategoryService) CategoryHandler {
	return &categoryHandler{categoryService: categoryService}
}

// List handles the GET request to list the user's custom categories
// @Summary List custom categories
// @Tags Category
// @Produce json
// @Success 200 {object} CategoriesResponse
// @Router /categories [get]
func (handler *categoryHandler) List(ctx *gin.Context) {
	categories, err := handler.categoryService.List(ctx.Request.Context(), currentUser(ctx).ID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Message: fmt.Sprintf("list query failed: %v", err)})
		return
	}

	ctx.JSON(http.StatusOK, CategoriesResponse{Categories: nonNil(categories)})
}
