package v1

import (
	"net/http"
	"time"

	"github.com/MGTheTrain/book-organiser/internal/domain/accounts"
	"github.com/MGTheTrain/book-organiser/internal/domain/books"
	"github.com/MGTheTrain/book-organiser/internal/domain/summaries"
	"github.com/MGTheTrain/book-organiser/internal/infrastructure/session"
	"github.com/MGTheTrain/book-organiser/internal/pkg/logger"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRoutes sets up all the API routes for version 1.
func SetupRoutes(r *gin.Engine,
	allowedOrigins []string,
	sessions *session.Manager,
	accountService accounts.AccountService,
	categoryService accounts.CategoryService,
	libraryService books.LibraryService,
	summaryService summaries.SummaryService,
	log logger.Logger) {

	v1 := r.Group(BasePath) // lookup in version file

	v1.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	// preflight requests are answered by the cors middleware before authentication
	v1.OPTIONS("/*path", func(ctx *gin.Context) { ctx.Status(http.StatusNoContent) })
	v1.Use(RequireSession(sessions, accountService, log))

	// Books Routes
	bookHandler := NewBookHandler(libraryService, summaryService)
	v1.GET("/books", bookHandler.List)
	v1.GET("/books/:id", bookHandler.GetByID)
	v1.DELETE("/books/:id", bookHandler.DeleteByID)
	v1.GET("/books/:id/summary", bookHandler.GetSummary)

	// Categories Routes
	categoryHandler := NewCategoryHandler(categoryService)
	v1.GET("/categories", categoryHandler.List)
}
