package web

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/MGTheTrain/book-organiser/internal/domain/accounts"
	"github.com/MGTheTrain/book-organiser/internal/domain/books"
	"github.com/MGTheTrain/book-organiser/internal/domain/summaries"
	"github.com/MGTheTrain/book-organiser/internal/infrastructure/session"
	"github.com/MGTheTrain/book-organiser/internal/pkg/logger"
	"github.com/gin-gonic/gin"
)

// Login attempts allowed per client before throttling, refilled one per loginRefill
const (
	loginBurst  = 5
	loginRefill = 12 * time.Second
)

// Services bundles the application services used by the controllers
type Services struct {
	Accounts   accounts.AccountService
	Categories accounts.CategoryService
	Library    books.LibraryService
	Summaries  summaries.SummaryService
}

// SetupRoutes loads the templates and registers all HTML routes.
func SetupRoutes(r *gin.Engine, services Services, sessions *session.Manager, searches *session.SearchStore, log logger.Logger) error {
	tmpl, err := LoadTemplates()
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	site := r.Group("/")
	site.Use(RequestID(), Sessions(sessions, services.Accounts, log), CSRF())

	loginLimiter := NewLoginRateLimiter(loginRefill, loginBurst)

	accountController := NewAccountController(services.Accounts, sessions, searches, log)
	bookController := NewBookController(services.Library, services.Summaries, searches, log)
	homeController := NewHomeController(services.Library, services.Categories, log)
	summaryController := NewAISummaryController(services.Summaries, log)

	// Pages open to visitors
	site.GET("/Account/Login", accountController.Login)
	site.POST("/Account/Login", loginLimiter.Middleware(), accountController.LoginPost)
	site.GET("/Account/Register", accountController.Register)
	site.POST("/Account/Register", accountController.RegisterPost)
	site.GET("/Account/VerifyEmail", accountController.VerifyEmail)
	site.POST("/Account/VerifyEmail", accountController.VerifyEmailPost)
	site.GET("/Account/ForgotPassword", accountController.ForgotPassword)
	site.POST("/Account/ForgotPassword", accountController.ForgotPasswordPost)
	site.GET("/Account/Logout", accountController.Logout)
	site.POST("/Account/Logout", accountController.Logout)
	site.GET("/Home/Privacy", homeController.Privacy)
	site.GET("/Home/Error", homeController.Error)

	// Details and Summary report a missing id before asking for a login
	site.GET("/Book/Details", bookController.Details)
	site.GET("/Book/Details/:id", bookController.Details)
	site.GET("/AISummary/Summary", summaryController.Summary)
	site.GET("/AISummary/Summary/:id", summaryController.Summary)

	user := site.Group("/", RequireUser())

	user.GET("/", homeController.Index)
	user.GET("/Home", homeController.Index)
	user.GET("/Home/Index", homeController.Index)
	user.GET("/Home/EditCategories", homeController.EditCategories)
	user.POST("/Home/AddCategory", homeController.AddCategory)
	user.POST("/Home/DeleteCategory", homeController.DeleteCategory)
	user.GET("/Home/Feed", homeController.Feed)

	user.GET("/Account/ChangePassword", accountController.ChangePassword)
	user.POST("/Account/ChangePassword", accountController.ChangePasswordPost)
	user.GET("/Account/ConfirmPasswordChange", accountController.ConfirmPasswordChange)
	user.GET("/Account/AIFeatures", accountController.AIFeatures)
	user.POST("/Account/AIFeatures", accountController.AIFeaturesPost)
	user.GET("/Account/ConfirmAIChoice", accountController.ConfirmAIChoice)

	user.GET("/Book/FindBooksTitle", bookController.FindBooks(books.SearchByTitle))
	user.POST("/Book/FindBooksTitle", bookController.FindBooksPost(books.SearchByTitle))
	user.GET("/Book/FindBooksAuthor", bookController.FindBooks(books.SearchByAuthor))
	user.POST("/Book/FindBooksAuthor", bookController.FindBooksPost(books.SearchByAuthor))
	user.GET("/Book/FindBooksISBN", bookController.FindBooks(books.SearchByISBN))
	user.POST("/Book/FindBooksISBN", bookController.FindBooksPost(books.SearchByISBN))
	user.GET("/Book/SearchResults", bookController.SearchResults)
	user.POST("/Book/AddBookFromSearchResults", bookController.AddBookFromSearchResults)
	user.POST("/Book/AddBookISBN", bookController.AddBookISBN)
	user.POST("/Book/DeleteBook", bookController.DeleteBook)
	user.POST("/Book/AddBookToCategory", bookController.AddBookToCategory)
	user.POST("/Book/RemoveBookFromCategory", bookController.RemoveBookFromCategory)

	user.POST("/AISummary/Regenerate/:id", summaryController.Regenerate)

	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"message": "resource not found"})
			return
		}
		redirectToError(c, http.StatusNotFound, "")
	})

	return nil
}
