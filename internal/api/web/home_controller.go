package web

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/MGTheTrain/book-organiser/internal/domain/accounts"
	"github.com/MGTheTrain/book-organiser/internal/domain/books"
	"github.com/MGTheTrain/book-organiser/internal/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/feeds"
	"github.com/samber/lo"
)

// feedSize is the number of recently added books listed in the RSS feed
const feedSize = 20

// HomeController defines the library overview, categories and error pages
type HomeController interface {
	Index(c *gin.Context)
	EditCategories(c *gin.Context)
	AddCategory(c *gin.Context)
	DeleteCategory(c *gin.Context)
	Privacy(c *gin.Context)
	Error(c *gin.Context)
	Feed(c *gin.Context)
}

type homeController struct {
	library    books.LibraryService
	categories accounts.CategoryService
	logger     logger.Logger
}

// NewHomeController creates a new HomeController
func NewHomeController(library books.LibraryService, categories accounts.CategoryService, logger logger.Logger) HomeController {
	return &homeController{
		library:    library,
		categories: categories,
		logger:     logger,
	}
}

func (hc *homeController) Index(c *gin.Context) {
	user := currentUser(c)
	category := accounts.NormalizeCategory(c.Query("category"))

	found, err := hc.library.List(c.Request.Context(), user.ID, category)
	if err != nil {
		hc.logger.Error("Failed to list books of user", user.ID, ":", err)
		redirectToError(c, http.StatusInternalServerError, "")
		return
	}

	render(c, http.StatusOK, "index.html", "My library", &IndexViewModel{
		Books:            found,
		Categories:       user.UserCategories,
		SelectedCategory: category,
	})
}

func (hc *homeController) EditCategories(c *gin.Context) {
	render(c, http.StatusOK, "edit_categories.html", "Categories", &EditCategoriesViewModel{
		Categories: currentUser(c).UserCategories,
	})
}

func (hc *homeController) AddCategory(c *gin.Context) {
	user := currentUser(c)
	if err := hc.categories.Add(c.Request.Context(), user.ID, c.PostForm("category")); err != nil {
		hc.logger.Error("Failed to add category:", err)
		redirectToError(c, http.StatusInternalServerError, "")
		return
	}
	redirect(c, "/Home/EditCategories")
}

func (hc *homeController) DeleteCategory(c *gin.Context) {
	user := currentUser(c)
	if err := hc.categories.Delete(c.Request.Context(), user.ID, c.PostForm("category")); err != nil {
		hc.logger.Error("Failed to delete category:", err)
		redirectToError(c, http.StatusInternalServerError, "")
		return
	}
	redirect(c, "/Home/EditCategories")
}

func (hc *homeController) Privacy(c *gin.Context) {
	render(c, http.StatusOK, "privacy.html", "Privacy Policy", nil)
}

// Error renders the error page. The response status mirrors the statusCode query parameter.
func (hc *homeController) Error(c *gin.Context) {
	vm := &ErrorViewModel{
		RequestID:    requestID(c),
		ErrorMessage: lo.CoalesceOrEmpty(c.Query("message"), DefaultErrorMessage),
		StatusCode:   http.StatusInternalServerError,
	}
	if code, err := strconv.Atoi(c.Query("statusCode")); err == nil && code >= 400 && code <= 599 {
		vm.StatusCode = code
	}
	vm.ShowInfoText, _ = strconv.ParseBool(c.Query("showInfoText"))

	c.Header("Cache-Control", "no-store, no-cache, must-revalidate")
	c.Header("Pragma", "no-cache")
	render(c, vm.StatusCode, "error.html", "Error", vm)
}

// Feed serves an RSS feed of the books most recently added to the user's library
func (hc *homeController) Feed(c *gin.Context) {
	user := currentUser(c)

	found, err := hc.library.List(c.Request.Context(), user.ID, "")
	if err != nil {
		hc.logger.Error("Failed to list books for feed:", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	base := baseURL(c)
	feed := &feeds.Feed{
		Title:       fmt.Sprintf("%s's library", user.FullName),
		Link:        &feeds.Link{Href: base + "/Home/Index"},
		Description: "Books recently added to the library",
		Author:      &feeds.Author{Name: user.FullName},
		Created:     time.Now().UTC(),
	}
	for _, b := range lo.Slice(found, 0, feedSize) {
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          fmt.Sprintf("%s/Book/Details/%d", base, b.ID),
			Title:       b.Title,
			Link:        &feeds.Link{Href: fmt.Sprintf("%s/Book/Details/%d", base, b.ID)},
			Author:      &feeds.Author{Name: b.AuthorList()},
			Description: b.Description,
			Created:     b.CreatedAt,
		})
	}

	rss, err := feed.ToRss()
	if err != nil {
		hc.logger.Error("Failed to render feed:", err)
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "application/rss+xml; charset=utf-8", []byte(rss))
}

func baseURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host
}
