package web

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/MGTheTrain/book-organiser/internal/app"
	"github.com/MGTheTrain/book-organiser/internal/domain/books"
	"github.com/MGTheTrain/book-organiser/internal/domain/summaries"
	"github.com/MGTheTrain/book-organiser/internal/infrastructure/session"
	"github.com/MGTheTrain/book-organiser/internal/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// BookController defines the library and catalog search pages
type BookController interface {
	Details(c *gin.Context)
	FindBooks(kind books.SearchKind) gin.HandlerFunc
	FindBooksPost(kind books.SearchKind) gin.HandlerFunc
	SearchResults(c *gin.Context)
	AddBookFromSearchResults(c *gin.Context)
	AddBookISBN(c *gin.Context)
	DeleteBook(c *gin.Context)
	AddBookToCategory(c *gin.Context)
	RemoveBookFromCategory(c *gin.Context)
}

type bookController struct {
	library   books.LibraryService
	summaries summaries.SummaryService
	searches  *session.SearchStore
	logger    logger.Logger
}

// NewBookController creates a new BookController
func NewBookController(
	library books.LibraryService,
	summaryService summaries.SummaryService,
	searches *session.SearchStore,
	logger logger.Logger,
) BookController {
	return &bookController{
		library:   library,
		summaries: summaryService,
		searches:  searches,
		logger:    logger,
	}
}

// searchPages maps each search kind to its form action and page title
var searchPages = map[books.SearchKind]struct {
	path  string
	title string
}{
	books.SearchByTitle:  {"/Book/FindBooksTitle", "Find books by title"},
	books.SearchByAuthor: {"/Book/FindBooksAuthor", "Find books by author"},
	books.SearchByISBN:   {"/Book/FindBooksISBN", "Find a book by ISBN"},
}

func (bc *bookController) Details(c *gin.Context) {
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

	ctx := c.Request.Context()
	book, err := bc.library.Get(ctx, user.ID, id)
	if err != nil {
		bc.failLookup(c, err)
		return
	}

	summary, err := bc.summaries.GetForUser(ctx, user.ID, id)
	if err != nil && !app.IsNotFound(err) {
		bc.logger.Error("Failed to load ai summary of book", id, ":", err)
	}

	render(c, http.StatusOK, "book_details.html", book.Title, &DetailsViewModel{
		Book:       book,
		Summary:    summary,
		Categories: user.UserCategories,
	})
}

func (bc *bookController) FindBooks(kind books.SearchKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := searchPages[kind]
		render(c, http.StatusOK, "find_books.html", p.title, &SearchViewModel{Kind: kind, Action: p.path})
	}
}

func (bc *bookController) FindBooksPost(kind books.SearchKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := searchPages[kind]

		form := SearchViewModel{Kind: kind, Action: p.path}
		_ = c.ShouldBindWith(&form, binding.Form)
		form.Query = strings.TrimSpace(form.Query)

		if form.Errors = validateForm(&form); len(form.Errors) > 0 {
			render(c, http.StatusOK, "find_books.html", p.title, &form)
			return
		}

		found, err := bc.library.Search(c.Request.Context(), kind, form.Query)
		if err != nil {
			if !errors.Is(err, books.ErrNoResults) {
				bc.logger.Warn("Catalog search failed:", err)
			}
			setFlash(c, fmt.Sprintf("No search results found for '%s'", form.Query))
			redirect(c, p.path)
			return
		}

		bc.searches.Put(currentSession(c).ID, session.SearchResult{
			Query: form.Query,
			Kind:  kind,
			Books: found,
		})
		redirect(c, "/Book/SearchResults")
	}
}

func (bc *bookController) SearchResults(c *gin.Context) {
	vm := &SearchResultsViewModel{Books: []*books.Book{}}
	if result, ok := bc.searches.Get(currentSession(c).ID); ok {
		vm.Query = result.Query
		vm.Kind = result.Kind
		vm.Books = result.Books
	}
	render(c, http.StatusOK, "search_results.html", "Search results", vm)
}

func (bc *bookController) AddBookFromSearchResults(c *gin.Context) {
	user := currentUser(c)
	upstreamID := strings.TrimSpace(c.PostForm("upstreamId"))
	if upstreamID == "" {
		redirectToError(c, http.StatusNotFound, unknownErrorMessage)
		return
	}

	if _, err := bc.library.AddFromUpstream(c.Request.Context(), user.ID, upstreamID); err != nil {
		bc.logger.Warn("Failed to add volume", upstreamID, ":", err)
		setFlash(c, "The book could not be added to your library.")
		redirect(c, "/Book/SearchResults")
		return
	}
	redirect(c, "/Home/Index")
}

func (bc *bookController) AddBookISBN(c *gin.Context) {
	user := currentUser(c)
	isbn := strings.TrimSpace(c.PostForm("isbn"))

	if _, err := bc.library.AddByISBN(c.Request.Context(), user.ID, isbn); err != nil {
		if !errors.Is(err, books.ErrNoResults) && !errors.Is(err, books.ErrEmptyQuery) {
			bc.logger.Warn("Failed to add isbn", isbn, ":", err)
		}
		setFlash(c, fmt.Sprintf("No search results found for '%s'", isbn))
		redirect(c, "/Book/FindBooksISBN")
		return
	}
	redirect(c, "/Home/Index")
}

func (bc *bookController) DeleteBook(c *gin.Context) {
	user := currentUser(c)
	id, ok := idParam(c)
	if !ok {
		redirectToError(c, http.StatusNotFound, unknownErrorMessage)
		return
	}

	if err := bc.library.Delete(c.Request.Context(), user.ID, id); err != nil {
		bc.failLookup(c, err)
		return
	}
	redirect(c, "/Home/Index")
}

func (bc *bookController) AddBookToCategory(c *gin.Context) {
	user := currentUser(c)
	category := c.PostForm("category")
	id, ok := idParam(c)
	if !ok {
		redirectToError(c, http.StatusNotFound, unknownErrorMessage)
		return
	}

	if err := bc.library.AddToCategory(c.Request.Context(), user.ID, id, category); err != nil {
		if app.IsNotFound(err) {
			bc.failLookup(c, err)
			return
		}
		bc.logger.Warn("Failed to add book", id, "to category:", err)
		redirectToError(c, http.StatusBadRequest,
			fmt.Sprintf("Unknown error occured while adding book to category: '%s'", category))
		return
	}
	redirect(c, "/Home/Index")
}

func (bc *bookController) RemoveBookFromCategory(c *gin.Context) {
	user := currentUser(c)
	category := c.PostForm("category")
	id, ok := idParam(c)
	if !ok {
		redirectToError(c, http.StatusNotFound, unknownErrorMessage)
		return
	}

	if err := bc.library.RemoveFromCategory(c.Request.Context(), user.ID, id, category); err != nil {
		if app.IsNotFound(err) {
			bc.failLookup(c, err)
			return
		}
		bc.logger.Error("Failed to remove book", id, "from category:", err)
		redirectToError(c, http.StatusInternalServerError,
			fmt.Sprintf("Unknown error occured while removing book from category: '%s'", category))
		return
	}
	redirect(c, "/Home/Index")
}

// failLookup maps a failed book lookup to the error page
func (bc *bookController) failLookup(c *gin.Context, err error) {
	if app.IsNotFound(err) {
		redirectToError(c, http.StatusNotFound, unknownErrorMessage)
		return
	}
	bc.logger.Error("Book lookup failed:", err)
	redirectToError(c, http.StatusInternalServerError, "")
}
