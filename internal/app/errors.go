package app

import (
	"errors"

	"github.com/MGTheTrain/book-organiser/internal/domain/accounts"
	"github.com/MGTheTrain/book-organiser/internal/domain/books"
	"github.com/MGTheTrain/book-organiser/internal/domain/summaries"
)

// IsNotFound reports whether err means the requested account, book or summary does not exist
func IsNotFound(err error) bool {
	return errors.Is(err, accounts.ErrNotFound) ||
		errors.Is(err, books.ErrNotFound) ||
		errors.Is(err, summaries.ErrNotFound)
}
