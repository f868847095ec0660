package summaries

import "errors"

var (
	// ErrNotFound is returned when no summary exists for the book or the book belongs to another user
	ErrNotFound = errors.New("ai summary not found")
	// ErrConflict is returned when a summary changed while its text was being generated
	ErrConflict = errors.New("ai summary changed during generation")
)
