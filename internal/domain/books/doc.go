// Package books holds the saved book entity and the contracts for the book
// catalog, book persistence and the library service.
package books
