// Package persistence provides database repository implementations.
// It uses GORM as the ORM layer over SQLite or PostgreSQL and stores user
// accounts, their saved books and the AI summary of every book.
package persistence
