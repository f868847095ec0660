// Package accounts holds the user account entity, its category list and the
// contracts for account persistence and account services.
package accounts
