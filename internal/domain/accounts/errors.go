package accounts

import "errors"

var (
	// ErrNotFound is returned when no account matches the lookup
	ErrNotFound = errors.New("user account not found")
	// ErrEmailTaken is returned when registering an email that already has an account
	ErrEmailTaken = errors.New("email is already registered")
	// ErrInvalidCredentials is returned for a wrong email/password pair
	ErrInvalidCredentials = errors.New("email or password is incorrect")
	// ErrWeakPassword is returned when a password does not meet the password policy
	ErrWeakPassword = errors.New("password does not meet the password policy")
)
