package validators

import (
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// PasswordStrengthTag is the tag name PasswordStrength is registered under
const PasswordStrengthTag = "password_strength"

// Password length bounds shared by the account forms and the account service
const (
	MinPasswordLength = 8
	MaxPasswordLength = 40
)

// PasswordStrength requires at least one upper case letter, one lower case
// letter and one digit. Length is checked separately with min/max tags.
func PasswordStrength(fl validator.FieldLevel) bool {
	return IsStrongPassword(fl.Field().String())
}

// IsStrongPassword reports whether password satisfies the account password policy
func IsStrongPassword(password string) bool {
	length := utf8.RuneCountInString(password)
	if length < MinPasswordLength || length > MaxPasswordLength {
		return false
	}

	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return upper && lower && digit
}

// New returns a validator with the application's custom tags registered
func New() *validator.Validate {
	validate := validator.New()
	// Registration only fails for an empty tag or nil func.
	_ = validate.RegisterValidation(PasswordStrengthTag, PasswordStrength)
	return validate
}
