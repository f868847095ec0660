package web

import (
	"errors"
	"fmt"
	"html/template"

	"github.com/MGTheTrain/book-organiser/internal/domain/books"
	"github.com/MGTheTrain/book-organiser/internal/domain/summaries"
	"github.com/MGTheTrain/book-organiser/internal/pkg/validators"
	"github.com/go-playground/validator/v10"
)

// DefaultErrorMessage is shown when no message is passed to the error page
const DefaultErrorMessage = "An Unknown Error has occurred."

// unknownErrorMessage is the message used when a book or summary cannot be found
const unknownErrorMessage = "An unknown error has occurred"

var formValidator = validators.New()

// LoginViewModel holds the login form
type LoginViewModel struct {
	Email      string `form:"Email" validate:"required,email"`
	Password   string `form:"Password" validate:"required"`
	RememberMe bool   `form:"RememberMe"`
	Errors     []string
}

// RegisterViewModel holds the registration form
type RegisterViewModel struct {
	Name            string `form:"Name" validate:"required,max=100"`
	Email           string `form:"Email" validate:"required,email"`
	Password        string `form:"Password" validate:"required,min=8,max=40,password_strength"`
	ConfirmPassword string `form:"ConfirmPassword" validate:"required,eqfield=Password"`
	Errors          []string
}

// VerifyEmailViewModel holds the first step of the password reset
type VerifyEmailViewModel struct {
	Email  string `form:"Email" validate:"required,email"`
	Errors []string
}

// ForgotPasswordViewModel holds the second step of the password reset
type ForgotPasswordViewModel struct {
	Email              string `form:"Email" validate:"required,email"`
	NewPassword        string `form:"NewPassword" validate:"required,min=8,max=40,password_strength"`
	ConfirmNewPassword string `form:"ConfirmNewPassword" validate:"required,eqfield=NewPassword"`
	Errors             []string
}

// ChangePasswordViewModel holds the change password form of a logged in user
type ChangePasswordViewModel struct {
	CurrentPassword    string `form:"CurrentPassword" validate:"required"`
	NewPassword        string `form:"NewPassword" validate:"required,min=8,max=40,password_strength"`
	ConfirmNewPassword string `form:"ConfirmNewPassword" validate:"required,eqfield=NewPassword"`
	Errors             []string
}

// AIFeaturesViewModel holds the AI opt-in choice
type AIFeaturesViewModel struct {
	AcceptAIFeatures bool `form:"AcceptAIFeatures"`
}

// SearchViewModel holds one of the catalog search forms
type SearchViewModel struct {
	Kind   books.SearchKind `form:"-"`
	Action string           `form:"-"`
	Query  string           `form:"Query" validate:"required,max=200"`
	Errors []string
}

// SearchResultsViewModel lists the last catalog search of the session
type SearchResultsViewModel struct {
	Query string
	Kind  books.SearchKind
	Books []*books.Book
}

// IndexViewModel lists the user's library
type IndexViewModel struct {
	Books            []*books.Book
	Categories       []string
	SelectedCategory string
}

// EditCategoriesViewModel lists the user's categories
type EditCategoriesViewModel struct {
	Categories []string
}

// DetailsViewModel shows one book with its summary state
type DetailsViewModel struct {
	Book       *books.Book
	Summary    *summaries.AISummary
	Categories []string
}

// SummaryViewModel shows the generated content of one book
type SummaryViewModel struct {
	Book               *books.Book
	Summary            *summaries.AISummary
	SummaryHTML        template.HTML
	KeyQuotesHTML      template.HTML
	KeyThemesHTML      template.HTML
	AcceptedAIFeatures bool
}

// ErrorViewModel is rendered by the error page
type ErrorViewModel struct {
	RequestID    string
	ErrorMessage string
	StatusCode   int
	ShowInfoText bool
}

// ShowRequestID reports whether the request ID should be displayed
func (m ErrorViewModel) ShowRequestID() bool {
	return m.RequestID != ""
}

// validateForm runs the struct validation and returns one message per failed field
func validateForm(form interface{}) []string {
	err := formValidator.Struct(form)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{fmt.Sprintf("validation error: %v", err)}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		messages = append(messages, fieldMessage(fieldErr))
	}
	return messages
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		switch fe.Field() {
		case "Email":
			return "An email is required."
		case "Name":
			return "A name is required."
		case "ConfirmPassword", "ConfirmNewPassword":
			return "Confirm your password."
		case "Query":
			return "A search term is required."
		default:
			return "A password is required."
		}
	case "email":
		return "The Email field is not a valid e-mail address."
	case "min", "max":
		if fe.Field() == "Name" || fe.Field() == "Query" {
			return fmt.Sprintf("The %s field must be at most %s characters long.", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("The password must be at least %d and at most %d characters long.",
			validators.MinPasswordLength, validators.MaxPasswordLength)
	case validators.PasswordStrengthTag:
		return "Passwords must have at least one uppercase letter, one lowercase letter and one digit."
	case "eqfield":
		return "Passwords don't match."
	default:
		return fmt.Sprintf("The %s field is invalid.", fe.Field())
	}
}
