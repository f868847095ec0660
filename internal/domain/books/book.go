package books

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

// Book entity. A Book returned by the catalog has no ID or UserID until it is
// saved to a library.
type Book struct {
	ID                 uint
	UserID             string `validate:"omitempty,uuid4"`
	UpstreamID         string `validate:"max=64"`
	Title              string `validate:"max=1024"`
	Subtitle           string
	Authors            []string
	Publisher          string
	PublishedDate      string
	Description        string
	ISBN10             string `validate:"omitempty,max=10"`
	ISBN13             string `validate:"omitempty,max=13"`
	ISSN               string
	OtherIdentifier    string
	PageCount          int `validate:"gte=0"`
	UpstreamCategories []string
	Thumbnail          string `validate:"omitempty,url"`
	SmallThumbnail     string `validate:"omitempty,url"`
	SmallImage         string `validate:"omitempty,url"`
	MediumImage        string `validate:"omitempty,url"`
	LargeImage         string `validate:"omitempty,url"`
	ExtraLargeImage    string `validate:"omitempty,url"`
	UpstreamLink       string `validate:"omitempty,url"`
	CustomCategories   []string
	CreatedAt          time.Time
}

// Validate for validating Book struct
func (b *Book) Validate() error {
	validate := validator.New()

	err := validate.Struct(b)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var messages []string
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
			}
			return fmt.Errorf("validation failed: %v", messages)
		}
		return fmt.Errorf("validation error: %w", err)
	}

	return nil
}

// AuthorList joins the authors for display and prompts.
func (b *Book) AuthorList() string {
	return strings.Join(b.Authors, ", ")
}

// HasCustomCategory reports whether the book is filed under category.
func (b *Book) HasCustomCategory(category string) bool {
	return lo.Contains(b.CustomCategories, category)
}

// AddCustomCategory files the book under category unless it already is.
func (b *Book) AddCustomCategory(category string) bool {
	if category == "" || b.HasCustomCategory(category) {
		return false
	}
	b.CustomCategories = append(b.CustomCategories, category)
	return true
}

// RemoveCustomCategory drops category and reports whether it was present.
func (b *Book) RemoveCustomCategory(category string) bool {
	if !b.HasCustomCategory(category) {
		return false
	}
	b.CustomCategories = lo.Without(b.CustomCategories, category)
	return true
}

// CoverImage picks the best available thumbnail for list views.
func (b *Book) CoverImage() string {
	return lo.CoalesceOrEmpty(b.Thumbnail, b.SmallThumbnail, b.SmallImage, b.MediumImage)
}
