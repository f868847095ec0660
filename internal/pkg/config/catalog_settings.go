package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// DefaultCatalogBaseURL is the public Google Books API root
const DefaultCatalogBaseURL = "https://www.googleapis.com/books/v1"

// CatalogSettings configures the Google Books client
type CatalogSettings struct {
	BaseURL           string        `mapstructure:"base_url" validate:"required,url"`
	APIKey            string        `mapstructure:"api_key"`
	MaxResults        int           `mapstructure:"max_results" validate:"gte=1,lte=40"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second" validate:"gt=0"`
	Timeout           time.Duration `mapstructure:"timeout" validate:"required"`
	RetryCount        int           `mapstructure:"retry_count" validate:"gte=0,lte=5"`
}

// Validate checks that all fields in CatalogSettings are valid
func (s *CatalogSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for CatalogSettings: %w", err)
	}

	return nil
}
