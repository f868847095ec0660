package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// AI provider constants
const (
	AIProviderOllama = "ollama"
	AIProviderOpenAI = "openai"
)

// DefaultAIModel is the model requested from the local model server
const DefaultAIModel = "llama3.2"

// AISettings configures the language-model backend used for book summaries
type AISettings struct {
	Provider string        `mapstructure:"provider" validate:"required,oneof=ollama openai"`
	BaseURL  string        `mapstructure:"base_url" validate:"required,url"`
	Model    string        `mapstructure:"model" validate:"required"`
	APIKey   string        `mapstructure:"api_key"`
	Timeout  time.Duration `mapstructure:"timeout" validate:"required"`
}

// Validate checks that all fields in AISettings are valid
func (s *AISettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for AISettings: %w", err)
	}

	return nil
}

// PollerSettings configures the background summary poller
type PollerSettings struct {
	Enabled bool `mapstructure:"enabled"`
	// Schedule uses robfig/cron syntax, e.g. "@every 1m"
	Schedule string `mapstructure:"schedule" validate:"required_if=Enabled true"`
}

// Validate checks that all fields in PollerSettings are valid
func (s *PollerSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for PollerSettings: %w", err)
	}

	return nil
}
