package llm

import (
	"fmt"

	"github.com/MGTheTrain/book-organiser/internal/domain/summaries"
	"github.com/MGTheTrain/book-organiser/internal/pkg/config"
	"github.com/MGTheTrain/book-organiser/internal/pkg/logger"
)

// NewGenerator returns the generator for the configured provider
func NewGenerator(settings *config.AISettings, logger logger.Logger) (summaries.Generator, error) {
	switch settings.Provider {
	case config.AIProviderOllama:
		return NewOllamaGenerator(settings, logger)
	case config.AIProviderOpenAI:
		return NewOpenAIGenerator(settings, logger)
	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", settings.Provider)
	}
}
