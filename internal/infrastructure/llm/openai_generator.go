package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MGTheTrain/book-organiser/internal/domain/books"
	"github.com/MGTheTrain/book-organiser/internal/domain/summaries"
	"github.com/MGTheTrain/book-organiser/internal/pkg/config"
	"github.com/MGTheTrain/book-organiser/internal/pkg/logger"
	"github.com/sashabaranov/go-openai"
)

// OpenAIGenerator talks to any OpenAI-compatible chat completion API,
// including Ollama's /v1 endpoint
type OpenAIGenerator struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	logger  logger.Logger
}

// NewOpenAIGenerator creates a generator for the API at settings.BaseURL
func NewOpenAIGenerator(settings *config.AISettings, logger logger.Logger) (*OpenAIGenerator, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	cfg := openai.DefaultConfig(settings.APIKey)
	cfg.BaseURL = strings.TrimRight(settings.BaseURL, "/")

	return &OpenAIGenerator{
		client:  openai.NewClientWithConfig(cfg),
		model:   settings.Model,
		timeout: settings.Timeout,
		logger:  logger,
	}, nil
}

// Model names the requested model
func (g *OpenAIGenerator) Model() string {
	return g.model
}

// Generate sends a single user message and returns the first choice
func (g *OpenAIGenerator) Generate(ctx context.Context, field summaries.Field, book *books.Book) (string, error) {
	prompt, err := BuildPrompt(field, book)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		g.logger.Warn("Chat completion failed for book", book.ID, ":", err)
		return "", fmt.Errorf("%w: %w", ErrGeneration, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", ErrGeneration)
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("%w: empty response", ErrGeneration)
	}
	return content, nil
}
