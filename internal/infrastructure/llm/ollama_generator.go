package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MGTheTrain/book-organiser/internal/domain/books"
	"github.com/MGTheTrain/book-organiser/internal/domain/summaries"
	"github.com/MGTheTrain/book-organiser/internal/pkg/config"
	"github.com/MGTheTrain/book-organiser/internal/pkg/logger"
	"github.com/go-resty/resty/v2"
)

// ErrGeneration is returned when the model server does not produce a response
var ErrGeneration = errors.New("an error occurred while generating the AI response")

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

type chatResponse struct {
	Model   string      `json:"model"`
	Message chatMessage `json:"message"`
	Done    bool        `json:"done"`
}

// OllamaGenerator calls Ollama's non-streaming /api/chat endpoint
type OllamaGenerator struct {
	client *resty.Client
	model  string
	logger logger.Logger
}

// NewOllamaGenerator creates a generator for the model server at settings.BaseURL
func NewOllamaGenerator(settings *config.AISettings, logger logger.Logger) (*OllamaGenerator, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(settings.BaseURL, "/")).
		SetTimeout(settings.Timeout).
		SetHeader("Content-Type", "application/json")

	return &OllamaGenerator{
		client: client,
		model:  settings.Model,
		logger: logger,
	}, nil
}

// Model names the model requested from Ollama
func (g *OllamaGenerator) Model() string {
	return g.model
}

// Generate sends a single-message chat and returns the reply content
func (g *OllamaGenerator) Generate(ctx context.Context, field summaries.Field, book *books.Book) (string, error) {
	prompt, err := BuildPrompt(field, book)
	if err != nil {
		return "", err
	}

	var out chatResponse
	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(chatRequest{
			Model:    g.model,
			Messages: []chatMessage{{Role: "user", Content: prompt}},
			Stream:   false,
		}).
		SetResult(&out).
		Post("/api/chat")
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrGeneration, err)
	}
	if resp.IsError() {
		g.logger.Warn("Ollama returned status", resp.StatusCode(), "for book", book.ID)
		return "", fmt.Errorf("%w: status %d", ErrGeneration, resp.StatusCode())
	}

	content := strings.TrimSpace(out.Message.Content)
	if content == "" {
		return "", fmt.Errorf("%w: empty response", ErrGeneration)
	}
	return content, nil
}
