package chat

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"dungeon-master/internal/logger"
	"dungeon-master/internal/models"

	"github.com/ollama/ollama/api"
	"go.uber.org/zap"
)

// ollamaClient implements Chat with the native Ollama chat API.
type ollamaClient struct {
	client      *api.Client
	model       string
	preamble    string
	temperature float32
	logger      *zap.Logger
}

func newOllamaClient(settings Settings, log *zap.Logger) (*ollamaClient, error) {
	baseURL := strings.TrimSuffix(settings.BaseURL, "/")
	baseURL = strings.TrimSuffix(baseURL, "/v1")

	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Ollama base URL '%s': %w", baseURL, err)
	}

	return &ollamaClient{
		client:      api.NewClient(parsedURL, &http.Client{Timeout: settings.Timeout}),
		model:       settings.Model,
		preamble:    settings.Preamble,
		temperature: settings.Temperature,
		logger:      logger.Named(log, "OllamaClient"),
	}, nil
}

func (c *ollamaClient) Exchange(ctx context.Context, prompt string, history []models.Turn) (string, error) {
	messages := make([]api.Message, 0, len(history)+2)
	if c.preamble != "" {
		messages = append(messages, api.Message{Role: "system", Content: c.preamble})
	}
	for _, t := range history {
		messages = append(messages, api.Message{Role: string(t.Role), Content: t.Content})
	}
	messages = append(messages, api.Message{Role: "user", Content: prompt})

	stream := false
	req := &api.ChatRequest{
		Model:    c.model,
		Messages: messages,
		Stream:   &stream,
		Options: map[string]any{
			"temperature": c.temperature,
		},
	}

	c.logger.Debug("Sending Ollama chat request",
		zap.String("model", c.model), zap.Int("messages", len(messages)))

	var content strings.Builder
	var final api.ChatResponse
	err := c.client.Chat(ctx, req, func(r api.ChatResponse) error {
		content.WriteString(r.Message.Content)
		if r.Done {
			final = r
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama chat: %w", err)
	}
	if content.Len() == 0 {
		return "", errEmptyResponse
	}

	observeUsage(c.model, final.PromptEvalCount, final.EvalCount)
	c.logger.Debug("Ollama chat usage",
		zap.Int("prompt_tokens", final.PromptEvalCount),
		zap.Int("completion_tokens", final.EvalCount),
		zap.String("done_reason", final.DoneReason))
	return content.String(), nil
}
