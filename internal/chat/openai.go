package chat

import (
	"context"
	"fmt"
	"net/http"

	"dungeon-master/internal/logger"
	"dungeon-master/internal/models"

	openaigo "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// openAIClient implements Chat with an OpenAI-compatible chat completions API.
type openAIClient struct {
	client      *openaigo.Client
	model       string
	preamble    string
	temperature float32
	logger      *zap.Logger
}

func newOpenAIClient(settings Settings, log *zap.Logger) *openAIClient {
	openaiConfig := openaigo.DefaultConfig(settings.APIKey)
	if settings.BaseURL != "" {
		openaiConfig.BaseURL = settings.BaseURL
	}
	openaiConfig.HTTPClient = &http.Client{Timeout: settings.Timeout}

	return &openAIClient{
		client:      openaigo.NewClientWithConfig(openaiConfig),
		model:       settings.Model,
		preamble:    settings.Preamble,
		temperature: settings.Temperature,
		logger:      logger.Named(log, "OpenAIClient"),
	}
}

func (c *openAIClient) Exchange(ctx context.Context, prompt string, history []models.Turn) (string, error) {
	messages := make([]openaigo.ChatCompletionMessage, 0, len(history)+2)
	if c.preamble != "" {
		messages = append(messages, openaigo.ChatCompletionMessage{
			Role:    openaigo.ChatMessageRoleSystem,
			Content: c.preamble,
		})
	}
	for _, t := range history {
		messages = append(messages, openaigo.ChatCompletionMessage{
			Role:    openAIRole(t.Role),
			Content: t.Content,
		})
	}
	messages = append(messages, openaigo.ChatCompletionMessage{
		Role:    openaigo.ChatMessageRoleUser,
		Content: prompt,
	})

	c.logger.Debug("Sending chat completion request",
		zap.String("model", c.model), zap.Int("messages", len(messages)))

	resp, err := c.client.CreateChatCompletion(ctx, openaigo.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: c.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", errEmptyResponse
	}

	if resp.Usage.TotalTokens > 0 {
		observeUsage(c.model, resp.Usage.PromptTokens, resp.Usage.CompletionTokens)
		c.logger.Debug("Chat completion usage",
			zap.Int("prompt_tokens", resp.Usage.PromptTokens),
			zap.Int("completion_tokens", resp.Usage.CompletionTokens),
			zap.Int("total_tokens", resp.Usage.TotalTokens))
	}
	return resp.Choices[0].Message.Content, nil
}

func openAIRole(r models.Role) string {
	if r == models.RoleAssistant {
		return openaigo.ChatMessageRoleAssistant
	}
	return openaigo.ChatMessageRoleUser
}
