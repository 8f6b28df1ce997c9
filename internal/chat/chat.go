package chat

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"dungeon-master/internal/logger"
	"dungeon-master/internal/models"

	"go.uber.org/zap"
)

var errEmptyResponse = errors.New("empty response")

// Chat is the external text-completion capability.
// Implementations must not modify history.
type Chat interface {
	Exchange(ctx context.Context, prompt string, history []models.Turn) (string, error)
}

// Progress receives fire-and-forget notices while an exchange is pending.
// Implementations must return promptly and never fail.
type Progress interface {
	Announce(message string)
	Clear()
}

type nopProgress struct{}

func (nopProgress) Announce(string) {}
func (nopProgress) Clear()          {}

// Failure is returned when an exchange could not produce a response.
type Failure struct {
	Cause error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %v", models.ErrChatFailed, f.Cause)
}

// Unwrap exposes both models.ErrChatFailed and the underlying cause.
func (f *Failure) Unwrap() []error {
	return []error{models.ErrChatFailed, f.Cause}
}

// Orchestrator runs single exchanges against a Chat capability.
// It never touches the caller's history and never retries.
type Orchestrator struct {
	chat     Chat
	progress Progress
	tokens   TokenCounter
	model    string
	logger   *zap.Logger
}

// NewOrchestrator wires a Chat capability. Nil progress and tokens get no-op defaults.
func NewOrchestrator(chat Chat, progress Progress, tokens TokenCounter, model string, log *zap.Logger) *Orchestrator {
	if progress == nil {
		progress = nopProgress{}
	}
	if tokens == nil {
		tokens = RuneCounter{}
	}
	return &Orchestrator{
		chat:     chat,
		progress: progress,
		tokens:   tokens,
		model:    model,
		logger:   logger.Named(log, "ChatOrchestrator"),
	}
}

// Exchange sends prompt with history and returns the response text.
// On any error, including a blank response, it returns a *Failure.
func (o *Orchestrator) Exchange(ctx context.Context, prompt string, history []models.Turn, progressMessage string) (string, error) {
	log := o.logger.With(zap.Int("history_turns", len(history)))

	promptTokens := o.tokens.Count(prompt)
	for _, t := range history {
		promptTokens += o.tokens.Count(t.Content)
	}
	chatPromptTokens.WithLabelValues(o.model).Observe(float64(promptTokens))

	o.progress.Announce(progressMessage)
	start := time.Now()
	response, err := o.chat.Exchange(ctx, prompt, slices.Clone(history))
	duration := time.Since(start)
	o.progress.Clear()

	chatExchangeDuration.WithLabelValues(o.model).Observe(duration.Seconds())

	if err == nil && strings.TrimSpace(response) == "" {
		err = errEmptyResponse
	}
	if err != nil {
		chatExchangesTotal.WithLabelValues(o.model, "error").Inc()
		log.Error("Chat exchange failed",
			zap.Duration("duration", duration),
			zap.Int("estimated_prompt_tokens", promptTokens),
			zap.Error(err),
		)
		return "", &Failure{Cause: err}
	}

	chatExchangesTotal.WithLabelValues(o.model, "success").Inc()
	log.Info("Chat exchange completed",
		zap.Duration("duration", duration),
		zap.Int("estimated_prompt_tokens", promptTokens),
		zap.Int("response_length", len(response)),
	)
	return response, nil
}
