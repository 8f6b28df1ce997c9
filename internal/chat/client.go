package chat

import (
	"fmt"
	"time"

	"dungeon-master/internal/config"

	"go.uber.org/zap"
)

// Settings configure a Chat backend.
type Settings struct {
	ClientType  string
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float32
	Timeout     time.Duration // 0 means no timeout
	Preamble    string        // system prompt sent before the history
}

// SettingsFromConfig builds backend settings for the given system preamble.
func SettingsFromConfig(cfg *config.Config, preamble string) Settings {
	return Settings{
		ClientType:  cfg.AIClientType,
		BaseURL:     cfg.AIBaseURL,
		APIKey:      cfg.AIAPIKey,
		Model:       cfg.AIModel,
		Temperature: cfg.AITemperature,
		Timeout:     cfg.AITimeout,
		Preamble:    preamble,
	}
}

// NewClient creates the Chat backend selected by settings.ClientType.
func NewClient(settings Settings, logger *zap.Logger) (Chat, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch settings.ClientType {
	case config.ClientTypeOpenAI:
		logger.Info("Using OpenAI chat backend",
			zap.String("base_url", settings.BaseURL), zap.String("model", settings.Model))
		return newOpenAIClient(settings, logger), nil
	case config.ClientTypeOllama:
		logger.Info("Using Ollama chat backend",
			zap.String("base_url", settings.BaseURL), zap.String("model", settings.Model))
		return newOllamaClient(settings, logger)
	default:
		return nil, fmt.Errorf("unknown chat client type: '%s'", settings.ClientType)
	}
}
