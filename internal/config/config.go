package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"
)

const (
	ClientTypeOpenAI = "openai"
	ClientTypeOllama = "ollama"
)

// SecretsDir is where mounted secrets are looked up when the environment has none.
var SecretsDir = "/run/secrets"

// Config holds the settings of the dungeon-master CLI.
type Config struct {
	// AI backend
	AIClientType  string        `envconfig:"AI_CLIENT_TYPE" default:"openai"`
	AIBaseURL     string        `envconfig:"AI_BASE_URL" default:"https://api.openai.com/v1"`
	AIModel       string        `envconfig:"AI_MODEL" default:"gpt-4.1"`
	AITemperature float32       `envconfig:"AI_TEMPERATURE" default:"0.7"`
	AITimeout     time.Duration `envconfig:"AI_TIMEOUT" default:"0s"` // 0 waits forever
	// Secret, no envconfig tag: OPENAI_API_KEY or the openai_api_key secret file.
	AIAPIKey string `ignored:"true"`

	// Game
	SaveDir       string `envconfig:"SAVE_DIR" default:"."`
	QuestionLimit int    `envconfig:"QUESTION_LIMIT" default:"20"`

	// Logging
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogEncoding string `envconfig:"LOG_ENCODING" default:"json"`
	LogOutput   string `envconfig:"LOG_OUTPUT" default:"dungeon-master.log"`

	// Optional infrastructure
	MetricsAddr string `envconfig:"METRICS_ADDR"` // empty disables the /metrics listener
	ArchiveDSN  string `envconfig:"ARCHIVE_DSN"`  // empty disables the results archive
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg.AIClientType = strings.ToLower(strings.TrimSpace(cfg.AIClientType))
	cfg.AIAPIKey = readSecret("OPENAI_API_KEY", "openai_api_key")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings that have no safe default.
func (c *Config) Validate() error {
	var errs []error
	switch c.AIClientType {
	case ClientTypeOpenAI:
		if c.AIAPIKey == "" {
			errs = append(errs, errors.New("OPENAI_API_KEY is required for the openai client"))
		}
	case ClientTypeOllama:
	default:
		errs = append(errs, fmt.Errorf("unknown AI_CLIENT_TYPE %q", c.AIClientType))
	}
	if c.AIModel == "" {
		errs = append(errs, errors.New("AI_MODEL must not be empty"))
	}
	if c.QuestionLimit <= 0 {
		errs = append(errs, fmt.Errorf("QUESTION_LIMIT must be positive, got %d", c.QuestionLimit))
	}
	if c.AITimeout < 0 {
		errs = append(errs, fmt.Errorf("AI_TIMEOUT must not be negative, got %s", c.AITimeout))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// LogFields describes the configuration for the startup log, with secrets masked.
func (c *Config) LogFields() []zap.Field {
	key := "[not set]"
	if c.AIAPIKey != "" {
		key = "[loaded]"
	}
	return []zap.Field{
		zap.String("ai_client_type", c.AIClientType),
		zap.String("ai_base_url", c.AIBaseURL),
		zap.String("ai_model", c.AIModel),
		zap.Float32("ai_temperature", c.AITemperature),
		zap.Duration("ai_timeout", c.AITimeout),
		zap.String("ai_api_key", key),
		zap.String("save_dir", c.SaveDir),
		zap.Int("question_limit", c.QuestionLimit),
		zap.String("metrics_addr", c.MetricsAddr),
		zap.String("archive_dsn", maskDSN(c.ArchiveDSN)),
	}
}

// readSecret prefers the environment variable and falls back to the mounted secret file.
func readSecret(envKey, secretName string) string {
	if v := strings.TrimSpace(os.Getenv(envKey)); v != "" {
		return v
	}
	b, err := os.ReadFile(filepath.Join(SecretsDir, secretName))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}

// maskDSN hides the password of a postgres URL.
func maskDSN(dsn string) string {
	if dsn == "" {
		return ""
	}
	at := strings.LastIndex(dsn, "@")
	scheme := strings.Index(dsn, "://")
	if at < 0 || scheme < 0 || scheme+3 > at {
		return dsn
	}
	userInfo := dsn[scheme+3 : at]
	if colon := strings.Index(userInfo, ":"); colon >= 0 {
		userInfo = userInfo[:colon] + ":********"
	}
	return dsn[:scheme+3] + userInfo + dsn[at:]
}
