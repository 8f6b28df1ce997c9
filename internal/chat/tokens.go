package chat

import (
	"sync"
	"unicode/utf8"

	"dungeon-master/internal/logger"

	"github.com/pkoukk/tiktoken-go"
	"go.uber.org/zap"
)

const fallbackEncoding = "cl100k_base"

// TokenCounter estimates the token length of a text.
type TokenCounter interface {
	Count(text string) int
}

// RuneCounter approximates four characters per token.
type RuneCounter struct{}

func (RuneCounter) Count(text string) int {
	return (utf8.RuneCountInString(text) + 3) / 4
}

// TiktokenCounter counts with the tokenizer of the configured model.
// The encoding is resolved on first use; if none can be loaded it falls back to RuneCounter.
type TiktokenCounter struct {
	model  string
	logger *zap.Logger

	once sync.Once
	enc  *tiktoken.Tiktoken
}

// NewTiktokenCounter returns a counter for model.
func NewTiktokenCounter(model string, log *zap.Logger) *TiktokenCounter {
	return &TiktokenCounter{model: model, logger: logger.Named(log, "TokenCounter")}
}

func (c *TiktokenCounter) Count(text string) int {
	c.once.Do(c.load)
	if c.enc == nil {
		return RuneCounter{}.Count(text)
	}
	return len(c.enc.Encode(text, nil, nil))
}

func (c *TiktokenCounter) load() {
	enc, err := tiktoken.EncodingForModel(c.model)
	if err == nil {
		c.enc = enc
		return
	}
	c.logger.Debug("No tokenizer for model, using fallback encoding",
		zap.String("model", c.model), zap.String("encoding", fallbackEncoding), zap.Error(err))

	enc, err = tiktoken.GetEncoding(fallbackEncoding)
	if err != nil {
		c.logger.Warn("Tokenizer unavailable, estimating by characters", zap.Error(err))
		return
	}
	c.enc = enc
}
