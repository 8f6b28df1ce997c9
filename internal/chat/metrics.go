package chat

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	chatExchangesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dungeon_master_chat_exchanges_total",
			Help: "Total number of chat exchanges by outcome.",
		},
		[]string{"model", "status"},
	)
	chatExchangeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dungeon_master_chat_exchange_duration_seconds",
			Help:    "Histogram of chat exchange durations.",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 10), // 0.25s .. 128s
		},
		[]string{"model"},
	)
	chatPromptTokens = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dungeon_master_chat_prompt_tokens_estimated",
			Help:    "Estimated tokens of prompt plus history sent per exchange.",
			Buckets: prometheus.ExponentialBuckets(256, 2, 10), // 256 .. 131072
		},
		[]string{"model"},
	)
	chatUsageTokens = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dungeon_master_chat_usage_tokens_total",
			Help: "Tokens reported by the backend, by kind (prompt or completion).",
		},
		[]string{"model", "kind"},
	)
)

func observeUsage(model string, promptTokens, completionTokens int) {
	if promptTokens > 0 {
		chatUsageTokens.WithLabelValues(model, "prompt").Add(float64(promptTokens))
	}
	if completionTokens > 0 {
		chatUsageTokens.WithLabelValues(model, "completion").Add(float64(completionTokens))
	}
}
