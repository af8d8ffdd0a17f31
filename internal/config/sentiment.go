package config

import (
	"os"
	"strconv"
)

// DefaultSentimentURL points at the multilingual star-rating sentiment model
const DefaultSentimentURL = "https://router.huggingface.co/hf-inference/models/nlptown/bert-base-multilingual-uncased-sentiment"

// SentimentConfig holds configuration for the external sentiment
// classification service. The API key is optional; without it the service is
// called anonymously and may be rate limited.
type SentimentConfig struct {
	APIKey    string `json:"-"` // Never serialize
	URL       string `json:"url"`
	TimeoutMS int    `json:"timeoutMs"`
}

// DefaultSentimentConfig returns the default sentiment configuration
func DefaultSentimentConfig() *SentimentConfig {
	timeoutMS := 10000 // 10 second default timeout
	if v := os.Getenv("SENTIMENT_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			timeoutMS = n
		}
	}
	return &SentimentConfig{
		APIKey:    os.Getenv("HUGGINGFACE_API_KEY"),
		URL:       getEnvOrDefault("SENTIMENT_API_URL", DefaultSentimentURL),
		TimeoutMS: timeoutMS,
	}
}
