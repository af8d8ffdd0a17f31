package config

import "os"

// AIConfig holds configuration for the OpenAI-compatible chat completion
// API used for question generation and insights. OpenRouter takes priority
// over Groq when both keys are set.
type AIConfig struct {
	APIKey     string `json:"-"` // Never serialize
	BaseURL    string `json:"baseUrl"`
	Model      string `json:"model"`
	OpenRouter bool   `json:"openRouter"`
	TimeoutMS  int    `json:"timeoutMs"`
}

// DefaultAIConfig returns the default AI configuration
func DefaultAIConfig() *AIConfig {
	openRouterKey := os.Getenv("OPENROUTER_API_KEY")
	cfg := &AIConfig{
		APIKey:     openRouterKey,
		BaseURL:    "https://openrouter.ai/api/v1",
		OpenRouter: true,
		Model:      getEnvOrDefault("AI_MODEL", "llama-3.3-70b-versatile"),
		TimeoutMS:  30000, // 30 second default, completions are slow
	}
	if openRouterKey == "" {
		cfg.APIKey = os.Getenv("GROQ_API_KEY")
		cfg.BaseURL = "https://api.groq.com/openai/v1"
		cfg.OpenRouter = false
	}
	return cfg
}

// IsEnabled returns true if an AI API key is configured
func (c *AIConfig) IsEnabled() bool {
	return c.APIKey != ""
}

// ChatEndpoint returns the full chat completions endpoint
func (c *AIConfig) ChatEndpoint() string {
	return c.BaseURL + "/chat/completions"
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
