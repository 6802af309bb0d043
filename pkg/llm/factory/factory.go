package factory

import (
	"fmt"
	"strings"

	"saga-be/pkg/llm"
	"saga-be/pkg/llm/ollama"
	"saga-be/pkg/llm/openai"
)

type ProviderConfig struct {
	Type        string // "openai" (default) or "ollama"
	Name        string
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int
	RequireKey  bool
}

// IsConfigured reports whether an API key looks real. Unexpanded
// placeholders such as "${GROQ_API_KEY}" count as missing.
func IsConfigured(apiKey string) bool {
	key := strings.TrimSpace(apiKey)
	return key != "" && !strings.HasPrefix(key, "${")
}

func NewLLMProvider(cfg ProviderConfig) (llm.LLMProvider, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, llm.ErrNotConfigured
	}
	if cfg.RequireKey && !IsConfigured(cfg.APIKey) {
		return nil, llm.ErrNotConfigured
	}

	switch cfg.Type {
	case "", "openai":
		return openai.NewProvider(openai.Config{
			Name:        cfg.Name,
			APIKey:      cfg.APIKey,
			BaseURL:     cfg.BaseURL,
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
		}), nil
	case "ollama":
		return ollama.NewOllamaProvider(cfg.BaseURL, cfg.Model, cfg.Temperature, cfg.MaxTokens), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Type)
	}
}
