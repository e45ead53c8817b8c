package models

import (
	"context"
	"fmt"
)

// NewProvider returns a concrete ChatModel by provider name. An empty model
// string selects the provider's default.
func NewProvider(ctx context.Context, provider string, model string) (ChatModel, error) {
	switch provider {
	case "gemini", "google":
		if model == "" {
			return NewGeminiModel(ctx)
		}
		return NewGeminiModel(ctx, model)
	case "openai":
		return NewOpenAIModel(model), nil
	case "anthropic", "claude":
		return NewAnthropicModel(model), nil
	case "ollama":
		return NewOllamaModel(model)
	default:
		return nil, fmt.Errorf("unknown provider: %s", provider)
	}
}
