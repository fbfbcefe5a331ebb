package llm

import (
	"context"
	"fmt"
)

// Provider is the interface for all LLM providers.
type Provider interface {
	GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error)
}

// NewProvider resolves a configured provider name.
func NewProvider(name, model string) (Provider, error) {
	switch name {
	case "", "gemini":
		return &GeminiProvider{Model: model}, nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", name)
	}
}
