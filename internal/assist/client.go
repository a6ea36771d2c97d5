package assist

import (
	"context"
)

// Client defines the interface for language model providers.
type Client interface {
	// Generate sends a prompt to the model and returns the raw response
	// text. Implementations make exactly one attempt; callers decide what a
	// failure means, never the transport.
	Generate(ctx context.Context, prompt string, systemPrompt string) (string, error)
}

// Config holds provider configuration.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float64
	MaxTokens   int
}
