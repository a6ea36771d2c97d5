package assist

import (
	"fmt"
	"strings"

	"github.com/florinledger/florin/internal/common"
)

// NewClient creates a language model client based on the provided
// configuration.
func NewClient(cfg Config) (Client, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		return newOpenAIClient(cfg)
	case "anthropic":
		return newAnthropicClient(cfg)
	default:
		return nil, fmt.Errorf("%w: unsupported assistant provider: %s", common.ErrInvalidConfig, cfg.Provider)
	}
}
