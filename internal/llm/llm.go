package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rxtech-lab/tokenomics-studio/internal/tokenomics"
)

const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"

	DefaultAnthropicModel = "claude-3-7-sonnet-20250219"
	DefaultOpenAIModel    = "gpt-4o"

	defaultMaxTokens   = 4096
	defaultTemperature = 0.7
)

var (
	ErrMissingAPIKey   = errors.New("llm api key is not configured")
	ErrUnknownProvider = errors.New("unknown llm provider")
	errEmptyCompletion = errors.New("model returned no text")
)

type Config struct {
	Provider string
	APIKey   string
	Model    string
	// BaseURL overrides the provider endpoint
	BaseURL string
	Timeout time.Duration
}

// NewModel creates the model client for the configured provider
func NewModel(cfg Config) (tokenomics.Model, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	switch strings.ToLower(cfg.Provider) {
	case "", ProviderAnthropic:
		return NewAnthropicModel(cfg), nil
	case ProviderOpenAI:
		return NewOpenAIModel(cfg), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, cfg.Provider)
	}
}

// classify maps a transport error onto the model failure kinds
func classify(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", tokenomics.ErrModelTimeout, err)
	}
	return fmt.Errorf("%w: %v", tokenomics.ErrModelUnavailable, err)
}
