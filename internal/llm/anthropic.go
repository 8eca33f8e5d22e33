package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/rxtech-lab/tokenomics-studio/internal/tokenomics"
)

const (
	anthropicBaseURL = "https://api.anthropic.com/v1"
	anthropicVersion = "2023-06-01"
)

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicMetadata struct {
	UserID string `json:"user_id,omitempty"`
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	System      string             `json:"system,omitempty"`
	Messages    []anthropicMessage `json:"messages"`
	Temperature float64            `json:"temperature"`
	Metadata    *anthropicMetadata `json:"metadata,omitempty"`
}

type anthropicContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type anthropicResponse struct {
	Content []anthropicContent `json:"content"`
}

type anthropicError struct {
	Type  string `json:"type"`
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// AnthropicModel calls the Anthropic Messages API
type AnthropicModel struct {
	client *resty.Client
	model  string
}

func NewAnthropicModel(cfg Config) *AnthropicModel {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = anthropicBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = DefaultAnthropicModel
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("x-api-key", cfg.APIKey).
		SetHeader("anthropic-version", anthropicVersion).
		SetHeader("Content-Type", "application/json")
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}

	return &AnthropicModel{client: client, model: model}
}

func (m *AnthropicModel) Complete(ctx context.Context, sessionID, instruction string) (string, error) {
	var result anthropicResponse
	var apiErr anthropicError
	resp, err := m.client.R().
		SetContext(ctx).
		SetBody(anthropicRequest{
			Model:       m.model,
			MaxTokens:   defaultMaxTokens,
			System:      tokenomics.SystemPrompt,
			Messages:    []anthropicMessage{{Role: "user", Content: instruction}},
			Temperature: defaultTemperature,
			Metadata:    &anthropicMetadata{UserID: sessionID},
		}).
		SetResult(&result).
		SetError(&apiErr).
		Post("/messages")
	if err != nil {
		return "", classify(ctx, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("%w: anthropic returned status %d: %s",
			tokenomics.ErrModelUnavailable, resp.StatusCode(), apiErr.Error.Message)
	}

	var text strings.Builder
	for _, content := range result.Content {
		if content.Type == "text" {
			text.WriteString(content.Text)
		}
	}
	if text.Len() == 0 {
		return "", fmt.Errorf("%w: %v", tokenomics.ErrModelUnavailable, errEmptyCompletion)
	}
	return text.String(), nil
}
