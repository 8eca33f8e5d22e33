package llm

import (
	"context"
	"fmt"

	"github.com/rxtech-lab/tokenomics-studio/internal/tokenomics"
	"github.com/sashabaranov/go-openai"
)

// OpenAIModel calls the OpenAI chat completions API
type OpenAIModel struct {
	client *openai.Client
	model  string
}

func NewOpenAIModel(cfg Config) *OpenAIModel {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = DefaultOpenAIModel
	}
	return &OpenAIModel{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

func (m *OpenAIModel) Complete(ctx context.Context, sessionID, instruction string) (string, error) {
	resp, err := m.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: m.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: tokenomics.SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: instruction},
		},
		MaxTokens:   defaultMaxTokens,
		Temperature: defaultTemperature,
		User:        sessionID,
	})
	if err != nil {
		return "", classify(ctx, err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%w: %v", tokenomics.ErrModelUnavailable, errEmptyCompletion)
	}
	return resp.Choices[0].Message.Content, nil
}
