package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"math"

	openai "github.com/sashabaranov/go-openai"
)

// openAIClient talks to any OpenAI-compatible chat completion endpoint
// (OpenAI, Mistral, OpenRouter or a custom base URL).
type openAIClient struct {
	provider string
	client   *openai.Client
	model    string
}

// NewOpenAIClient creates a chat client for an OpenAI-compatible provider.
func NewOpenAIClient(provider, apiKey, model, baseURL string) (AIClient, error) {
	if apiKey == "" {
		return nil, ErrNoCredentials
	}
	if provider == "" {
		provider = ProviderMistral
	}
	defaults := providerDefaults[provider]
	if model == "" {
		model = defaults.model
	}
	if model == "" {
		return nil, fmt.Errorf("%s provider requires a model", provider)
	}

	config := openai.DefaultConfig(apiKey)
	if baseURL == "" {
		baseURL = defaults.baseURL
	}
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &openAIClient{
		provider: provider,
		client:   openai.NewClientWithConfig(config),
		model:    model,
	}, nil
}

func (c *openAIClient) Name() string {
	return c.provider + "/" + c.model
}

// Complete sends one chat completion request and returns the first choice.
func (c *openAIClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	model := req.Model
	if model == "" {
		model = c.model
	}

	temperature := req.Temperature
	if temperature == 0 {
		// go-openai omits a zero temperature from the payload.
		temperature = math.SmallestNonzeroFloat32
	}

	chatReq := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: req.UserPrompt},
		},
		Temperature: temperature,
		MaxTokens:   req.MaxTokens,
	}
	if req.JSONMode {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := c.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("%s returned status %d: %w", c.provider, apiErr.HTTPStatusCode, err)
		}
		return "", fmt.Errorf("%s request failed: %w", c.provider, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s returned no choices", c.provider)
	}
	return resp.Choices[0].Message.Content, nil
}
