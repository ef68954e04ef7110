package infrastructure

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// geminiClient generates completions with Google's Gemini API.
type geminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a Gemini chat client.
func NewGeminiClient(ctx context.Context, apiKey, model string) (AIClient, error) {
	if apiKey == "" {
		return nil, ErrNoCredentials
	}
	if model == "" {
		model = DefaultModel(ProviderGemini)
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &geminiClient{client: client, model: model}, nil
}

func (c *geminiClient) Name() string {
	return ProviderGemini + "/" + c.model
}

// Complete sends the user prompt with the system prompt as system instruction.
func (c *geminiClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	model := req.Model
	if model == "" {
		model = c.model
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(req.SystemPrompt, genai.RoleUser),
		Temperature:       genai.Ptr(req.Temperature),
	}
	if req.MaxTokens > 0 {
		config.MaxOutputTokens = int32(req.MaxTokens)
	}
	if req.JSONMode {
		config.ResponseMIMEType = "application/json"
	}

	resp, err := c.client.Models.GenerateContent(ctx, model, genai.Text(req.UserPrompt), config)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("gemini returned no text")
	}
	return text, nil
}
