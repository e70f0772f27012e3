package adapter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GenAIAdapter implements Generator on top of the official Gen AI SDK.
type GenAIAdapter struct {
	client *genai.Client
}

// NewGenAIAdapter creates a Gemini API client bound to apiKey.
// baseURL overrides the SDK's default endpoint when non-empty.
func NewGenAIAdapter(ctx context.Context, apiKey, baseURL string) (*GenAIAdapter, error) {
	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: strings.TrimSuffix(baseURL, "/") + "/"}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &GenAIAdapter{client: client}, nil
}

// Name returns the provider identifier.
func (g *GenAIAdapter) Name() string {
	return "gemini-sdk"
}

// Generate sends prompt to model through the SDK.
func (g *GenAIAdapter) Generate(ctx context.Context, model, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return "", toAPIError(err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("gemini response has empty content")
	}
	return text, nil
}

// toAPIError normalises SDK errors to *APIError so the status code survives
// classification.
func toAPIError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &APIError{Code: apiErr.Code, Status: apiErr.Status, Message: apiErr.Message}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return &APIError{Code: apiErrPtr.Code, Status: apiErrPtr.Status, Message: apiErrPtr.Message}
	}
	return err
}
