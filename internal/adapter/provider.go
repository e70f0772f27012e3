// Package adapter provides implementations for external AI provider integrations.
// It uses the Adapter pattern to abstract provider-specific APIs behind a common interface.
package adapter

import (
	"context"
	"fmt"
	"strings"

	"github.com/hpn/studyhub/internal/domain"
)

// Generator defines the interface for text-generation backends.
// One Generator is bound to one credential.
type Generator interface {
	// Generate issues a single generation call for prompt against model.
	// Failures carry HTTP-style semantics (429, 404, 400) in the returned error.
	Generate(ctx context.Context, model, prompt string) (string, error)

	// Name returns the provider's identifier string.
	Name() string
}

// Factory constructs a fresh Generator bound to the given credential.
type Factory func(ctx context.Context, cred domain.Credential) (Generator, error)

// Backend selects which Generator implementation a Factory builds.
type Backend string

const (
	// BackendSDK uses the official google.golang.org/genai client.
	BackendSDK Backend = "sdk"

	// BackendREST talks to the generateContent REST endpoint directly.
	BackendREST Backend = "rest"
)

// NewFactory returns a Factory for the given backend.
// baseURL overrides the default endpoint when non-empty.
func NewFactory(backend Backend, baseURL string) (Factory, error) {
	switch Backend(strings.ToLower(string(backend))) {
	case BackendSDK, "":
		return func(ctx context.Context, cred domain.Credential) (Generator, error) {
			return NewGenAIAdapter(ctx, cred.Secret, baseURL)
		}, nil
	case BackendREST:
		return func(_ context.Context, cred domain.Credential) (Generator, error) {
			var opts []GeminiAdapterOption
			if baseURL != "" {
				opts = append(opts, WithBaseURL(baseURL))
			}
			return NewGeminiAdapter(cred.Secret, opts...), nil
		}, nil
	default:
		return nil, fmt.Errorf("unknown generator backend %q", backend)
	}
}

// APIError is a non-2xx answer from the generation backend.
// It implements domain.StatusCoder so the dispatcher can classify it.
type APIError struct {
	Code    int
	Status  string
	Message string
}

func (e *APIError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("gemini API error [%d] %s: %s", e.Code, e.Status, e.Message)
	}
	return fmt.Sprintf("gemini API error [%d]: %s", e.Code, e.Message)
}

// StatusCode returns the HTTP status of the failed call.
func (e *APIError) StatusCode() int {
	return e.Code
}
