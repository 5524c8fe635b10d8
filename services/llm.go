package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

const (
	ProviderOpenRouter = "openrouter"
	ProviderGemini     = "gemini"
)

// LLMClient sends one prompt to a chat-completion model and returns the raw
// assistant text. Implementations never retry.
type LLMClient interface {
	Complete(ctx context.Context, prompt, model string) (string, error)
	Provider() string
}

var (
	ErrUpstreamAuth        = errors.New("upstream authentication failed")
	ErrUpstreamTransport   = errors.New("upstream transport error")
	ErrUpstreamRateLimited = errors.New("upstream rate limited")
	ErrNonJSONResponse     = errors.New("upstream returned a non-JSON response")
)

// UpstreamError is how every LLMClient reports a failed call. It matches
// its Kind with errors.Is.
type UpstreamError struct {
	Kind       error
	Provider   string
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("API Error: %s", e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *UpstreamError) Unwrap() error {
	return e.Kind
}

// kindForStatus classifies a non-2xx response.
func kindForStatus(status int) error {
	switch {
	case status == 401 || status == 403:
		return ErrUpstreamAuth
	case status == 429:
		return ErrUpstreamRateLimited
	default:
		return ErrUpstreamTransport
	}
}

func upstreamMessage(msg string) string {
	if msg == "" {
		return "Unknown error"
	}
	return msg
}

// NewLLMClient builds the configured provider. The returned model is what
// callers should pass to Complete.
func NewLLMClient(ctx context.Context, cfg LLMConfig) (LLMClient, string, error) {
	var (
		client LLMClient
		model  string
		err    error
	)

	switch cfg.Provider {
	case ProviderOpenRouter, "":
		if cfg.OpenRouterAPIKey == "" {
			return nil, "", fmt.Errorf("OR_API_KEY is required for the %s provider", ProviderOpenRouter)
		}
		client = NewOpenRouterClient(OpenRouterOptions{
			APIKey:  cfg.OpenRouterAPIKey,
			BaseURL: cfg.OpenRouterBaseURL,
			Referer: cfg.Referer,
			Timeout: cfg.ScoringTimeout,
		})
		model = cfg.Model
	case ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, "", fmt.Errorf("GEMINI_API_KEY is required for the %s provider", ProviderGemini)
		}
		client, err = NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.AlternateTimeout)
		if err != nil {
			return nil, "", err
		}
		model = cfg.GeminiModel
	default:
		return nil, "", fmt.Errorf("unknown LLM provider %q", cfg.Provider)
	}

	slog.Info("LLM client initialized", "provider", client.Provider(), "model", model)
	return client, model, nil
}
