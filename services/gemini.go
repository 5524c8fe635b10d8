package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/genai"
)

const DefaultGeminiModel = "gemini-2.5-flash"

// GeminiClient is the alternate provider path. It bounds each call itself
// since the genai client has no per-request timeout option.
type GeminiClient struct {
	genaiClient *genai.Client
	timeout     time.Duration
}

func NewGeminiClient(ctx context.Context, apiKey string, timeout time.Duration) (*GeminiClient, error) {
	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &GeminiClient{genaiClient: genaiClient, timeout: timeout}, nil
}

func (g *GeminiClient) Provider() string {
	return ProviderGemini
}

func (g *GeminiClient) Complete(ctx context.Context, prompt, model string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	result, err := g.genaiClient.Models.GenerateContent(ctx, model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0),
		TopP:        genai.Ptr[float32](1),
	})
	if err != nil {
		return "", classifyGeminiError(err)
	}

	text := result.Text()
	if text == "" {
		return "", &UpstreamError{Kind: ErrNonJSONResponse, Provider: ProviderGemini, Message: "response has no text candidates"}
	}
	return text, nil
}

func classifyGeminiError(err error) error {
	var apiErr genai.APIError
	var apiErrPtr *genai.APIError
	switch {
	case errors.As(err, &apiErr):
	case errors.As(err, &apiErrPtr):
		apiErr = *apiErrPtr
	default:
		slog.Error("Gemini request failed", "error", err)
		return &UpstreamError{Kind: ErrUpstreamTransport, Provider: ProviderGemini, Message: err.Error()}
	}

	slog.Error("Gemini API error", "status", apiErr.Code, "message", apiErr.Message)
	return &UpstreamError{
		Kind:       kindForStatus(apiErr.Code),
		Provider:   ProviderGemini,
		StatusCode: apiErr.Code,
		Message:    upstreamMessage(apiErr.Message),
	}
}
