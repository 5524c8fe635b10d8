package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
)

const (
	DefaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	DefaultOpenRouterModel   = "meta-llama/llama-3-70b-instruct"
)

type OpenRouterOptions struct {
	APIKey  string
	BaseURL string
	Referer string
	Timeout time.Duration
}

// OpenRouterClient talks to the OpenRouter chat-completion API through the
// OpenAI SDK, which speaks the same wire format.
type OpenRouterClient struct {
	client *openai.Client
}

func NewOpenRouterClient(opts OpenRouterOptions) *OpenRouterClient {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultOpenRouterBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
		option.WithBaseURL(opts.BaseURL),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(opts.Timeout),
	}
	if opts.Referer != "" {
		reqOpts = append(reqOpts, option.WithHeader("HTTP-Referer", opts.Referer))
	}

	client := openai.NewClient(reqOpts...)
	return &OpenRouterClient{client: &client}
}

func (c *OpenRouterClient) Provider() string {
	return ProviderOpenRouter
}

// Complete sends prompt as a single user message with deterministic sampling.
func (c *OpenRouterClient) Complete(ctx context.Context, prompt, model string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: shared.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(0),
		TopP:        openai.Float(1),
	})
	if err != nil {
		return "", c.classify(err)
	}

	if len(resp.Choices) == 0 {
		return "", &UpstreamError{Kind: ErrNonJSONResponse, Provider: ProviderOpenRouter, Message: "response has no choices"}
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *OpenRouterClient) classify(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		slog.Error("OpenRouter API error", "status", apiErr.StatusCode, "message", apiErr.Message)
		return &UpstreamError{
			Kind:       kindForStatus(apiErr.StatusCode),
			Provider:   ProviderOpenRouter,
			StatusCode: apiErr.StatusCode,
			Message:    upstreamMessage(apiErr.Message),
		}
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		slog.Error("OpenRouter returned an undecodable envelope", "error", err)
		return &UpstreamError{Kind: ErrNonJSONResponse, Provider: ProviderOpenRouter, Message: err.Error()}
	}

	slog.Error("OpenRouter request failed", "error", err)
	return &UpstreamError{Kind: ErrUpstreamTransport, Provider: ProviderOpenRouter, Message: err.Error()}
}
