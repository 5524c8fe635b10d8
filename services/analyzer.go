package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Analyzer runs the prompt, model call and result validation for scoring and
// matching. Each call is bounded by timeout and cancelled with the caller's
// context.
type Analyzer struct {
	client  LLMClient
	model   string
	timeout time.Duration
	cache   *ReplyCache
}

func NewAnalyzer(client LLMClient, model string, timeout time.Duration) *Analyzer {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Analyzer{client: client, model: model, timeout: timeout}
}

// WithCache serves repeated prompts from cache. Only replies that parsed and
// validated are stored.
func (a *Analyzer) WithCache(cache *ReplyCache) *Analyzer {
	a.cache = cache
	return a
}

// AnalyzeResume scores resume text. The raw model reply is returned
// alongside the result for archiving.
func (a *Analyzer) AnalyzeResume(ctx context.Context, text string) (*AnalysisResult, string, error) {
	prompt := BuildScoringPrompt(text)
	raw, err := a.complete(ctx, "score", prompt)
	if err != nil {
		return nil, "", err
	}

	result, err := ParseAnalysisResult(raw)
	if err != nil {
		slog.Error("Failed to parse scoring reply", "error", err, "reply_length", len(raw))
		return nil, raw, err
	}
	if err := result.Validate(); err != nil {
		slog.Error("Scoring reply failed validation", "error", err)
		return nil, raw, err
	}
	a.remember(prompt, raw)
	return result, raw, nil
}

// MatchResume scores how well a resume fits a job description.
func (a *Analyzer) MatchResume(ctx context.Context, resumeText, jdText string) (*MatchResult, string, error) {
	prompt := BuildMatchPrompt(resumeText, jdText)
	raw, err := a.complete(ctx, "match", prompt)
	if err != nil {
		return nil, "", err
	}

	result, err := ParseMatchResult(raw)
	if err != nil {
		slog.Error("Failed to parse match reply", "error", err, "reply_length", len(raw))
		return nil, raw, err
	}
	a.remember(prompt, raw)
	return result, raw, nil
}

func (a *Analyzer) complete(ctx context.Context, task, prompt string) (string, error) {
	if a.cache != nil {
		if raw, ok := a.cache.Get(a.client.Provider(), a.model, prompt); ok {
			return raw, nil
		}
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	start := time.Now()
	raw, err := a.client.Complete(ctx, prompt, a.model)
	elapsed := time.Since(start)
	if err != nil {
		slog.Error("Model call failed", "task", task, "provider", a.client.Provider(), "model", a.model, "elapsed", elapsed, "error", err)
		return "", fmt.Errorf("%s request failed: %w", task, err)
	}

	slog.Info("Model call completed", "task", task, "provider", a.client.Provider(), "model", a.model,
		"prompt_length", len(prompt), "reply_length", len(raw), "elapsed", elapsed)
	return raw, nil
}

func (a *Analyzer) remember(prompt, raw string) {
	if a.cache == nil {
		return
	}
	if err := a.cache.Set(a.client.Provider(), a.model, prompt, raw); err != nil {
		slog.Warn("Failed to cache model reply", "error", err)
	}
}
