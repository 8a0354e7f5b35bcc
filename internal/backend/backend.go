// Package backend abstracts the generative-model collaborators. A
// Backend turns a rendered prompt into raw model text; the concrete
// implementation is chosen once at configuration time and never mixed
// within a run.
package backend

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrUnavailable marks a backend that cannot serve requests, typically
// because its credential is missing. It is a structured condition
// rather than a construction failure so a misconfigured deployment
// still starts and degrades per question.
var ErrUnavailable = errors.New("generation backend unavailable")

// Backend turns a generation prompt into raw model text.
type Backend interface {
	Invoke(ctx context.Context, prompt string) (string, error)
}

// Config selects and parameterizes the generation backend.
type Config struct {
	// Provider is "ollama" or "gemini".
	Provider string

	OllamaURL   string
	OllamaModel string

	GeminiAPIKey string
	GeminiModel  string
}

// New constructs the configured backend. Construction is explicit and
// happens once at startup; the result is injected into the orchestrator.
func New(ctx context.Context, cfg Config) (Backend, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", "ollama":
		return NewOllama(cfg.OllamaURL, cfg.OllamaModel), nil
	case "gemini":
		return NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	default:
		return nil, fmt.Errorf("unknown generation backend provider %q", cfg.Provider)
	}
}
