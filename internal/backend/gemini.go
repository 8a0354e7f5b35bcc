package backend

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const (
	geminiTemperature     = 0.7
	geminiMaxOutputTokens = 4096
)

// Gemini invokes the Gemini API with fixed generation parameters and
// JSON response mode. When no API key is configured the backend is
// constructed in an unavailable state: Invoke returns ErrUnavailable
// instead of the constructor failing, so each affected question degrades
// to an error entry.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini backend bound to the given API key and
// model name. The client is built eagerly so credential problems other
// than a missing key surface at startup.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return &Gemini{model: model}, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

// Available reports whether the backend holds a usable client.
func (g *Gemini) Available() bool {
	return g.client != nil
}

// Invoke generates content for the prompt and returns the text gathered
// across all candidate parts.
func (g *Gemini) Invoke(ctx context.Context, prompt string) (string, error) {
	if g.client == nil {
		return "", fmt.Errorf("%w: gemini API key is not configured", ErrUnavailable)
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](geminiTemperature),
		MaxOutputTokens:  geminiMaxOutputTokens,
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	text := extractText(resp)
	if text == "" {
		return "{}", nil
	}
	return text, nil
}

// extractText collects the textual payload across candidate parts.
func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}

	var parts []string
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part != nil && part.Text != "" {
				parts = append(parts, part.Text)
			}
		}
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}
