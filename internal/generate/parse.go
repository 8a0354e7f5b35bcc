package generate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pavelanni/mockexam/internal/model"
)

// ParseError reports a model reply whose payload was not valid JSON. It
// carries the raw text for diagnostics.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse model response: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// parseResponse strips an optional fenced code block wrapper from the
// raw model reply, parses the remainder as JSON, and stamps the result
// with the task's section tag and upper-cased kind.
func parseResponse(raw, sectionTag string, kind model.QuestionKind) (model.GeneratedQuestion, error) {
	cleaned := stripFences(raw)

	var q model.GeneratedQuestion
	if err := json.Unmarshal([]byte(cleaned), &q); err != nil {
		return model.GeneratedQuestion{}, &ParseError{Raw: raw, Err: err}
	}

	q.Section = sectionTag
	q.Type = strings.ToUpper(string(kind))
	return q, nil
}

// stripFences removes one surrounding markdown code fence, preferring a
// ```json fence over a bare one. Some local models wrap their JSON
// output despite instructions not to.
func stripFences(raw string) string {
	if _, after, ok := strings.Cut(raw, "```json"); ok {
		inner, _, _ := strings.Cut(after, "```")
		return strings.TrimSpace(inner)
	}
	if _, after, ok := strings.Cut(raw, "```"); ok {
		inner, _, _ := strings.Cut(after, "```")
		return strings.TrimSpace(inner)
	}
	return strings.TrimSpace(raw)
}
