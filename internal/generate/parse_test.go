package generate

import (
	"errors"
	"testing"

	"github.com/pavelanni/mockexam/internal/model"
)

func TestParseResponse(t *testing.T) {
	const payload = `{"question_text": "What is 2+2?", "option1": "3", "option2": "4", "option3": "5", "option4": "6", "answer": "4", "explanation": "Basic arithmetic."}`

	tests := []struct {
		name string
		raw  string
	}{
		{name: "bare json", raw: payload},
		{name: "json fence", raw: "```json\n" + payload + "\n```"},
		{name: "plain fence", raw: "```\n" + payload + "\n```"},
		{name: "fence with prose", raw: "Here is the question:\n```json\n" + payload + "\n```\nHope that helps."},
		{name: "surrounding whitespace", raw: "\n\n  " + payload + "  \n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := parseResponse(tt.raw, "QA", model.KindMCQ)
			if err != nil {
				t.Fatalf("parseResponse: %v", err)
			}
			if q.QuestionText != "What is 2+2?" {
				t.Errorf("question_text = %q", q.QuestionText)
			}
			if q.Answer != "4" {
				t.Errorf("answer = %q", q.Answer)
			}
			if q.Section != "QA" {
				t.Errorf("section = %q, want QA", q.Section)
			}
			if q.Type != "MCQ" {
				t.Errorf("type = %q, want MCQ", q.Type)
			}
		})
	}
}

func TestParseResponseStampsTITA(t *testing.T) {
	q, err := parseResponse(`{"question_text": "How many?", "answer": "7", "explanation": "count"}`, "TECH", model.KindTITA)
	if err != nil {
		t.Fatalf("parseResponse: %v", err)
	}
	if q.Type != "TITA" {
		t.Errorf("type = %q, want TITA", q.Type)
	}
	if q.Section != "TECH" {
		t.Errorf("section = %q, want TECH", q.Section)
	}
}

func TestParseResponseInvalid(t *testing.T) {
	raw := "I cannot generate that question."
	_, err := parseResponse(raw, "VARC", model.KindMCQ)
	if err == nil {
		t.Fatal("expected error for non-JSON reply")
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if pe.Raw != raw {
		t.Errorf("ParseError.Raw = %q, want the full reply", pe.Raw)
	}
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "no fence", raw: `{"a":1}`, want: `{"a":1}`},
		{name: "json fence", raw: "```json\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "plain fence", raw: "```\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "unterminated fence", raw: "```json\n{\"a\":1}", want: `{"a":1}`},
		{name: "whitespace only", raw: "  {\"a\":1}\t", want: `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripFences(tt.raw); got != tt.want {
				t.Errorf("stripFences(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
