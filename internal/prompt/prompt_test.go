package prompt

import (
	"strings"
	"testing"

	"github.com/pavelanni/mockexam/internal/model"
)

func TestBuildMCQ(t *testing.T) {
	got := Build("CAT", "VARC", model.KindMCQ, []string{"first example", "second example"})

	for _, want := range []string{
		"expert question setter for the CAT exam",
		"'VARC' section",
		"MCQ (Multiple Choice Question)",
		"first example",
		"second example",
		"single, valid JSON object",
		`"option4"`,
		"For MCQ",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("prompt missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "TITA") {
		t.Errorf("MCQ prompt should not mention TITA:\n%s", got)
	}
}

func TestBuildTITA(t *testing.T) {
	got := Build("GATE", "TECH", model.KindTITA, []string{"only example"})

	for _, want := range []string{
		"GATE exam",
		"'TECH' section",
		"TITA (Type In The Answer)",
		"only example",
		"For TITA",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("prompt missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "option1") {
		t.Errorf("TITA prompt should not carry an options schema:\n%s", got)
	}
}

func TestBuildExemplarSeparator(t *testing.T) {
	got := Build("CAT", "QA", model.KindMCQ, []string{"ex-one", "ex-two", "ex-three"})
	if n := strings.Count(got, "\n---\n"); n < 4 {
		t.Errorf("expected exemplars fenced by --- separators, found %d in:\n%s", n, got)
	}
	if strings.Index(got, "ex-one") > strings.Index(got, "ex-two") ||
		strings.Index(got, "ex-two") > strings.Index(got, "ex-three") {
		t.Error("exemplars out of order")
	}
}
