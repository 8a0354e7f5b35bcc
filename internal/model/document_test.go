package model

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestQuestionRecordKind(t *testing.T) {
	mcq := QuestionRecord{QuestionText: "Q", Option1: "a", Option2: "b"}
	if mcq.Kind() != KindMCQ {
		t.Errorf("expected mcq, got %q", mcq.Kind())
	}
	tita := QuestionRecord{QuestionText: "Q"}
	if tita.Kind() != KindTITA {
		t.Errorf("expected tita, got %q", tita.Kind())
	}
}

func TestNewExamDocument(t *testing.T) {
	doc := NewExamDocument(NewExamDetails("CAT", "", 0), []string{"VARC", "DILR", "QA"})

	if len(doc.Sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(doc.Sections))
	}
	for _, tag := range []string{"VARC", "DILR", "QA"} {
		qs, ok := doc.Sections[tag]
		if !ok {
			t.Errorf("missing section %q", tag)
		}
		if qs == nil || len(qs) != 0 {
			t.Errorf("section %q should start as an empty sequence", tag)
		}
	}
	if doc.Errors == nil || len(doc.Errors) != 0 {
		t.Error("errors should start as an empty sequence")
	}
}

func TestExamDocumentMarshalOrder(t *testing.T) {
	doc := NewExamDocument(NewExamDetails("CAT", "", 2024), []string{"VARC", "DILR", "QA"})
	doc.Sections["VARC"] = append(doc.Sections["VARC"], GeneratedQuestion{
		QuestionText: "What?", Answer: "42", Explanation: "because", Section: "VARC", Type: "MCQ",
	})

	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	s := string(data)

	order := []string{`"exam_details"`, `"VARC"`, `"DILR"`, `"QA"`, `"errors"`}
	last := -1
	for _, key := range order {
		idx := strings.Index(s, key)
		if idx < 0 {
			t.Fatalf("marshalled document missing key %s: %s", key, s)
		}
		if idx < last {
			t.Errorf("key %s out of order in %s", key, s)
		}
		last = idx
	}

	if !strings.Contains(s, `"stream":null`) {
		t.Errorf("absent stream should marshal as null, got %s", s)
	}
	if !strings.Contains(s, `"year":2024`) {
		t.Errorf("year should marshal as 2024, got %s", s)
	}
}

func TestExamDocumentRoundTrip(t *testing.T) {
	doc := NewExamDocument(NewExamDetails("GATE", "CS", 2023), []string{"GA", "TECH"})
	doc.Sections["GA"] = append(doc.Sections["GA"], GeneratedQuestion{
		QuestionText: "Pick one", Option1: "a", Option2: "b", Option3: "c", Option4: "d",
		Answer: "a", Explanation: "first", Section: "GA", Type: "MCQ",
	})
	doc.Errors = append(doc.Errors, TaskError{Message: "backend invocation failed", Section: "TECH", Kind: "TITA"})

	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var got ExamDocument
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if !reflect.DeepEqual(got.Details, doc.Details) {
		t.Errorf("details mismatch: got %+v, want %+v", got.Details, doc.Details)
	}
	if !reflect.DeepEqual(got.SectionOrder, doc.SectionOrder) {
		t.Errorf("section order mismatch: got %v, want %v", got.SectionOrder, doc.SectionOrder)
	}
	if !reflect.DeepEqual(got.Sections, doc.Sections) {
		t.Errorf("sections mismatch: got %+v, want %+v", got.Sections, doc.Sections)
	}
	if !reflect.DeepEqual(got.Errors, doc.Errors) {
		t.Errorf("errors mismatch: got %+v, want %+v", got.Errors, doc.Errors)
	}

	// A second marshal must reproduce the same bytes.
	again, err := json.Marshal(&got)
	if err != nil {
		t.Fatalf("second Marshal: %v", err)
	}
	if string(again) != string(data) {
		t.Errorf("round trip changed bytes:\nfirst:  %s\nsecond: %s", data, again)
	}
}

func TestExamDocumentUnmarshalRejectsNonObject(t *testing.T) {
	var doc ExamDocument
	if err := json.Unmarshal([]byte(`[1,2,3]`), &doc); err == nil {
		t.Error("expected error for non-object document")
	}
}
