package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ExamDocument is the complete generated (or cached) exam artifact:
// metadata, one question sequence per section tag, and an errors bucket.
// Its wire shape puts each section array at the top level of the JSON
// object, keyed by the section tag, so marshalling is implemented by
// hand to keep the declared section order stable.
type ExamDocument struct {
	Details      ExamDetails
	SectionOrder []string
	Sections     map[string][]GeneratedQuestion
	Errors       []TaskError
}

// NewExamDocument creates an empty document with one empty sequence per
// section tag, in the given order.
func NewExamDocument(details ExamDetails, sectionTags []string) *ExamDocument {
	sections := make(map[string][]GeneratedQuestion, len(sectionTags))
	for _, tag := range sectionTags {
		sections[tag] = []GeneratedQuestion{}
	}
	return &ExamDocument{
		Details:      details,
		SectionOrder: append([]string(nil), sectionTags...),
		Sections:     sections,
		Errors:       []TaskError{},
	}
}

// QuestionCount returns the number of questions across all sections.
func (d *ExamDocument) QuestionCount() int {
	n := 0
	for _, qs := range d.Sections {
		n += len(qs)
	}
	return n
}

// MarshalJSON renders exam_details first, then each section array in
// declared order, then errors.
func (d *ExamDocument) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	buf.WriteString(`"exam_details":`)
	if err := encodeTo(&buf, d.Details); err != nil {
		return nil, err
	}

	for _, tag := range d.SectionOrder {
		qs, ok := d.Sections[tag]
		if !ok {
			continue
		}
		buf.WriteByte(',')
		if err := encodeTo(&buf, tag); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if qs == nil {
			qs = []GeneratedQuestion{}
		}
		if err := encodeTo(&buf, qs); err != nil {
			return nil, err
		}
	}

	buf.WriteString(`,"errors":`)
	errs := d.Errors
	if errs == nil {
		errs = []TaskError{}
	}
	if err := encodeTo(&buf, errs); err != nil {
		return nil, err
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads the wire shape back, treating every top-level key
// other than exam_details and errors as a section tag. Key order in the
// source document is preserved as the section order.
func (d *ExamDocument) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("exam document: expected JSON object, got %v", tok)
	}

	d.SectionOrder = nil
	d.Sections = make(map[string][]GeneratedQuestion)
	d.Errors = []TaskError{}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("exam document: unexpected token %v", keyTok)
		}

		switch key {
		case "exam_details":
			if err := dec.Decode(&d.Details); err != nil {
				return fmt.Errorf("exam document: decode exam_details: %w", err)
			}
		case "errors":
			if err := dec.Decode(&d.Errors); err != nil {
				return fmt.Errorf("exam document: decode errors: %w", err)
			}
		default:
			var qs []GeneratedQuestion
			if err := dec.Decode(&qs); err != nil {
				return fmt.Errorf("exam document: decode section %q: %w", key, err)
			}
			if qs == nil {
				qs = []GeneratedQuestion{}
			}
			d.SectionOrder = append(d.SectionOrder, key)
			d.Sections[key] = qs
		}
	}
	return nil
}

func encodeTo(buf *bytes.Buffer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(data)
	return nil
}
