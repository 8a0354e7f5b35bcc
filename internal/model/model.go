package model

// QuestionKind represents a question format.
type QuestionKind string

const (
	// KindMCQ is a multiple-choice question with four labeled options.
	KindMCQ QuestionKind = "mcq"
	// KindTITA is a type-in-the-answer question with a numeric or short text answer.
	KindTITA QuestionKind = "tita"
)

// QuestionRecord is a reference question from the seed corpus.
// Records are loaded once at startup and are read-only afterwards.
type QuestionRecord struct {
	QuestionText string `json:"question_text"`
	Option1      string `json:"option1,omitempty"`
	Option2      string `json:"option2,omitempty"`
	Option3      string `json:"option3,omitempty"`
	Option4      string `json:"option4,omitempty"`
	Exam         string `json:"exam"`
	Stream       string `json:"stream,omitempty"`
	Year         int    `json:"year,omitempty"`
	Answer       string `json:"answer,omitempty"`
}

// Kind reports the question format. The presence of answer options
// distinguishes multiple-choice from free-answer records.
func (q QuestionRecord) Kind() QuestionKind {
	if q.Option1 != "" {
		return KindMCQ
	}
	return KindTITA
}

// GeneratedQuestion is a single model-generated question tagged with its
// section and kind. Options are present only for multiple-choice questions.
type GeneratedQuestion struct {
	QuestionText string `json:"question_text"`
	Option1      string `json:"option1,omitempty"`
	Option2      string `json:"option2,omitempty"`
	Option3      string `json:"option3,omitempty"`
	Option4      string `json:"option4,omitempty"`
	Answer       string `json:"answer"`
	Explanation  string `json:"explanation"`
	Section      string `json:"section"`
	Type         string `json:"type"`
}

// TaskError records the failure of a single generation task. It carries
// enough context to identify the task and, for parse failures, the raw
// model reply for diagnostics.
type TaskError struct {
	Message string `json:"error"`
	Section string `json:"section,omitempty"`
	Kind    string `json:"kind,omitempty"`
	Raw     string `json:"raw_response,omitempty"`
}

// ExamDetails identifies a generated exam. Stream and Year are nil when
// the request did not specify them.
type ExamDetails struct {
	Name   string  `json:"name"`
	Stream *string `json:"stream"`
	Year   *int    `json:"year"`
}

// NewExamDetails builds ExamDetails from request parameters. An empty
// stream and a zero year are treated as absent.
func NewExamDetails(name, stream string, year int) ExamDetails {
	d := ExamDetails{Name: name}
	if stream != "" {
		d.Stream = &stream
	}
	if year != 0 {
		d.Year = &year
	}
	return d
}
