// Package catalog is the static registry of supported exam types: their
// section layouts, per-kind question counts, valid stream codes, and the
// naming scheme of the similarity-index collections backing each section.
package catalog

import (
	"fmt"
	"strings"

	"github.com/pavelanni/mockexam/internal/model"
)

// KindCount pairs a question kind with the number of questions required.
type KindCount struct {
	Kind  model.QuestionKind
	Count int
}

// Section describes one named subdivision of an exam.
type Section struct {
	// Name is the internal section name, e.g. "varc" or "technical".
	Name string
	// Tag is the section label used in exam documents and corpus file
	// names, e.g. "VARC" or "TECH".
	Tag string
	// Counts lists the required question counts per kind, in the order
	// tasks are expanded.
	Counts []KindCount
	// SharedAcrossStreams marks sections whose seed questions are common
	// to all streams; seed selection never filters these by stream.
	SharedAcrossStreams bool
	// StreamScoped marks sections backed by one similarity collection
	// per stream rather than a single shared collection.
	StreamScoped bool
	// collectionKey is the section's slug inside collection names.
	collectionKey string
}

// Total returns the number of questions required for the section.
func (s Section) Total() int {
	n := 0
	for _, kc := range s.Counts {
		n += kc.Count
	}
	return n
}

// Collection returns the similarity-index collection name for this
// section of the given exam. Stream participates only for stream-scoped
// sections.
func (s Section) Collection(examName, stream string) string {
	exam := strings.ToLower(examName)
	if s.StreamScoped {
		return fmt.Sprintf("%s_%s_%s_all_years_combined", exam, strings.ToLower(stream), s.collectionKey)
	}
	return fmt.Sprintf("%s_%s_all_years_combined", exam, s.collectionKey)
}

// ExamType describes the full layout of one supported exam type.
type ExamType struct {
	// Name is the canonical upper-case exam name.
	Name string
	// Sections lists the sections in generation order.
	Sections []Section
	// Streams enumerates valid stream codes. Empty means the exam type
	// does not use streams.
	Streams []string
}

// RequiresStream reports whether requests for this exam type must carry
// a valid stream code.
func (e ExamType) RequiresStream() bool {
	return len(e.Streams) > 0
}

// ValidStream reports whether the given code is a recognized stream for
// this exam type. Comparison is case-insensitive.
func (e ExamType) ValidStream(code string) bool {
	for _, s := range e.Streams {
		if strings.EqualFold(s, code) {
			return true
		}
	}
	return false
}

// SectionTags returns the section tags in declared order.
func (e ExamType) SectionTags() []string {
	tags := make([]string, len(e.Sections))
	for i, s := range e.Sections {
		tags[i] = s.Tag
	}
	return tags
}

// TotalQuestions returns the sum of required counts across all sections.
func (e ExamType) TotalQuestions() int {
	n := 0
	for _, s := range e.Sections {
		n += s.Total()
	}
	return n
}

// GateStreams lists the 30 GATE streams as of 2024.
var GateStreams = []string{
	"AE", "AG", "AR", "BM", "BT", "CE", "CH", "CS", "CY", "DA",
	"EC", "EE", "EN", "ES", "EY", "GE", "GG", "IN", "MA", "ME",
	"MN", "MT", "NM", "PE", "PH", "PI", "ST", "TF", "XE", "XL",
}

var gateStreamNames = map[string]string{
	"AE": "Aerospace Engineering",
	"AG": "Agricultural Engineering",
	"AR": "Architecture and Planning",
	"BM": "Biomedical Engineering",
	"BT": "Biotechnology",
	"CE": "Civil Engineering",
	"CH": "Chemical Engineering",
	"CS": "Computer Science and Information Technology",
	"CY": "Chemistry",
	"DA": "Data Science and Artificial Intelligence",
	"EC": "Electronics and Communication Engineering",
	"EE": "Electrical Engineering",
	"EN": "Environmental Science and Engineering",
	"ES": "Earth Sciences",
	"EY": "Ecology and Evolution",
	"GE": "Geology and Geophysics",
	"GG": "Geophysics",
	"IN": "Instrumentation Engineering",
	"MA": "Mathematics",
	"ME": "Mechanical Engineering",
	"MN": "Mining Engineering",
	"MT": "Metallurgical Engineering",
	"NM": "Naval Architecture and Marine Engineering",
	"PE": "Petroleum Engineering",
	"PH": "Physics",
	"PI": "Production and Industrial Engineering",
	"ST": "Statistics",
	"TF": "Textile Engineering and Fibre Science",
	"XE": "Engineering Sciences",
	"XL": "Life Sciences",
}

// StreamName returns the display name for a GATE stream code, or
// "Unknown" for unrecognized codes.
func StreamName(code string) string {
	if name, ok := gateStreamNames[strings.ToUpper(code)]; ok {
		return name
	}
	return "Unknown"
}

var examTypes = map[string]ExamType{
	"CAT": {
		Name: "CAT",
		Sections: []Section{
			{
				Name:          "varc",
				Tag:           "VARC",
				Counts:        []KindCount{{model.KindMCQ, 21}, {model.KindTITA, 3}},
				collectionKey: "varc",
			},
			{
				Name:          "dilr",
				Tag:           "DILR",
				Counts:        []KindCount{{model.KindMCQ, 12}, {model.KindTITA, 10}},
				collectionKey: "dilr",
			},
			{
				Name:          "quant",
				Tag:           "QA",
				Counts:        []KindCount{{model.KindMCQ, 14}, {model.KindTITA, 8}},
				collectionKey: "qa",
			},
		},
	},
	"GATE": {
		Name: "GATE",
		Sections: []Section{
			{
				Name:                "general_aptitude",
				Tag:                 "GA",
				Counts:              []KindCount{{model.KindMCQ, 10}, {model.KindTITA, 0}},
				SharedAcrossStreams: true,
				collectionKey:       "ga",
			},
			{
				Name:          "technical",
				Tag:           "TECH",
				Counts:        []KindCount{{model.KindMCQ, 45}, {model.KindTITA, 10}},
				StreamScoped:  true,
				collectionKey: "technical",
			},
		},
		Streams: GateStreams,
	},
}

// Lookup resolves an exam type by name, case-insensitively.
func Lookup(examName string) (ExamType, bool) {
	e, ok := examTypes[strings.ToUpper(examName)]
	return e, ok
}

// ExamNames returns the names of all supported exam types.
func ExamNames() []string {
	return []string{"CAT", "GATE"}
}
