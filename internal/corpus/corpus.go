// Package corpus loads the seed-question corpus from structured JSON
// files and selects seed questions matching generation filters.
package corpus

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"github.com/pavelanni/mockexam/internal/catalog"
	"github.com/pavelanni/mockexam/internal/model"
)

// ErrNoSeed is returned when no corpus record survives the requested
// filters.
var ErrNoSeed = errors.New("no seed question matches the requested filters")

// Corpus holds the seed questions for one exam type, keyed by section
// name. It is read-only after Load.
type Corpus struct {
	sections map[string][]model.QuestionRecord
}

// Load reads one JSON file per section of the exam type from dir. Files
// are named {EXAM}_{TAG}_all_years_combined.json. A missing or malformed
// file yields an empty section with a warning rather than an error, so a
// partially provisioned data directory still serves the sections it has.
func Load(dir string, exam catalog.ExamType) (*Corpus, error) {
	c := &Corpus{sections: make(map[string][]model.QuestionRecord, len(exam.Sections))}

	for _, sec := range exam.Sections {
		fileName := fmt.Sprintf("%s_%s_all_years_combined.json", exam.Name, sec.Tag)
		path := filepath.Join(dir, fileName)

		data, err := os.ReadFile(path)
		if err != nil {
			slog.Warn("seed corpus file missing", "exam", exam.Name, "section", sec.Name, "path", path)
			c.sections[sec.Name] = nil
			continue
		}

		var records []model.QuestionRecord
		if err := json.Unmarshal(data, &records); err != nil {
			slog.Warn("seed corpus file malformed", "exam", exam.Name, "section", sec.Name, "path", path, "error", err)
			c.sections[sec.Name] = nil
			continue
		}

		c.sections[sec.Name] = records

		mcq, tita := 0, 0
		for _, r := range records {
			if r.Kind() == model.KindMCQ {
				mcq++
			} else {
				tita++
			}
		}
		slog.Info("loaded seed corpus section",
			"exam", exam.Name, "section", sec.Name, "total", len(records), "mcq", mcq, "tita", tita)
	}

	return c, nil
}

// LoadAll loads the corpus of every supported exam type from the
// structured_questions tree under dataDir.
func LoadAll(dataDir string) (map[string]*Corpus, error) {
	corpora := make(map[string]*Corpus, len(catalog.ExamNames()))
	for _, name := range catalog.ExamNames() {
		exam, ok := catalog.Lookup(name)
		if !ok {
			continue
		}
		c, err := Load(filepath.Join(dataDir, "structured_questions", name), exam)
		if err != nil {
			return nil, fmt.Errorf("load %s corpus: %w", name, err)
		}
		corpora[name] = c
	}
	return corpora, nil
}

// SectionSize returns the number of records loaded for a section.
func (c *Corpus) SectionSize(sectionName string) int {
	return len(c.sections[sectionName])
}

// SelectSeed picks one record uniformly at random among the records of
// the section that match the filters. Exam and stream comparisons are
// case-insensitive; sections shared across streams are never stream
// filtered; a zero year means no year filter.
func (c *Corpus) SelectSeed(sec catalog.Section, kind model.QuestionKind, examName, stream string, year int) (model.QuestionRecord, error) {
	matches := c.candidates(sec, kind, examName, stream, year)
	if len(matches) == 0 {
		return model.QuestionRecord{}, fmt.Errorf("%w: %s %s %s", ErrNoSeed, examName, sec.Name, kind)
	}
	return matches[rand.IntN(len(matches))], nil
}

func (c *Corpus) candidates(sec catalog.Section, kind model.QuestionKind, examName, stream string, year int) []model.QuestionRecord {
	var matches []model.QuestionRecord
	for _, r := range c.sections[sec.Name] {
		if examName != "" && !strings.EqualFold(r.Exam, examName) {
			continue
		}
		if !sec.SharedAcrossStreams && stream != "" && !strings.EqualFold(r.Stream, stream) {
			continue
		}
		if year != 0 && r.Year != year {
			continue
		}
		if r.Kind() != kind {
			continue
		}
		matches = append(matches, r)
	}
	return matches
}
