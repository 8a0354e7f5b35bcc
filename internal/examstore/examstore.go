// Package examstore persists generated exam documents as JSON files and
// serves cache lookups over them with a linear directory scan. Callers
// needing scale can substitute an indexed implementation behind the
// orchestrator's CacheStore interface.
package examstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pavelanni/mockexam/internal/model"
)

// Store writes exam documents under root, one subdirectory per exam
// type.
type Store struct {
	root string
	now  func() time.Time
}

// New creates a store rooted at dir.
func New(dir string) *Store {
	return &Store{root: dir, now: time.Now}
}

// Lookup scans the exam type's directory for a document matching the
// key and returns the first match. Unreadable files are skipped with a
// warning; a missing directory simply means no cached exams yet.
func (s *Store) Lookup(key model.CacheKey) (*model.ExamDocument, bool, error) {
	dir := filepath.Join(s.root, key.Exam)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("scan exam cache: %w", err)
	}

	prefix := strings.ToLower(key.Exam) + "_exam"
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ".json") {
			continue
		}
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			slog.Warn("skipping unreadable cached exam", "path", path, "error", err)
			continue
		}
		var doc model.ExamDocument
		if err := json.Unmarshal(data, &doc); err != nil {
			slog.Warn("skipping malformed cached exam", "path", path, "error", err)
			continue
		}
		if key.Matches(doc.Details) {
			slog.Info("found cached exam", "path", path)
			return &doc, true, nil
		}
	}
	return nil, false, nil
}

// Save writes the document to a new timestamped file named after its
// exam type and stream. Files are created exclusively, with a numeric
// suffix on collision, so prior saves for the same request are never
// overwritten.
func (s *Store) Save(doc *model.ExamDocument) (string, error) {
	exam := strings.ToUpper(doc.Details.Name)
	dir := filepath.Join(s.root, exam)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create exam cache dir: %w", err)
	}

	streamSuffix := ""
	if doc.Details.Stream != nil && *doc.Details.Stream != "" {
		streamSuffix = "_" + strings.ToUpper(*doc.Details.Stream)
	}
	base := fmt.Sprintf("%s_exam%s_%s", strings.ToLower(exam), streamSuffix, s.now().Format("20060102_150405"))

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal exam document: %w", err)
	}

	for i := 0; ; i++ {
		name := base
		if i > 0 {
			name = fmt.Sprintf("%s_%d", base, i)
		}
		path := filepath.Join(dir, name+".json")

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("create exam file: %w", err)
		}
		if _, err := f.Write(data); err != nil {
			f.Close()
			return "", fmt.Errorf("write exam file: %w", err)
		}
		if err := f.Close(); err != nil {
			return "", fmt.Errorf("close exam file: %w", err)
		}
		return path, nil
	}
}
