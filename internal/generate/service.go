// Package generate orchestrates full mock-exam generation: seed
// selection, retrieval-augmented prompting, concurrent per-question
// generation, response parsing, section pacing, and exam caching.
package generate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pavelanni/mockexam/internal/backend"
	"github.com/pavelanni/mockexam/internal/catalog"
	"github.com/pavelanni/mockexam/internal/corpus"
	"github.com/pavelanni/mockexam/internal/model"
	"github.com/pavelanni/mockexam/internal/prompt"
	"github.com/pavelanni/mockexam/internal/retrieval"
)

// Exam-level errors abort a request before any generation task is
// scheduled. All other failures degrade to per-question error entries.
var (
	ErrUnsupportedExamType = errors.New("unsupported exam type")
	ErrInvalidStream       = errors.New("invalid or missing stream")
)

// CacheStore looks up and persists whole exam documents on durable
// storage, keyed by exam identity.
type CacheStore interface {
	Lookup(key model.CacheKey) (*model.ExamDocument, bool, error)
	Save(doc *model.ExamDocument) (string, error)
}

// Config holds orchestrator tunables.
type Config struct {
	// Pacing is the delay between sections, respecting the shared rate
	// limit of the generation backend. Defaults to one second.
	Pacing time.Duration
	// TopK is the number of exemplars retrieved per seed question.
	// Defaults to three.
	TopK int
}

// Service coordinates full exam generation. It owns no mutable state
// beyond the document under assembly, which only the coordinating
// goroutine touches.
type Service struct {
	corpora   map[string]*corpus.Corpus
	retriever retrieval.Retriever
	backend   backend.Backend
	store     CacheStore
	pacing    time.Duration
	topK      int
}

// New creates the orchestrator. Corpora maps exam type names to their
// preloaded seed corpora.
func New(corpora map[string]*corpus.Corpus, r retrieval.Retriever, b backend.Backend, store CacheStore, cfg Config) *Service {
	if cfg.Pacing <= 0 {
		cfg.Pacing = time.Second
	}
	if cfg.TopK <= 0 {
		cfg.TopK = 3
	}
	return &Service{
		corpora:   corpora,
		retriever: r,
		backend:   b,
		store:     store,
		pacing:    cfg.Pacing,
		topK:      cfg.TopK,
	}
}

// generationTask is the unit of concurrent work: one question to
// generate for one section.
type generationTask struct {
	section catalog.Section
	kind    model.QuestionKind
	exam    string
	stream  string
	year    int
}

type taskResult struct {
	question model.GeneratedQuestion
	err      *model.TaskError
}

// GenerateFullExam generates a complete mock exam, section by section.
// It consults the cache first, validates the request, fans the tasks of
// each section out concurrently, and persists the assembled document.
// A task failure never aborts the run; it becomes an entry in the
// document's errors sequence. Only an unsupported exam type or an
// invalid stream aborts the request as a whole.
func (s *Service) GenerateFullExam(ctx context.Context, examName, stream string, year int) (*model.ExamDocument, error) {
	key := model.NewCacheKey(examName, stream, year)

	if doc, ok, err := s.store.Lookup(key); err != nil {
		slog.Warn("exam cache lookup failed", "key", key.String(), "error", err)
	} else if ok {
		slog.Info("returning cached exam", "key", key.String())
		return doc, nil
	}

	exam, ok := catalog.Lookup(examName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedExamType, examName)
	}
	if exam.RequiresStream() && !exam.ValidStream(stream) {
		return nil, fmt.Errorf("%w: %s stream must be one of %s",
			ErrInvalidStream, exam.Name, strings.Join(exam.Streams, ", "))
	}

	corp := s.corpora[exam.Name]
	if corp == nil {
		corp = &corpus.Corpus{}
	}

	doc := model.NewExamDocument(model.NewExamDetails(examName, stream, year), exam.SectionTags())

	slog.Info("generating exam", "exam", exam.Name, "stream", stream, "year", year,
		"sections", len(exam.Sections), "questions", exam.TotalQuestions())

	for i, sec := range exam.Sections {
		tasks := expandTasks(sec, examName, stream, year)
		slog.Info("generating section", "section", sec.Name, "tag", sec.Tag, "tasks", len(tasks))

		for _, res := range s.runSection(ctx, corp, tasks) {
			if res.err != nil {
				doc.Errors = append(doc.Errors, *res.err)
				continue
			}
			tag := res.question.Section
			if _, known := doc.Sections[tag]; !known {
				doc.Errors = append(doc.Errors, model.TaskError{
					Message: fmt.Sprintf("generated question has unknown section %q", tag),
				})
				continue
			}
			doc.Sections[tag] = append(doc.Sections[tag], res.question)
		}

		slog.Info("section complete", "section", sec.Name,
			"questions", len(doc.Sections[sec.Tag]), "errors", len(doc.Errors))

		if i < len(exam.Sections)-1 {
			time.Sleep(s.pacing)
		}
	}

	if path, err := s.store.Save(doc); err != nil {
		slog.Error("persist generated exam", "key", key.String(), "error", err)
	} else {
		slog.Info("saved generated exam", "path", path)
	}

	return doc, nil
}

// expandTasks turns a section's per-kind counts into independent tasks.
func expandTasks(sec catalog.Section, examName, stream string, year int) []generationTask {
	tasks := make([]generationTask, 0, sec.Total())
	for _, kc := range sec.Counts {
		for range kc.Count {
			tasks = append(tasks, generationTask{
				section: sec,
				kind:    kc.Kind,
				exam:    examName,
				stream:  stream,
				year:    year,
			})
		}
	}
	return tasks
}

// runSection fans the section's tasks out concurrently and waits for
// all of them. Each worker writes exactly one result into its own slot
// and never returns an error to the group, so a failing task cannot
// cancel its siblings.
func (s *Service) runSection(ctx context.Context, corp *corpus.Corpus, tasks []generationTask) []taskResult {
	results := make([]taskResult, len(tasks))
	g := new(errgroup.Group)
	for i, t := range tasks {
		g.Go(func() error {
			results[i] = s.runTask(ctx, corp, t)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// runTask executes one generation task end to end. Every failure mode
// converts to a TaskError at this boundary.
func (s *Service) runTask(ctx context.Context, corp *corpus.Corpus, t generationTask) taskResult {
	fail := func(format string, args ...any) taskResult {
		return taskResult{err: &model.TaskError{
			Message: fmt.Sprintf(format, args...),
			Section: t.section.Tag,
			Kind:    strings.ToUpper(string(t.kind)),
		}}
	}

	seed, err := corp.SelectSeed(t.section, t.kind, t.exam, t.stream, t.year)
	if err != nil {
		return fail("no seed questions found for %s %s %d - %s %s", t.exam, t.stream, t.year, t.section.Name, t.kind)
	}

	collection := t.section.Collection(t.exam, t.stream)
	exemplars, err := s.retriever.Query(ctx, collection, seed.QuestionText, s.topK)
	if err != nil {
		if errors.Is(err, retrieval.ErrCollectionNotFound) {
			return fail("similarity collection %q not found; build the index first", collection)
		}
		return fail("retrieval failed: %v", err)
	}

	p := prompt.Build(strings.ToUpper(t.exam), t.section.Tag, t.kind, exemplars)

	raw, err := s.backend.Invoke(ctx, p)
	if err != nil {
		if errors.Is(err, backend.ErrUnavailable) {
			return fail("generation backend unavailable: %v", err)
		}
		return fail("backend invocation failed: %v", err)
	}

	q, err := parseResponse(raw, t.section.Tag, t.kind)
	if err != nil {
		res := fail("failed to parse model JSON response")
		var pe *ParseError
		if errors.As(err, &pe) {
			res.err.Raw = pe.Raw
		}
		return res
	}

	return taskResult{question: q}
}
