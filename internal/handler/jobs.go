package handler

import (
	"sync"

	"github.com/google/uuid"

	"github.com/pavelanni/mockexam/internal/model"
)

// JobStatus represents the lifecycle state of an async generation job.
type JobStatus string

const (
	JobPending   JobStatus = "pending"
	JobCompleted JobStatus = "completed"
	JobFailed    JobStatus = "failed"
)

// Job tracks one asynchronous exam generation.
type Job struct {
	ID       string              `json:"job_id"`
	Status   JobStatus           `json:"status"`
	Document *model.ExamDocument `json:"document,omitempty"`
	Error    string              `json:"error,omitempty"`
}

// JobRegistry is an in-memory id → status/result registry owned by the
// HTTP layer. The generation core stays synchronous; only the registry
// knows about background execution.
type JobRegistry struct {
	mu   sync.RWMutex
	jobs map[string]*Job
}

// NewJobRegistry creates an empty registry.
func NewJobRegistry() *JobRegistry {
	return &JobRegistry{jobs: make(map[string]*Job)}
}

// Start registers a new pending job and runs fn in the background. The
// job transitions to completed or failed when fn returns.
func (r *JobRegistry) Start(run func() (*model.ExamDocument, error)) string {
	id := uuid.NewString()

	r.mu.Lock()
	r.jobs[id] = &Job{ID: id, Status: JobPending}
	r.mu.Unlock()

	go func() {
		doc, err := run()

		r.mu.Lock()
		defer r.mu.Unlock()
		job := r.jobs[id]
		if err != nil {
			job.Status = JobFailed
			job.Error = err.Error()
			return
		}
		job.Status = JobCompleted
		job.Document = doc
	}()

	return id
}

// Get returns a snapshot of the job with the given id.
func (r *JobRegistry) Get(id string) (Job, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	job, ok := r.jobs[id]
	if !ok {
		return Job{}, false
	}
	return *job, true
}
