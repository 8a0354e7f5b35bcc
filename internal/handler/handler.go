// Package handler exposes exam generation over HTTP. It is a thin layer
// over the generation core: request decoding, error mapping, and the
// async job registry live here, nothing else.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pavelanni/mockexam/internal/catalog"
	"github.com/pavelanni/mockexam/internal/generate"
	"github.com/pavelanni/mockexam/internal/model"
)

// Handler holds shared dependencies for HTTP handlers.
type Handler struct {
	svc  *generate.Service
	jobs *JobRegistry
}

// New creates a new Handler around the generation service.
func New(svc *generate.Service) *Handler {
	return &Handler{svc: svc, jobs: NewJobRegistry()}
}

// Routes registers all HTTP routes.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/gate-streams", h.handleGateStreams)
	r.Post("/generate-exam", h.handleGenerateExam)
	r.Post("/generate-exam/async", h.handleGenerateExamAsync)
	r.Get("/generate-exam/jobs/{jobID}", h.handleJobStatus)
}

type examRequest struct {
	ExamName string `json:"exam_name"`
	Stream   string `json:"stream"`
	Year     int    `json:"year"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) handleGenerateExam(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeExamRequest(w, r)
	if !ok {
		return
	}

	doc, err := h.svc.GenerateFullExam(r.Context(), req.ExamName, req.Stream, req.Year)
	if err != nil {
		writeGenerateError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (h *Handler) handleGenerateExamAsync(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeExamRequest(w, r)
	if !ok {
		return
	}

	// The request context dies with this response; the job outlives it.
	id := h.jobs.Start(func() (*model.ExamDocument, error) {
		return h.svc.GenerateFullExam(context.Background(), req.ExamName, req.Stream, req.Year)
	})
	writeJSON(w, http.StatusAccepted, map[string]any{
		"job_id": id,
		"status": JobPending,
	})
}

func (h *Handler) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "jobID")
	job, ok := h.jobs.Get(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown job id"})
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (h *Handler) handleGateStreams(w http.ResponseWriter, _ *http.Request) {
	type streamInfo struct {
		Code string `json:"code"`
		Name string `json:"name"`
	}
	streams := make([]streamInfo, 0, len(catalog.GateStreams))
	for _, code := range catalog.GateStreams {
		streams = append(streams, streamInfo{Code: code, Name: catalog.StreamName(code)})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"total_streams": len(streams),
		"streams":       streams,
	})
}

func decodeExamRequest(w http.ResponseWriter, r *http.Request) (examRequest, bool) {
	var req examRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return examRequest{}, false
	}
	if req.ExamName == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "exam_name is required"})
		return examRequest{}, false
	}
	return req, true
}

func writeGenerateError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, generate.ErrUnsupportedExamType) || errors.Is(err, generate.ErrInvalidStream) {
		status = http.StatusBadRequest
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}
