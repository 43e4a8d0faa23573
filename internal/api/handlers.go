package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dgallion1/mdtoc/internal/parser"
	"github.com/dgallion1/mdtoc/internal/splice"
	"github.com/dgallion1/mdtoc/internal/toc"
	"github.com/go-chi/chi/v5"
)

// handleTOC renders the TOC block for a markdown document posted as the
// request body.
func (s *Server) handleTOC(w http.ResponseWriter, r *http.Request) {
	src, ok := s.readBody(w, r)
	if !ok {
		return
	}

	ext := &parser.MarkdownExtractor{}
	headings, err := ext.Extract(strings.NewReader(src))
	if err != nil {
		jsonError(w, "extract: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	block := toc.Render(headings, toc.Options{Indent: s.cfg.IndentWidth})
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"toc":      block,
		"entries":  toc.Count(headings),
		"headings": headings,
	})
}

// handleInject returns the posted markdown document with the text between
// its marker pair replaced by a fresh TOC.
func (s *Server) handleInject(w http.ResponseWriter, r *http.Request) {
	src, ok := s.readBody(w, r)
	if !ok {
		return
	}

	ext := &parser.MarkdownExtractor{}
	headings, err := ext.Extract(strings.NewReader(src))
	if err != nil {
		jsonError(w, "extract: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	block := toc.Render(headings, toc.Options{Indent: s.cfg.IndentWidth})
	result, err := splice.Replace(src, block, s.cfg.BeginMarker, s.cfg.EndMarker)

	resp := map[string]any{
		"document": result,
		"changed":  result != src,
	}
	var merr *splice.MarkerError
	if errors.As(err, &merr) {
		resp["warning"] = merr.Error()
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

type batchRequest struct {
	Paths []string `json:"paths"`
}

// handleBatch queues TOC injection for server-side paths and returns one
// job per collected file.
func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if len(req.Paths) == 0 {
		jsonError(w, "at least one path is required", http.StatusBadRequest)
		return
	}

	files, err := s.runner.Collect(req.Paths)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if len(files) == 0 {
		jsonError(w, "no markdown files found", http.StatusBadRequest)
		return
	}

	jobs := s.runner.NewJobs(files)
	go s.runner.Run(context.Background(), jobs)

	results := make([]map[string]any, 0, len(jobs))
	for _, job := range jobs {
		snap := job.Snapshot()
		results = append(results, map[string]any{
			"job_id":   snap.ID,
			"path":     snap.Path,
			"status":   snap.Status,
			"poll_url": fmt.Sprintf("/api/batch/%s", snap.ID),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{"jobs": results})
}

func (s *Server) handleBatchStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.runner.Jobs().Get(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(job.Snapshot())
}

// readBody reads the request body subject to the upload limit.
func (s *Server) readBody(w http.ResponseWriter, r *http.Request) (string, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	data, err := io.ReadAll(r.Body)
	if err != nil {
		jsonError(w, "failed to read body: "+err.Error(), http.StatusRequestEntityTooLarge)
		return "", false
	}
	if len(data) == 0 {
		jsonError(w, "request body is required", http.StatusBadRequest)
		return "", false
	}
	return string(data), true
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
