package web

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/JonMunkholm/servicediff/internal/core"
	"github.com/JonMunkholm/servicediff/internal/logging"
	"github.com/JonMunkholm/servicediff/internal/report"
)

// Multipart field names of the two snapshots.
const (
	fieldCurrent  = "current"
	fieldPrevious = "previous"
)

// handleCompare diffs two uploaded snapshots and returns the report.
func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	format, err := report.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		s.respondError(w, r, badRequest(err))
		return
	}

	// The slot covers the form buffering too.
	ctx := r.Context()
	if err := s.limiter.Acquire(ctx); err != nil {
		s.respondError(w, r, err)
		return
	}
	defer s.limiter.Release()

	maxSize := s.cfg.Upload.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		s.respondError(w, r, badRequest(fmt.Errorf("parse upload: %w", err)))
		return
	}
	defer r.MultipartForm.RemoveAll()

	current, err := s.readSnapshot(r, fieldCurrent)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	previous, err := s.readSnapshot(r, fieldPrevious)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	c, err := s.service.Compare(ctx, current, previous)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := report.Render(ctx, &buf, format, c); err != nil {
		s.respondError(w, r, fmt.Errorf("render %s report: %w", format, err))
		return
	}

	logging.WithFields(ctx, "run_id", c.RunID).Info("comparison served",
		"format", string(format),
		"added", len(c.Result.Added),
		"removed", len(c.Result.Removed),
		"changed", len(c.Result.Changed),
	)

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("X-Run-ID", c.RunID)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// readSnapshot decodes one uploaded file, picking the format from its name.
func (s *Server) readSnapshot(r *http.Request, field string) (core.Table, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return core.Table{}, badRequest(fmt.Errorf("%s snapshot: %w", field, errNoFile))
	}
	defer file.Close()

	t, err := s.loader.Decode(header.Filename, file)
	if err != nil {
		return core.Table{}, badRequest(fmt.Errorf("%s snapshot: %w", field, err))
	}
	return t, nil
}

// healthResponse is the body of GET /healthz.
type healthResponse struct {
	Status string `json:"status"`
	core.LimiterStatus
}

// handleHealth reports liveness and comparison capacity.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:        "ok",
		LimiterStatus: s.limiter.Status(),
	})
}
