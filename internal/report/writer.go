package report

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/viant/afs"

	"github.com/JonMunkholm/servicediff/internal/core"
)

// Writer stores rendered reports.
type Writer struct {
	fs     afs.Service
	logger *slog.Logger
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithFS sets the storage service reports are uploaded to.
func WithFS(fs afs.Service) WriterOption {
	return func(w *Writer) { w.fs = fs }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) WriterOption {
	return func(w *Writer) { w.logger = logger }
}

// NewWriter creates a Writer backed by afs.
func NewWriter(opts ...WriterOption) *Writer {
	w := &Writer{
		fs:     afs.New(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write renders c and stores it at dest, overwriting any existing report.
// dest is a local path or a storage URL.
func (w *Writer) Write(ctx context.Context, dest string, f Format, c *core.Comparison) error {
	var buf bytes.Buffer
	if err := Render(ctx, &buf, f, c); err != nil {
		return fmt.Errorf("render %s report: %w", f, err)
	}
	size := buf.Len()

	location := dest
	if !strings.Contains(dest, "://") {
		abs, err := filepath.Abs(dest)
		if err != nil {
			return fmt.Errorf("write report %s: %w", dest, err)
		}
		location = abs
	}

	if err := w.fs.Upload(ctx, location, 0o644, &buf); err != nil {
		return fmt.Errorf("write report %s: %w", dest, err)
	}

	w.logger.InfoContext(ctx, "report written",
		"run_id", c.RunID,
		"path", dest,
		"format", string(f),
		"bytes", size,
	)
	return nil
}
