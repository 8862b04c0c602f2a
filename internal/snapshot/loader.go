// Package snapshot loads inventory exports into core tables.
//
// The container format is picked by file extension (.csv, .tsv, .xlsx);
// Postgres URLs (postgres://host/db#table) are read with a SELECT instead.
// Every other source goes through viant/afs, so local paths and file://,
// mem://, s3:// or gs:// URLs all work the same way.
package snapshot

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/viant/afs"

	"github.com/JonMunkholm/servicediff/internal/core"
)

// Loader reads snapshots from paths, URLs and uploads.
type Loader struct {
	fs      afs.Service
	connect ConnectFunc
	opts    Options
	orderBy string
	logger  *slog.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithFS sets the storage service used for non-Postgres sources.
func WithFS(fs afs.Service) LoaderOption {
	return func(l *Loader) { l.fs = fs }
}

// WithConnector sets how Postgres sources are opened.
func WithConnector(c ConnectFunc) LoaderOption {
	return func(l *Loader) { l.connect = c }
}

// WithSheet selects the worksheet read from workbooks.
func WithSheet(sheet string) LoaderOption {
	return func(l *Loader) { l.opts.Sheet = sheet }
}

// WithOrderBy sorts Postgres sources by the given column.
func WithOrderBy(column string) LoaderOption {
	return func(l *Loader) { l.orderBy = column }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) { l.logger = logger }
}

// NewLoader creates a Loader.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		fs:      afs.New(),
		connect: connectPool,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads a complete snapshot. Unsupported extensions fail before any I/O
// with an error wrapping core.ErrUnsupportedFormat.
func (l *Loader) Load(ctx context.Context, source string) (core.Table, error) {
	if IsPostgres(source) {
		return l.loadPostgres(ctx, source)
	}

	format, err := Lookup(source)
	if err != nil {
		return core.Table{}, fmt.Errorf("load %s: %w", source, err)
	}

	location, err := resolve(source)
	if err != nil {
		return core.Table{}, fmt.Errorf("load %s: %w", source, err)
	}

	data, err := l.fs.DownloadWithURL(ctx, location)
	if err != nil {
		return core.Table{}, fmt.Errorf("read %s: %w", source, err)
	}

	t, err := format.Decode(bytes.NewReader(data), l.opts)
	if err != nil {
		return core.Table{}, fmt.Errorf("load %s: %w", source, err)
	}

	l.logger.DebugContext(ctx, "snapshot loaded",
		"source", source,
		"format", format.Label,
		"bytes", len(data),
		"rows", t.Len(),
		"columns", len(t.Columns()),
	)
	return t, nil
}

// Decode parses an already-open snapshot, such as an HTTP upload.
// The format is resolved from name.
func (l *Loader) Decode(name string, r io.Reader) (core.Table, error) {
	format, err := Lookup(name)
	if err != nil {
		return core.Table{}, fmt.Errorf("load %s: %w", name, err)
	}
	t, err := format.Decode(r, l.opts)
	if err != nil {
		return core.Table{}, fmt.Errorf("load %s: %w", name, err)
	}
	return t, nil
}

func (l *Loader) loadPostgres(ctx context.Context, source string) (core.Table, error) {
	connString, table, err := splitPostgresSource(source)
	if err != nil {
		return core.Table{}, err
	}

	q, release, err := l.connect(ctx, connString)
	if err != nil {
		return core.Table{}, fmt.Errorf("connect to postgres for %s: %w", table.Sanitize(), err)
	}
	defer release()

	t, err := QueryTable(ctx, q, table, l.orderBy)
	if err != nil {
		return core.Table{}, err
	}

	l.logger.DebugContext(ctx, "snapshot loaded",
		"source", "postgres",
		"table", table.Sanitize(),
		"rows", t.Len(),
		"columns", len(t.Columns()),
	)
	return t, nil
}

// resolve turns relative local paths into absolute ones; URLs pass through.
func resolve(source string) (string, error) {
	if strings.Contains(source, "://") {
		return source, nil
	}
	return filepath.Abs(source)
}
