package core

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Snapshot labels used in errors and logs.
const (
	SnapshotCurrent  = "current"
	SnapshotPrevious = "previous"
)

// SnapshotStats summarizes one side of a comparison.
type SnapshotStats struct {
	Rows    int `json:"rows"`    // rows loaded
	Kept    int `json:"kept"`    // rows surviving the cleaner
	Dropped int `json:"dropped"` // rows dropped by the cleaner
	Unique  int `json:"unique"`  // distinct normalized keys
}

// Comparison is the outcome of one run of the pipeline.
type Comparison struct {
	RunID       string
	GeneratedAt time.Time
	Current     SnapshotStats
	Previous    SnapshotStats
	Result      DiffResult
}

// Service runs the clean, normalize, deduplicate and diff pipeline.
type Service struct {
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for run summaries.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides the clock used for GeneratedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides the run ID generator.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// NewService creates a Service.
func NewService(opts ...Option) *Service {
	s := &Service{
		logger: slog.Default(),
		now:    time.Now,
		newID:  func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Compare validates both snapshots and diffs them.
// It fails fast with a *MissingColumnError if either snapshot lacks Name or Status.
func (s *Service) Compare(ctx context.Context, current, previous Table) (*Comparison, error) {
	if err := ValidateColumns(SnapshotCurrent, current); err != nil {
		return nil, err
	}
	if err := ValidateColumns(SnapshotPrevious, previous); err != nil {
		return nil, err
	}

	runID := s.newID()
	logger := s.logger.With("run_id", runID)

	curKeyed, curStats := s.prepare(current)
	prevKeyed, prevStats := s.prepare(previous)

	result := Diff(curKeyed, prevKeyed)

	logger.InfoContext(ctx, "snapshots compared",
		"current_rows", curStats.Rows,
		"current_dropped", curStats.Dropped,
		"current_unique", curStats.Unique,
		"previous_rows", prevStats.Rows,
		"previous_dropped", prevStats.Dropped,
		"previous_unique", prevStats.Unique,
		"added", len(result.Added),
		"removed", len(result.Removed),
		"changed", len(result.Changed),
	)

	return &Comparison{
		RunID:       runID,
		GeneratedAt: s.now().UTC(),
		Current:     curStats,
		Previous:    prevStats,
		Result:      result,
	}, nil
}

// prepare runs one snapshot through Clean, Normalize and Deduplicate.
func (s *Service) prepare(t Table) (*KeyedTable, SnapshotStats) {
	cleaned, cs := CleanWithStats(t)
	keyed := Deduplicate(Normalize(cleaned))
	return keyed, SnapshotStats{
		Rows:    cs.Input,
		Kept:    cs.Kept,
		Dropped: cs.Dropped,
		Unique:  keyed.Len(),
	}
}
