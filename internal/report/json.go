package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/JonMunkholm/servicediff/internal/core"
)

// Document is the JSON form of a comparison.
type Document struct {
	RunID       string             `json:"run_id"`
	GeneratedAt time.Time          `json:"generated_at"`
	Current     core.SnapshotStats `json:"current"`
	Previous    core.SnapshotStats `json:"previous"`
	Added       []Service          `json:"added"`
	Removed     []Service          `json:"removed"`
	Changed     []StatusChange     `json:"changed"`
}

// Service is a service present in only one snapshot.
type Service struct {
	Name   string            `json:"name"`
	Status string            `json:"status"`
	Fields map[string]string `json:"fields,omitempty"`
}

// StatusChange is a service whose status differs between snapshots.
type StatusChange struct {
	Name           string `json:"name"`
	CurrentStatus  string `json:"current_status"`
	PreviousStatus string `json:"previous_status"`
}

// NewDocument builds the JSON document for c.
func NewDocument(c *core.Comparison) Document {
	r := Reportable(c.Result)

	doc := Document{
		RunID:       c.RunID,
		GeneratedAt: c.GeneratedAt,
		Current:     c.Current,
		Previous:    c.Previous,
		Added:       services(r.Added),
		Removed:     services(r.Removed),
		Changed:     make([]StatusChange, 0, len(r.Changed)),
	}
	for _, ch := range r.Changed {
		doc.Changed = append(doc.Changed, StatusChange{
			Name:           ch.Key,
			CurrentStatus:  ch.CurrentStatus,
			PreviousStatus: ch.PreviousStatus,
		})
	}
	return doc
}

func services(entries []core.Entry) []Service {
	out := make([]Service, 0, len(entries))
	for _, e := range entries {
		out = append(out, Service{
			Name:   e.Key,
			Status: e.Status,
			Fields: e.Record.Fields(),
		})
	}
	return out
}

// WriteJSON writes c as an indented JSON document.
func WriteJSON(w io.Writer, c *core.Comparison) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewDocument(c))
}
