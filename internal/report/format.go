// Package report renders comparison results.
//
// The text format is the canonical audit report: three fixed sections with
// placeholders when a section is empty. JSON and HTML carry the same three
// sets plus the run metadata. Writer stores a rendered report at a path or
// storage URL, replacing what was there.
package report

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/JonMunkholm/servicediff/internal/core"
)

// Format selects a renderer.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatHTML Format = "html"
)

// Formats lists the supported formats in display order.
var Formats = []Format{FormatText, FormatJSON, FormatHTML}

// ParseFormat resolves a format name case-insensitively. Empty means text.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatHTML:
		return FormatHTML, nil
	}
	return "", fmt.Errorf("unknown report format %q (supported: text, json, html)", s)
}

// ContentType returns the HTTP content type of the rendered format.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatHTML:
		return "text/html; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Render writes c to w in format f.
func Render(ctx context.Context, w io.Writer, f Format, c *core.Comparison) error {
	switch f {
	case FormatText, "":
		return WriteText(w, c.Result)
	case FormatJSON:
		return WriteJSON(w, c)
	case FormatHTML:
		return WriteHTML(ctx, w, c)
	}
	return fmt.Errorf("unknown report format %q", f)
}

// Reportable drops entries with an empty key. A name made only of a
// generated suffix ("_abc") normalizes to "", which names no service.
// Every renderer lists exactly the entries Reportable keeps.
func Reportable(r core.DiffResult) core.DiffResult {
	out := core.DiffResult{
		Added:   make([]core.Entry, 0, len(r.Added)),
		Removed: make([]core.Entry, 0, len(r.Removed)),
		Changed: make([]core.Change, 0, len(r.Changed)),
	}
	for _, e := range r.Added {
		if e.Key != "" {
			out.Added = append(out.Added, e)
		}
	}
	for _, e := range r.Removed {
		if e.Key != "" {
			out.Removed = append(out.Removed, e)
		}
	}
	for _, c := range r.Changed {
		if c.Key != "" {
			out.Changed = append(out.Changed, c)
		}
	}
	return out
}
