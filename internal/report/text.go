package report

import (
	"io"
	"strings"

	"github.com/JonMunkholm/servicediff/internal/core"
)

const (
	textTitle = "=== Service Comparison Report ==="
	textRule  = "----------------------------------------"

	headingAdded   = "1. Services only existing this month:"
	headingRemoved = "2. Services only existing last month:"
	headingChanged = "3. Services with changed states:"

	noneAdded   = "No new services found"
	noneRemoved = "No removed services found"
	noneChanged = "No services with changed states found"
)

// WriteText writes the plain-text report:
//
//	(blank line)
//	=== Service Comparison Report ===
//	(blank line)
//	1. Services only existing this month:
//	----------------------------------------
//	Service: <key>
//	Status: <status>
//	(blank line)
//	...
//
// Each section lists its entries, or a placeholder line when it has none.
func WriteText(w io.Writer, r core.DiffResult) error {
	r = Reportable(r)

	var b strings.Builder
	b.WriteString("\n" + textTitle + "\n\n")

	heading(&b, headingAdded)
	for _, e := range r.Added {
		b.WriteString("Service: " + e.Key + "\n")
		b.WriteString("Status: " + e.Status + "\n\n")
	}
	if len(r.Added) == 0 {
		b.WriteString(noneAdded + "\n\n")
	}

	heading(&b, headingRemoved)
	for _, e := range r.Removed {
		b.WriteString("Service: " + e.Key + "\n")
		b.WriteString("Status: " + e.Status + "\n\n")
	}
	if len(r.Removed) == 0 {
		b.WriteString(noneRemoved + "\n\n")
	}

	heading(&b, headingChanged)
	for _, c := range r.Changed {
		b.WriteString("Service: " + c.Key + "\n")
		b.WriteString("Current Status: " + c.CurrentStatus + "\n")
		b.WriteString("Previous Status: " + c.PreviousStatus + "\n\n")
	}
	if len(r.Changed) == 0 {
		b.WriteString(noneChanged + "\n\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func heading(b *strings.Builder, title string) {
	b.WriteString(title + "\n" + textRule + "\n")
}
