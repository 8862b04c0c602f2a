package report

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/servicediff/internal/core"
)

// WriteHTML writes c as a standalone HTML page.
func WriteHTML(ctx context.Context, w io.Writer, c *core.Comparison) error {
	return Page(c).Render(ctx, w)
}

// Page is the full report document.
func Page(c *core.Comparison) templ.Component {
	r := Reportable(c.Result)

	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Service Comparison Report</title>
<style>
body{font-family:system-ui,sans-serif;margin:2rem;color:#1f2933}
table{border-collapse:collapse;margin-bottom:2rem;min-width:32rem}
th,td{border:1px solid #cbd2d9;padding:.35rem .75rem;text-align:left}
th{background:#f0f4f8}
.empty{color:#7b8794;font-style:italic}
</style>
</head>
<body>
<h1>Service Comparison Report</h1>
`); err != nil {
			return err
		}

		parts := []templ.Component{
			summary(c),
			entrySection("1. Services only existing this month", noneAdded, r.Added),
			entrySection("2. Services only existing last month", noneRemoved, r.Removed),
			changeSection(r.Changed),
		}
		for _, p := range parts {
			if err := p.Render(ctx, w); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, "</body>\n</html>\n")
		return err
	})
}

func summary(c *core.Comparison) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<p>Run <code>%s</code> generated %s</p>
<table>
<tr><th>Snapshot</th><th>Rows</th><th>Kept</th><th>Dropped</th><th>Unique</th></tr>
<tr><td>Current</td><td>%d</td><td>%d</td><td>%d</td><td>%d</td></tr>
<tr><td>Previous</td><td>%d</td><td>%d</td><td>%d</td><td>%d</td></tr>
</table>
`,
			templ.EscapeString(c.RunID),
			templ.EscapeString(c.GeneratedAt.Format(time.RFC3339)),
			c.Current.Rows, c.Current.Kept, c.Current.Dropped, c.Current.Unique,
			c.Previous.Rows, c.Previous.Kept, c.Previous.Dropped, c.Previous.Unique,
		)
		return err
	})
}

func entrySection(title, empty string, entries []core.Entry) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, "<h2>%s</h2>\n", templ.EscapeString(title)); err != nil {
			return err
		}
		if len(entries) == 0 {
			_, err := fmt.Fprintf(w, "<p class=\"empty\">%s</p>\n", templ.EscapeString(empty))
			return err
		}

		if _, err := io.WriteString(w, "<table>\n<tr><th>Service</th><th>Status</th></tr>\n"); err != nil {
			return err
		}
		for _, e := range entries {
			if _, err := fmt.Fprintf(w, "<tr><td>%s</td><td>%s</td></tr>\n",
				templ.EscapeString(e.Key), templ.EscapeString(e.Status)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</table>\n")
		return err
	})
}

func changeSection(changes []core.Change) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<h2>3. Services with changed states</h2>\n"); err != nil {
			return err
		}
		if len(changes) == 0 {
			_, err := fmt.Fprintf(w, "<p class=\"empty\">%s</p>\n", templ.EscapeString(noneChanged))
			return err
		}

		if _, err := io.WriteString(w, "<table>\n<tr><th>Service</th><th>Current Status</th><th>Previous Status</th></tr>\n"); err != nil {
			return err
		}
		for _, c := range changes {
			if _, err := fmt.Fprintf(w, "<tr><td>%s</td><td>%s</td><td>%s</td></tr>\n",
				templ.EscapeString(c.Key),
				templ.EscapeString(c.CurrentStatus),
				templ.EscapeString(c.PreviousStatus)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</table>\n")
		return err
	})
}
