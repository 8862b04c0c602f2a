package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/servicediff/internal/core"
	"github.com/JonMunkholm/servicediff/internal/report"
	"github.com/JonMunkholm/servicediff/internal/snapshot"
)

// stdoutPath makes compare print the report instead of storing it.
const stdoutPath = "-"

type compareOptions struct {
	current  string
	previous string
	output   string
	format   string
	sheet    string
	exitCode bool
}

func newCompareCmd(a *app) *cobra.Command {
	var opts compareOptions

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare the current and previous snapshot and write the report",
		Long: `Compare loads both snapshots, drops rows without a Name or Status,
strips generated "_<id>" suffixes from names and reports services that were
added, removed or changed status.

Snapshots may be .csv, .tsv or .xlsx files given as local paths or storage
URLs (file://, mem://, s3://, gs://), or Postgres tables written as
postgres://user@host/db#schema.table.`,
		Example: `  servicediff compare --current new.csv --previous old.csv
  servicediff compare --current s3://audits/2026-10.xlsx --previous s3://audits/2026-09.xlsx --format html --output report.html
  servicediff compare --output - --exit-code`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runCompare(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.current, "current", "", "current snapshot (overrides CURRENT_SNAPSHOT)")
	f.StringVar(&opts.previous, "previous", "", "previous snapshot (overrides PREVIOUS_SNAPSHOT)")
	f.StringVarP(&opts.output, "output", "o", "", `report destination, "-" for stdout (overrides REPORT_OUTPUT)`)
	f.StringVarP(&opts.format, "format", "f", "", "report format: text, json, html (overrides REPORT_FORMAT)")
	f.StringVar(&opts.sheet, "sheet", "", "worksheet to read from .xlsx snapshots (overrides SNAPSHOT_SHEET)")
	f.BoolVar(&opts.exitCode, "exit-code", false, "exit with status 1 when differences are found")

	return cmd
}

func (a *app) runCompare(cmd *cobra.Command, opts compareOptions) error {
	cfg := a.cfg
	if opts.current != "" {
		cfg.Snapshot.CurrentPath = opts.current
	}
	if opts.previous != "" {
		cfg.Snapshot.PreviousPath = opts.previous
	}
	if opts.output != "" {
		cfg.Report.OutputPath = opts.output
	}
	if opts.format != "" {
		cfg.Report.Format = opts.format
	}
	if opts.sheet != "" {
		cfg.Snapshot.Sheet = opts.sheet
	}

	format, err := report.ParseFormat(cfg.Report.Format)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	loader := snapshot.NewLoader(
		snapshot.WithSheet(cfg.Snapshot.Sheet),
		snapshot.WithOrderBy(cfg.Snapshot.OrderBy),
		snapshot.WithLogger(a.logger),
	)

	current, err := loader.Load(ctx, cfg.Snapshot.CurrentPath)
	if err != nil {
		return fmt.Errorf("current snapshot: %w", err)
	}
	previous, err := loader.Load(ctx, cfg.Snapshot.PreviousPath)
	if err != nil {
		return fmt.Errorf("previous snapshot: %w", err)
	}

	c, err := core.NewService(core.WithLogger(a.logger)).Compare(ctx, current, previous)
	if err != nil {
		return err
	}

	if cfg.Report.OutputPath == stdoutPath {
		if err := report.Render(ctx, a.stdout, format, c); err != nil {
			return fmt.Errorf("render %s report: %w", format, err)
		}
	} else {
		w := report.NewWriter(report.WithLogger(a.logger))
		if err := w.Write(ctx, cfg.Report.OutputPath, format, c); err != nil {
			return err
		}
	}

	if !opts.exitCode {
		return nil
	}
	if listed := report.Reportable(c.Result); !listed.Empty() {
		a.logger.Warn("differences found",
			"run_id", c.RunID,
			"added", len(listed.Added),
			"removed", len(listed.Removed),
			"changed", len(listed.Changed),
		)
		return errDifferences
	}
	return nil
}
