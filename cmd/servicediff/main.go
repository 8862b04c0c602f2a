// Command servicediff compares two service inventory snapshots and reports
// which services appeared, disappeared or changed status.
//
// Exit code 0 = success (no differences when --exit-code is set).
// Exit code 1 = differences found and --exit-code was given.
// Exit code 2 = error.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/servicediff/internal/config"
	"github.com/JonMunkholm/servicediff/internal/core"
	"github.com/JonMunkholm/servicediff/internal/logging"
)

// errDifferences signals exit code 1 for compare --exit-code.
var errDifferences = errors.New("differences found")

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	envLoaded := godotenv.Overload() == nil

	os.Exit(execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr, envLoaded))
}

// execute runs the CLI and returns the process exit code.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer, envLoaded bool) int {
	a := &app{stdout: stdout, stderr: stderr, envLoaded: envLoaded}

	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errDifferences):
		return 1
	}

	fmt.Fprintf(stderr, "servicediff: %v\n", err)
	if core.IsUserFacing(err) {
		fmt.Fprintf(stderr, "%s\n", core.FormatUserError(err))
	}
	return 2
}

// app carries state shared by the subcommands.
type app struct {
	stdout    io.Writer
	stderr    io.Writer
	envLoaded bool

	logLevel  string
	logFormat string

	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "servicediff",
		Short:         "Compare two service inventory snapshots",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return a.setup()
		},
	}

	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides LOG_LEVEL)")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "log format: text or json (overrides LOG_FORMAT)")

	root.AddCommand(
		newCompareCmd(a),
		newServeCmd(a),
	)

	return root
}

// setup loads configuration and installs the logger. Logs go to stderr so
// reports written to stdout stay clean.
func (a *app) setup() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	if a.logFormat != "" {
		cfg.Logging.Format = a.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}

	a.cfg = cfg
	a.logger = logging.Setup(cfg.Logging.Level, cfg.Logging.Format, a.stderr)

	if a.envLoaded {
		a.logger.Debug("loaded .env file (overwriting existing env vars)")
	}
	a.logger.Debug("configuration loaded", "config", cfg.String())
	return nil
}
