package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/servicediff/internal/report"
)

const (
	newCSV = "Name,Status\n" +
		"billing_36fdd424,Running\n" +
		"auth_9f3a1,Stopped\n" +
		"search_ab12,Running\n"
	oldCSV = "Name,Status\n" +
		"billing_77,Running\n" +
		"auth_x,Running\n" +
		"cache_1,Running\n"
)

type result struct {
	code   int
	stdout string
	stderr string
}

func run(t *testing.T, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := execute(context.Background(), args, &stdout, &stderr, false)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

// fixtures writes both snapshots into a fresh directory and returns its path.
func fixtures(t *testing.T, current, previous string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "new.csv"), []byte(current), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "old.csv"), []byte(previous), 0o644))
	return dir
}

func TestCompare_WritesReportFile(t *testing.T) {
	dir := fixtures(t, newCSV, oldCSV)
	out := filepath.Join(dir, "service_comparison_report.txt")

	res := run(t, "compare",
		"--current", filepath.Join(dir, "new.csv"),
		"--previous", filepath.Join(dir, "old.csv"),
		"--output", out,
	)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Empty(t, res.stdout)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Service: search\nStatus: Running\n")
	assert.Contains(t, string(data), "Service: auth\nCurrent Status: Stopped\nPrevious Status: Running\n")
}

func TestCompare_DefaultsFromWorkingDirectory(t *testing.T) {
	dir := fixtures(t, newCSV, newCSV)
	t.Chdir(dir)

	res := run(t, "compare")
	require.Equal(t, 0, res.code, res.stderr)

	data, err := os.ReadFile(filepath.Join(dir, "service_comparison_report.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "No new services found\n\n")
	assert.Contains(t, string(data), "No removed services found\n\n")
	assert.Contains(t, string(data), "No services with changed states found\n\n")
}

func TestCompare_EnvConfig(t *testing.T) {
	dir := fixtures(t, newCSV, oldCSV)
	t.Setenv("CURRENT_SNAPSHOT", filepath.Join(dir, "new.csv"))
	t.Setenv("PREVIOUS_SNAPSHOT", filepath.Join(dir, "old.csv"))
	t.Setenv("REPORT_FORMAT", "json")
	t.Setenv("REPORT_OUTPUT", "-")

	res := run(t, "compare")
	require.Equal(t, 0, res.code, res.stderr)

	var doc report.Document
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &doc))
	assert.Len(t, doc.Added, 1)
	assert.Len(t, doc.Removed, 1)
	assert.Len(t, doc.Changed, 1)
}

func TestCompare_ExitCode(t *testing.T) {
	dir := fixtures(t, newCSV, oldCSV)

	res := run(t, "compare", "--exit-code", "--output", "-",
		"--current", filepath.Join(dir, "new.csv"),
		"--previous", filepath.Join(dir, "old.csv"),
	)
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stdout, "=== Service Comparison Report ===")
	assert.Contains(t, res.stderr, "differences found")

	res = run(t, "compare", "--exit-code", "--output", "-",
		"--current", filepath.Join(dir, "new.csv"),
		"--previous", filepath.Join(dir, "new.csv"),
	)
	assert.Equal(t, 0, res.code, res.stderr)
}

func TestCompare_ExitCodeIgnoresUnlistedKeys(t *testing.T) {
	// "_abc" normalizes to an empty key, which the report never lists.
	dir := fixtures(t, newCSV+"_abc,Running\n", newCSV)

	res := run(t, "compare", "--exit-code", "--output", "-",
		"--current", filepath.Join(dir, "new.csv"),
		"--previous", filepath.Join(dir, "old.csv"),
	)
	assert.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "No new services found\n\n")
	assert.NotContains(t, res.stderr, "differences found")
}

func TestCompare_Errors(t *testing.T) {
	dir := fixtures(t, newCSV, "Name,State\nauth,Running\n")

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{
			name:    "missing status column",
			args:    []string{"--previous", filepath.Join(dir, "old.csv")},
			wantErr: `previous snapshot: missing required column "Status"`,
		},
		{
			name:    "unsupported format",
			args:    []string{"--previous", filepath.Join(dir, "old.json")},
			wantErr: "unsupported file format .json",
		},
		{
			name:    "missing file",
			args:    []string{"--previous", filepath.Join(dir, "absent.csv")},
			wantErr: "absent.csv",
		},
		{
			name:    "unknown report format",
			args:    []string{"--previous", filepath.Join(dir, "new.csv"), "--format", "pdf"},
			wantErr: `unknown report format "pdf"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"compare", "--output", "-", "--current", filepath.Join(dir, "new.csv")}, tt.args...)
			res := run(t, args...)

			assert.Equal(t, 2, res.code)
			assert.Contains(t, res.stderr, tt.wantErr)
			assert.Empty(t, res.stdout)
		})
	}
}

func TestCompare_InvalidConfig(t *testing.T) {
	t.Setenv("UPLOAD_MAX_CONCURRENT", "0")

	res := run(t, "compare")
	assert.Equal(t, 2, res.code)
	assert.Contains(t, res.stderr, "UPLOAD_MAX_CONCURRENT")
}

func TestLogFlags(t *testing.T) {
	dir := fixtures(t, newCSV, oldCSV)

	res := run(t, "--log-level", "debug", "--log-format", "json", "compare", "--output", "-",
		"--current", filepath.Join(dir, "new.csv"),
		"--previous", filepath.Join(dir, "old.csv"),
	)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stderr, `"msg":"snapshots compared"`)
	assert.Contains(t, res.stderr, `"msg":"snapshot loaded"`)
}

func TestUnknownCommand(t *testing.T) {
	res := run(t, "diff")
	assert.Equal(t, 2, res.code)
	assert.Contains(t, res.stderr, "unknown command")
}
