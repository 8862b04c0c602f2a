// Package config provides centralized configuration management for servicediff.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables; the CLI may
// override individual values with flags after loading.
type Config struct {
	Snapshot SnapshotConfig
	Report   ReportConfig
	Server   ServerConfig
	Upload   UploadConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

// SnapshotConfig names the two inventories to compare.
type SnapshotConfig struct {
	// CurrentPath is this month's snapshot: a path, storage URL or
	// postgres://host/db#table (default: new.csv)
	CurrentPath string `env:"CURRENT_SNAPSHOT" envAlt:"NEW_SNAPSHOT" default:"new.csv"`

	// PreviousPath is last month's snapshot (default: old.csv)
	PreviousPath string `env:"PREVIOUS_SNAPSHOT" envAlt:"OLD_SNAPSHOT" default:"old.csv"`

	// Sheet selects the worksheet of .xlsx snapshots (default: first sheet)
	Sheet string `env:"SNAPSHOT_SHEET"`

	// OrderBy sorts rows of Postgres snapshots by this column
	OrderBy string `env:"SNAPSHOT_PG_ORDER_BY"`
}

// ReportConfig controls where and how the report is written.
type ReportConfig struct {
	// OutputPath is overwritten on every run (default: service_comparison_report.txt)
	OutputPath string `env:"REPORT_OUTPUT" default:"service_comparison_report.txt"`

	// Format is text, json or html (default: text)
	Format string `env:"REPORT_FORMAT" default:"text"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading request body (default: 30s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"30s"`

	// WriteTimeout is the maximum duration for writing response (default: 60s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"60s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// UploadConfig holds settings for snapshots uploaded over HTTP.
type UploadConfig struct {
	// MaxFileSize is the maximum size of a whole request in bytes (default: 64MB)
	MaxFileSize int64 `env:"UPLOAD_MAX_FILE_SIZE" default:"67108864"`

	// MaxConcurrent is the maximum number of parallel comparisons (default: 4)
	MaxConcurrent int `env:"UPLOAD_MAX_CONCURRENT" default:"4"`

	// MaxWaitTime is how long a request waits for a comparison slot (default: 10s)
	MaxWaitTime time.Duration `env:"UPLOAD_MAX_WAIT_TIME" default:"10s"`
}

// SecurityConfig holds settings for the HTTP surface.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of proxy CIDRs whose
	// X-Real-IP / X-Forwarded-For headers are believed
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// RequireAPIKey rejects requests without a valid X-API-Key (default: false)
	RequireAPIKey bool `env:"REQUIRE_API_KEY" default:"false"`

	// APIKeys is a comma-separated list of accepted keys
	APIKeys []string `env:"API_KEYS"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
