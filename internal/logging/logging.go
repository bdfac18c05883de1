// Package logging builds the charmbracelet loggers used across cardquest.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// EnvLevel names the environment variable that overrides the log level.
const EnvLevel = "CARDQUEST_LOG_LEVEL"

// DefaultLevel is used when neither a flag nor the environment sets one.
const DefaultLevel = "info"

// New creates a timestamped logger writing to w.
// Unknown levels fall back to info.
func New(w io.Writer, level, prefix string) *log.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           lvl,
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// ResolveLevel picks the flag value, then the environment, then the default.
func ResolveLevel(flag string) string {
	if flag != "" {
		return strings.ToLower(flag)
	}
	if env := os.Getenv(EnvLevel); env != "" {
		return strings.ToLower(env)
	}
	return DefaultLevel
}

// OpenFile opens (appending) a log file, creating parent directories.
// A leading ~ is expanded to the home directory.
func OpenFile(path string) (*os.File, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("logging: cannot expand home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("logging: cannot create directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logging: cannot open %s: %w", path, err)
	}
	return f, nil
}
