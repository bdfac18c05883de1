package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "warn", "test")

	logger.Info("hidden")
	logger.Warn("shown", "key", "value")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message logged at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "key=value") {
		t.Errorf("warn message missing: %q", out)
	}
	if !strings.Contains(out, "test") {
		t.Errorf("prefix missing: %q", out)
	}
}

func TestNewUnknownLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "chatty", "")
	logger.Debug("debug")
	logger.Info("info")
	if strings.Contains(buf.String(), "debug") {
		t.Error("unknown level should fall back to info")
	}
	if !strings.Contains(buf.String(), "info") {
		t.Error("info should be logged")
	}
}

func TestResolveLevel(t *testing.T) {
	t.Setenv(EnvLevel, "DEBUG")
	if got := ResolveLevel("Error"); got != "error" {
		t.Errorf("ResolveLevel(flag) = %q, expected error", got)
	}
	if got := ResolveLevel(""); got != "debug" {
		t.Errorf("ResolveLevel(env) = %q, expected debug", got)
	}
	t.Setenv(EnvLevel, "")
	if got := ResolveLevel(""); got != DefaultLevel {
		t.Errorf("ResolveLevel() = %q, expected %q", got, DefaultLevel)
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "cardquest.log")
	f, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile() failed: %v", err)
	}
	f.Close()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("log file not created: %v", err)
	}
}
