package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInit(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{Debug: false, ConfigDir: configDir}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}
	t.Cleanup(func() { Close() })

	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}
	want := filepath.Join(configDir, "logs", "dayshape.log")
	if Path() != want {
		t.Errorf("Path() = %q, want %q", Path(), want)
	}

	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message", "records", 3)
	Error("Test error message")

	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("expected warn output to create the log file: %v", err)
	}
	if strings.Contains(string(data), "Test info message") {
		t.Error("info records should be filtered below debug mode")
	}
	if !strings.Contains(string(data), "Test warning message") {
		t.Error("warn record missing from the log file")
	}
}

func TestInitDebugMode_Mirrors(t *testing.T) {
	var mirror bytes.Buffer
	if err := Init(Config{Debug: true, ConfigDir: t.TempDir(), Mirror: &mirror}); err != nil {
		t.Fatalf("Failed to initialize logger in debug mode: %v", err)
	}
	t.Cleanup(func() { Close() })

	Debug("grouping history", "records", 7)

	if !strings.Contains(mirror.String(), "grouping history") {
		t.Errorf("debug record not mirrored, got %q", mirror.String())
	}
}

func TestClose(t *testing.T) {
	if err := Init(Config{ConfigDir: t.TempDir()}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if Logger != nil || Path() != "" {
		t.Error("Close should reset the logger")
	}
	if err := Close(); err != nil {
		t.Errorf("second Close = %v, want nil", err)
	}
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	Logger = nil

	// These must not panic when Logger is nil
	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")
}
