package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInit(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{ConfigDir: configDir}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	logDir := filepath.Join(configDir, "logs")
	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		t.Errorf("Log directory was not created: %s", logDir)
	}
	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}

	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message", "habit_id", 1)
	Error("Test error message")
}

func TestInitWritesToLogFile(t *testing.T) {
	configDir := t.TempDir()

	if err := Init(Config{ConfigDir: configDir, Level: "info"}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	Info("habit created", "name", "Reading")
	Debug("filtered out")

	data, err := os.ReadFile(filepath.Join(configDir, "logs", "habitlog.log"))
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "habit created") {
		t.Errorf("log file missing info line: %q", content)
	}
	if !strings.Contains(content, "run=") {
		t.Errorf("log line missing run id: %q", content)
	}
	if strings.Contains(content, "filtered out") {
		t.Errorf("debug line should be filtered at info level: %q", content)
	}
}

func TestInitInvalidLevel(t *testing.T) {
	if err := Init(Config{ConfigDir: t.TempDir(), Level: "loud"}); err == nil {
		t.Error("Init() with unknown level should fail")
	}
}

func TestInitDebugMode(t *testing.T) {
	if err := Init(Config{Debug: true, Level: "error", ConfigDir: t.TempDir()}); err != nil {
		t.Fatalf("Failed to initialize logger in debug mode: %v", err)
	}
	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}
	Debug("Test debug message in debug mode")
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	Logger = nil

	// These should not panic when Logger is nil
	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")
}
