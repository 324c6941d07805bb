package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/adrg/xdg"
	"go.uber.org/zap/zapcore"
)

// TestVerboseModeShowsDebugMessages tests that --verbose shows debug messages
func TestVerboseModeShowsDebugMessages(t *testing.T) {
	buf := new(bytes.Buffer)
	log := New(buf)

	// Debug should not appear at Info level
	log.Debug("debug message before verbose")
	if strings.Contains(buf.String(), "debug message before verbose") {
		t.Error("Debug message should not appear at Info level")
	}

	log.SetVerbose(true)

	log.Debug("debug message after verbose")
	if !strings.Contains(buf.String(), "debug message after verbose") {
		t.Error("Debug message should appear when verbose is enabled")
	}
}

// TestQuietModeSuppressesInfoMessages tests that --quiet suppresses info messages
func TestQuietModeSuppressesInfoMessages(t *testing.T) {
	buf := new(bytes.Buffer)
	log := New(buf)

	log.Info("info message before quiet")
	if !strings.Contains(buf.String(), "info message before quiet") {
		t.Error("Info message should appear at Info level")
	}

	buf.Reset()
	log.SetQuiet(true)

	log.Info("info message after quiet")
	if strings.Contains(buf.String(), "info message after quiet") {
		t.Error("Info message should not appear when quiet is enabled")
	}

	// Error should still appear in quiet mode
	log.Error("error message in quiet mode")
	if !strings.Contains(buf.String(), "error message in quiet mode") {
		t.Error("Error message should appear even in quiet mode")
	}
}

// TestLogLevelHierarchy tests that log levels work correctly
func TestLogLevelHierarchy(t *testing.T) {
	tests := []struct {
		name        string
		level       Level
		expectDebug bool
		expectInfo  bool
		expectWarn  bool
		expectError bool
	}{
		{"Debug level shows all", LevelDebug, true, true, true, true},
		{"Info level hides debug", LevelInfo, false, true, true, true},
		{"Warn level hides debug and info", LevelWarn, false, false, true, true},
		{"Error level shows only errors", LevelError, false, false, false, true},
		{"Quiet level shows nothing", LevelQuiet, false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := new(bytes.Buffer)
			log := New(buf)
			log.SetLevel(tt.level)

			log.Debug("debug")
			log.Info("info")
			log.Warn("warn")
			log.Error("error")

			output := buf.String()

			if tt.expectDebug != strings.Contains(output, "debug") {
				t.Errorf("Debug: expected %v, got %v", tt.expectDebug, strings.Contains(output, "debug"))
			}
			if tt.expectInfo != strings.Contains(output, "info") {
				t.Errorf("Info: expected %v, got %v", tt.expectInfo, strings.Contains(output, "info"))
			}
			if tt.expectWarn != strings.Contains(output, "warn") {
				t.Errorf("Warn: expected %v, got %v", tt.expectWarn, strings.Contains(output, "warn"))
			}
			if tt.expectError != strings.Contains(output, "error") {
				t.Errorf("Error: expected %v, got %v", tt.expectError, strings.Contains(output, "error"))
			}
		})
	}
}

// TestTerminalOutputIsBareMessage checks no level or timestamp reaches the terminal
func TestTerminalOutputIsBareMessage(t *testing.T) {
	buf := new(bytes.Buffer)
	log := New(buf)

	log.Info("pushed %d refs to %s", 2, "heroku")

	if got := buf.String(); got != "pushed 2 refs to heroku\n" {
		t.Errorf("unexpected terminal output %q", got)
	}
}

func TestSetVerboseAndQuietLevels(t *testing.T) {
	log := New(new(bytes.Buffer))

	log.SetVerbose(true)
	if log.level.Level() != zapcore.DebugLevel {
		t.Errorf("SetVerbose(true) should set level to Debug, got %v", log.level.Level())
	}

	log.SetQuiet(true)
	if log.level.Level() != zapcore.ErrorLevel {
		t.Errorf("SetQuiet(true) should set level to Error, got %v", log.level.Level())
	}

	log.SetVerbose(false)
	if log.level.Level() != zapcore.ErrorLevel {
		t.Errorf("SetVerbose(false) should leave level unchanged, got %v", log.level.Level())
	}
}

// TestFileLogging checks the file core writes timestamped lines under the state home
func TestFileLogging(t *testing.T) {
	stateHome := t.TempDir()
	t.Setenv("XDG_STATE_HOME", stateHome)
	xdg.Reload()
	defer xdg.Reload()

	log := New(new(bytes.Buffer))
	if err := log.EnableFileLogging(); err != nil {
		t.Fatalf("EnableFileLogging() error = %v", err)
	}
	log.Warn("remote %s added", "heroku")
	log.Close()

	data, err := os.ReadFile(filepath.Join(stateHome, "hkpush", "logs", "hkpush.log"))
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), "WARN") || !strings.Contains(string(data), "remote heroku added") {
		t.Errorf("unexpected log file content %q", data)
	}
}

// TestPackageLevelFunctions tests the package-level convenience functions
func TestPackageLevelFunctions(t *testing.T) {
	// Reset default logger for testing by resetting the once and defaultLogger
	once = sync.Once{}
	defaultLogger = nil

	buf := new(bytes.Buffer)
	once.Do(func() {
		defaultLogger = New(buf)
		defaultLogger.SetLevel(LevelDebug)
	})

	Debug("debug test")
	Info("info test")
	Warn("warn test")
	Error("error test")

	output := buf.String()
	for _, want := range []string{"debug test", "info test", "warn test", "error test"} {
		if !strings.Contains(output, want) {
			t.Errorf("package-level output missing %q", want)
		}
	}
}
