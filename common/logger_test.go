package common

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestSeverityString(t *testing.T) {
	tests := []struct {
		severity Severity
		expected string
	}{
		{SeverityDebug, "DEBUG"},
		{SeverityInfo, "INFO"},
		{SeverityWarning, "WARNING"},
		{SeverityError, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			got := tt.severity.String()
			if got != tt.expected {
				t.Errorf("Severity.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestNewLogrusLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogrusLogger(&buf, SeverityInfo)
	if logger == nil {
		t.Fatal("NewLogrusLogger() returned nil")
	}
}

func TestLogrusLogger_Log(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogrusLogger(&buf, SeverityDebug)

	tests := []struct {
		name     string
		severity Severity
		message  string
	}{
		{"Debug", SeverityDebug, "debug message"},
		{"Info", SeverityInfo, "info message"},
		{"Warning", SeverityWarning, "warning message"},
		{"Error", SeverityError, "error message"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			logger.Log(tt.severity, tt.message)

			output := buf.String()
			if !strings.Contains(output, tt.message) {
				t.Errorf("Log output should contain %q, got: %s", tt.message, output)
			}
			if !strings.Contains(strings.ToLower(output), strings.ToLower(tt.severity.String())) {
				t.Errorf("Log output should contain severity %q, got: %s", tt.severity.String(), output)
			}
		})
	}
}

func TestLogrusLogger_Logf(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogrusLogger(&buf, SeverityInfo)

	logger.Logf(SeverityInfo, "formatted %s %d", "test", 123)

	output := buf.String()
	if !strings.Contains(output, "formatted test 123") {
		t.Errorf("Logf output should contain formatted message, got: %s", output)
	}
}

func TestLogrusLogger_Error(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogrusLogger(&buf, SeverityInfo)

	testErr := errors.New("test error")
	logger.Error(testErr)

	output := buf.String()
	if !strings.Contains(output, "test error") {
		t.Errorf("Error output should contain error message, got: %s", output)
	}

	buf.Reset()
	logger.Error(nil)
	if buf.Len() != 0 {
		t.Errorf("Error(nil) should not log anything, got: %s", buf.String())
	}
}

func TestLogrusLogger_ConvenienceMethods(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogrusLogger(&buf, SeverityDebug)

	tests := []struct {
		name    string
		logFunc func(string)
		message string
	}{
		{"Debug", logger.Debug, "debug test"},
		{"Info", logger.Info, "info test"},
		{"Warning", logger.Warning, "warning test"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.logFunc(tt.message)

			if !strings.Contains(buf.String(), tt.message) {
				t.Errorf("Log output should contain %q, got: %s", tt.message, buf.String())
			}
		})
	}
}

func TestLogrusLogger_MinLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogrusLogger(&buf, SeverityWarning)

	logger.Debug("debug message")
	logger.Info("info message")

	if buf.Len() != 0 {
		t.Errorf("Debug and Info should not be logged when minLevel is Warning, got: %s", buf.String())
	}

	logger.Warning("warning message")

	if !strings.Contains(buf.String(), "warning message") {
		t.Errorf("Warning should be logged, got: %s", buf.String())
	}
}

func TestNoOpLogger(t *testing.T) {
	logger := NewNoOpLogger()
	if logger == nil {
		t.Fatal("NewNoOpLogger() returned nil")
	}

	logger.Log(SeverityInfo, "test")
	logger.Logf(SeverityInfo, "test %s", "formatted")
	logger.Error(errors.New("test error"))
	logger.Debug("debug")
	logger.Info("info")
	logger.Warning("warning")
}
