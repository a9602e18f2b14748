package common

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Severity represents log message severity levels
type Severity int

const (
	SeverityDebug Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "DEBUG"
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (s Severity) logrusLevel() logrus.Level {
	switch s {
	case SeverityDebug:
		return logrus.DebugLevel
	case SeverityInfo:
		return logrus.InfoLevel
	case SeverityWarning:
		return logrus.WarnLevel
	case SeverityError:
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// Logger interface defines the logging contract for the decoder and
// its client tooling
type Logger interface {
	// Log logs a message with the specified severity
	Log(severity Severity, msg string)

	// Logf logs a formatted message with the specified severity
	Logf(severity Severity, format string, args ...interface{})

	// Error logs an error
	Error(err error)

	// Debug logs a debug message
	Debug(msg string)

	// Info logs an info message
	Info(msg string)

	// Warning logs a warning message
	Warning(msg string)
}

// LogrusLogger implements Logger on top of sirupsen/logrus, the
// structured logger used across the rest of this stack's pack.
type LogrusLogger struct {
	entry *logrus.Entry
}

// NewLogrusLogger builds a Logger writing structured entries to w at
// minLevel and above.
func NewLogrusLogger(w io.Writer, minLevel Severity) *LogrusLogger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(minLevel.logrusLevel())
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return &LogrusLogger{entry: logrus.NewEntry(l)}
}

// NewFieldLogrusLogger wraps an existing logrus.Entry, letting callers
// attach fields (capture source, chosen resync offset, probe name)
// before handing the Logger to the decoding pipeline.
func NewFieldLogrusLogger(entry *logrus.Entry) *LogrusLogger {
	return &LogrusLogger{entry: entry}
}

// Log logs a message with the specified severity
func (l *LogrusLogger) Log(severity Severity, msg string) {
	l.entry.Log(severity.logrusLevel(), msg)
}

// Logf logs a formatted message with the specified severity
func (l *LogrusLogger) Logf(severity Severity, format string, args ...interface{}) {
	l.entry.Logf(severity.logrusLevel(), format, args...)
}

// Error logs an error
func (l *LogrusLogger) Error(err error) {
	if err != nil {
		l.entry.WithError(err).Error(err.Error())
	}
}

// Debug logs a debug message
func (l *LogrusLogger) Debug(msg string) { l.entry.Debug(msg) }

// Info logs an info message
func (l *LogrusLogger) Info(msg string) { l.entry.Info(msg) }

// Warning logs a warning message
func (l *LogrusLogger) Warning(msg string) { l.entry.Warn(msg) }

// NoOpLogger is a logger that doesn't log anything
type NoOpLogger struct{}

// NewNoOpLogger creates a new no-op logger
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

// Log does nothing
func (l *NoOpLogger) Log(severity Severity, msg string) {}

// Logf does nothing
func (l *NoOpLogger) Logf(severity Severity, format string, args ...interface{}) {}

// Error does nothing
func (l *NoOpLogger) Error(err error) {}

// Debug does nothing
func (l *NoOpLogger) Debug(msg string) {}

// Info does nothing
func (l *NoOpLogger) Info(msg string) {}

// Warning does nothing
func (l *NoOpLogger) Warning(msg string) {}
