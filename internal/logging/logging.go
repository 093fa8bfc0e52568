package logging

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Fields are the structured key/value pairs attached to a log entry.
type Fields map[string]any

// Logger is a thin structured logging wrapper around logrus. Secret key material must never be passed as a field.
type Logger struct {
	logger *logrus.Logger
}

// NewLogger returns a logger writing text formatted entries of at least the given level to stderr.
func NewLogger(level logrus.Level) *Logger {
	logger := logrus.New()
	logger.SetLevel(level)
	return &Logger{logger}
}

// Wrap uses an existing logrus logger, keeping its output, formatter and level.
func Wrap(logger *logrus.Logger) *Logger {
	return &Logger{logger}
}

// NewLoggerTo returns a logger writing entries of at least the given level to out.
func NewLoggerTo(out io.Writer, level logrus.Level) *Logger {
	l := NewLogger(level)
	l.logger.SetOutput(out)
	return l
}

// NewNopLogger returns a logger discarding all entries.
func NewNopLogger() *Logger {
	return NewLoggerTo(io.Discard, logrus.PanicLevel)
}

// ParseLevel parses a logrus level name such as "info" or "trace".
func ParseLevel(name string) (logrus.Level, error) {
	return logrus.ParseLevel(name)
}

// With returns a logger that attaches the given fields to every entry.
func (l *Logger) With(fields Fields) *Entry {
	return &Entry{l.logger.WithFields(logrus.Fields(fields))}
}

func (l *Logger) Trace(msg string, fields Fields) {
	l.logger.WithFields(logrus.Fields(fields)).Trace(msg)
}

func (l *Logger) Debug(msg string, fields Fields) {
	l.logger.WithFields(logrus.Fields(fields)).Debug(msg)
}

func (l *Logger) Info(msg string, fields Fields) {
	l.logger.WithFields(logrus.Fields(fields)).Info(msg)
}

func (l *Logger) Warn(msg string, fields Fields) {
	l.logger.WithFields(logrus.Fields(fields)).Warn(msg)
}

func (l *Logger) Error(msg string, fields Fields) {
	l.logger.WithFields(logrus.Fields(fields)).Error(msg)
}

// Entry is a logger with a fixed set of fields attached.
type Entry struct {
	entry *logrus.Entry
}

func (e *Entry) Info(msg string, fields Fields) {
	e.entry.WithFields(logrus.Fields(fields)).Info(msg)
}
