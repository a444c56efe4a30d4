// Package testutil provides test helpers shared by computefp packages.
package testutil

import (
	"sync"

	"github.com/turtacn/computefp/internal/infrastructure/monitoring/logging"
)

// LogEntry is one message captured by a RecordingLogger.
type LogEntry struct {
	Level   string
	Logger  string
	Message string
	Fields  map[string]interface{}
}

type logBuffer struct {
	mu      sync.Mutex
	entries []LogEntry
}

// RecordingLogger implements logging.Logger and keeps every entry in
// memory.  Children created with With or Named write to the same buffer.
type RecordingLogger struct {
	buf    *logBuffer
	name   string
	fields []logging.Field
}

// NewRecordingLogger returns an empty RecordingLogger.
func NewRecordingLogger() *RecordingLogger {
	return &RecordingLogger{buf: &logBuffer{}}
}

func (l *RecordingLogger) log(level, msg string, fields []logging.Field) {
	merged := make(map[string]interface{}, len(l.fields)+len(fields))
	for _, f := range l.fields {
		merged[f.Key] = f.Value
	}
	for _, f := range fields {
		merged[f.Key] = f.Value
	}
	l.buf.mu.Lock()
	defer l.buf.mu.Unlock()
	l.buf.entries = append(l.buf.entries, LogEntry{Level: level, Logger: l.name, Message: msg, Fields: merged})
}

func (l *RecordingLogger) Debug(msg string, fields ...logging.Field) { l.log(logging.LevelDebug, msg, fields) }
func (l *RecordingLogger) Info(msg string, fields ...logging.Field)  { l.log(logging.LevelInfo, msg, fields) }
func (l *RecordingLogger) Warn(msg string, fields ...logging.Field)  { l.log(logging.LevelWarn, msg, fields) }
func (l *RecordingLogger) Error(msg string, fields ...logging.Field) { l.log(logging.LevelError, msg, fields) }

// Fatal records the entry without exiting.
func (l *RecordingLogger) Fatal(msg string, fields ...logging.Field) { l.log("fatal", msg, fields) }

func (l *RecordingLogger) With(fields ...logging.Field) logging.Logger {
	child := *l
	child.fields = append(append([]logging.Field(nil), l.fields...), fields...)
	return &child
}

func (l *RecordingLogger) Named(name string) logging.Logger {
	child := *l
	if l.name == "" {
		child.name = name
	} else {
		child.name = l.name + "." + name
	}
	return &child
}

func (l *RecordingLogger) Sync() error { return nil }

// Entries returns a copy of everything logged so far.
func (l *RecordingLogger) Entries() []LogEntry {
	l.buf.mu.Lock()
	defer l.buf.mu.Unlock()
	return append([]LogEntry(nil), l.buf.entries...)
}

// Find returns the first entry with the given level and message.
func (l *RecordingLogger) Find(level, msg string) (LogEntry, bool) {
	for _, e := range l.Entries() {
		if e.Level == level && e.Message == msg {
			return e, true
		}
	}
	return LogEntry{}, false
}

// HasMessage reports whether an entry with level and msg was logged.
func (l *RecordingLogger) HasMessage(level, msg string) bool {
	_, ok := l.Find(level, msg)
	return ok
}

//Personal.AI order the ending
