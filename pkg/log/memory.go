package log

import "sync"

// NoopLogger discards everything. It is the default when no logger is injected.
type NoopLogger struct{}

// NewNoopLogger creates a new no-op logger.
func NewNoopLogger() *NoopLogger {
	return &NoopLogger{}
}

func (NoopLogger) Debug(msg string, fields ...Field) {}
func (NoopLogger) Info(msg string, fields ...Field)  {}
func (NoopLogger) Warn(msg string, fields ...Field)  {}
func (NoopLogger) Error(msg string, fields ...Field) {}

// Entry is one event captured by a RecordingLogger.
type Entry struct {
	Level  string
	Msg    string
	Fields []Field
}

// Field returns the value of the named field, or nil.
func (e Entry) Field(key string) interface{} {
	for _, f := range e.Fields {
		if f.Key == key {
			return f.Value
		}
	}
	return nil
}

// RecordingLogger keeps every event in memory. Safe for concurrent use.
type RecordingLogger struct {
	mu      sync.Mutex
	entries []Entry
}

// NewRecordingLogger creates an empty RecordingLogger.
func NewRecordingLogger() *RecordingLogger {
	return &RecordingLogger{}
}

func (r *RecordingLogger) Debug(msg string, fields ...Field) { r.add("debug", msg, fields) }
func (r *RecordingLogger) Info(msg string, fields ...Field)  { r.add("info", msg, fields) }
func (r *RecordingLogger) Warn(msg string, fields ...Field)  { r.add("warn", msg, fields) }
func (r *RecordingLogger) Error(msg string, fields ...Field) { r.add("error", msg, fields) }

// Entries returns a copy of the captured events in order.
func (r *RecordingLogger) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Entry(nil), r.entries...)
}

// Find returns the first event with the given message.
func (r *RecordingLogger) Find(msg string) (Entry, bool) {
	for _, e := range r.Entries() {
		if e.Msg == msg {
			return e, true
		}
	}
	return Entry{}, false
}

func (r *RecordingLogger) add(level, msg string, fields []Field) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Level: level, Msg: msg, Fields: append([]Field(nil), fields...)})
}
