// Package testutil provides shared test doubles for rdkit-go: a recording
// logger and an in-memory librdkitcffi backed by a tracking heap.
package testutil

import (
	"context"
	"strings"
	"sync"

	"github.com/turtacn/rdkit-go/internal/infrastructure/monitoring/logging"
)

// LogMessage represents a single log entry captured by MockLogger.
type LogMessage struct {
	Level   string
	Message string
	Fields  []logging.Field
}

type logSink struct {
	mu       sync.Mutex
	messages []LogMessage
}

// MockLogger implements logging.Logger and records every entry.  Children
// created with With/Named/WithError share the parent's record.
type MockLogger struct {
	sink   *logSink
	fields []logging.Field
}

var _ logging.Logger = (*MockLogger)(nil)

// NewMockLogger creates a new MockLogger instance.
func NewMockLogger() *MockLogger {
	return &MockLogger{sink: &logSink{}}
}

func (m *MockLogger) log(level, msg string, fields []logging.Field) {
	all := make([]logging.Field, 0, len(m.fields)+len(fields))
	all = append(all, m.fields...)
	all = append(all, fields...)
	m.sink.mu.Lock()
	defer m.sink.mu.Unlock()
	m.sink.messages = append(m.sink.messages, LogMessage{Level: level, Message: msg, Fields: all})
}

func (m *MockLogger) Debug(msg string, fields ...logging.Field) { m.log("debug", msg, fields) }
func (m *MockLogger) Info(msg string, fields ...logging.Field)  { m.log("info", msg, fields) }
func (m *MockLogger) Warn(msg string, fields ...logging.Field)  { m.log("warn", msg, fields) }
func (m *MockLogger) Error(msg string, fields ...logging.Field) { m.log("error", msg, fields) }
func (m *MockLogger) Fatal(msg string, fields ...logging.Field) { m.log("fatal", msg, fields) }

func (m *MockLogger) With(fields ...logging.Field) logging.Logger {
	child := &MockLogger{sink: m.sink, fields: append(append([]logging.Field(nil), m.fields...), fields...)}
	return child
}

func (m *MockLogger) WithContext(ctx context.Context) logging.Logger {
	if id := logging.RequestIDFromContext(ctx); id != "" {
		return m.With(logging.String(logging.FieldRequestID, id))
	}
	return m
}

func (m *MockLogger) WithError(err error) logging.Logger {
	if err == nil {
		return m
	}
	return m.With(logging.Err(err))
}

func (m *MockLogger) Named(string) logging.Logger { return m }

func (m *MockLogger) Sync() error { return nil }

// GetMessages returns a copy of all logged messages.
func (m *MockLogger) GetMessages() []LogMessage {
	m.sink.mu.Lock()
	defer m.sink.mu.Unlock()
	return append([]LogMessage(nil), m.sink.messages...)
}

// Clear removes all logged messages.
func (m *MockLogger) Clear() {
	m.sink.mu.Lock()
	defer m.sink.mu.Unlock()
	m.sink.messages = nil
}

// HasMessage checks if a message with the given level and content was logged.
func (m *MockLogger) HasMessage(level, msg string) bool {
	for _, logged := range m.GetMessages() {
		if logged.Level == level && logged.Message == msg {
			return true
		}
	}
	return false
}

// HasMessageContaining is HasMessage with substring matching.
func (m *MockLogger) HasMessageContaining(level, substr string) bool {
	for _, logged := range m.GetMessages() {
		if logged.Level == level && strings.Contains(logged.Message, substr) {
			return true
		}
	}
	return false
}

// FieldValue returns the string value of key on the first message msg.
func (m *MockLogger) FieldValue(msg, key string) (string, bool) {
	for _, logged := range m.GetMessages() {
		if logged.Message != msg {
			continue
		}
		for _, f := range logged.Fields {
			if f.Key == key {
				return f.String, true
			}
		}
	}
	return "", false
}

//Personal.AI order the ending
