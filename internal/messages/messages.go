// Package messages collects the user-facing messages generated while loading
// and drawing objects. The viewer shows how many are pending and their worst
// severity.
package messages

import (
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"
)

// Type is the severity of a message.
type Type int

const (
	Information Type = iota
	Warning
	Error
	Critical
)

func (t Type) String() string {
	switch t {
	case Information:
		return "information"
	case Warning:
		return "warning"
	case Error:
		return "error"
	case Critical:
		return "critical"
	default:
		return "unknown"
	}
}

// Message is a single log entry.
type Message struct {
	Type         Type
	FileNotFound bool
	Text         string
}

// Log is an append-only message list. Every message is mirrored to zap.
type Log struct {
	mu       sync.Mutex
	messages []Message
	logger   *zap.Logger
}

// NewLog creates a message log that mirrors entries to l. A nil l discards them.
func NewLog(l *zap.Logger) *Log {
	if l == nil {
		l = zap.NewNop()
	}
	return &Log{logger: l}
}

// AddMessage appends a message.
func (l *Log) AddMessage(t Type, fileNotFound bool, text string) {
	l.mu.Lock()
	l.messages = append(l.messages, Message{Type: t, FileNotFound: fileNotFound, Text: text})
	l.mu.Unlock()

	fields := []zap.Field{zap.Stringer("type", t)}
	if fileNotFound {
		fields = append(fields, zap.Bool("file_not_found", true))
	}
	switch t {
	case Information:
		l.logger.Info(text, fields...)
	case Warning:
		l.logger.Warn(text, fields...)
	default:
		l.logger.Error(text, fields...)
	}
}

// Messages returns a copy of the current messages.
func (l *Log) Messages() []Message {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Message, len(l.messages))
	copy(out, l.messages)
	return out
}

// Count returns the number of messages.
func (l *Log) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.messages)
}

// HasErrors reports whether any message is more severe than Information.
func (l *Log) HasErrors() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return HasErrors(l.messages)
}

// Clear removes all messages.
func (l *Log) Clear() {
	l.mu.Lock()
	l.messages = nil
	l.mu.Unlock()
}

// WriteTo writes one line per message to w, oldest first.
func (l *Log) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, m := range l.Messages() {
		n, err := fmt.Fprintln(w, m)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// String formats m as a log line.
func (m Message) String() string {
	if m.FileNotFound {
		return fmt.Sprintf("[%s] %s (file not found)", m.Type, m.Text)
	}
	return fmt.Sprintf("[%s] %s", m.Type, m.Text)
}

// HasErrors reports whether any of msgs is more severe than Information.
func HasErrors(msgs []Message) bool {
	for _, m := range msgs {
		if m.Type != Information {
			return true
		}
	}
	return false
}
