package testutil

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
)

// NopLogger returns a logger that discards all output
func NopLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// LogRecord is one decoded JSON log line
type LogRecord map[string]any

// Msg returns the record's message
func (r LogRecord) Msg() string {
	s, _ := r[slog.MessageKey].(string)
	return s
}

// LogCapture collects debug-level JSON log output for assertions
type LogCapture struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

// CaptureLogger returns a logger writing into a new LogCapture
func CaptureLogger() (*slog.Logger, *LogCapture) {
	c := &LogCapture{}
	return slog.New(slog.NewJSONHandler(c, &slog.HandlerOptions{Level: slog.LevelDebug})), c
}

func (c *LogCapture) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.Write(p)
}

// Records decodes every line written so far
func (c *LogCapture) Records() []LogRecord {
	c.mu.Lock()
	data := append([]byte(nil), c.buf.Bytes()...)
	c.mu.Unlock()

	var out []LogRecord
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		var rec LogRecord
		if err := json.Unmarshal(scanner.Bytes(), &rec); err == nil {
			out = append(out, rec)
		}
	}
	return out
}

// Find returns the first record with the given message, or nil
func (c *LogCapture) Find(msg string) LogRecord {
	for _, rec := range c.Records() {
		if rec.Msg() == msg {
			return rec
		}
	}
	return nil
}
