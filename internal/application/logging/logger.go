// Package logging provides the context-carried leveled logger the core
// depends on (spec.md §7: "logs at INFO for each action start/end; WARN on
// precondition failures; ERROR on fatal conditions").
package logging

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// Level is a log severity.
type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// severity ranks levels for minimum-level filtering; higher is louder.
var severity = map[Level]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
}

// ParseLevel maps config.LoggingConfig.Level's lowercase string ("debug",
// "info", "warn", "error") onto a Level, defaulting to LevelInfo for an
// unrecognized value.
func ParseLevel(s string) Level {
	switch s {
	case "debug":
		return LevelDebug
	case "warn":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// ContainerLogger is the leveled logging capability the core calls.
type ContainerLogger interface {
	Log(level Level, message string, fields map[string]any)
}

type contextKey int

const loggerKey contextKey = iota

// WithLogger attaches a logger to ctx.
func WithLogger(ctx context.Context, logger ContainerLogger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext extracts the logger from ctx, falling back to a no-op logger.
func FromContext(ctx context.Context) ContainerLogger {
	if l, ok := ctx.Value(loggerKey).(ContainerLogger); ok {
		return l
	}
	return &noOpLogger{}
}

// Info, Warn, and Error are convenience wrappers over FromContext(ctx).Log.
func Info(ctx context.Context, message string, fields map[string]any) {
	FromContext(ctx).Log(LevelInfo, message, fields)
}

func Warn(ctx context.Context, message string, fields map[string]any) {
	FromContext(ctx).Log(LevelWarn, message, fields)
}

func Error(ctx context.Context, message string, fields map[string]any) {
	FromContext(ctx).Log(LevelError, message, fields)
}

type noOpLogger struct{}

func (l *noOpLogger) Log(Level, string, map[string]any) {}

// jsonLine is one emitted log record.
type jsonLine struct {
	Timestamp string         `json:"ts"`
	Level     Level          `json:"level"`
	Message   string         `json:"msg"`
	Fields    map[string]any `json:"fields,omitempty"`
}

// StdoutLogger writes newline-delimited JSON log records to an io.Writer,
// the same wire-simple shape the teacher's fleet emits to stdout for the
// daemon's log aggregator to pick up. Records below minLevel are dropped.
type StdoutLogger struct {
	out      io.Writer
	clock    func() time.Time
	minLevel Level
}

// NewStdoutLogger returns a logger that writes to w (os.Stdout in
// production), emitting only records at or above minLevel.
func NewStdoutLogger(w io.Writer, minLevel Level) *StdoutLogger {
	if w == nil {
		w = os.Stdout
	}
	return &StdoutLogger{out: w, clock: time.Now, minLevel: minLevel}
}

func (l *StdoutLogger) Log(level Level, message string, fields map[string]any) {
	if severity[level] < severity[l.minLevel] {
		return
	}
	line := jsonLine{
		Timestamp: l.clock().UTC().Format(time.RFC3339Nano),
		Level:     level,
		Message:   message,
		Fields:    fields,
	}
	encoded, err := json.Marshal(line)
	if err != nil {
		fmt.Fprintf(l.out, "%s [%s] %s (unmarshalable fields: %v)\n", line.Timestamp, level, message, err)
		return
	}
	fmt.Fprintln(l.out, string(encoded))
}
