package log

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
)

// Level is the minimum severity a logger emits.
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

// String returns the lowercase name of the level.
func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "debug"
	case InfoLevel:
		return "info"
	case WarnLevel:
		return "warn"
	case ErrorLevel:
		return "error"
	default:
		return "unknown"
	}
}

// ParseLevel converts a level name into a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DebugLevel, nil
	case "info", "":
		return InfoLevel, nil
	case "warn", "warning":
		return WarnLevel, nil
	case "error":
		return ErrorLevel, nil
	default:
		return InfoLevel, fmt.Errorf("log: unknown level %q", s)
	}
}

func (l Level) slog() slog.Level {
	switch l {
	case DebugLevel:
		return slog.LevelDebug
	case WarnLevel:
		return slog.LevelWarn
	case ErrorLevel:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Logger is the logging interface handed to minthook components.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// With returns a child logger that carries the given fields on every entry.
	With(fields ...Field) Logger
}

type baseLogger struct {
	sl    *slog.Logger
	level *slog.LevelVar
}

// Option configures a logger built by NewLogger.
type Option func(*options)

type options struct {
	level  Level
	format string
	out    io.Writer
}

// WithLevel sets the minimum level.
func WithLevel(l Level) Option { return func(o *options) { o.level = l } }

// WithFormat selects "text" or "json" output.
func WithFormat(format string) Option { return func(o *options) { o.format = format } }

// WithOutput directs log output to w instead of stderr.
func WithOutput(w io.Writer) Option { return func(o *options) { o.out = w } }

// NewLogger builds a Logger. Defaults: info level, text format, stderr.
func NewLogger(opts ...Option) Logger {
	o := options{level: InfoLevel, format: "text", out: os.Stderr}
	for _, fn := range opts {
		fn(&o)
	}
	lv := new(slog.LevelVar)
	lv.Set(o.level.slog())
	hopts := &slog.HandlerOptions{Level: lv}
	var h slog.Handler
	if o.format == "json" {
		h = slog.NewJSONHandler(o.out, hopts)
	} else {
		h = slog.NewTextHandler(o.out, hopts)
	}
	return &baseLogger{sl: slog.New(h), level: lv}
}

// Config holds the logging settings exposed through configuration.
type Config struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"`
}

// ApplyConfig builds a Logger from a Config. Unknown levels are an error;
// unknown formats fall back to text.
func ApplyConfig(cfg *Config) (Logger, error) {
	lvl, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	format := cfg.Format
	if format != "json" {
		format = "text"
	}
	return NewLogger(WithLevel(lvl), WithFormat(format)), nil
}

func (b *baseLogger) Debug(msg string, fields ...Field) { b.sl.Debug(msg, attrs(fields)...) }
func (b *baseLogger) Info(msg string, fields ...Field)  { b.sl.Info(msg, attrs(fields)...) }
func (b *baseLogger) Warn(msg string, fields ...Field)  { b.sl.Warn(msg, attrs(fields)...) }
func (b *baseLogger) Error(msg string, fields ...Field) { b.sl.Error(msg, attrs(fields)...) }

func (b *baseLogger) With(fields ...Field) Logger {
	return &baseLogger{sl: b.sl.With(attrs(fields)...), level: b.level}
}

func attrs(fields []Field) []any {
	out := make([]any, 0, len(fields))
	for _, f := range fields {
		out = append(out, slog.Any(f.Key, f.Value))
	}
	return out
}

// RedirectStdLog routes standard-library log output through logger at info
// level. Pebble and net/http emit through the standard logger.
func RedirectStdLog(logger Logger) {
	log.SetFlags(0)
	log.SetOutput(stdLogWriter{logger: logger})
}

type stdLogWriter struct{ logger Logger }

func (w stdLogWriter) Write(p []byte) (int, error) {
	w.logger.Info(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}
