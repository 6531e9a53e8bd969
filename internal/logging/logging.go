// Package logging provides structured logging for hostscan using Go's
// slog package. It mirrors the text/JSON, level-configurable logger the
// rest of the ambient stack expects, with domain helpers for the three
// phases of a scan: probing, banner analysis, and catalogue loading.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

const (
	logDirPerm  = 0o750
	logFilePerm = 0o600
)

// Level is the available log levels.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Format is the available log output formats.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Config holds logging configuration.
type Config struct {
	Level     Level  `yaml:"level" json:"level"`
	Format    Format `yaml:"format" json:"format"`
	Output    string `yaml:"output" json:"output"`
	AddSource bool   `yaml:"add_source" json:"add_source"`
}

// DefaultConfig returns a default logging configuration.
func DefaultConfig() Config {
	return Config{Level: LevelInfo, Format: FormatText, Output: "stdout"}
}

// Logger wraps slog.Logger with hostscan-specific helpers.
type Logger struct {
	*slog.Logger
	config Config
}

// New creates a structured logger from the given configuration.
func New(cfg Config) (*Logger, error) {
	var level slog.Level
	switch strings.ToLower(string(cfg.Level)) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var writer io.Writer
	switch cfg.Output {
	case "", "stdout":
		writer = os.Stdout
	case "stderr":
		writer = os.Stderr
	default:
		if err := os.MkdirAll(filepath.Dir(cfg.Output), logDirPerm); err != nil {
			return nil, err
		}
		file, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePerm)
		if err != nil {
			return nil, err
		}
		writer = file
	}

	opts := &slog.HandlerOptions{Level: level, AddSource: cfg.AddSource}

	var handler slog.Handler
	if cfg.Format == FormatJSON {
		handler = slog.NewJSONHandler(writer, opts)
	} else {
		handler = slog.NewTextHandler(writer, opts)
	}

	return &Logger{Logger: slog.New(handler), config: cfg}, nil
}

// NewDefault creates a logger with default configuration.
func NewDefault() *Logger {
	l, _ := New(DefaultConfig())
	return l
}

// WithFields returns a logger with additional structured fields attached.
func (l *Logger) WithFields(fields ...any) *Logger {
	return &Logger{Logger: l.With(fields...), config: l.config}
}

// WithComponent tags the logger with a component name.
func (l *Logger) WithComponent(component string) *Logger {
	return l.WithFields("component", component)
}

// WithTarget tags the logger with a target address.
func (l *Logger) WithTarget(target string) *Logger {
	return l.WithFields("target", target)
}

// InfoProbe logs a probe-phase info message (task queue runner, scanner family).
func (l *Logger) InfoProbe(msg, target string, fields ...any) {
	l.Info(msg, append([]any{"target", target}, fields...)...)
}

// ErrorProbe logs a probe-phase error.
func (l *Logger) ErrorProbe(msg, target string, err error, fields ...any) {
	l.Error(msg, append([]any{"target", target, "error", err}, fields...)...)
}

// InfoAnalyze logs a banner-analysis-phase info message (tokenizer/matcher/OS identifier).
func (l *Logger) InfoAnalyze(msg, target string, fields ...any) {
	l.Info(msg, append([]any{"target", target}, fields...)...)
}

// ErrorAnalyze logs a banner-analysis-phase error.
func (l *Logger) ErrorAnalyze(msg, target string, err error, fields ...any) {
	l.Error(msg, append([]any{"target", target, "error", err}, fields...)...)
}

// InfoLoad logs a data-loader info message.
func (l *Logger) InfoLoad(msg string, fields ...any) {
	l.Info(msg, append([]any{"component", "loader"}, fields...)...)
}

// ErrorLoad logs a data-loader error.
func (l *Logger) ErrorLoad(msg string, err error, fields ...any) {
	l.Error(msg, append([]any{"component", "loader", "error", err}, fields...)...)
}

var defaultLogger = NewDefault()

// SetDefault replaces the package-level default logger.
func SetDefault(l *Logger) { defaultLogger = l }

// Default returns the package-level default logger.
func Default() *Logger { return defaultLogger }

func Debug(msg string, fields ...any) { defaultLogger.Debug(msg, fields...) }
func Info(msg string, fields ...any)  { defaultLogger.Info(msg, fields...) }
func Warn(msg string, fields ...any)  { defaultLogger.Warn(msg, fields...) }
func Error(msg string, fields ...any) { defaultLogger.Error(msg, fields...) }

func InfoProbe(msg, target string, fields ...any)             { defaultLogger.InfoProbe(msg, target, fields...) }
func ErrorProbe(msg, target string, err error, fields ...any) { defaultLogger.ErrorProbe(msg, target, err, fields...) }
func InfoAnalyze(msg, target string, fields ...any)           { defaultLogger.InfoAnalyze(msg, target, fields...) }
func ErrorAnalyze(msg, target string, err error, fields ...any) {
	defaultLogger.ErrorAnalyze(msg, target, err, fields...)
}
func InfoLoad(msg string, fields ...any)             { defaultLogger.InfoLoad(msg, fields...) }
func ErrorLoad(msg string, err error, fields ...any) { defaultLogger.ErrorLoad(msg, err, fields...) }
