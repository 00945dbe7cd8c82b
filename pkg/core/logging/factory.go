// ============================================================================
// mDW Rechner - Taschenrechner
// ============================================================================
//
// Package:     logging
// Description: Factory functions for creating loggers
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	slogmulti "github.com/samber/slog-multi"
)

var (
	defaultConfig   = DefaultLoggerConfig("")
	defaultConfigMu sync.RWMutex
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Service name, added to every record as "logger"
	ServiceName string

	// Log level (debug, info, warn, error)
	Level string

	// Output format
	Format string // "json" or "text" (default: text)

	// Console output (default: os.Stderr)
	Output io.Writer

	// Quiet disables console output, e.g. while a TUI owns the terminal
	Quiet bool

	// Additional outputs (log files)
	AdditionalOutputs []io.Writer
}

// DefaultLoggerConfig returns a default configuration
func DefaultLoggerConfig(serviceName string) LoggerConfig {
	return LoggerConfig{
		ServiceName: serviceName,
		Level:       "info",
		Format:      "text",
		Output:      os.Stderr,
	}
}

// Logger wraps slog.Logger with the service name it was created for
type Logger struct {
	*slog.Logger
	name string
	cfg  LoggerConfig
}

// NewLogger creates a logger fanning out to all configured outputs
func NewLogger(cfg LoggerConfig) *Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	var handlers []slog.Handler
	if !cfg.Quiet {
		out := cfg.Output
		if out == nil {
			out = os.Stderr
		}
		handlers = append(handlers, newHandler(cfg.Format, out, opts))
	}
	for _, w := range cfg.AdditionalOutputs {
		handlers = append(handlers, newHandler(cfg.Format, w, opts))
	}

	var handler slog.Handler
	switch len(handlers) {
	case 0:
		handler = slog.NewTextHandler(io.Discard, opts)
	case 1:
		handler = handlers[0]
	default:
		handler = slogmulti.Fanout(handlers...)
	}

	logger := slog.New(handler)
	if cfg.ServiceName != "" {
		logger = logger.With("logger", cfg.ServiceName)
	}

	return &Logger{
		Logger: logger,
		name:   cfg.ServiceName,
		cfg:    cfg,
	}
}

func newHandler(format string, w io.Writer, opts *slog.HandlerOptions) slog.Handler {
	if format == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// New creates a logger for name using the process-wide configuration
func New(name string) *Logger {
	defaultConfigMu.RLock()
	cfg := defaultConfig
	defaultConfigMu.RUnlock()

	cfg.ServiceName = name
	return NewLogger(cfg)
}

// Nop returns a logger that discards everything
func Nop() *Logger {
	return NewLogger(LoggerConfig{Quiet: true})
}

// Configure sets the process-wide configuration used by New. When filePath
// is set, records are also appended to that file; the returned closer
// closes it.
func Configure(cfg LoggerConfig, filePath string) (io.Closer, error) {
	var closer io.Closer = nopCloser{}

	if filePath != "" {
		if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(filePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		cfg.AdditionalOutputs = append(cfg.AdditionalOutputs, f)
		closer = f
	}

	defaultConfigMu.Lock()
	defaultConfig = cfg
	defaultConfigMu.Unlock()

	return closer, nil
}

// WithLevel returns a new logger with the specified level
func (l *Logger) WithLevel(level Level) *Logger {
	cfg := l.cfg
	cfg.Level = level.String()
	return NewLogger(cfg)
}

// Name returns the service name of the logger
func (l *Logger) Name() string {
	return l.name
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
