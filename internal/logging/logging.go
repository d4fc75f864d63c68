// Package logging provides the zerolog loggers used across modalkit.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Config holds logger configuration.
type Config struct {
	Path    string // Optional log file, parent directories are created
	Level   string // debug, info, warn, error (default: info)
	Console bool   // Also write human readable lines to stderr
}

var (
	mu      sync.RWMutex
	base    zerolog.Logger
	logFile *os.File
	level   = zerolog.InfoLevel
)

func init() {
	base = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
		Level(level).
		With().Timestamp().Str("app", "modalkit").Logger()
}

// Setup replaces the base logger. It is safe to call more than once; a
// previously opened log file is closed.
func Setup(cfg Config) error {
	var writers []io.Writer
	var file *os.File

	if cfg.Path != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return fmt.Errorf("create log directory: %w", err)
		}
		opened, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		file = opened
		writers = append(writers, file)
	}
	if cfg.Console || len(writers) == 0 {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
	}

	parsed := ParseLevel(cfg.Level)

	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		_ = logFile.Close()
	}
	logFile = file
	level = parsed
	base = zerolog.New(io.MultiWriter(writers...)).
		Level(parsed).
		With().Timestamp().Str("app", "modalkit").Logger()
	return nil
}

// SetOutput points the base logger at w. Used by tests to capture output.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	base = zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// SetLevel parses and applies a level name.
func SetLevel(raw string) {
	parsed := ParseLevel(raw)
	mu.Lock()
	defer mu.Unlock()
	level = parsed
	base = base.Level(parsed)
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(raw string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// Component returns a child logger tagged with the component name.
func Component(name string) zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base.With().Str("component", name).Logger()
}

// Close flushes and closes the log file, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}
