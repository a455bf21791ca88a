package adapter

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// SetupLogger initializes the slog logger with file output.
// The terminal belongs to the TUI, so logs never go to stdout or stderr.
func SetupLogger(cfg *LoggingConfig) (*slog.Logger, error) {
	logPath, err := ExpandHome(cfg.File)
	if err != nil {
		return nil, err
	}

	// Ensure log directory exists
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return slog.New(newHandler(logFile, cfg)), nil
}

// newHandler builds the handler for cfg.Format writing to w
func newHandler(w io.Writer, cfg *LoggingConfig) slog.Handler {
	level := parseLogLevel(cfg.Level)

	switch strings.ToLower(cfg.Format) {
	case "text":
		// charmbracelet/log levels share slog's numeric values
		return log.NewWithOptions(w, log.Options{
			Level:           log.Level(level),
			ReportTimestamp: true,
		})
	default:
		return slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: level,
		})
	}
}

// parseLogLevel converts a string log level to slog.Level
func parseLogLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NullLogger returns a logger that discards all output
func NullLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
