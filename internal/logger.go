package internal

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

const logPrefix = "kanbanterm"

// ParseLogLevel parses a level name; an empty name means info.
func ParseLogLevel(level string) (log.Level, error) {
	if strings.TrimSpace(level) == "" {
		return log.InfoLevel, nil
	}
	parsed, err := log.ParseLevel(level)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("parse log level %q: %w", level, err)
	}
	return parsed, nil
}

// NewConsoleLogger returns a styled text logger for command-line output.
func NewConsoleLogger(w io.Writer, cfg LogConfig) (*log.Logger, error) {
	level, err := ParseLogLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	if w == nil {
		w = io.Discard
	}
	return log.NewWithOptions(w, log.Options{
		Level:     level,
		Prefix:    logPrefix,
		Formatter: log.TextFormatter,
	}), nil
}

// NewSessionLogger returns the logger used while the board owns the terminal.
// It writes logfmt to cfg.File, or discards everything when no file is set.
// The returned close function is always non-nil.
func NewSessionLogger(cfg LogConfig) (*log.Logger, func() error, error) {
	noop := func() error { return nil }

	level, err := ParseLogLevel(cfg.Level)
	if err != nil {
		return nil, noop, err
	}
	if cfg.File == "" {
		return log.New(io.Discard), noop, nil
	}

	path := expandHome(cfg.File)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, noop, fmt.Errorf("create log dir: %w", err)
	}
	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, noop, fmt.Errorf("open log file: %w", err)
	}

	logger := log.NewWithOptions(logFile, log.Options{
		Level:           level,
		Prefix:          logPrefix,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Formatter:       log.LogfmtFormatter,
	})
	return logger, logFile.Close, nil
}
