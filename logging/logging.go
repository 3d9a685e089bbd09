// ABOUTME: Structured logger construction for every mos command
// ABOUTME: Full-screen commands log to an XDG state file, the rest to stderr
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
)

// Path returns the log file used while the TUI owns the terminal.
func Path() string {
	return filepath.Join(xdg.StateHome, "marketingos", "mos.log")
}

// New builds a logger writing to w at level.
func New(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("failed to parse log level: %w", err)
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "mos",
	})
	logger.SetLevel(lvl)
	return logger, nil
}

// OpenFile builds a logger appending to path. The returned closer
// releases the file.
func OpenFile(path, level string) (*log.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logger, err := New(f, level)
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	logger.SetFormatter(log.LogfmtFormatter)
	return logger, f, nil
}

// Discard is a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
