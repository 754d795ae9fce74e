package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// Logger writes to a file because the TUI owns the terminal.
type Logger struct {
	*log.Logger
	file *os.File
	path string
}

// Open creates (or appends to) the log file at path. An empty path selects
// ~/.cache/searchui/logs/searchui-YYYY-MM-DD.log.
func Open(path, level string) (*Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	if path == "" {
		path, err = defaultPath(time.Now())
		if err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	l := &Logger{Logger: newLogger(f, lvl), file: f, path: path}
	l.Info("searchui started", "pid", os.Getpid())
	return l, nil
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return &Logger{Logger: log.New(io.Discard)}
}

// Path is the file being written, empty for Discard.
func (l *Logger) Path() string { return l.path }

// Close flushes a final line and closes the file.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	l.Info("searchui shutting down")
	return l.file.Close()
}

func newLogger(w io.Writer, lvl log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Level:           lvl,
	})
}

func defaultPath(now time.Time) (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to get cache directory: %w", err)
	}
	name := fmt.Sprintf("searchui-%s.log", now.Format("2006-01-02"))
	return filepath.Join(dir, "searchui", "logs", name), nil
}
