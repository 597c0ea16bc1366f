// Package logging provides file-based logging for incidentctl.
// It outputs logs to a global log file (<data-dir>/logs/incidentctl.log)
// and incident-specific log files (<data-dir>/logs/incident-N.log).
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/tbuendia/incidentctl/internal/domain"
)

// Ensure Logger implements domain.Logger.
var _ domain.Logger = (*Logger)(nil)

// Logger writes formatted log lines to files under the data directory.
// Fields are ordered to minimize memory padding.
type Logger struct {
	globalFile    *os.File
	incidentFiles map[int]*os.File
	dataDir       string
	mu            sync.Mutex
	level         slog.Level
}

// New creates a Logger rooted at dataDir. If dataDir is empty, logging is
// disabled (all methods become no-ops).
func New(dataDir string, level slog.Level) *Logger {
	return &Logger{
		dataDir:       dataDir,
		level:         level,
		incidentFiles: make(map[int]*os.File),
	}
}

// ParseLevel parses a log level string into slog.Level.
func ParseLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *Logger) logsDir() string {
	return filepath.Join(l.dataDir, "logs")
}

func (l *Logger) ensureGlobalFile() (*os.File, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.globalFile != nil {
		return l.globalFile, nil
	}
	if err := os.MkdirAll(l.logsDir(), 0o750); err != nil {
		return nil, fmt.Errorf("create logs directory: %w", err)
	}
	path := filepath.Join(l.logsDir(), "incidentctl.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640) //nolint:gosec // Log file readable by owner and group
	if err != nil {
		return nil, fmt.Errorf("open global log file: %w", err)
	}
	l.globalFile = f
	return f, nil
}

func (l *Logger) ensureIncidentFile(incidentID int) (*os.File, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if f, ok := l.incidentFiles[incidentID]; ok {
		return f, nil
	}
	if err := os.MkdirAll(l.logsDir(), 0o750); err != nil {
		return nil, fmt.Errorf("create logs directory: %w", err)
	}
	path := filepath.Join(l.logsDir(), fmt.Sprintf("incident-%d.log", incidentID))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640) //nolint:gosec // Log file readable by owner and group
	if err != nil {
		return nil, fmt.Errorf("open incident log file: %w", err)
	}
	l.incidentFiles[incidentID] = f
	return f, nil
}

// Close closes all open log files.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var lastErr error
	if l.globalFile != nil {
		if err := l.globalFile.Close(); err != nil {
			lastErr = err
		}
		l.globalFile = nil
	}
	for id, f := range l.incidentFiles {
		if err := f.Close(); err != nil {
			lastErr = err
		}
		delete(l.incidentFiles, id)
	}
	return lastErr
}

// formatLog formats a log entry.
// Format: [2026-03-14 09:32:51] [INFO] [incident-1] [category] message
func formatLog(t time.Time, level slog.Level, incidentID int, category, msg string) string {
	scope := "global"
	if incidentID > 0 {
		scope = fmt.Sprintf("incident-%d", incidentID)
	}
	return fmt.Sprintf("[%s] [%s] [%s] [%s] %s\n",
		t.Format("2006-01-02 15:04:05"),
		levelToString(level),
		scope,
		category,
		msg,
	)
}

func levelToString(level slog.Level) string {
	switch level {
	case slog.LevelDebug:
		return "DEBUG"
	case slog.LevelInfo:
		return "INFO"
	case slog.LevelWarn:
		return "WARN"
	case slog.LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// log writes an entry to the global log and, when incidentID > 0, to the
// incident's own log file.
func (l *Logger) log(level slog.Level, incidentID int, category, msg string) {
	if l.dataDir == "" {
		return // Logging disabled
	}
	if level < l.level {
		return
	}

	entry := formatLog(time.Now(), level, incidentID, category, msg)

	if gf, err := l.ensureGlobalFile(); err == nil {
		_, _ = io.WriteString(gf, entry)
	}
	if incidentID > 0 {
		if f, err := l.ensureIncidentFile(incidentID); err == nil {
			_, _ = io.WriteString(f, entry)
		}
	}
}

// Debug logs a debug message.
func (l *Logger) Debug(incidentID int, category, msg string) {
	l.log(slog.LevelDebug, incidentID, category, msg)
}

// Info logs an info message.
func (l *Logger) Info(incidentID int, category, msg string) {
	l.log(slog.LevelInfo, incidentID, category, msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(incidentID int, category, msg string) {
	l.log(slog.LevelWarn, incidentID, category, msg)
}

// Error logs an error message.
func (l *Logger) Error(incidentID int, category, msg string) {
	l.log(slog.LevelError, incidentID, category, msg)
}
