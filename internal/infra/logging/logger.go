// Package logging provides file-based logging for flowsync.
// It outputs logs to both a global log file (<dataDir>/logs/flowsync.log)
// and task-specific log files (<dataDir>/logs/task-<id>.log).
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/runoshun/flowsync/internal/domain"
)

// Ensure Logger implements domain.Logger interface.
var _ domain.Logger = (*Logger)(nil)

// Logger writes formatted entries to append-only log files.
// Fields are ordered to minimize memory padding.
type Logger struct {
	now        func() time.Time
	globalFile *os.File
	taskFiles  map[string]*os.File
	dataDir    string
	mu         sync.Mutex
	level      slog.Level
}

// New creates a new Logger that writes under dataDir/logs.
// If dataDir is empty, logging is disabled.
func New(dataDir string, level slog.Level) *Logger {
	return &Logger{
		now:       time.Now,
		dataDir:   dataDir,
		level:     level,
		taskFiles: make(map[string]*os.File),
	}
}

// ParseLevel parses a log level string into slog.Level.
func ParseLevel(levelStr string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// openLog opens path for appending, creating the logs directory first.
func (l *Logger) openLog(path string) (*os.File, error) {
	if err := os.MkdirAll(domain.LogsDir(l.dataDir), 0o750); err != nil {
		return nil, fmt.Errorf("create logs directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640) //nolint:gosec // Log file readable by owner and group
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// globalWriter opens or returns the global log file. Callers hold mu.
func (l *Logger) globalWriter() (io.Writer, error) {
	if l.globalFile != nil {
		return l.globalFile, nil
	}
	f, err := l.openLog(domain.GlobalLogPath(l.dataDir))
	if err != nil {
		return nil, err
	}
	l.globalFile = f
	return f, nil
}

// taskWriter opens or returns the task log file. Callers hold mu.
func (l *Logger) taskWriter(taskID string) (io.Writer, error) {
	if f, ok := l.taskFiles[taskID]; ok {
		return f, nil
	}
	f, err := l.openLog(domain.TaskLogPath(l.dataDir, taskID))
	if err != nil {
		return nil, err
	}
	l.taskFiles[taskID] = f
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
	for id, f := range l.taskFiles {
		if err := f.Close(); err != nil {
			lastErr = err
		}
		delete(l.taskFiles, id)
	}
	return lastErr
}

// formatLog formats a log entry.
// Format: [2025-03-10 09:32:51] [INFO] [task-t-1] [category] message
func formatLog(t time.Time, level slog.Level, taskID, category, msg string) string {
	taskStr := "global"
	if taskID != "" {
		taskStr = "task-" + taskID
	}
	return fmt.Sprintf("[%s] [%s] [%s] [%s] %s\n",
		t.Format("2006-01-02 15:04:05"),
		levelToString(level),
		taskStr,
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

// validTaskID reports whether taskID can be used in a file name.
func validTaskID(taskID string) bool {
	return taskID != "" && !strings.ContainsAny(taskID, `/\`) && taskID != "." && taskID != ".."
}

// log writes an entry to the global log and, for task entries, to the
// task log as well.
func (l *Logger) log(level slog.Level, taskID, category, msg string) {
	if l.dataDir == "" {
		return // Logging disabled
	}

	if level < l.level {
		return
	}

	entry := formatLog(l.now(), level, taskID, category, msg)

	l.mu.Lock()
	defer l.mu.Unlock()

	if w, err := l.globalWriter(); err == nil {
		_, _ = io.WriteString(w, entry)
	}

	if validTaskID(taskID) {
		if w, err := l.taskWriter(taskID); err == nil {
			_, _ = io.WriteString(w, entry)
		}
	}
}

// Info logs an info message.
func (l *Logger) Info(taskID, category, msg string) {
	l.log(slog.LevelInfo, taskID, category, msg)
}

// Debug logs a debug message.
func (l *Logger) Debug(taskID, category, msg string) {
	l.log(slog.LevelDebug, taskID, category, msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(taskID, category, msg string) {
	l.log(slog.LevelWarn, taskID, category, msg)
}

// Error logs an error message.
func (l *Logger) Error(taskID, category, msg string) {
	l.log(slog.LevelError, taskID, category, msg)
}
