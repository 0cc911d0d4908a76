package mappable

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

// NewLogger creates a diagnostic logger writing text records to stderr.
// It standardizes the "error" key to "err".
func NewLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == "error" {
				a.Key = "err"
			}
			return a
		},
	}))
}

// NopLogger returns a logger that discards everything.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var (
	loggerMu      sync.RWMutex
	currentLogger = NewLogger(slog.LevelWarn)
)

// SetLogger replaces the process-wide diagnostic logger. nil restores the
// default warn-level stderr logger.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = NewLogger(slog.LevelWarn)
	}
	loggerMu.Lock()
	currentLogger = l
	loggerMu.Unlock()
}

// Logger returns the process-wide diagnostic logger.
func Logger() *slog.Logger {
	loggerMu.RLock()
	l := currentLogger
	loggerMu.RUnlock()
	return l
}
