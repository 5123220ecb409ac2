package ink

import (
	"log/slog"
	"sync/atomic"
)

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(slog.DiscardHandler))
}

// SetLogger configures the logger for the ink engine. By default the engine
// produces no log output. Pass nil to restore that.
//
// Levels used:
//   - [slog.LevelDebug]: capture transitions, discarded strokes, repaints
//   - [slog.LevelWarn]: rejected tool changes
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	loggerPtr.Store(l)
}

// Logger returns the current engine logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
