package conformal

import (
	"log/slog"
	"sync/atomic"
)

// logger is the active logger. It is swapped atomically so SetLogger may
// race with tile workers that are logging.
var logger atomic.Pointer[slog.Logger]

func init() {
	logger.Store(discardLogger())
}

// discardLogger never formats or writes anything: its handler reports every
// level as disabled.
func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// SetLogger routes conformal's log output to l. The package is silent until
// SetLogger is called; passing nil makes it silent again.
//
// Levels:
//   - [slog.LevelDebug]: per-frame statistics (tiles, workers, fallback pixels)
//   - [slog.LevelInfo]: run summary (frames warped, resolution)
//   - [slog.LevelWarn]: canceled runs
//
// Example:
//
//	conformal.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = discardLogger()
	}
	logger.Store(l)
}

// Logger returns the logger set by SetLogger. It is never nil.
func Logger() *slog.Logger {
	return logger.Load()
}
