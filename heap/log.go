package heap

import (
	"io"
	"log/slog"
	"sync/atomic"
)

var (
	discard = slog.New(slog.NewTextHandler(io.Discard, nil))
	logger  atomic.Pointer[slog.Logger]
)

// SetLogger replaces the package logger. A nil logger discards all output,
// which is the default.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = discard
	}
	logger.Store(l)
}

// Logger returns the package logger.
func Logger() *slog.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return discard
}
