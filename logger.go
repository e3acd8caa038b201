package shapr

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/shapr/internal/gpu"
	"github.com/gogpu/shapr/internal/shaderwatch"
	"github.com/gogpu/shapr/internal/window"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for shapr and its internal packages.
// By default, shapr produces no log output. Pass nil to restore silence.
//
// Log levels used by shapr:
//   - [slog.LevelDebug]: per-frame detail (texture size, reclaimed frames)
//   - [slog.LevelInfo]: lifecycle (window opened, adapter selected, exit)
//   - [slog.LevelWarn]: ignorable failures (shader reload rejected,
//     surface texture timeout)
//   - [slog.LevelError]: the fatal error reported by Main
//
// Example:
//
//	shapr.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)

	gpu.SetLogger(l)
	window.SetLogger(l)
	shaderwatch.SetLogger(l)
}

// Logger returns the current logger used by shapr.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
