package radial

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so disabled logging costs no formatting.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger.
var loggerPtr atomic.Pointer[slog.Logger]

// live holds the open charts so SetLogger reaches them.
var (
	liveMu sync.Mutex
	live   = make(map[*Chart]struct{})
)

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for radial and every open Chart.
// By default nothing is logged. Pass nil to restore silence.
//
// Log levels used by radial:
//   - [slog.LevelDebug]: per-frame diagnostics
//   - [slog.LevelInfo]: animation lifecycle
//   - [slog.LevelWarn]: non-fatal issues such as a missing overlay image
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)

	liveMu.Lock()
	defer liveMu.Unlock()
	for c := range live {
		c.SetLogger(l)
	}
}

// Logger returns the current logger. It is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// loggerSetter is implemented by the components a Chart drives.
type loggerSetter interface {
	SetLogger(*slog.Logger)
}

// propagateLogger passes l to every component accepting a logger.
func propagateLogger(l *slog.Logger, targets ...any) {
	for _, t := range targets {
		if ls, ok := t.(loggerSetter); ok {
			ls.SetLogger(l)
		}
	}
}

func register(c *Chart) {
	liveMu.Lock()
	live[c] = struct{}{}
	liveMu.Unlock()
	c.SetLogger(Logger())
}

func unregister(c *Chart) {
	liveMu.Lock()
	delete(live, c)
	liveMu.Unlock()
}
