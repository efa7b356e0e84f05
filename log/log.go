// Package log provides structured logging for the ethutil command-line tool.
// It wraps Go's log/slog with per-module child loggers and go-ethereum's
// terminal, logfmt and JSON handlers.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	gethlog "github.com/ethereum/go-ethereum/log"
	"github.com/pkg/errors"

	"github.com/eth2030/ethutil/common"
)

// LevelTrace is the most verbose level, below slog.LevelDebug.
const LevelTrace = gethlog.LevelTrace

// Output formats accepted by NewFormat.
const (
	FormatTerminal = "terminal"
	FormatLogfmt   = "logfmt"
	FormatJSON     = "json"
)

// Logger wraps slog.Logger with module-scoped context.
type Logger struct {
	inner *slog.Logger
}

// defaultLogger is the process-wide logger used by the package-level
// convenience functions.
var defaultLogger *Logger

func init() {
	defaultLogger = New(slog.LevelInfo)
}

// New creates a Logger that writes JSON to stderr at the given level.
func New(level slog.Level) *Logger {
	return NewWithHandler(gethlog.JSONHandlerWithLevel(os.Stderr, level))
}

// NewWithHandler creates a Logger backed by the supplied slog.Handler. This
// is useful for testing or for writing to a custom destination.
func NewWithHandler(h slog.Handler) *Logger {
	return &Logger{inner: slog.New(h)}
}

// NewTerminal creates a Logger writing human-readable lines to w.
func NewTerminal(w io.Writer, level slog.Level, color bool) *Logger {
	return NewWithHandler(gethlog.NewTerminalHandlerWithLevel(w, level, color))
}

// NewFormat creates a Logger writing to w in one of FormatTerminal,
// FormatLogfmt or FormatJSON. The terminal format is never colored.
func NewFormat(w io.Writer, format string, level slog.Level) (*Logger, error) {
	switch strings.ToLower(format) {
	case FormatTerminal, "":
		return NewTerminal(w, level, false), nil
	case FormatLogfmt:
		return NewWithHandler(gethlog.LogfmtHandlerWithLevel(w, level)), nil
	case FormatJSON:
		return NewWithHandler(gethlog.JSONHandlerWithLevel(w, level)), nil
	default:
		return nil, errors.Wrapf(common.ErrUnsupportedParameter, "log format %q", format)
	}
}

// VerbosityToLevel maps a 0-5 verbosity to a level: 0 and 1 log errors only,
// 2 warnings, 3 info, 4 debug and 5 or more trace.
func VerbosityToLevel(verbosity int) slog.Level {
	switch {
	case verbosity <= 1:
		return slog.LevelError
	case verbosity == 2:
		return slog.LevelWarn
	case verbosity == 3:
		return slog.LevelInfo
	case verbosity == 4:
		return slog.LevelDebug
	default:
		return LevelTrace
	}
}

// SetDefault replaces the package-level default logger.
func SetDefault(l *Logger) {
	if l != nil {
		defaultLogger = l
	}
}

// Default returns the current package-level default logger.
func Default() *Logger {
	return defaultLogger
}

// Module returns a child logger with an additional "module" attribute.
func (l *Logger) Module(name string) *Logger {
	return &Logger{inner: l.inner.With("module", name)}
}

// With returns a child logger with additional key-value context.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{inner: l.inner.With(args...)}
}

// Trace logs at LevelTrace.
func (l *Logger) Trace(msg string, args ...any) { l.inner.Log(context.Background(), LevelTrace, msg, args...) }

// Debug logs at LevelDebug.
func (l *Logger) Debug(msg string, args ...any) { l.inner.Debug(msg, args...) }

// Info logs at LevelInfo.
func (l *Logger) Info(msg string, args ...any) { l.inner.Info(msg, args...) }

// Warn logs at LevelWarn.
func (l *Logger) Warn(msg string, args ...any) { l.inner.Warn(msg, args...) }

// Error logs at LevelError.
func (l *Logger) Error(msg string, args ...any) { l.inner.Error(msg, args...) }

// ---------------------------------------------------------------------------
// Package-level convenience functions -- delegate to defaultLogger.
// ---------------------------------------------------------------------------

// Debug logs at LevelDebug using the default logger.
func Debug(msg string, args ...any) { defaultLogger.Debug(msg, args...) }

// Info logs at LevelInfo using the default logger.
func Info(msg string, args ...any) { defaultLogger.Info(msg, args...) }

// Warn logs at LevelWarn using the default logger.
func Warn(msg string, args ...any) { defaultLogger.Warn(msg, args...) }

// Error logs at LevelError using the default logger.
func Error(msg string, args ...any) { defaultLogger.Error(msg, args...) }
