package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eth2030/ethutil/common"
)

// newTestLogger returns a Logger that writes JSON into buf.
func newTestLogger(buf *bytes.Buffer, level slog.Level) *Logger {
	h := slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: level})
	return NewWithHandler(h)
}

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), buf.String())
	return entry
}

// ---------------------------------------------------------------------------
// Logger.Module
// ---------------------------------------------------------------------------

func TestLogger_Module(t *testing.T) {
	var buf bytes.Buffer
	newTestLogger(&buf, slog.LevelDebug).Module("crypto").Info("hello")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "crypto", entry["module"])
	assert.Equal(t, "hello", entry["msg"])
}

func TestLogger_ModuleChain(t *testing.T) {
	var buf bytes.Buffer
	newTestLogger(&buf, slog.LevelDebug).Module("cli").With("cmd", "sign").Info("done")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "cli", entry["module"])
	assert.Equal(t, "sign", entry["cmd"])
}

// ---------------------------------------------------------------------------
// Logger levels
// ---------------------------------------------------------------------------

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		level  slog.Level
		logFn  func(l *Logger)
		expect bool
	}{
		{slog.LevelInfo, func(l *Logger) { l.Debug("nope") }, false},
		{slog.LevelInfo, func(l *Logger) { l.Info("yes") }, true},
		{slog.LevelInfo, func(l *Logger) { l.Warn("yes") }, true},
		{slog.LevelInfo, func(l *Logger) { l.Error("yes") }, true},
		{slog.LevelWarn, func(l *Logger) { l.Info("nope") }, false},
		{slog.LevelDebug, func(l *Logger) { l.Debug("yes") }, true},
		{slog.LevelDebug, func(l *Logger) { l.Trace("nope") }, false},
		{LevelTrace, func(l *Logger) { l.Trace("yes") }, true},
	}
	for i, tt := range tests {
		var buf bytes.Buffer
		tt.logFn(newTestLogger(&buf, tt.level))
		assert.Equal(t, tt.expect, buf.Len() > 0, "test %d (level=%v)", i, tt.level)
	}
}

func TestVerbosityToLevel(t *testing.T) {
	for v, want := range map[int]slog.Level{
		-1: slog.LevelError,
		0:  slog.LevelError,
		1:  slog.LevelError,
		2:  slog.LevelWarn,
		3:  slog.LevelInfo,
		4:  slog.LevelDebug,
		5:  LevelTrace,
		9:  LevelTrace,
	} {
		assert.Equal(t, want, VerbosityToLevel(v), "verbosity %d", v)
	}
}

// ---------------------------------------------------------------------------
// Output formats
// ---------------------------------------------------------------------------

func TestNewFormat(t *testing.T) {
	for _, format := range []string{"", FormatTerminal, FormatLogfmt, FormatJSON, "JSON"} {
		var buf bytes.Buffer
		l, err := NewFormat(&buf, format, slog.LevelInfo)
		require.NoError(t, err, format)

		l.Debug("hidden")
		l.Module("rlp").Info("decoded", "items", 4)
		out := buf.String()
		assert.NotContains(t, out, "hidden", format)
		assert.Contains(t, out, "decoded", format)
		assert.Contains(t, out, "rlp", format)
	}
}

func TestNewFormatJSONIsStructured(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewFormat(&buf, FormatJSON, slog.LevelInfo)
	require.NoError(t, err)
	l.Module("crypto").Info("recovered", "count", 3)

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "crypto", entry["module"])
	assert.EqualValues(t, 3, entry["count"])
}

func TestNewFormatUnknown(t *testing.T) {
	_, err := NewFormat(&bytes.Buffer{}, "xml", slog.LevelInfo)
	assert.ErrorIs(t, err, common.ErrUnsupportedParameter)
}

func TestNewTerminal(t *testing.T) {
	var buf bytes.Buffer
	NewTerminal(&buf, slog.LevelInfo, false).Warn("low balance", "addr", "0xabc")
	out := buf.String()
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "low balance")
	assert.Contains(t, out, "addr=0xabc")
}

// ---------------------------------------------------------------------------
// Default logger
// ---------------------------------------------------------------------------

func TestDefaultLogger(t *testing.T) {
	require.NotNil(t, Default())

	var buf bytes.Buffer
	l := newTestLogger(&buf, slog.LevelInfo)
	SetDefault(l)
	defer SetDefault(New(slog.LevelInfo))

	Info("test info", "k", "v")
	assert.Contains(t, buf.String(), "test info")

	// SetDefault(nil) is a no-op.
	SetDefault(nil)
	assert.Same(t, l, Default())
}

func TestPackageLevelFunctions(t *testing.T) {
	var buf bytes.Buffer
	SetDefault(newTestLogger(&buf, slog.LevelDebug))
	defer SetDefault(New(slog.LevelInfo))

	Debug("d")
	Info("i")
	Warn("w")
	Error("e")

	out := buf.String()
	for _, msg := range []string{`"msg":"d"`, `"msg":"i"`, `"msg":"w"`, `"msg":"e"`} {
		assert.Contains(t, out, msg)
	}
}
