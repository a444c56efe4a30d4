package logging

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger(level zapcore.Level) (Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return &zapLogger{z: zap.New(core, zap.AddCallerSkip(1))}, logs
}

func TestNewLogger_Formats(t *testing.T) {
	for _, format := range []string{"json", "console", ""} {
		l, err := NewLogger(LogConfig{Level: LevelInfo, Format: format})
		require.NoError(t, err, format)
		assert.NotNil(t, l)
	}
}

func TestNewLogger_EmptyOutputPaths(t *testing.T) {
	l, err := NewLogger(LogConfig{OutputPaths: []string{}})
	assert.Error(t, err)
	assert.Nil(t, l)
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"INFO":    zapcore.InfoLevel,
		"warn":    zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		" error ": zapcore.ErrorLevel,
	}
	for in, want := range cases {
		got, ok := ParseLevel(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	got, ok := ParseLevel("verbose")
	assert.False(t, ok)
	assert.Equal(t, zapcore.WarnLevel, got)
}

func TestZapLogger_FieldsAreTranslated(t *testing.T) {
	l, logs := newObservedLogger(zapcore.DebugLevel)

	l.Warn("invalid SMILES",
		String("file", "in.smi"),
		Int("line", 3),
		Int64("total", 10),
		Float64("ratio", 0.5),
		Bool("skipped", true),
		Duration("elapsed", time.Second),
		Err(errors.New("unexpected ')'")),
		Field{Key: "codes", Value: []string{"MOL_001"}},
	)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.WarnLevel, entry.Level)
	ctx := entry.ContextMap()
	assert.Equal(t, "in.smi", ctx["file"])
	assert.EqualValues(t, 3, ctx["line"])
	assert.EqualValues(t, 10, ctx["total"])
	assert.Equal(t, true, ctx["skipped"])
	assert.Equal(t, time.Second, ctx["elapsed"])
	assert.Equal(t, "unexpected ')'", ctx["error"])
}

func TestZapLogger_WithAndNamed(t *testing.T) {
	l, logs := newObservedLogger(zapcore.InfoLevel)

	child := l.Named("convert").With(String("run_id", "r1"))
	child.Info("file converted")
	child.Debug("dropped")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "convert", entry.LoggerName)
	assert.Equal(t, "r1", entry.ContextMap()["run_id"])
}

func TestErr_Nil(t *testing.T) {
	f := Err(nil)
	assert.Equal(t, "error", f.Key)
	assert.Equal(t, "<nil>", f.Value)
}

func TestSetLevel(t *testing.T) {
	atomic := zap.NewAtomicLevelAt(zapcore.WarnLevel)
	core, logs := observer.New(atomic)
	l := &zapLogger{z: zap.New(core), level: &atomic}

	l.Info("hidden")
	require.True(t, SetLevel(l, "debug"))
	l.Named("child").Info("shown")

	assert.Equal(t, 1, logs.Len())
	assert.False(t, SetLevel(l, "loud"))
	assert.False(t, SetLevel(NewNopLogger(), "debug"))
}

func TestNopLogger_AllMethodsNoOp(t *testing.T) {
	l := NewNopLogger()
	l.Debug("msg")
	l.Info("msg")
	l.Warn("msg")
	l.Error("msg")
	assert.NotNil(t, l.With(String("k", "v")))
	assert.NotNil(t, l.Named("x"))
	assert.NoError(t, l.Sync())
}

func TestDefault(t *testing.T) {
	original := Default()
	defer SetDefault(original)

	l, _ := newObservedLogger(zapcore.DebugLevel)
	SetDefault(l)
	assert.Same(t, l, Default())

	SetDefault(nil)
	assert.Same(t, l, Default())
}

//Personal.AI order the ending
