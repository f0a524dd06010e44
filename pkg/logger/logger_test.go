package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("warning"))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("info"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("verbose"))
}

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calc.log")
	l := New(&Config{
		Level:    "debug",
		Format:   "json",
		Output:   "file",
		FilePath: path,
		MaxSize:  1,
	})
	l.Debug("evaluated", zap.String("expression", "1 + 2"), zap.Int("result", 3))
	require.NoError(t, l.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"evaluated"`)
	assert.Contains(t, string(data), `"expression":"1 + 2"`)
	assert.Contains(t, string(data), `"result":3`)
}

func TestNew_LevelFilter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calc.log")
	l := New(&Config{Level: "warn", Format: "json", Output: "file", FilePath: path})
	l.Info("hidden")
	l.Warn("shown")
	require.NoError(t, l.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")
}

func TestReplaceGlobal(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	ReplaceGlobal(zap.New(core))
	defer ReplaceGlobal(nil)

	Debug("debug message")
	Info("info message", zap.String("key", "value"))
	Warn("warn message")
	Error("error message")

	require.Equal(t, 4, logs.Len())
	entry := logs.All()[1]
	assert.Equal(t, "info message", entry.Message)
	assert.Equal(t, "value", entry.ContextMap()["key"])
}

func TestReplaceGlobal_Nil(t *testing.T) {
	ReplaceGlobal(nil)
	assert.NotNil(t, L())
	Info("dropped")
	Sync()
}

func TestLogger_CallerMatchesWrappers(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	ReplaceGlobal(zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)))
	defer ReplaceGlobal(nil)

	Logger().Info("direct")
	Info("wrapped")

	require.Equal(t, 2, logs.Len())
	for _, entry := range logs.All() {
		require.True(t, entry.Caller.Defined, entry.Message)
		assert.Equal(t, "logger_test.go", filepath.Base(entry.Caller.File), entry.Message)
	}
}
