package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "router.log")

	l, err := New(&Config{Level: "info", Format: "json", Output: path},
		WithFields(zap.String("service", "fulfillment-router")))
	require.NoError(t, err)

	l.Debug("hidden")
	l.Info("webhook received", zap.String("topic", "orders/create"))
	require.NoError(t, l.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"webhook received"`)
	assert.Contains(t, out, `"topic":"orders/create"`)
	assert.Contains(t, out, `"service":"fulfillment-router"`)
	assert.Contains(t, out, `"level":"info"`)
}

func TestNew_TeesExtraCore(t *testing.T) {
	core, recorded := observer.New(zapcore.WarnLevel)

	l, err := New(&Config{Level: "debug", Format: "json", Output: filepath.Join(t.TempDir(), "x.log")}, WithCore(core), WithCore(nil))
	require.NoError(t, err)

	l.Info("info only goes to the file")
	l.Warn("move failed")

	require.Equal(t, 1, recorded.Len())
	assert.Equal(t, "move failed", recorded.All()[0].Message)
}

func TestNew_NilConfigUsesDefaults(t *testing.T) {
	l, err := New(nil)
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestNewForEnvironment(t *testing.T) {
	for _, env := range []string{"production", "development", ""} {
		t.Run(env, func(t *testing.T) {
			l, err := NewForEnvironment(env)
			require.NoError(t, err)
			assert.NotNil(t, l)
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"DEBUG", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"fatal", zapcore.FatalLevel},
		{"verbose", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}

func TestCreateWriter_UnwritablePathFallsBack(t *testing.T) {
	w := createWriter(filepath.Join(t.TempDir(), "missing", "dir", "x.log"))
	assert.NotNil(t, w)
}

func TestConsoleEncoder(t *testing.T) {
	enc := createEncoder(&Config{Format: "console"})
	buf, err := enc.EncodeEntry(zapcore.Entry{Level: zapcore.InfoLevel, Message: "hello"}, nil)
	require.NoError(t, err)
	assert.True(t, strings.Contains(buf.String(), "hello"))
	assert.False(t, strings.HasPrefix(buf.String(), "{"))
}
