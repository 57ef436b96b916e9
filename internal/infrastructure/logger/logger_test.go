package logger

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	t.Run("console config builds", func(t *testing.T) {
		l, err := New(DefaultConfig())
		require.NoError(t, err)
		assert.NotNil(t, l)
	})

	t.Run("nil config falls back to defaults", func(t *testing.T) {
		l, err := New(nil)
		require.NoError(t, err)
		assert.NotNil(t, l)
	})

	t.Run("writes json to file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "app.log")
		l, err := New(&Config{Level: "debug", Format: "json", Output: path})
		require.NoError(t, err)

		l.Info("vendor registered", zap.String("vendor_id", "v-1"))
		require.NoError(t, l.Sync())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"msg":"vendor registered"`)
		assert.Contains(t, string(data), `"vendor_id":"v-1"`)
	})

	t.Run("unwritable file is an error", func(t *testing.T) {
		_, err := New(&Config{Output: filepath.Join(t.TempDir(), "missing", "dir", "app.log")})
		assert.Error(t, err)
	})
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("warning"))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("nonsense"))
}

func TestL(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	ctx := WithContext(context.Background(), zap.New(core))
	ctx = WithRequestID(ctx, "req-42")
	ctx = WithActor(ctx, "reviewer-7")

	L(ctx).Info("document verified")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "req-42", fields["request_id"])
	assert.Equal(t, "reviewer-7", fields["actor"])
	assert.NotContains(t, fields, "trace_id")
}

func TestFromContext_NoLogger(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))
	assert.Equal(t, "", GetRequestID(context.Background()))
	assert.Equal(t, "", GetActor(context.Background()))
}
