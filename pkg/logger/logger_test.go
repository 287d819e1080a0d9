package logger

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		l, err := New(Config{})
		require.NoError(t, err)
		assert.NotNil(t, l)
	})

	t.Run("rejects unknown level", func(t *testing.T) {
		_, err := New(Config{Level: "verbose"})
		assert.Error(t, err)
	})

	t.Run("rejects unknown format", func(t *testing.T) {
		_, err := New(Config{Format: "xml"})
		assert.Error(t, err)
	})

	t.Run("writes json to file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "app.log")
		l, err := New(Config{Level: "debug", Format: "json", Output: path})
		require.NoError(t, err)

		l.Info("book created")
		require.NoError(t, l.Sync())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"msg":"book created"`)
	})
}

func TestContextFields(t *testing.T) {
	ctx := WithUserID(WithRequestID(context.Background(), "req-1"), "user-1")

	assert.Equal(t, "req-1", RequestID(ctx))
	assert.Equal(t, "user-1", UserID(ctx))

	fields := ContextFields(ctx)
	require.Len(t, fields, 2)
	assert.Equal(t, "request_id", fields[0].Key)
	assert.Equal(t, "user_id", fields[1].Key)

	assert.Empty(t, ContextFields(context.Background()))
}
