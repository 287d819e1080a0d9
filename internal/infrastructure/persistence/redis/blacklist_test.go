package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	keys map[string]time.Duration
	err  error
}

func newFakeClient() *fakeClient {
	return &fakeClient{keys: make(map[string]time.Duration)}
}

func (f *fakeClient) Set(_ context.Context, key string, _ interface{}, expiration time.Duration) *redis.StatusCmd {
	if f.err != nil {
		return redis.NewStatusResult("", f.err)
	}
	f.keys[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeClient) Exists(_ context.Context, keys ...string) *redis.IntCmd {
	if f.err != nil {
		return redis.NewIntResult(0, f.err)
	}
	var n int64
	for _, k := range keys {
		if _, ok := f.keys[k]; ok {
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func TestTokenBlacklist(t *testing.T) {
	ctx := context.Background()

	t.Run("登出后Token失效", func(t *testing.T) {
		client := newFakeClient()
		bl := NewTokenBlacklist(client)

		revoked, err := bl.IsRevoked(ctx, "token-a")
		require.NoError(t, err)
		assert.False(t, revoked)

		require.NoError(t, bl.Revoke(ctx, "token-a", time.Minute))
		revoked, err = bl.IsRevoked(ctx, "token-a")
		require.NoError(t, err)
		assert.True(t, revoked)

		revoked, err = bl.IsRevoked(ctx, "token-b")
		require.NoError(t, err)
		assert.False(t, revoked)

		assert.Equal(t, time.Minute, client.keys[blacklistKey("token-a")], "过期时间等于剩余有效期")
	})

	t.Run("已过期的Token不写入", func(t *testing.T) {
		client := newFakeClient()
		require.NoError(t, NewTokenBlacklist(client).Revoke(ctx, "expired", 0))
		assert.Empty(t, client.keys)
	})

	t.Run("Redis错误", func(t *testing.T) {
		client := newFakeClient()
		client.err = errors.New("connection refused")
		bl := NewTokenBlacklist(client)

		assert.Error(t, bl.Revoke(ctx, "token", time.Minute))
		_, err := bl.IsRevoked(ctx, "token")
		assert.Error(t, err)
	})

	t.Run("Key不包含原始Token", func(t *testing.T) {
		key := blacklistKey("secret.jwt.value")
		assert.NotContains(t, key, "secret")
		assert.Len(t, key, len(blacklistPrefix)+64)
	})
}
