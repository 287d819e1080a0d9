package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/TheJisus28/bookstore-api/pkg/errors"
)

const blacklistPrefix = "bookstore:blacklist:"

// blacklistClient TokenBlacklist用到的Redis命令（*redis.Client实现）
type blacklistClient interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
}

// TokenBlacklist 已登出的Token
// Key为Token的SHA-256，过期时间等于Token剩余有效期，过期后自动删除
type TokenBlacklist struct {
	client blacklistClient
}

// NewTokenBlacklist 创建Token黑名单
func NewTokenBlacklist(client blacklistClient) *TokenBlacklist {
	return &TokenBlacklist{client: client}
}

// Revoke 将Token加入黑名单，ttl<=0时Token已过期，不需要记录
func (b *TokenBlacklist) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := b.client.Set(ctx, blacklistKey(token), "revoked", ttl).Err(); err != nil {
		return apperrors.Wrap(err, "Failed to revoke token")
	}
	return nil
}

// IsRevoked Token是否已登出
func (b *TokenBlacklist) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := b.client.Exists(ctx, blacklistKey(token)).Result()
	if err != nil {
		return false, apperrors.Wrap(err, "Failed to check token blacklist")
	}
	return n > 0, nil
}

func blacklistKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return blacklistPrefix + hex.EncodeToString(sum[:])
}
