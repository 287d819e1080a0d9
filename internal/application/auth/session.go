package auth

import (
	"context"
	"errors"
	"time"

	"github.com/TheJisus28/bookstore-api/internal/domain/user"
	apperrors "github.com/TheJisus28/bookstore-api/pkg/errors"
	"github.com/TheJisus28/bookstore-api/pkg/jwt"
)

// TokenBlacklist 已注销Token（redis.TokenBlacklist实现）
type TokenBlacklist interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// NopBlacklist 未启用Redis时使用：注销只在客户端生效
type NopBlacklist struct{}

func (NopBlacklist) Revoke(context.Context, string, time.Duration) error { return nil }

func (NopBlacklist) IsRevoked(context.Context, string) (bool, error) { return false, nil }

// SessionUseCase Token刷新、注销与校验
type SessionUseCase struct {
	users     user.Repository
	tokens    *jwt.Manager
	blacklist TokenBlacklist
}

// NewSessionUseCase 创建会话用例，blacklist为nil时使用NopBlacklist
func NewSessionUseCase(users user.Repository, tokens *jwt.Manager, blacklist TokenBlacklist) *SessionUseCase {
	if blacklist == nil {
		blacklist = NopBlacklist{}
	}
	return &SessionUseCase{users: users, tokens: tokens, blacklist: blacklist}
}

// RefreshResult 刷新结果
type RefreshResult struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Refresh 用Refresh Token换取新的Access Token
// Refresh Token已注销或用户已停用时返回ErrInvalidToken
func (uc *SessionUseCase) Refresh(ctx context.Context, refreshToken string) (*RefreshResult, error) {
	revoked, err := uc.blacklist.IsRevoked(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, apperrors.ErrTokenRevoked
	}

	access, claims, err := uc.tokens.RefreshAccessToken(refreshToken)
	if err != nil {
		return nil, err
	}
	u, err := uc.Validate(ctx, claims.UserID())
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperrors.ErrInvalidToken
	}
	return &RefreshResult{
		AccessToken: access,
		ExpiresIn:   int64(uc.tokens.AccessTokenTTL().Seconds()),
	}, nil
}

// Logout 把Access Token加入黑名单直到过期
func (uc *SessionUseCase) Logout(ctx context.Context, token string, claims *jwt.Claims) error {
	return uc.blacklist.Revoke(ctx, token, jwt.RemainingTTL(claims))
}

// IsRevoked Token是否已注销
func (uc *SessionUseCase) IsRevoked(ctx context.Context, token string) (bool, error) {
	return uc.blacklist.IsRevoked(ctx, token)
}

// Validate 返回有效用户；用户不存在或已停用返回nil
func (uc *SessionUseCase) Validate(ctx context.Context, userID string) (*user.User, error) {
	u, err := uc.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if !u.IsActive {
		return nil, nil
	}
	return u, nil
}
