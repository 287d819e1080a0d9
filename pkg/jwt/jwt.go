package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/TheJisus28/bookstore-api/pkg/errors"
)

const issuer = "bookstore-api"

// TokenType 区分Access Token与Refresh Token
type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

// Manager JWT管理器
// 设计说明：
// 1. 双Token机制：Access Token（短期）+ Refresh Token（长期）
// 2. typ声明区分两种Token，Refresh Token不能当作Access Token使用
type Manager struct {
	secret             []byte
	accessTokenExpire  time.Duration
	refreshTokenExpire time.Duration
}

// NewManager 创建JWT管理器
func NewManager(secret string, accessTokenExpire, refreshTokenExpire time.Duration) *Manager {
	return &Manager{
		secret:             []byte(secret),
		accessTokenExpire:  accessTokenExpire,
		refreshTokenExpire: refreshTokenExpire,
	}
}

// Claims 自定义JWT Claims（sub = 用户ID）
type Claims struct {
	Email string    `json:"email"`
	Role  string    `json:"role"`
	Type  TokenType `json:"typ"`
	jwt.RegisteredClaims
}

// UserID 返回subject中的用户ID
func (c *Claims) UserID() string {
	return c.Subject
}

// TokenPair Token对（Access + Refresh）
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"` // Access Token有效期（秒）
}

// GenerateToken 生成Token对
func (m *Manager) GenerateToken(userID, email, role string) (*TokenPair, error) {
	access, err := m.sign(userID, email, role, AccessToken, m.accessTokenExpire)
	if err != nil {
		return nil, apperrors.Wrap(err, "Failed to sign access token")
	}

	refresh, err := m.sign(userID, email, role, RefreshToken, m.refreshTokenExpire)
	if err != nil {
		return nil, apperrors.Wrap(err, "Failed to sign refresh token")
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(m.accessTokenExpire.Seconds()),
	}, nil
}

func (m *Manager) sign(userID, email, role string, typ TokenType, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: email,
		Role:  role,
		Type:  typ,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   userID,
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// ParseToken 解析并验证Access Token
func (m *Manager) ParseToken(tokenString string) (*Claims, error) {
	return m.parse(tokenString, AccessToken)
}

// ParseRefreshToken 解析并验证Refresh Token
func (m *Manager) ParseRefreshToken(tokenString string) (*Claims, error) {
	return m.parse(tokenString, RefreshToken)
}

func (m *Manager) parse(tokenString string, want TokenType) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithIssuer(issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" || claims.Type != want {
		return nil, apperrors.ErrInvalidToken
	}
	return claims, nil
}

// RefreshAccessToken 使用Refresh Token换取新的Access Token
func (m *Manager) RefreshAccessToken(refreshToken string) (string, *Claims, error) {
	claims, err := m.ParseRefreshToken(refreshToken)
	if err != nil {
		return "", nil, err
	}

	token, err := m.sign(claims.Subject, claims.Email, claims.Role, AccessToken, m.accessTokenExpire)
	if err != nil {
		return "", nil, apperrors.Wrap(err, "Failed to refresh token")
	}
	return token, claims, nil
}

// AccessTokenTTL Access Token有效期
func (m *Manager) AccessTokenTTL() time.Duration {
	return m.accessTokenExpire
}

// RemainingTTL Token剩余有效期（用于黑名单过期时间）
func RemainingTTL(claims *Claims) time.Duration {
	if claims == nil || claims.ExpiresAt == nil {
		return 0
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl < 0 {
		return 0
	}
	return ttl
}
