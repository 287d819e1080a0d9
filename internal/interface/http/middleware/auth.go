package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/TheJisus28/bookstore-api/internal/domain/user"
	apperrors "github.com/TheJisus28/bookstore-api/pkg/errors"
	"github.com/TheJisus28/bookstore-api/pkg/jwt"
	"github.com/TheJisus28/bookstore-api/pkg/logger"
	"github.com/TheJisus28/bookstore-api/pkg/response"
)

// SessionValidator Token会话校验（auth.SessionUseCase实现）
type SessionValidator interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
	Validate(ctx context.Context, userID string) (*user.User, error)
}

// OwnerResolver 返回资源所属用户ID，资源不存在时返回对应的NotFound错误
type OwnerResolver func(ctx context.Context, id string) (string, error)

// AuthMiddleware 认证与授权中间件
//
//	RequireAuth      → Bearer Token校验，失败401
//	RequireRole      → 角色不符403
//	RequireOwnership → 资源不存在404，非本人且非管理员403
type AuthMiddleware struct {
	tokens   *jwt.Manager
	sessions SessionValidator
}

// NewAuthMiddleware 创建认证中间件
func NewAuthMiddleware(tokens *jwt.Manager, sessions SessionValidator) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, sessions: sessions}
}

// RequireAuth 要求登录
// Token有效但用户已停用或已删除同样返回401
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			response.Error(c, apperrors.ErrUnauthorized)
			return
		}

		ctx := c.Request.Context()
		revoked, err := m.sessions.IsRevoked(ctx, token)
		if err != nil {
			response.Error(c, err)
			return
		}
		if revoked {
			response.Error(c, apperrors.ErrTokenRevoked)
			return
		}

		claims, err := m.tokens.ParseToken(token)
		if err != nil {
			response.Error(c, err)
			return
		}

		u, err := m.sessions.Validate(ctx, claims.UserID())
		if err != nil {
			response.Error(c, err)
			return
		}
		if u == nil {
			response.Error(c, apperrors.ErrUnauthorized)
			return
		}

		c.Set(ctxUserID, u.ID)
		c.Set(ctxRole, u.Role)
		c.Set(ctxClaims, claims)
		c.Set(ctxToken, token)
		c.Request = c.Request.WithContext(logger.WithUserID(ctx, u.ID))
		c.Next()
	}
}

// RequireRole 要求指定角色之一，必须放在RequireAuth之后
func (m *AuthMiddleware) RequireRole(roles ...user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := GetRole(c)
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		response.Error(c, apperrors.ErrForbidden)
	}
}

// RequireOwnership 资源所有权校验，param为路径参数名
// 先解析资源（不存在返回404），管理员放行，其他用户必须是资源所有者
func (m *AuthMiddleware) RequireOwnership(param string, resolve OwnerResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param(param)
		if _, err := uuid.Parse(id); err != nil {
			response.Error(c, apperrors.ErrInvalidParams.WithMessage("Invalid "+param))
			return
		}
		owner, err := resolve(c.Request.Context(), id)
		if err != nil {
			response.Error(c, err)
			return
		}
		if !IsAdmin(c) && owner != GetUserID(c) {
			response.Error(c, apperrors.ErrForbidden)
			return
		}
		c.Next()
	}
}

// bearerToken 解析 "Authorization: Bearer <token>"
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
