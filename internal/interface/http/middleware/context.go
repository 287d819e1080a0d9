package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/TheJisus28/bookstore-api/internal/domain/user"
	"github.com/TheJisus28/bookstore-api/pkg/jwt"
)

// gin.Context中的键（RequireAuth写入）
const (
	ctxUserID = "user_id"
	ctxRole   = "role"
	ctxClaims = "claims"
	ctxToken  = "token"
)

// GetUserID 当前登录用户ID，未登录返回空字符串
func GetUserID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

// GetRole 当前登录用户角色（以数据库为准，不取Token中的role）
func GetRole(c *gin.Context) user.Role {
	if v, ok := c.Get(ctxRole); ok {
		if r, ok := v.(user.Role); ok {
			return r
		}
	}
	return ""
}

// IsAdmin 当前用户是否管理员
func IsAdmin(c *gin.Context) bool {
	return GetRole(c) == user.RoleAdmin
}

// GetClaims 当前Access Token的Claims
func GetClaims(c *gin.Context) *jwt.Claims {
	if v, ok := c.Get(ctxClaims); ok {
		if claims, ok := v.(*jwt.Claims); ok {
			return claims
		}
	}
	return nil
}

// GetToken 当前请求的原始Access Token（注销时使用）
func GetToken(c *gin.Context) string {
	return c.GetString(ctxToken)
}
