package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/TheJisus28/bookstore-api/internal/domain/user"
	apperrors "github.com/TheJisus28/bookstore-api/pkg/errors"
	"github.com/TheJisus28/bookstore-api/pkg/jwt"
)

// LoginUseCase 邮箱密码登录
type LoginUseCase struct {
	users  user.Repository
	tokens *jwt.Manager
}

// NewLoginUseCase 创建登录用例
func NewLoginUseCase(users user.Repository, tokens *jwt.Manager) *LoginUseCase {
	return &LoginUseCase{users: users, tokens: tokens}
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string
	Password string
}

// Execute 邮箱不存在、账号停用、密码错误统一返回ErrInvalidCredentials
func (uc *LoginUseCase) Execute(ctx context.Context, req LoginRequest) (*Result, error) {
	u, err := uc.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if !u.IsActive {
		return nil, apperrors.ErrInvalidCredentials
	}
	if err := user.CheckPassword(u.PasswordHash, req.Password); err != nil {
		return nil, err
	}
	return issue(uc.tokens, u)
}
