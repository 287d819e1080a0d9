// Package auth 注册、登录与Token会话
package auth

import (
	"github.com/TheJisus28/bookstore-api/internal/domain/user"
	"github.com/TheJisus28/bookstore-api/pkg/jwt"
)

// Result 注册/登录结果
type Result struct {
	Tokens *jwt.TokenPair
	User   *user.User
}

func issue(tokens *jwt.Manager, u *user.User) (*Result, error) {
	pair, err := tokens.GenerateToken(u.ID, u.Email, string(u.Role))
	if err != nil {
		return nil, err
	}
	return &Result{Tokens: pair, User: u}, nil
}
