package auth

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/TheJisus28/bookstore-api/internal/domain/user"
	"github.com/TheJisus28/bookstore-api/pkg/jwt"
	"github.com/TheJisus28/bookstore-api/pkg/logger"
)

// RegisterUseCase 顾客注册，注册成功直接签发Token
type RegisterUseCase struct {
	users  user.Repository
	tokens *jwt.Manager
	log    *zap.Logger
}

// NewRegisterUseCase 创建注册用例
func NewRegisterUseCase(users user.Repository, tokens *jwt.Manager, log *zap.Logger) *RegisterUseCase {
	return &RegisterUseCase{users: users, tokens: tokens, log: log.Named("auth")}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     *string
}

// Execute 邮箱已存在返回ErrEmailDuplicate（409），角色固定为customer
func (uc *RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (*Result, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	_, err := uc.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, user.ErrEmailDuplicate
	case !errors.Is(err, user.ErrUserNotFound):
		return nil, err
	}

	hash, err := user.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	u := user.NewUser(email, hash, req.FirstName, req.LastName, req.Phone)
	// 并发注册时由唯一索引兜底，同样返回ErrEmailDuplicate
	if err := uc.users.Create(ctx, u); err != nil {
		return nil, err
	}

	uc.log.Info("user registered", append(logger.ContextFields(ctx), zap.String("new_user_id", u.ID))...)
	return issue(uc.tokens, u)
}
