package store

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/TheJisus28/bookstore-api/internal/domain/user"
	"github.com/TheJisus28/bookstore-api/internal/infrastructure/config"
)

type seedAccount struct {
	email     string
	password  string
	firstName string
	lastName  string
	role      user.Role
}

// Seed 创建初始管理员与测试账号，已存在则跳过
// 失败只记录日志，不影响启动
func Seed(ctx context.Context, users user.Repository, cfg config.SeedConfig, log *zap.Logger) {
	if !cfg.Enabled {
		return
	}

	accounts := []seedAccount{
		{email: cfg.AdminEmail, password: cfg.AdminPassword, firstName: "Admin", lastName: "User", role: user.RoleAdmin},
		{email: cfg.TesterEmail, password: cfg.TesterPassword, firstName: "Test", lastName: "User", role: user.RoleCustomer},
	}
	for _, acc := range accounts {
		if acc.email == "" {
			continue
		}
		if err := seedUser(ctx, users, acc, log); err != nil {
			log.Error("创建初始账号失败", zap.String("email", acc.email), zap.Error(err))
		}
	}
}

func seedUser(ctx context.Context, users user.Repository, acc seedAccount, log *zap.Logger) error {
	_, err := users.FindByEmail(ctx, acc.email)
	if err == nil {
		log.Info("初始账号已存在", zap.String("email", acc.email))
		return nil
	}
	if !errors.Is(err, user.ErrUserNotFound) {
		return err
	}

	hash, err := user.HashPassword(acc.password)
	if err != nil {
		return err
	}
	u := user.NewUser(acc.email, hash, acc.firstName, acc.lastName, nil)
	u.Role = acc.role
	if err := users.Create(ctx, u); err != nil {
		return err
	}

	log.Info("初始账号创建成功",
		zap.String("email", u.Email),
		zap.String("user_id", u.ID),
		zap.String("role", string(u.Role)))
	return nil
}
