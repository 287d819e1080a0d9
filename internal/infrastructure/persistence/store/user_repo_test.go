package store

import (
	"context"
	"testing"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/TheJisus28/bookstore-api/internal/domain/user"
	"github.com/TheJisus28/bookstore-api/internal/infrastructure/config"
	"github.com/TheJisus28/bookstore-api/pkg/pagination"
)

func TestUserRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	admin := createUser(t, db, "root@test.com", user.RoleAdmin)
	customer := createUser(t, db, "client@test.com", user.RoleCustomer)

	t.Run("邮箱重复", func(t *testing.T) {
		err := repo.Create(ctx, user.NewUser("client@test.com", "hash", "X", "Y", nil))
		assert.ErrorIs(t, err, user.ErrEmailDuplicate)
	})

	t.Run("按邮箱查询", func(t *testing.T) {
		found, err := repo.FindByEmail(ctx, "root@test.com")
		require.NoError(t, err)
		assert.Equal(t, admin.ID, found.ID)
		assert.True(t, found.IsAdmin())

		_, err = repo.FindByEmail(ctx, "missing@test.com")
		assert.ErrorIs(t, err, user.ErrUserNotFound)
	})

	t.Run("按角色过滤", func(t *testing.T) {
		users, total, err := repo.List(ctx, user.ListFilter{Role: mo.Some(user.RoleCustomer)}, pagination.Params{})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, users, 1)
		assert.Equal(t, customer.ID, users[0].ID)
	})

	t.Run("停用账号", func(t *testing.T) {
		updated, err := repo.Update(ctx, customer.ID, user.UpdateInput{
			IsActive: mo.Some(false),
			Phone:    mo.Some("+57 300"),
		})
		require.NoError(t, err)
		assert.False(t, updated.IsActive)
		require.NotNil(t, updated.Phone)
		assert.Equal(t, "+57 300", *updated.Phone)
	})

	t.Run("更新为已存在的邮箱", func(t *testing.T) {
		_, err := repo.Update(ctx, customer.ID, user.UpdateInput{Email: mo.Some("root@test.com")})
		assert.ErrorIs(t, err, user.ErrEmailDuplicate)
	})
}

func TestSeed(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	cfg := config.SeedConfig{
		Enabled:        true,
		AdminEmail:     "admin@admin.com",
		AdminPassword:  "admin123",
		TesterEmail:    "tester@test.com",
		TesterPassword: "123123123",
	}
	Seed(ctx, repo, cfg, zap.NewNop())
	Seed(ctx, repo, cfg, zap.NewNop())

	_, total, err := repo.List(ctx, user.ListFilter{}, pagination.Params{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total, "重复执行不会重复创建")

	admin, err := repo.FindByEmail(ctx, "admin@admin.com")
	require.NoError(t, err)
	assert.Equal(t, user.RoleAdmin, admin.Role)
	assert.NoError(t, user.CheckPassword(admin.PasswordHash, "admin123"))

	tester, err := repo.FindByEmail(ctx, "tester@test.com")
	require.NoError(t, err)
	assert.Equal(t, user.RoleCustomer, tester.Role)

	t.Run("关闭时不创建", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewUserRepository(db)
		Seed(ctx, repo, config.SeedConfig{AdminEmail: "admin@admin.com"}, zap.NewNop())
		_, err := repo.FindByEmail(ctx, "admin@admin.com")
		assert.ErrorIs(t, err, user.ErrUserNotFound)
	})
}
