package user

import (
	"context"

	"github.com/TheJisus28/bookstore-api/pkg/pagination"
)

// Repository 用户仓储接口
type Repository interface {
	// Create 邮箱重复返回ErrEmailDuplicate（由唯一索引保证）
	Create(ctx context.Context, user *User) error

	// FindByID 不存在返回ErrUserNotFound
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByEmail 不存在返回ErrUserNotFound
	FindByEmail(ctx context.Context, email string) (*User, error)

	// List 按created_at倒序分页
	List(ctx context.Context, filter ListFilter, page pagination.Params) ([]*User, int64, error)

	// Update 部分更新，没有字段时直接返回当前记录
	Update(ctx context.Context, id string, in UpdateInput) (*User, error)
}
