package author

import (
	"context"

	"github.com/TheJisus28/bookstore-api/pkg/pagination"
)

// Repository 作者仓储接口
type Repository interface {
	Create(ctx context.Context, a *Author) error
	FindByID(ctx context.Context, id string) (*Author, error)
	// FindByIDs 返回存在的作者（顺序不保证）
	FindByIDs(ctx context.Context, ids []string) ([]*Author, error)
	// List 按last_name, first_name排序
	List(ctx context.Context, page pagination.Params) ([]*Author, int64, error)
	Update(ctx context.Context, id string, in UpdateInput) (*Author, error)
	// Delete 同时删除作者与图书的关联
	Delete(ctx context.Context, id string) error
}
