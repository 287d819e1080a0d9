package category

import (
	"context"

	"github.com/TheJisus28/bookstore-api/pkg/pagination"
)

// Repository 分类仓储接口
type Repository interface {
	Create(ctx context.Context, c *Category) error
	FindByID(ctx context.Context, id string) (*Category, error)
	// List 按name排序
	List(ctx context.Context, page pagination.Params) ([]*Category, int64, error)
	Update(ctx context.Context, id string, in UpdateInput) (*Category, error)
	// Delete 子分类与图书的引用置空
	Delete(ctx context.Context, id string) error
}
