package publisher

import (
	"context"

	"github.com/TheJisus28/bookstore-api/pkg/pagination"
)

// Repository 出版社仓储接口
type Repository interface {
	Create(ctx context.Context, p *Publisher) error
	FindByID(ctx context.Context, id string) (*Publisher, error)
	List(ctx context.Context, page pagination.Params) ([]*Publisher, int64, error)
	Update(ctx context.Context, id string, in UpdateInput) (*Publisher, error)
	// Delete 图书的publisher_id置空
	Delete(ctx context.Context, id string) error
}
