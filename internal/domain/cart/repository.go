package cart

import (
	"context"
)

// Repository 购物车仓储接口
type Repository interface {
	// ListByUser 只包含上架图书，按created_at倒序
	ListByUser(ctx context.Context, userID string) ([]*Line, error)
	// FindLine 单个购物车项（带图书信息）
	FindLine(ctx context.Context, id string) (*Line, error)
	// FindByID 按id+user_id查找，其他用户的购物车项同样返回ErrCartItemNotFound
	FindByID(ctx context.Context, id, userID string) (*Item, error)
	// FindByUserAndBook 不存在返回ErrCartItemNotFound
	FindByUserAndBook(ctx context.Context, userID, bookID string) (*Item, error)
	Create(ctx context.Context, item *Item) error
	SetQuantity(ctx context.Context, id, userID string, quantity int) error
	Delete(ctx context.Context, id, userID string) error
	Clear(ctx context.Context, userID string) error
	// Items 结算用，包含下架图书的购物车项
	Items(ctx context.Context, userID string) ([]*Item, error)
}
