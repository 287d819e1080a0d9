package address

import (
	"context"
)

// Repository 地址仓储接口
// 默认地址的"清除其他默认 + 设置当前"在同一事务内完成
type Repository interface {
	Create(ctx context.Context, a *Address) error
	FindByID(ctx context.Context, id string) (*Address, error)
	// ListByUser 默认地址在前，其余按created_at倒序
	ListByUser(ctx context.Context, userID string) ([]*Address, error)
	// Update 按id+user_id更新，记录存在但不属于userID返回ErrNotOwner
	Update(ctx context.Context, id, userID string, in UpdateInput) (*Address, error)
	// Delete 按id+user_id删除，没有删除任何行返回ErrAddressNotFound
	Delete(ctx context.Context, id, userID string) error
}
