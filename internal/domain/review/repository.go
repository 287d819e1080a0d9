package review

import (
	"context"

	"github.com/TheJisus28/bookstore-api/pkg/pagination"
)

// Repository 评价仓储接口
type Repository interface {
	// Create (user_id, book_id)重复返回ErrAlreadyReviewed
	Create(ctx context.Context, r *Review) error
	FindByID(ctx context.Context, id string) (*Review, error)
	// ListByBook 带评价人姓名，按created_at倒序
	ListByBook(ctx context.Context, bookID string, page pagination.Params) ([]*View, int64, error)
	// Exists 用户是否已评价该书
	Exists(ctx context.Context, userID, bookID string) (bool, error)
	// Update 按id+user_id更新，记录存在但不属于userID返回ErrUpdateNotOwner
	Update(ctx context.Context, id, userID string, in UpdateInput) (*Review, error)
	// Delete 按id+user_id删除，记录存在但不属于userID返回ErrDeleteNotOwner
	Delete(ctx context.Context, id, userID string) error
}
