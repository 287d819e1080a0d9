package order

import (
	"context"

	"github.com/TheJisus28/bookstore-api/pkg/pagination"
)

// Repository 订单仓储接口
type Repository interface {
	// Create 同时写入订单明细，回填ID
	Create(ctx context.Context, o *Order) error

	// FindByID 不存在返回ErrOrderNotFound（不含明细）
	FindByID(ctx context.Context, id string) (*Order, error)

	// List 全部订单，按created_at倒序
	List(ctx context.Context, page pagination.Params) ([]*Order, int64, error)

	// ListByUser 用户订单，按created_at倒序
	ListByUser(ctx context.Context, userID string, page pagination.Params) ([]*Order, int64, error)

	// Items 订单明细（带图书信息），按created_at排序
	Items(ctx context.Context, orderID string) ([]*ItemView, error)

	// PurchasedBooks 用户已购图书（只统计PurchasedStatuses），附带评价状态
	PurchasedBooks(ctx context.Context, userID string, page pagination.Params) ([]*PurchasedBook, int64, error)

	// HasPurchased 用户是否有包含该书且状态计入已购买的订单
	HasPurchased(ctx context.Context, userID, bookID string) (bool, error)

	// UpdateStatus 保存状态及时间戳，仅当库中状态仍为from时生效
	// 订单不存在返回ErrOrderNotFound，状态已被并发修改返回ErrInvalidTransition
	UpdateStatus(ctx context.Context, o *Order, from Status) error
}
