package order

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// 事件路由键
const (
	RoutingKeyCreated       = "order.created"
	RoutingKeyStatusChanged = "order.status_changed"
)

// CreatedEvent 下单成功（事务提交后发布）
type CreatedEvent struct {
	OrderID     string          `json:"order_id"`
	UserID      string          `json:"user_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	ItemCount   int             `json:"item_count"`
	CreatedAt   time.Time       `json:"created_at"`
}

// StatusChangedEvent 订单状态变更
type StatusChangedEvent struct {
	OrderID   string    `json:"order_id"`
	UserID    string    `json:"user_id"`
	From      Status    `json:"from"`
	To        Status    `json:"to"`
	ChangedAt time.Time `json:"changed_at"`
}

// NewCreatedEvent 由订单生成下单事件
func NewCreatedEvent(o *Order) CreatedEvent {
	return CreatedEvent{
		OrderID:     o.ID,
		UserID:      o.UserID,
		TotalAmount: o.TotalAmount,
		ItemCount:   len(o.Items),
		CreatedAt:   o.CreatedAt,
	}
}

// EventPublisher 订单事件发布
// 发布失败不影响已提交的订单，调用方只记录日志
type EventPublisher interface {
	PublishCreated(ctx context.Context, e CreatedEvent) error
	PublishStatusChanged(ctx context.Context, e StatusChangedEvent) error
}
