package order

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/TheJisus28/bookstore-api/internal/domain/order"
	"github.com/TheJisus28/bookstore-api/pkg/logger"
	"github.com/TheJisus28/bookstore-api/pkg/metrics"
)

// UpdateStatusUseCase 管理员变更订单状态
type UpdateStatusUseCase struct {
	orders order.Repository
	events order.EventPublisher
	log    *zap.Logger
	now    func() time.Time
}

// NewUpdateStatusUseCase 创建状态变更用例
func NewUpdateStatusUseCase(orders order.Repository, events order.EventPublisher, log *zap.Logger) *UpdateStatusUseCase {
	return &UpdateStatusUseCase{
		orders: orders,
		events: events,
		log:    log.Named("order-status"),
		now:    time.Now,
	}
}

// Execute 校验状态机后保存，shipped/delivered同时写入对应时间戳
func (uc *UpdateStatusUseCase) Execute(ctx context.Context, orderID, status string) (*order.Order, error) {
	next, err := order.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	o, err := uc.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	from := o.Status
	now := uc.now().UTC()
	if err := o.TransitionTo(next, now); err != nil {
		return nil, err
	}
	if err := uc.orders.UpdateStatus(ctx, o, from); err != nil {
		return nil, err
	}
	metrics.IncCounterVec(metrics.OrderStatusChangesTotal, map[string]string{"status": string(next)})

	event := order.StatusChangedEvent{
		OrderID:   o.ID,
		UserID:    o.UserID,
		From:      from,
		To:        next,
		ChangedAt: now,
	}
	if err := uc.events.PublishStatusChanged(ctx, event); err != nil {
		uc.log.Warn("发布状态变更事件失败", append(logger.ContextFields(ctx),
			zap.String("order_id", o.ID), zap.Error(err))...)
	}
	return o, nil
}
