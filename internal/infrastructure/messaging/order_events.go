// Package messaging 订单事件发布（RabbitMQ）
package messaging

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/TheJisus28/bookstore-api/internal/domain/order"
	"github.com/TheJisus28/bookstore-api/pkg/circuitbreaker"
	"github.com/TheJisus28/bookstore-api/pkg/logger"
	"github.com/TheJisus28/bookstore-api/pkg/metrics"
)

const breakerName = "order-events"

// Publisher 消息发送能力（*mq.Publisher实现）
type Publisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
	Exchange() string
}

// OrderEventPublisher 在熔断器保护下发布订单事件
//
//	Broker连续失败达到阈值 → 熔断，后续事件直接丢弃（不等待超时）
//	熔断超时后放行一个探测请求，成功则恢复
type OrderEventPublisher struct {
	publisher Publisher
	breaker   *circuitbreaker.CircuitBreaker
	timeout   time.Duration
	log       *zap.Logger
}

// NewOrderEventPublisher 创建订单事件发布器
func NewOrderEventPublisher(p Publisher, breaker *circuitbreaker.CircuitBreaker, timeout time.Duration, log *zap.Logger) *OrderEventPublisher {
	if breaker == nil {
		breaker = NewBreaker(5, 30*time.Second, log)
	}
	return &OrderEventPublisher{
		publisher: p,
		breaker:   breaker,
		timeout:   timeout,
		log:       log.Named("events"),
	}
}

// NewBreaker 创建事件发布熔断器，状态变化写入日志和指标
func NewBreaker(threshold uint32, timeout time.Duration, log *zap.Logger) *circuitbreaker.CircuitBreaker {
	cb := circuitbreaker.NewCircuitBreaker(breakerName, circuitbreaker.DefaultConfig(threshold, timeout))
	cb.SetStateChangeCallback(func(name string, from, to circuitbreaker.State) {
		log.Warn("circuit breaker state changed",
			zap.String("name", name),
			zap.String("from", from.String()),
			zap.String("to", to.String()))
		metrics.SetGaugeVec(metrics.CircuitBreakerState, map[string]string{"name": name}, float64(to))
	})
	return cb
}

func (p *OrderEventPublisher) PublishCreated(ctx context.Context, e order.CreatedEvent) error {
	return p.publish(ctx, order.RoutingKeyCreated, e)
}

func (p *OrderEventPublisher) PublishStatusChanged(ctx context.Context, e order.StatusChangedEvent) error {
	return p.publish(ctx, order.RoutingKeyStatusChanged, e)
}

func (p *OrderEventPublisher) publish(ctx context.Context, routingKey string, event any) error {
	err := p.breaker.Execute(func() error {
		pubCtx, cancel := p.withTimeout(ctx)
		defer cancel()
		return p.publisher.Publish(pubCtx, routingKey, event)
	})

	result := "success"
	breakerResult := "success"
	switch {
	case errors.Is(err, circuitbreaker.ErrOpenState):
		result, breakerResult = "failure", "rejected"
	case err != nil:
		result, breakerResult = "failure", "failure"
	}
	metrics.IncCounterVec(metrics.CircuitBreakerRequests, map[string]string{"name": breakerName, "result": breakerResult})
	metrics.IncCounterVec(metrics.MessagesPublishedTotal, map[string]string{
		"exchange":    p.publisher.Exchange(),
		"routing_key": routingKey,
		"result":      result,
	})

	if err != nil {
		p.log.Warn("failed to publish event",
			append(logger.ContextFields(ctx),
				zap.String("routing_key", routingKey),
				zap.String("breaker", breakerResult),
				zap.Error(err))...)
		return err
	}
	return nil
}

func (p *OrderEventPublisher) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	// 请求结束后仍然要发布，不继承取消信号
	ctx = context.WithoutCancel(ctx)
	if p.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, p.timeout)
}

// NopPublisher 未启用消息队列时使用，事件被丢弃
type NopPublisher struct{}

func (NopPublisher) PublishCreated(context.Context, order.CreatedEvent) error { return nil }

func (NopPublisher) PublishStatusChanged(context.Context, order.StatusChangedEvent) error {
	return nil
}

var (
	_ order.EventPublisher = (*OrderEventPublisher)(nil)
	_ order.EventPublisher = NopPublisher{}
)
