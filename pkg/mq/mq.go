// Package mq RabbitMQ消息发布
//
// 只负责把事件以JSON持久化消息发到Topic Exchange，
// 是否投递、投递失败如何处理由调用方（messaging.OrderEventPublisher）决定。
package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Channel Publisher依赖的AMQP通道能力（*amqp.Channel实现）
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher 消息发布者
// amqp.Channel不是并发安全的，Publish使用互斥锁串行化
type Publisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	channel  Channel
	exchange string
	logger   *zap.Logger
}

// NewPublisher 连接RabbitMQ并声明持久化Exchange
func NewPublisher(url, exchange, exchangeType string, logger *zap.Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("连接RabbitMQ失败: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("创建Channel失败: %w", err)
	}

	// durable=true, autoDelete=false, internal=false, noWait=false
	if err := ch.ExchangeDeclare(exchange, exchangeType, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("声明Exchange失败: %w", err)
	}

	logger.Info("message publisher ready",
		zap.String("exchange", exchange),
		zap.String("type", exchangeType),
	)

	p := NewPublisherWithChannel(ch, exchange, logger)
	p.conn = conn
	return p, nil
}

// NewPublisherWithChannel 使用已有通道创建Publisher
func NewPublisherWithChannel(ch Channel, exchange string, logger *zap.Logger) *Publisher {
	return &Publisher{
		channel:  ch,
		exchange: exchange,
		logger:   logger,
	}
}

// Exchange 返回Exchange名称
func (p *Publisher) Exchange() string {
	return p.exchange
}

// Publish 发布JSON消息（持久化投递）
func (p *Publisher) Publish(ctx context.Context, routingKey string, message any) error {
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("消息序列化失败: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.PublishWithContext(ctx, p.exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
	})
	if err != nil {
		return fmt.Errorf("发布消息失败: %w", err)
	}

	p.logger.Debug("message published",
		zap.String("exchange", p.exchange),
		zap.String("routing_key", routingKey),
		zap.Int("bytes", len(body)),
	)
	return nil
}

// Close 关闭通道和连接
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var firstErr error
	if p.channel != nil {
		firstErr = p.channel.Close()
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
