package mq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type publishedMessage struct {
	exchange string
	key      string
	msg      amqp.Publishing
}

type fakeChannel struct {
	published []publishedMessage
	err       error
	closed    bool
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, publishedMessage{exchange: exchange, key: key, msg: msg})
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestPublisher_Publish(t *testing.T) {
	ch := &fakeChannel{}
	p := NewPublisherWithChannel(ch, "bookstore.events", zap.NewNop())

	event := map[string]any{"order_id": "o-1", "status": "pending"}
	require.NoError(t, p.Publish(context.Background(), "order.created", event))

	require.Len(t, ch.published, 1)
	got := ch.published[0]
	assert.Equal(t, "bookstore.events", got.exchange)
	assert.Equal(t, "order.created", got.key)
	assert.Equal(t, "application/json", got.msg.ContentType)
	assert.Equal(t, amqp.Persistent, got.msg.DeliveryMode)
	assert.False(t, got.msg.Timestamp.IsZero())

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(got.msg.Body, &decoded))
	assert.Equal(t, "o-1", decoded["order_id"])
}

func TestPublisher_PublishError(t *testing.T) {
	ch := &fakeChannel{err: errors.New("channel/connection is not open")}
	p := NewPublisherWithChannel(ch, "bookstore.events", zap.NewNop())

	err := p.Publish(context.Background(), "order.created", map[string]string{"order_id": "o-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "channel/connection is not open")
}

func TestPublisher_PublishUnmarshalable(t *testing.T) {
	ch := &fakeChannel{}
	p := NewPublisherWithChannel(ch, "bookstore.events", zap.NewNop())

	err := p.Publish(context.Background(), "order.created", make(chan int))
	assert.Error(t, err)
	assert.Empty(t, ch.published)
}

func TestPublisher_Close(t *testing.T) {
	ch := &fakeChannel{}
	p := NewPublisherWithChannel(ch, "bookstore.events", zap.NewNop())

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}
