package order

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/TheJisus28/bookstore-api/internal/domain/order"
)

func placeOrder(t *testing.T, f *fixture) *order.Order {
	t.Helper()
	u := f.user(t, "ana@example.com")
	addr := f.address(t, u.ID)
	b := f.book(t, "111", "10", 5)
	f.addToCart(t, u.ID, b.ID, 1)
	o, err := f.checkout("0").Execute(context.Background(), CheckoutRequest{UserID: u.ID, AddressID: addr.ID})
	require.NoError(t, err)
	return o
}

func TestUpdateStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o := placeOrder(t, f)

	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	uc := NewUpdateStatusUseCase(f.orders, f.events, zap.NewNop())
	uc.now = func() time.Time { return fixed }

	t.Run("发货写入shipped_at", func(t *testing.T) {
		updated, err := uc.Execute(ctx, o.ID, "shipped")
		require.NoError(t, err)
		assert.Equal(t, order.StatusShipped, updated.Status)

		stored, err := f.orders.FindByID(ctx, o.ID)
		require.NoError(t, err)
		assert.Equal(t, order.StatusShipped, stored.Status)
		require.NotNil(t, stored.ShippedAt)
		assert.True(t, fixed.Equal(*stored.ShippedAt))
		assert.Nil(t, stored.DeliveredAt)

		require.Len(t, f.events.changed, 1)
		assert.Equal(t, order.StatusPending, f.events.changed[0].From)
		assert.Equal(t, order.StatusShipped, f.events.changed[0].To)
	})

	t.Run("不允许回到pending", func(t *testing.T) {
		_, err := uc.Execute(ctx, o.ID, "pending")
		assert.ErrorIs(t, err, order.ErrInvalidTransition)
	})

	t.Run("未知状态", func(t *testing.T) {
		_, err := uc.Execute(ctx, o.ID, "refunded")
		assert.ErrorIs(t, err, order.ErrInvalidStatus)
	})

	t.Run("订单不存在", func(t *testing.T) {
		_, err := uc.Execute(ctx, uuid.NewString(), "shipped")
		assert.ErrorIs(t, err, order.ErrOrderNotFound)
	})

	t.Run("送达后完成", func(t *testing.T) {
		_, err := uc.Execute(ctx, o.ID, "delivered")
		require.NoError(t, err)
		done, err := uc.Execute(ctx, o.ID, "completed")
		require.NoError(t, err)
		assert.Equal(t, order.StatusCompleted, done.Status)
		assert.True(t, decimal.NewFromInt(10).Equal(done.TotalAmount))
	})
}

// staleReads FindByID返回首次读取时的快照，模拟两个管理员同时读到同一状态
type staleReads struct {
	order.Repository
	snapshot *order.Order
}

func (s *staleReads) FindByID(_ context.Context, _ string) (*order.Order, error) {
	cp := *s.snapshot
	return &cp, nil
}

func TestUpdateStatus_ConcurrentChange(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o := placeOrder(t, f)

	uc := NewUpdateStatusUseCase(f.orders, f.events, zap.NewNop())
	_, err := uc.Execute(ctx, o.ID, "shipped")
	require.NoError(t, err)

	shipped, err := f.orders.FindByID(ctx, o.ID)
	require.NoError(t, err)
	stale := NewUpdateStatusUseCase(&staleReads{Repository: f.orders, snapshot: shipped}, f.events, zap.NewNop())

	_, err = stale.Execute(ctx, o.ID, "delivered")
	require.NoError(t, err)

	_, err = stale.Execute(ctx, o.ID, "cancelled")
	assert.ErrorIs(t, err, order.ErrInvalidTransition)

	stored, err := f.orders.FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, order.StatusDelivered, stored.Status)
	assert.NotNil(t, stored.DeliveredAt)
}
