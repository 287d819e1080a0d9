package order

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestStatus_CanTransitionTo 状态机转换表
func TestStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusShipped, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusDelivered, false},
		{StatusPending, StatusCompleted, false},
		{StatusPending, StatusPending, false},
		{StatusShipped, StatusDelivered, true},
		{StatusShipped, StatusCancelled, true},
		{StatusShipped, StatusPending, false},
		{StatusDelivered, StatusCompleted, true},
		{StatusDelivered, StatusCancelled, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusPending, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestStatus_CheckTransition(t *testing.T) {
	assert.ErrorIs(t, StatusPending.CheckTransition("lost"), ErrInvalidStatus)
	assert.ErrorIs(t, StatusCompleted.CheckTransition(StatusShipped), ErrInvalidTransition)
	assert.NoError(t, StatusPending.CheckTransition(StatusShipped))
}

func TestStatus_Terminal(t *testing.T) {
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusShipped.IsTerminal())

	assert.True(t, StatusShipped.CountsAsPurchase())
	assert.True(t, StatusDelivered.CountsAsPurchase())
	assert.True(t, StatusCompleted.CountsAsPurchase())
	assert.False(t, StatusPending.CountsAsPurchase())
	assert.False(t, StatusCancelled.CountsAsPurchase())
}

// TestOrder_TransitionTo 发货只写shipped_at，送达只写delivered_at
func TestOrder_TransitionTo(t *testing.T) {
	o := &Order{Status: StatusPending}
	shippedAt := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, o.TransitionTo(StatusShipped, shippedAt))
	assert.Equal(t, StatusShipped, o.Status)
	require.NotNil(t, o.ShippedAt)
	assert.True(t, o.ShippedAt.Equal(shippedAt))
	assert.Nil(t, o.DeliveredAt)

	deliveredAt := shippedAt.Add(48 * time.Hour)
	require.NoError(t, o.TransitionTo(StatusDelivered, deliveredAt))
	require.NotNil(t, o.DeliveredAt)
	assert.True(t, o.DeliveredAt.Equal(deliveredAt))
	assert.True(t, o.ShippedAt.Equal(shippedAt))

	err := o.TransitionTo(StatusShipped, deliveredAt)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, StatusDelivered, o.Status)
}

func TestNewOrder_Totals(t *testing.T) {
	items := []*Item{
		NewItem("b1", 2, decimal.RequireFromString("10.50")),
		NewItem("b2", 1, decimal.RequireFromString("5.00")),
	}
	assert.True(t, items[0].Subtotal.Equal(decimal.RequireFromString("21.00")))

	o := NewOrder("u1", "a1", items, decimal.RequireFromString("3.00"), decimal.Zero, nil)
	assert.Equal(t, StatusPending, o.Status)
	assert.True(t, o.Subtotal().Equal(decimal.RequireFromString("26.00")))
	assert.True(t, o.TotalAmount.Equal(decimal.RequireFromString("29.00")))
}

func TestNoDiscounts(t *testing.T) {
	var r DiscountResolver = NoDiscounts{}

	amount, err := r.Resolve(context.Background(), "", decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.True(t, amount.IsZero())

	_, err = r.Resolve(context.Background(), "SUMMER10", decimal.NewFromInt(100))
	assert.ErrorIs(t, err, ErrInvalidDiscount)
}
