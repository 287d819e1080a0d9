package order

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/samber/mo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/TheJisus28/bookstore-api/internal/domain/address"
	"github.com/TheJisus28/bookstore-api/internal/domain/book"
	"github.com/TheJisus28/bookstore-api/internal/domain/cart"
	"github.com/TheJisus28/bookstore-api/internal/domain/order"
	"github.com/TheJisus28/bookstore-api/internal/domain/user"
	"github.com/TheJisus28/bookstore-api/internal/infrastructure/config"
	"github.com/TheJisus28/bookstore-api/internal/infrastructure/persistence/store"
	"github.com/TheJisus28/bookstore-api/pkg/pagination"
)

type recordingEvents struct {
	created []order.CreatedEvent
	changed []order.StatusChangedEvent
	err     error
}

func (r *recordingEvents) PublishCreated(_ context.Context, e order.CreatedEvent) error {
	r.created = append(r.created, e)
	return r.err
}

func (r *recordingEvents) PublishStatusChanged(_ context.Context, e order.StatusChangedEvent) error {
	r.changed = append(r.changed, e)
	return r.err
}

type fixture struct {
	db        *gorm.DB
	orders    order.Repository
	books     book.Repository
	carts     cart.Repository
	addresses address.Repository
	users     user.Repository
	events    *recordingEvents
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := store.Open(config.DatabaseConfig{
		Driver:      config.DriverSQLite,
		Path:        "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		AutoMigrate: true,
	}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close(db) })

	return &fixture{
		db:        db,
		orders:    store.NewOrderRepository(db),
		books:     store.NewBookRepository(db),
		carts:     store.NewCartRepository(db),
		addresses: store.NewAddressRepository(db),
		users:     store.NewUserRepository(db),
		events:    &recordingEvents{},
	}
}

func (f *fixture) checkout(shipping string) *CheckoutUseCase {
	return NewCheckoutUseCase(f.orders, f.books, f.carts, f.addresses, store.NewTxManager(f.db),
		nil, f.events, decimal.RequireFromString(shipping), zap.NewNop())
}

func (f *fixture) user(t *testing.T, email string) *user.User {
	t.Helper()
	u := user.NewUser(email, "hash", "Ana", "García", nil)
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func (f *fixture) address(t *testing.T, userID string) *address.Address {
	t.Helper()
	a := &address.Address{UserID: userID, Street: "Calle 1", City: "Bogotá", PostalCode: "110111", Country: "Colombia"}
	require.NoError(t, f.addresses.Create(context.Background(), a))
	return a
}

func (f *fixture) book(t *testing.T, isbn, price string, stock int) *book.Book {
	t.Helper()
	b := &book.Book{ISBN: isbn, Title: "Libro " + isbn, Price: decimal.RequireFromString(price), Stock: stock, IsActive: true}
	require.NoError(t, f.books.Create(context.Background(), b))
	return b
}

func (f *fixture) addToCart(t *testing.T, userID, bookID string, quantity int) {
	t.Helper()
	require.NoError(t, f.carts.Create(context.Background(), &cart.Item{UserID: userID, BookID: bookID, Quantity: quantity}))
}

func (f *fixture) stock(t *testing.T, bookID string) int {
	t.Helper()
	b, err := f.books.FindByID(context.Background(), bookID)
	require.NoError(t, err)
	return b.Stock
}

func TestCheckout_Success(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "ana@example.com")
	addr := f.address(t, u.ID)
	b1 := f.book(t, "111", "10.50", 5)
	b2 := f.book(t, "222", "20.00", 3)
	f.addToCart(t, u.ID, b1.ID, 2)
	f.addToCart(t, u.ID, b2.ID, 1)

	o, err := f.checkout("5").Execute(ctx, CheckoutRequest{UserID: u.ID, AddressID: addr.ID})
	require.NoError(t, err)

	assert.NotEmpty(t, o.ID)
	assert.Equal(t, order.StatusPending, o.Status)
	assert.True(t, decimal.RequireFromString("46").Equal(o.TotalAmount), "41 + 运费5，实际%s", o.TotalAmount)
	assert.True(t, decimal.RequireFromString("5").Equal(o.ShippingCost))
	assert.True(t, o.DiscountAmount.IsZero())
	assert.Nil(t, o.DiscountCode)
	assert.Len(t, o.Items, 2)

	t.Run("扣减库存", func(t *testing.T) {
		assert.Equal(t, 3, f.stock(t, b1.ID))
		assert.Equal(t, 2, f.stock(t, b2.ID))
	})

	t.Run("清空购物车", func(t *testing.T) {
		items, err := f.carts.Items(ctx, u.ID)
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("单价快照", func(t *testing.T) {
		views, err := f.orders.Items(ctx, o.ID)
		require.NoError(t, err)
		require.Len(t, views, 2)
		for _, v := range views {
			assert.True(t, v.Subtotal.Equal(v.UnitPrice.Mul(decimal.NewFromInt(int64(v.Quantity)))))
		}
	})

	t.Run("提交后发布事件", func(t *testing.T) {
		require.Len(t, f.events.created, 1)
		assert.Equal(t, o.ID, f.events.created[0].OrderID)
		assert.Equal(t, 2, f.events.created[0].ItemCount)
	})
}

func TestCheckout_Rejections(t *testing.T) {
	t.Run("购物车为空", func(t *testing.T) {
		f := newFixture(t)
		u := f.user(t, "ana@example.com")
		addr := f.address(t, u.ID)

		_, err := f.checkout("0").Execute(context.Background(), CheckoutRequest{UserID: u.ID, AddressID: addr.ID})
		assert.ErrorIs(t, err, order.ErrEmptyCart)
		assert.Empty(t, f.events.created)
	})

	t.Run("地址不存在", func(t *testing.T) {
		f := newFixture(t)
		u := f.user(t, "ana@example.com")

		_, err := f.checkout("0").Execute(context.Background(), CheckoutRequest{UserID: u.ID, AddressID: uuid.NewString()})
		assert.ErrorIs(t, err, address.ErrAddressNotFound)
	})

	t.Run("他人地址", func(t *testing.T) {
		f := newFixture(t)
		u := f.user(t, "ana@example.com")
		other := f.user(t, "bob@example.com")
		addr := f.address(t, other.ID)
		b := f.book(t, "111", "10", 5)
		f.addToCart(t, u.ID, b.ID, 1)

		_, err := f.checkout("0").Execute(context.Background(), CheckoutRequest{UserID: u.ID, AddressID: addr.ID})
		assert.ErrorIs(t, err, address.ErrNotOwner)
	})

	t.Run("库存不足时整体回滚", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()
		u := f.user(t, "ana@example.com")
		addr := f.address(t, u.ID)
		enough := f.book(t, "111", "10", 5)
		scarce := f.book(t, "222", "10", 1)
		f.addToCart(t, u.ID, enough.ID, 2)
		f.addToCart(t, u.ID, scarce.ID, 2)

		_, err := f.checkout("0").Execute(ctx, CheckoutRequest{UserID: u.ID, AddressID: addr.ID})
		assert.ErrorIs(t, err, book.ErrInsufficientStock)

		assert.Equal(t, 5, f.stock(t, enough.ID))
		assert.Equal(t, 1, f.stock(t, scarce.ID))
		items, err := f.carts.Items(ctx, u.ID)
		require.NoError(t, err)
		assert.Len(t, items, 2, "购物车保持不变")
		_, total, err := f.orders.ListByUser(ctx, u.ID, pagination.Params{Page: 1, Limit: 10})
		require.NoError(t, err)
		assert.Zero(t, total)
	})

	t.Run("下架图书", func(t *testing.T) {
		f := newFixture(t)
		u := f.user(t, "ana@example.com")
		addr := f.address(t, u.ID)
		b := f.book(t, "111", "10", 5)
		f.addToCart(t, u.ID, b.ID, 1)
		_, err := f.books.Update(context.Background(), b.ID, book.UpdateInput{IsActive: mo.Some(false)})
		require.NoError(t, err)

		_, err = f.checkout("0").Execute(context.Background(), CheckoutRequest{UserID: u.ID, AddressID: addr.ID})
		assert.ErrorIs(t, err, book.ErrBookNotAvailable)
	})

	t.Run("折扣码无效", func(t *testing.T) {
		f := newFixture(t)
		u := f.user(t, "ana@example.com")
		addr := f.address(t, u.ID)
		b := f.book(t, "111", "10", 5)
		f.addToCart(t, u.ID, b.ID, 1)

		_, err := f.checkout("0").Execute(context.Background(), CheckoutRequest{UserID: u.ID, AddressID: addr.ID, DiscountCode: "BLACKFRIDAY"})
		assert.ErrorIs(t, err, order.ErrInvalidDiscount)
		assert.Equal(t, 5, f.stock(t, b.ID))
	})
}

type fixedDiscount struct{ amount decimal.Decimal }

func (d fixedDiscount) Resolve(_ context.Context, code string, _ decimal.Decimal) (decimal.Decimal, error) {
	if code == "" {
		return decimal.Zero, nil
	}
	return d.amount, nil
}

func TestCheckout_DiscountResolver(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "ana@example.com")
	addr := f.address(t, u.ID)
	b := f.book(t, "111", "30", 5)
	f.addToCart(t, u.ID, b.ID, 1)

	uc := NewCheckoutUseCase(f.orders, f.books, f.carts, f.addresses, store.NewTxManager(f.db),
		fixedDiscount{amount: decimal.NewFromInt(4)}, f.events, decimal.NewFromInt(2), zap.NewNop())
	o, err := uc.Execute(context.Background(), CheckoutRequest{UserID: u.ID, AddressID: addr.ID, DiscountCode: " WELCOME "})
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(28).Equal(o.TotalAmount), "30 + 2 - 4，实际%s", o.TotalAmount)
	assert.True(t, decimal.NewFromInt(4).Equal(o.DiscountAmount))
	require.NotNil(t, o.DiscountCode)
	assert.Equal(t, "WELCOME", *o.DiscountCode)
}

func TestCheckout_PublishFailureKeepsOrder(t *testing.T) {
	f := newFixture(t)
	f.events.err = errors.New("broker down")
	u := f.user(t, "ana@example.com")
	addr := f.address(t, u.ID)
	b := f.book(t, "111", "10", 5)
	f.addToCart(t, u.ID, b.ID, 1)

	o, err := f.checkout("0").Execute(context.Background(), CheckoutRequest{UserID: u.ID, AddressID: addr.ID})
	require.NoError(t, err, "事件发布失败不影响已提交的订单")

	stored, err := f.orders.FindByID(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, order.StatusPending, stored.Status)
}
