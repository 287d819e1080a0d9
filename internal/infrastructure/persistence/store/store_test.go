package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/TheJisus28/bookstore-api/internal/domain/address"
	"github.com/TheJisus28/bookstore-api/internal/domain/book"
	"github.com/TheJisus28/bookstore-api/internal/domain/order"
	"github.com/TheJisus28/bookstore-api/internal/domain/user"
	"github.com/TheJisus28/bookstore-api/internal/infrastructure/config"
)

// newTestDB 每个测试独立的SQLite内存库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Open(config.DatabaseConfig{
		Driver:      config.DriverSQLite,
		Path:        "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		AutoMigrate: true,
	}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })
	return db
}

func createUser(t *testing.T, db *gorm.DB, email string, role user.Role) *user.User {
	t.Helper()
	u := user.NewUser(email, "hash", "Ana", "García", nil)
	u.Role = role
	require.NoError(t, NewUserRepository(db).Create(context.Background(), u))
	return u
}

func createBook(t *testing.T, db *gorm.DB, isbn, title string, price string, stock int, mutate ...func(*book.Book)) *book.Book {
	t.Helper()
	b := &book.Book{
		ISBN:     isbn,
		Title:    title,
		Price:    decimal.RequireFromString(price),
		Stock:    stock,
		IsActive: true,
	}
	for _, fn := range mutate {
		fn(b)
	}
	require.NoError(t, NewBookRepository(db).Create(context.Background(), b))
	return b
}

func createAddress(t *testing.T, db *gorm.DB, userID string, isDefault bool) *address.Address {
	t.Helper()
	a := &address.Address{
		UserID:     userID,
		Street:     "Calle 1",
		City:       "Bogotá",
		PostalCode: "110111",
		Country:    "Colombia",
		IsDefault:  isDefault,
	}
	require.NoError(t, NewAddressRepository(db).Create(context.Background(), a))
	return a
}

type line struct {
	book     *book.Book
	quantity int
}

// createOrder 直接写入订单（不经过结算流程），createdAt为零值时使用当前时间
func createOrder(t *testing.T, db *gorm.DB, userID, addressID string, status order.Status, createdAt time.Time, lines ...line) *order.Order {
	t.Helper()
	items := make([]*order.Item, len(lines))
	for i, l := range lines {
		items[i] = order.NewItem(l.book.ID, l.quantity, l.book.Price)
	}
	o := order.NewOrder(userID, addressID, items, decimal.Zero, decimal.Zero, nil)
	o.Status = status
	require.NoError(t, NewOrderRepository(db).Create(context.Background(), o))

	if !createdAt.IsZero() {
		require.NoError(t, db.Model(&OrderModel{}).Where("id = ?", o.ID).
			UpdateColumn("created_at", createdAt.UTC()).Error)
		o.CreatedAt = createdAt.UTC()
	}
	return o
}

func ptr[T any](v T) *T {
	return &v
}
