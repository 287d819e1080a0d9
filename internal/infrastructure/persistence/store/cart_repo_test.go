package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheJisus28/bookstore-api/internal/domain/book"
	"github.com/TheJisus28/bookstore-api/internal/domain/cart"
	"github.com/TheJisus28/bookstore-api/internal/domain/user"
	apperrors "github.com/TheJisus28/bookstore-api/pkg/errors"
)

func TestCartRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewCartRepository(db)
	ctx := context.Background()

	u := createUser(t, db, "cart@test.com", user.RoleCustomer)
	other := createUser(t, db, "cart2@test.com", user.RoleCustomer)
	active := createBook(t, db, "9780000005001", "Activo", "7.25", 4)
	hidden := createBook(t, db, "9780000005002", "Oculto", "3", 4, func(b *book.Book) { b.IsActive = false })

	item := &cart.Item{UserID: u.ID, BookID: active.ID, Quantity: 2}
	require.NoError(t, repo.Create(ctx, item))
	require.NoError(t, repo.Create(ctx, &cart.Item{UserID: u.ID, BookID: hidden.ID, Quantity: 1}))

	t.Run("同一本书只能有一行", func(t *testing.T) {
		err := repo.Create(ctx, &cart.Item{UserID: u.ID, BookID: active.ID, Quantity: 1})
		assert.ErrorIs(t, err, apperrors.ErrDuplicateEntry)
	})

	t.Run("列表只包含上架图书", func(t *testing.T) {
		lines, err := repo.ListByUser(ctx, u.ID)
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, "Activo", lines[0].Title)
		assert.Equal(t, 4, lines[0].Stock)
		assert.Equal(t, "14.5", lines[0].Subtotal().String())
	})

	t.Run("结算读取全部项", func(t *testing.T) {
		items, err := repo.Items(ctx, u.ID)
		require.NoError(t, err)
		assert.Len(t, items, 2)
	})

	t.Run("他人的购物车项", func(t *testing.T) {
		assert.ErrorIs(t, repo.SetQuantity(ctx, item.ID, other.ID, 3), cart.ErrCartItemNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, item.ID, other.ID), cart.ErrCartItemNotFound)
		_, err := repo.FindByID(ctx, item.ID, other.ID)
		assert.ErrorIs(t, err, cart.ErrCartItemNotFound)
	})

	t.Run("修改数量", func(t *testing.T) {
		require.NoError(t, repo.SetQuantity(ctx, item.ID, u.ID, 3))
		line, err := repo.FindLine(ctx, item.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, line.Quantity)
	})

	t.Run("清空", func(t *testing.T) {
		require.NoError(t, repo.Clear(ctx, u.ID))
		items, err := repo.Items(ctx, u.ID)
		require.NoError(t, err)
		assert.Empty(t, items)
	})
}
