package store

import (
	"context"
	"testing"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheJisus28/bookstore-api/internal/domain/address"
	"github.com/TheJisus28/bookstore-api/internal/domain/user"
)

func TestAddressRepository_SingleDefault(t *testing.T) {
	db := newTestDB(t)
	repo := NewAddressRepository(db)
	ctx := context.Background()

	u := createUser(t, db, "home@test.com", user.RoleCustomer)
	first := createAddress(t, db, u.ID, true)
	second := createAddress(t, db, u.ID, true)

	list, err := repo.ListByUser(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID, "默认地址排在前面")
	assert.True(t, list[0].IsDefault)
	assert.False(t, list[1].IsDefault)

	updated, err := repo.Update(ctx, first.ID, u.ID, address.UpdateInput{IsDefault: mo.Some(true)})
	require.NoError(t, err)
	assert.True(t, updated.IsDefault)

	reloaded, err := repo.FindByID(ctx, second.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.IsDefault, "同一用户只有一个默认地址")
}

func TestAddressRepository_Ownership(t *testing.T) {
	db := newTestDB(t)
	repo := NewAddressRepository(db)
	ctx := context.Background()

	owner := createUser(t, db, "owner@test.com", user.RoleCustomer)
	other := createUser(t, db, "other@test.com", user.RoleCustomer)
	a := createAddress(t, db, owner.ID, false)

	t.Run("更新他人地址", func(t *testing.T) {
		_, err := repo.Update(ctx, a.ID, other.ID, address.UpdateInput{City: mo.Some("Lima")})
		assert.ErrorIs(t, err, address.ErrNotOwner)

		reloaded, err := repo.FindByID(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, "Bogotá", reloaded.City)
	})

	t.Run("更新自己的地址", func(t *testing.T) {
		updated, err := repo.Update(ctx, a.ID, owner.ID, address.UpdateInput{
			City:  mo.Some("Medellín"),
			State: mo.Some("Antioquia"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Medellín", updated.City)
		require.NotNil(t, updated.State)
		assert.Equal(t, "Antioquia", *updated.State)
	})

	t.Run("删除他人地址", func(t *testing.T) {
		assert.ErrorIs(t, repo.Delete(ctx, a.ID, other.ID), address.ErrAddressNotFound)
	})

	t.Run("删除自己的地址", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, a.ID, owner.ID))
		_, err := repo.FindByID(ctx, a.ID)
		assert.ErrorIs(t, err, address.ErrAddressNotFound)
	})
}
