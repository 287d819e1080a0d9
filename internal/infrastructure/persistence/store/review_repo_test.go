package store

import (
	"context"
	"testing"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheJisus28/bookstore-api/internal/domain/review"
	"github.com/TheJisus28/bookstore-api/internal/domain/user"
	"github.com/TheJisus28/bookstore-api/pkg/pagination"
)

func TestReviewRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewReviewRepository(db)
	ctx := context.Background()

	author := createUser(t, db, "writer@test.com", user.RoleCustomer)
	other := createUser(t, db, "other@test.com", user.RoleCustomer)
	b := createBook(t, db, "9780000002001", "Libro", "10", 1)

	rv := &review.Review{UserID: author.ID, BookID: b.ID, Rating: 4}
	require.NoError(t, repo.Create(ctx, rv))
	assert.NotEmpty(t, rv.ID)

	t.Run("重复评价", func(t *testing.T) {
		err := repo.Create(ctx, &review.Review{UserID: author.ID, BookID: b.ID, Rating: 2})
		assert.ErrorIs(t, err, review.ErrAlreadyReviewed)
	})

	t.Run("Exists", func(t *testing.T) {
		ok, err := repo.Exists(ctx, author.ID, b.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = repo.Exists(ctx, other.ID, b.ID)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("列表带评价人姓名", func(t *testing.T) {
		views, total, err := repo.ListByBook(ctx, b.ID, pagination.Params{})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, views, 1)
		assert.Equal(t, "Ana", views[0].FirstName)
		assert.Equal(t, "García", views[0].LastName)
	})

	t.Run("只能修改自己的评价", func(t *testing.T) {
		_, err := repo.Update(ctx, rv.ID, other.ID, review.UpdateInput{Rating: mo.Some(1)})
		assert.ErrorIs(t, err, review.ErrUpdateNotOwner)

		updated, err := repo.Update(ctx, rv.ID, author.ID, review.UpdateInput{
			Rating:  mo.Some(5),
			Comment: mo.Some("Muy bueno"),
		})
		require.NoError(t, err)
		assert.Equal(t, 5, updated.Rating)
		require.NotNil(t, updated.Comment)
		assert.Equal(t, "Muy bueno", *updated.Comment)
	})

	t.Run("只能删除自己的评价", func(t *testing.T) {
		assert.ErrorIs(t, repo.Delete(ctx, rv.ID, other.ID), review.ErrDeleteNotOwner)
		require.NoError(t, repo.Delete(ctx, rv.ID, author.ID))
		assert.ErrorIs(t, repo.Delete(ctx, rv.ID, author.ID), review.ErrReviewNotFound)
	})
}
