package store

import (
	"context"
	"testing"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheJisus28/bookstore-api/internal/domain/book"
	"github.com/TheJisus28/bookstore-api/internal/domain/category"
	"github.com/TheJisus28/bookstore-api/internal/domain/publisher"
	"github.com/TheJisus28/bookstore-api/pkg/pagination"
)

func TestCategoryRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	parent := &category.Category{Name: "Ficción"}
	require.NoError(t, repo.Create(ctx, parent))
	child := &category.Category{Name: "Fantasía", ParentID: &parent.ID}
	require.NoError(t, repo.Create(ctx, child))
	b := createBook(t, db, "9780000004001", "Libro", "10", 1, func(b *book.Book) { b.CategoryID = &parent.ID })

	require.NoError(t, repo.Delete(ctx, parent.ID))

	reloaded, err := repo.FindByID(ctx, child.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.ParentID, "子分类移到根节点")

	found, err := NewBookRepository(db).FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Nil(t, found.CategoryID)

	assert.ErrorIs(t, repo.Delete(ctx, parent.ID), category.ErrCategoryNotFound)
}

func TestCategoryRepository_Update(t *testing.T) {
	db := newTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	root := &category.Category{Name: "Raíz"}
	require.NoError(t, repo.Create(ctx, root))
	c := &category.Category{Name: "Hija", ParentID: &root.ID}
	require.NoError(t, repo.Create(ctx, c))

	updated, err := repo.Update(ctx, c.ID, category.UpdateInput{ParentID: mo.Some("")})
	require.NoError(t, err)
	assert.Nil(t, updated.ParentID)

	list, total, err := repo.List(ctx, pagination.Params{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, "Hija", list[0].Name, "按名称排序")
}

func TestPublisherRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	repo := NewPublisherRepository(db)
	ctx := context.Background()

	p := &publisher.Publisher{Name: "Sudamericana"}
	require.NoError(t, repo.Create(ctx, p))
	b := createBook(t, db, "9780000004011", "Libro", "10", 1, func(b *book.Book) { b.PublisherID = &p.ID })

	require.NoError(t, repo.Delete(ctx, p.ID))

	found, err := NewBookRepository(db).FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Nil(t, found.PublisherID)

	_, err = repo.FindByID(ctx, p.ID)
	assert.ErrorIs(t, err, publisher.ErrPublisherNotFound)
}
