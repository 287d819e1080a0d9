package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/TheJisus28/bookstore-api/internal/domain/category"
	apperrors "github.com/TheJisus28/bookstore-api/pkg/errors"
	"github.com/TheJisus28/bookstore-api/pkg/pagination"
	"github.com/TheJisus28/bookstore-api/pkg/sqlbuilder"
)

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository 创建分类仓储
func NewCategoryRepository(db *gorm.DB) category.Repository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, c *category.Category) error {
	model := &CategoryModel{
		Name:        c.Name,
		Description: c.Description,
		ParentID:    c.ParentID,
	}
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建分类失败")
	}
	*c = *toCategoryEntity(model)
	return nil
}

func (r *categoryRepository) FindByID(ctx context.Context, id string) (*category.Category, error) {
	var model CategoryModel
	if err := getDB(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, translate(err, category.ErrCategoryNotFound, "查询分类失败")
	}
	return toCategoryEntity(&model), nil
}

func (r *categoryRepository) List(ctx context.Context, page pagination.Params) ([]*category.Category, int64, error) {
	var models []CategoryModel
	total, err := findPage(getDB(ctx, r.db).Model(&CategoryModel{}), page, "", "name ASC", &models)
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询分类列表失败")
	}
	out := make([]*category.Category, len(models))
	for i := range models {
		out[i] = toCategoryEntity(&models[i])
	}
	return out, total, nil
}

func (r *categoryRepository) Update(ctx context.Context, id string, in category.UpdateInput) (*category.Category, error) {
	if _, err := r.FindByID(ctx, id); err != nil {
		return nil, err
	}

	patch := sqlbuilder.NewPatch("name", "description", "parent_id")
	sqlbuilder.Set(patch, "name", in.Name)
	sqlbuilder.Set(patch, "description", in.Description)
	if parentID, ok := in.ParentID.Get(); ok {
		patch.SetValue("parent_id", nullable(parentID))
	}

	if _, err := applyPatch(getDB(ctx, r.db), &CategoryModel{}, patch, "id = ?", id); err != nil {
		return nil, apperrors.Wrap(err, "更新分类失败")
	}
	return r.FindByID(ctx, id)
}

// Delete 子分类移到根节点，图书的category_id置空
func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	return inTx(ctx, r.db, func(tx *gorm.DB) error {
		if err := tx.Model(&CategoryModel{}).Where("parent_id = ?", id).Update("parent_id", nil).Error; err != nil {
			return apperrors.Wrap(err, "更新子分类失败")
		}
		if err := tx.Model(&BookModel{}).Where("category_id = ?", id).Update("category_id", nil).Error; err != nil {
			return apperrors.Wrap(err, "更新图书分类失败")
		}
		result := tx.Where("id = ?", id).Delete(&CategoryModel{})
		if result.Error != nil {
			return apperrors.Wrap(result.Error, "删除分类失败")
		}
		if result.RowsAffected == 0 {
			return category.ErrCategoryNotFound
		}
		return nil
	})
}

func toCategoryEntity(m *CategoryModel) *category.Category {
	return &category.Category{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		ParentID:    m.ParentID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
