package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/TheJisus28/bookstore-api/internal/domain/author"
	apperrors "github.com/TheJisus28/bookstore-api/pkg/errors"
	"github.com/TheJisus28/bookstore-api/pkg/pagination"
	"github.com/TheJisus28/bookstore-api/pkg/sqlbuilder"
)

type authorRepository struct {
	db *gorm.DB
}

// NewAuthorRepository 创建作者仓储
func NewAuthorRepository(db *gorm.DB) author.Repository {
	return &authorRepository{db: db}
}

func (r *authorRepository) Create(ctx context.Context, a *author.Author) error {
	model := &AuthorModel{
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		Bio:         a.Bio,
		BirthDate:   a.BirthDate,
		Nationality: a.Nationality,
	}
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建作者失败")
	}
	*a = *toAuthorEntity(model)
	return nil
}

func (r *authorRepository) FindByID(ctx context.Context, id string) (*author.Author, error) {
	var model AuthorModel
	if err := getDB(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, translate(err, author.ErrAuthorNotFound, "查询作者失败")
	}
	return toAuthorEntity(&model), nil
}

func (r *authorRepository) FindByIDs(ctx context.Context, ids []string) ([]*author.Author, error) {
	if len(ids) == 0 {
		return []*author.Author{}, nil
	}
	var models []AuthorModel
	if err := getDB(ctx, r.db).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询作者失败")
	}
	out := make([]*author.Author, len(models))
	for i := range models {
		out[i] = toAuthorEntity(&models[i])
	}
	return out, nil
}

func (r *authorRepository) List(ctx context.Context, page pagination.Params) ([]*author.Author, int64, error) {
	var models []AuthorModel
	total, err := findPage(getDB(ctx, r.db).Model(&AuthorModel{}), page, "", "last_name ASC, first_name ASC", &models)
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询作者列表失败")
	}
	out := make([]*author.Author, len(models))
	for i := range models {
		out[i] = toAuthorEntity(&models[i])
	}
	return out, total, nil
}

func (r *authorRepository) Update(ctx context.Context, id string, in author.UpdateInput) (*author.Author, error) {
	if _, err := r.FindByID(ctx, id); err != nil {
		return nil, err
	}

	patch := sqlbuilder.NewPatch("first_name", "last_name", "bio", "birth_date", "nationality")
	sqlbuilder.Set(patch, "first_name", in.FirstName)
	sqlbuilder.Set(patch, "last_name", in.LastName)
	sqlbuilder.Set(patch, "bio", in.Bio)
	sqlbuilder.Set(patch, "birth_date", in.BirthDate)
	sqlbuilder.Set(patch, "nationality", in.Nationality)

	if _, err := applyPatch(getDB(ctx, r.db), &AuthorModel{}, patch, "id = ?", id); err != nil {
		return nil, apperrors.Wrap(err, "更新作者失败")
	}
	return r.FindByID(ctx, id)
}

// Delete 先删除图书关联再删除作者
func (r *authorRepository) Delete(ctx context.Context, id string) error {
	return inTx(ctx, r.db, func(tx *gorm.DB) error {
		if err := tx.Where("author_id = ?", id).Delete(&BookAuthorModel{}).Error; err != nil {
			return apperrors.Wrap(err, "删除作者关联失败")
		}
		result := tx.Where("id = ?", id).Delete(&AuthorModel{})
		if result.Error != nil {
			return apperrors.Wrap(result.Error, "删除作者失败")
		}
		if result.RowsAffected == 0 {
			return author.ErrAuthorNotFound
		}
		return nil
	})
}

func toAuthorEntity(m *AuthorModel) *author.Author {
	return &author.Author{
		ID:          m.ID,
		FirstName:   m.FirstName,
		LastName:    m.LastName,
		Bio:         m.Bio,
		BirthDate:   m.BirthDate,
		Nationality: m.Nationality,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
