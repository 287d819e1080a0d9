package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/TheJisus28/bookstore-api/internal/domain/publisher"
	apperrors "github.com/TheJisus28/bookstore-api/pkg/errors"
	"github.com/TheJisus28/bookstore-api/pkg/pagination"
	"github.com/TheJisus28/bookstore-api/pkg/sqlbuilder"
)

type publisherRepository struct {
	db *gorm.DB
}

// NewPublisherRepository 创建出版社仓储
func NewPublisherRepository(db *gorm.DB) publisher.Repository {
	return &publisherRepository{db: db}
}

func (r *publisherRepository) Create(ctx context.Context, p *publisher.Publisher) error {
	model := &PublisherModel{
		Name:    p.Name,
		Address: p.Address,
		City:    p.City,
		Country: p.Country,
		Phone:   p.Phone,
		Email:   p.Email,
		Website: p.Website,
	}
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建出版社失败")
	}
	*p = *toPublisherEntity(model)
	return nil
}

func (r *publisherRepository) FindByID(ctx context.Context, id string) (*publisher.Publisher, error) {
	var model PublisherModel
	if err := getDB(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, translate(err, publisher.ErrPublisherNotFound, "查询出版社失败")
	}
	return toPublisherEntity(&model), nil
}

func (r *publisherRepository) List(ctx context.Context, page pagination.Params) ([]*publisher.Publisher, int64, error) {
	var models []PublisherModel
	total, err := findPage(getDB(ctx, r.db).Model(&PublisherModel{}), page, "", "name ASC", &models)
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询出版社列表失败")
	}
	out := make([]*publisher.Publisher, len(models))
	for i := range models {
		out[i] = toPublisherEntity(&models[i])
	}
	return out, total, nil
}

func (r *publisherRepository) Update(ctx context.Context, id string, in publisher.UpdateInput) (*publisher.Publisher, error) {
	if _, err := r.FindByID(ctx, id); err != nil {
		return nil, err
	}

	patch := sqlbuilder.NewPatch("name", "address", "city", "country", "phone", "email", "website")
	sqlbuilder.Set(patch, "name", in.Name)
	sqlbuilder.Set(patch, "address", in.Address)
	sqlbuilder.Set(patch, "city", in.City)
	sqlbuilder.Set(patch, "country", in.Country)
	sqlbuilder.Set(patch, "phone", in.Phone)
	sqlbuilder.Set(patch, "email", in.Email)
	sqlbuilder.Set(patch, "website", in.Website)

	if _, err := applyPatch(getDB(ctx, r.db), &PublisherModel{}, patch, "id = ?", id); err != nil {
		return nil, apperrors.Wrap(err, "更新出版社失败")
	}
	return r.FindByID(ctx, id)
}

// Delete 图书的publisher_id置空后删除
func (r *publisherRepository) Delete(ctx context.Context, id string) error {
	return inTx(ctx, r.db, func(tx *gorm.DB) error {
		if err := tx.Model(&BookModel{}).Where("publisher_id = ?", id).Update("publisher_id", nil).Error; err != nil {
			return apperrors.Wrap(err, "更新图书出版社失败")
		}
		result := tx.Where("id = ?", id).Delete(&PublisherModel{})
		if result.Error != nil {
			return apperrors.Wrap(result.Error, "删除出版社失败")
		}
		if result.RowsAffected == 0 {
			return publisher.ErrPublisherNotFound
		}
		return nil
	})
}

func toPublisherEntity(m *PublisherModel) *publisher.Publisher {
	return &publisher.Publisher{
		ID:        m.ID,
		Name:      m.Name,
		Address:   m.Address,
		City:      m.City,
		Country:   m.Country,
		Phone:     m.Phone,
		Email:     m.Email,
		Website:   m.Website,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
