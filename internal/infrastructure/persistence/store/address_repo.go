package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/TheJisus28/bookstore-api/internal/domain/address"
	apperrors "github.com/TheJisus28/bookstore-api/pkg/errors"
	"github.com/TheJisus28/bookstore-api/pkg/sqlbuilder"
)

type addressRepository struct {
	db *gorm.DB
}

// NewAddressRepository 创建地址仓储
func NewAddressRepository(db *gorm.DB) address.Repository {
	return &addressRepository{db: db}
}

// Create is_default时先清除该用户其他默认地址
func (r *addressRepository) Create(ctx context.Context, a *address.Address) error {
	model := &AddressModel{
		UserID:     a.UserID,
		Street:     a.Street,
		City:       a.City,
		State:      a.State,
		PostalCode: a.PostalCode,
		Country:    a.Country,
		IsDefault:  a.IsDefault,
	}

	err := inTx(ctx, r.db, func(tx *gorm.DB) error {
		if model.IsDefault {
			if err := clearDefault(tx, model.UserID, ""); err != nil {
				return err
			}
		}
		return tx.Create(model).Error
	})
	if err != nil {
		return apperrors.Wrap(err, "创建地址失败")
	}

	*a = *toAddressEntity(model)
	return nil
}

func (r *addressRepository) FindByID(ctx context.Context, id string) (*address.Address, error) {
	var model AddressModel
	if err := getDB(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, translate(err, address.ErrAddressNotFound, "查询地址失败")
	}
	return toAddressEntity(&model), nil
}

func (r *addressRepository) ListByUser(ctx context.Context, userID string) ([]*address.Address, error) {
	var models []AddressModel
	err := getDB(ctx, r.db).
		Where("user_id = ?", userID).
		Order("is_default DESC, created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询地址列表失败")
	}

	out := make([]*address.Address, len(models))
	for i := range models {
		out[i] = toAddressEntity(&models[i])
	}
	return out, nil
}

func (r *addressRepository) Update(ctx context.Context, id, userID string, in address.UpdateInput) (*address.Address, error) {
	if _, err := r.FindByID(ctx, id); err != nil {
		return nil, err
	}

	patch := sqlbuilder.NewPatch("street", "city", "state", "postal_code", "country", "is_default")
	sqlbuilder.Set(patch, "street", in.Street)
	sqlbuilder.Set(patch, "city", in.City)
	sqlbuilder.Set(patch, "state", in.State)
	sqlbuilder.Set(patch, "postal_code", in.PostalCode)
	sqlbuilder.Set(patch, "country", in.Country)
	sqlbuilder.Set(patch, "is_default", in.IsDefault)

	err := inTx(ctx, r.db, func(tx *gorm.DB) error {
		if isDefault, ok := in.IsDefault.Get(); ok && isDefault {
			if err := clearDefault(tx, userID, id); err != nil {
				return err
			}
		}
		affected, err := applyPatch(tx, &AddressModel{}, patch, "id = ? AND user_id = ?", id, userID)
		if err != nil {
			return apperrors.Wrap(err, "更新地址失败")
		}
		if affected == 0 {
			return address.ErrNotOwner
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	a, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !a.IsOwnedBy(userID) {
		return nil, address.ErrNotOwner
	}
	return a, nil
}

func (r *addressRepository) Delete(ctx context.Context, id, userID string) error {
	result := getDB(ctx, r.db).Where("id = ? AND user_id = ?", id, userID).Delete(&AddressModel{})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除地址失败")
	}
	if result.RowsAffected == 0 {
		return address.ErrAddressNotFound
	}
	return nil
}

// clearDefault 清除用户的默认地址（except除外）
func clearDefault(tx *gorm.DB, userID, except string) error {
	q := tx.Model(&AddressModel{}).Where("user_id = ? AND is_default = ?", userID, true)
	if except != "" {
		q = q.Where("id <> ?", except)
	}
	return q.Update("is_default", false).Error
}

func toAddressEntity(m *AddressModel) *address.Address {
	return &address.Address{
		ID:         m.ID,
		UserID:     m.UserID,
		Street:     m.Street,
		City:       m.City,
		State:      m.State,
		PostalCode: m.PostalCode,
		Country:    m.Country,
		IsDefault:  m.IsDefault,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}
