package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/TheJisus28/bookstore-api/internal/domain/user"
	apperrors "github.com/TheJisus28/bookstore-api/pkg/errors"
	"github.com/TheJisus28/bookstore-api/pkg/pagination"
	"github.com/TheJisus28/bookstore-api/pkg/sqlbuilder"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓储
func NewUserRepository(db *gorm.DB) user.Repository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	model := &UserModel{
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Phone:        u.Phone,
		Role:         string(u.Role),
		IsActive:     u.IsActive,
	}
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return user.ErrEmailDuplicate
		}
		return apperrors.Wrap(err, "创建用户失败")
	}

	u.ID = model.ID
	u.CreatedAt = model.CreatedAt
	u.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	var model UserModel
	if err := getDB(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, translate(err, user.ErrUserNotFound, "查询用户失败")
	}
	return toUserEntity(&model), nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var model UserModel
	if err := getDB(ctx, r.db).Where("email = ?", email).First(&model).Error; err != nil {
		return nil, translate(err, user.ErrUserNotFound, "查询用户失败")
	}
	return toUserEntity(&model), nil
}

func (r *userRepository) List(ctx context.Context, filter user.ListFilter, page pagination.Params) ([]*user.User, int64, error) {
	base := getDB(ctx, r.db).Model(&UserModel{})
	if role, ok := filter.Role.Get(); ok {
		base = base.Where("role = ?", string(role))
	}

	var models []UserModel
	total, err := findPage(base, page, "", "created_at DESC", &models)
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询用户列表失败")
	}

	users := make([]*user.User, len(models))
	for i := range models {
		users[i] = toUserEntity(&models[i])
	}
	return users, total, nil
}

func (r *userRepository) Update(ctx context.Context, id string, in user.UpdateInput) (*user.User, error) {
	if _, err := r.FindByID(ctx, id); err != nil {
		return nil, err
	}

	patch := sqlbuilder.NewPatch("email", "first_name", "last_name", "phone", "role", "is_active")
	sqlbuilder.Set(patch, "email", in.Email)
	sqlbuilder.Set(patch, "first_name", in.FirstName)
	sqlbuilder.Set(patch, "last_name", in.LastName)
	sqlbuilder.Set(patch, "phone", in.Phone)
	if role, ok := in.Role.Get(); ok {
		patch.SetValue("role", string(role))
	}
	sqlbuilder.Set(patch, "is_active", in.IsActive)

	if _, err := applyPatch(getDB(ctx, r.db), &UserModel{}, patch, "id = ?", id); err != nil {
		if isDuplicateError(err) {
			return nil, user.ErrEmailDuplicate
		}
		return nil, apperrors.Wrap(err, "更新用户失败")
	}
	return r.FindByID(ctx, id)
}

func toUserEntity(m *UserModel) *user.User {
	return &user.User{
		ID:           m.ID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		Phone:        m.Phone,
		Role:         user.Role(m.Role),
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
