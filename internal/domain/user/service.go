package user

import (
	"context"

	"github.com/TheJisus28/bookstore-api/pkg/pagination"
)

// Service 用户管理（管理员）
type Service interface {
	Get(ctx context.Context, id string) (*User, error)
	List(ctx context.Context, filter ListFilter, page pagination.Params) (*pagination.Page[*User], error)
	Update(ctx context.Context, id string, in UpdateInput) (*User, error)
}

type service struct {
	repo Repository
}

// NewService 创建用户服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Get(ctx context.Context, id string) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter ListFilter, page pagination.Params) (*pagination.Page[*User], error) {
	if r, ok := filter.Role.Get(); ok && !r.Valid() {
		return nil, ErrInvalidRole
	}
	users, total, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return nil, err
	}
	return pagination.New(users, total, page), nil
}

func (s *service) Update(ctx context.Context, id string, in UpdateInput) (*User, error) {
	if r, ok := in.Role.Get(); ok && !r.Valid() {
		return nil, ErrInvalidRole
	}
	return s.repo.Update(ctx, id, in)
}
