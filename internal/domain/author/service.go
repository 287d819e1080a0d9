package author

import (
	"context"

	"github.com/TheJisus28/bookstore-api/pkg/pagination"
)

// Service 作者管理
type Service interface {
	Create(ctx context.Context, a *Author) (*Author, error)
	Get(ctx context.Context, id string) (*Author, error)
	List(ctx context.Context, page pagination.Params) (*pagination.Page[*Author], error)
	Update(ctx context.Context, id string, in UpdateInput) (*Author, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

// NewService 创建作者服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, a *Author) (*Author, error) {
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) Get(ctx context.Context, id string) (*Author, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) List(ctx context.Context, page pagination.Params) (*pagination.Page[*Author], error) {
	authors, total, err := s.repo.List(ctx, page)
	if err != nil {
		return nil, err
	}
	return pagination.New(authors, total, page), nil
}

func (s *service) Update(ctx context.Context, id string, in UpdateInput) (*Author, error) {
	return s.repo.Update(ctx, id, in)
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
