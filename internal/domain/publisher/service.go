package publisher

import (
	"context"

	"github.com/TheJisus28/bookstore-api/pkg/pagination"
)

// Service 出版社管理
type Service interface {
	Create(ctx context.Context, p *Publisher) (*Publisher, error)
	Get(ctx context.Context, id string) (*Publisher, error)
	List(ctx context.Context, page pagination.Params) (*pagination.Page[*Publisher], error)
	Update(ctx context.Context, id string, in UpdateInput) (*Publisher, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, p *Publisher) (*Publisher, error) {
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Get(ctx context.Context, id string) (*Publisher, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) List(ctx context.Context, page pagination.Params) (*pagination.Page[*Publisher], error) {
	publishers, total, err := s.repo.List(ctx, page)
	if err != nil {
		return nil, err
	}
	return pagination.New(publishers, total, page), nil
}

func (s *service) Update(ctx context.Context, id string, in UpdateInput) (*Publisher, error) {
	return s.repo.Update(ctx, id, in)
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
