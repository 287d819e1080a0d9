package review

import (
	"context"

	"github.com/TheJisus28/bookstore-api/pkg/pagination"
)

// Service 评价查询与修改
// 创建需要校验购买记录，见application/review
type Service interface {
	Get(ctx context.Context, id string) (*Review, error)
	ListByBook(ctx context.Context, bookID string, page pagination.Params) (*pagination.Page[*View], error)
	Update(ctx context.Context, id, userID string, in UpdateInput) (*Review, error)
	Delete(ctx context.Context, id, userID string) error
}

type service struct {
	repo Repository
}

// NewService 创建评价服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Get(ctx context.Context, id string) (*Review, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) ListByBook(ctx context.Context, bookID string, page pagination.Params) (*pagination.Page[*View], error) {
	views, total, err := s.repo.ListByBook(ctx, bookID, page)
	if err != nil {
		return nil, err
	}
	return pagination.New(views, total, page), nil
}

func (s *service) Update(ctx context.Context, id, userID string, in UpdateInput) (*Review, error) {
	if r, ok := in.Rating.Get(); ok && !ValidRating(r) {
		return nil, ErrInvalidRating
	}
	return s.repo.Update(ctx, id, userID, in)
}

func (s *service) Delete(ctx context.Context, id, userID string) error {
	return s.repo.Delete(ctx, id, userID)
}
