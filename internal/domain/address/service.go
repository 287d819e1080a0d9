package address

import (
	"context"
)

// Service 地址管理（登录用户）
type Service interface {
	Create(ctx context.Context, a *Address) (*Address, error)
	Get(ctx context.Context, id, userID string) (*Address, error)
	List(ctx context.Context, userID string) ([]*Address, error)
	Update(ctx context.Context, id, userID string, in UpdateInput) (*Address, error)
	Delete(ctx context.Context, id, userID string) error
	// OwnerOf 返回地址所属用户（供鉴权中间件使用）
	OwnerOf(ctx context.Context, id string) (string, error)
}

type service struct {
	repo Repository
}

// NewService 创建地址服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, a *Address) (*Address, error) {
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) Get(ctx context.Context, id, userID string) (*Address, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !a.IsOwnedBy(userID) {
		return nil, ErrNotOwner
	}
	return a, nil
}

func (s *service) List(ctx context.Context, userID string) ([]*Address, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) Update(ctx context.Context, id, userID string, in UpdateInput) (*Address, error) {
	return s.repo.Update(ctx, id, userID, in)
}

func (s *service) Delete(ctx context.Context, id, userID string) error {
	return s.repo.Delete(ctx, id, userID)
}

func (s *service) OwnerOf(ctx context.Context, id string) (string, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	return a.UserID, nil
}
