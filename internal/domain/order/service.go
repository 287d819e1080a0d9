package order

import (
	"context"

	"github.com/TheJisus28/bookstore-api/pkg/pagination"
)

// Service 订单查询
// 下单与状态变更涉及库存、事件，放在application/order
type Service interface {
	Get(ctx context.Context, id string) (*Order, error)
	List(ctx context.Context, page pagination.Params) (*pagination.Page[*Order], error)
	ListByUser(ctx context.Context, userID string, page pagination.Params) (*pagination.Page[*Order], error)
	Items(ctx context.Context, orderID string) ([]*ItemView, error)
	PurchasedBooks(ctx context.Context, userID string, page pagination.Params) (*pagination.Page[*PurchasedBook], error)
	// OwnerOf 返回订单所属用户（供鉴权中间件使用）
	OwnerOf(ctx context.Context, id string) (string, error)
}

type service struct {
	repo Repository
}

// NewService 创建订单服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Get(ctx context.Context, id string) (*Order, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) List(ctx context.Context, page pagination.Params) (*pagination.Page[*Order], error) {
	orders, total, err := s.repo.List(ctx, page)
	if err != nil {
		return nil, err
	}
	return pagination.New(orders, total, page), nil
}

func (s *service) ListByUser(ctx context.Context, userID string, page pagination.Params) (*pagination.Page[*Order], error) {
	orders, total, err := s.repo.ListByUser(ctx, userID, page)
	if err != nil {
		return nil, err
	}
	return pagination.New(orders, total, page), nil
}

func (s *service) Items(ctx context.Context, orderID string) ([]*ItemView, error) {
	if _, err := s.repo.FindByID(ctx, orderID); err != nil {
		return nil, err
	}
	return s.repo.Items(ctx, orderID)
}

func (s *service) PurchasedBooks(ctx context.Context, userID string, page pagination.Params) (*pagination.Page[*PurchasedBook], error) {
	books, total, err := s.repo.PurchasedBooks(ctx, userID, page)
	if err != nil {
		return nil, err
	}
	return pagination.New(books, total, page), nil
}

func (s *service) OwnerOf(ctx context.Context, id string) (string, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	return o.UserID, nil
}
