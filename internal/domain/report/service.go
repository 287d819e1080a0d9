package report

import (
	"context"

	"github.com/TheJisus28/bookstore-api/internal/domain/order"
)

// Service 报表服务
type Service interface {
	Sales(ctx context.Context, f Filter) ([]*DailySales, error)
	SoldBooks(ctx context.Context, f Filter) ([]*SoldBook, error)
	BookCatalog(ctx context.Context) ([]*CatalogEntry, error)
	OrderSummary(ctx context.Context) ([]*OrderSummary, error)
	CustomerHistory(ctx context.Context) ([]*CustomerHistory, error)
}

type service struct {
	repo Repository
}

// NewService 创建报表服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Sales(ctx context.Context, f Filter) ([]*DailySales, error) {
	f, err := normalize(f)
	if err != nil {
		return nil, err
	}
	return s.repo.Sales(ctx, f)
}

func (s *service) SoldBooks(ctx context.Context, f Filter) ([]*SoldBook, error) {
	f, err := normalize(f)
	if err != nil {
		return nil, err
	}
	return s.repo.SoldBooks(ctx, f)
}

func (s *service) BookCatalog(ctx context.Context) ([]*CatalogEntry, error) {
	return s.repo.BookCatalog(ctx, ViewLimit)
}

func (s *service) OrderSummary(ctx context.Context) ([]*OrderSummary, error) {
	return s.repo.OrderSummary(ctx, ViewLimit)
}

func (s *service) CustomerHistory(ctx context.Context) ([]*CustomerHistory, error) {
	return s.repo.CustomerHistory(ctx, ViewLimit)
}

// normalize 校验日期与价格区间，未指定状态时只统计已购买状态
func normalize(f Filter) (Filter, error) {
	if f.StartDate.IsZero() || f.EndDate.IsZero() {
		return f, ErrDateRangeRequired
	}
	if f.StartInclusive().After(f.EndDate) {
		return f, ErrInvalidDateRange
	}
	minP, hasMin := f.MinPrice.Get()
	maxP, hasMax := f.MaxPrice.Get()
	if hasMin && hasMax && minP.GreaterThan(maxP) {
		return f, ErrInvalidPriceRange
	}
	if len(f.Statuses) == 0 {
		f.Statuses = order.PurchasedStatuses
	}
	for _, st := range f.Statuses {
		if !st.Valid() {
			return f, order.ErrInvalidStatus
		}
	}
	return f, nil
}
