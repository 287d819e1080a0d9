package report

import (
	"context"
	"testing"
	"time"

	"github.com/samber/mo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheJisus28/bookstore-api/internal/domain/order"
)

type fakeRepo struct {
	Repository
	got   Filter
	limit int
}

func (f *fakeRepo) Sales(_ context.Context, flt Filter) ([]*DailySales, error) {
	f.got = flt
	return []*DailySales{}, nil
}

func (f *fakeRepo) BookCatalog(_ context.Context, limit int) ([]*CatalogEntry, error) {
	f.limit = limit
	return nil, nil
}

func day(s string) time.Time {
	t, _ := time.Parse(time.DateOnly, s)
	return t
}

func TestService_Sales_DefaultStatuses(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	_, err := svc.Sales(context.Background(), Filter{StartDate: day("2024-01-01"), EndDate: day("2024-01-31")})
	require.NoError(t, err)
	assert.Equal(t, order.PurchasedStatuses, repo.got.Statuses)
	assert.Equal(t, day("2024-02-01"), repo.got.EndExclusive())
}

func TestService_Sales_Validation(t *testing.T) {
	svc := NewService(&fakeRepo{})
	ctx := context.Background()

	_, err := svc.Sales(ctx, Filter{StartDate: day("2024-01-01")})
	assert.ErrorIs(t, err, ErrDateRangeRequired)

	_, err = svc.Sales(ctx, Filter{StartDate: day("2024-02-01"), EndDate: day("2024-01-01")})
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = svc.Sales(ctx, Filter{
		StartDate: day("2024-01-01"),
		EndDate:   day("2024-01-02"),
		MinPrice:  mo.Some(decimal.NewFromInt(20)),
		MaxPrice:  mo.Some(decimal.NewFromInt(10)),
	})
	assert.ErrorIs(t, err, ErrInvalidPriceRange)

	_, err = svc.Sales(ctx, Filter{
		StartDate: day("2024-01-01"),
		EndDate:   day("2024-01-01"),
		Statuses:  []order.Status{"refunded"},
	})
	assert.ErrorIs(t, err, order.ErrInvalidStatus)
}

func TestService_BookCatalog_Limit(t *testing.T) {
	repo := &fakeRepo{}
	_, err := NewService(repo).BookCatalog(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ViewLimit, repo.limit)
}
