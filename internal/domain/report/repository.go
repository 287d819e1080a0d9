package report

import (
	"context"
)

// Repository 报表查询
type Repository interface {
	Sales(ctx context.Context, f Filter) ([]*DailySales, error)
	SoldBooks(ctx context.Context, f Filter) ([]*SoldBook, error)
	BookCatalog(ctx context.Context, limit int) ([]*CatalogEntry, error)
	OrderSummary(ctx context.Context, limit int) ([]*OrderSummary, error)
	CustomerHistory(ctx context.Context, limit int) ([]*CustomerHistory, error)
}
