package order

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
)

// DiscountResolver 折扣码解析
// 返回折扣金额（不超过subtotal），未知折扣码返回ErrInvalidDiscount
type DiscountResolver interface {
	Resolve(ctx context.Context, code string, subtotal decimal.Decimal) (decimal.Decimal, error)
}

// NoDiscounts 不接受任何折扣码
type NoDiscounts struct{}

// Resolve 空折扣码返回0，其他一律ErrInvalidDiscount
func (NoDiscounts) Resolve(_ context.Context, code string, _ decimal.Decimal) (decimal.Decimal, error) {
	if strings.TrimSpace(code) == "" {
		return decimal.Zero, nil
	}
	return decimal.Zero, ErrInvalidDiscount
}
