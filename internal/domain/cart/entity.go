package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item 购物车项，(user_id, book_id)唯一
type Item struct {
	ID        string
	UserID    string
	BookID    string
	Quantity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Line 购物车列表行（带图书信息）
type Line struct {
	Item
	Title         string
	Price         decimal.Decimal
	CoverImageURL *string
	Stock         int
}

// Subtotal 行小计（按当前价格）
func (l *Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
