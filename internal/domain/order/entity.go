package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order 订单实体（聚合根）
// 金额在下单时计算并固定，之后图书调价不影响历史订单
type Order struct {
	ID             string
	UserID         string
	AddressID      string
	Status         Status
	TotalAmount    decimal.Decimal
	ShippingCost   decimal.Decimal
	DiscountAmount decimal.Decimal
	DiscountCode   *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	ShippedAt      *time.Time
	DeliveredAt    *time.Time

	Items []*Item
}

// Item 订单明细（单价快照）
type Item struct {
	ID        string
	OrderID   string
	BookID    string
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
	CreatedAt time.Time
}

// NewItem 创建订单明细，subtotal = unit_price * quantity
func NewItem(bookID string, quantity int, unitPrice decimal.Decimal) *Item {
	return &Item{
		BookID:    bookID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Subtotal:  unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
	}
}

// NewOrder 创建待处理订单
// total = sum(subtotal) + shipping - discount，不会小于0
func NewOrder(userID, addressID string, items []*Item, shipping, discount decimal.Decimal, discountCode *string) *Order {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.Subtotal)
	}
	total := subtotal.Add(shipping).Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}
	return &Order{
		UserID:         userID,
		AddressID:      addressID,
		Status:         StatusPending,
		TotalAmount:    total,
		ShippingCost:   shipping,
		DiscountAmount: discount,
		DiscountCode:   discountCode,
		Items:          items,
	}
}

// Subtotal 明细合计
func (o *Order) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range o.Items {
		sum = sum.Add(it.Subtotal)
	}
	return sum
}

// IsOwnedBy 是否属于指定用户
func (o *Order) IsOwnedBy(userID string) bool {
	return o.UserID == userID
}

// TransitionTo 状态变更（领域行为）
// shipped写入shipped_at，delivered写入delivered_at，其他时间戳不变
func (o *Order) TransitionTo(next Status, now time.Time) error {
	if err := o.Status.CheckTransition(next); err != nil {
		return err
	}
	o.Status = next
	switch next {
	case StatusShipped:
		o.ShippedAt = &now
	case StatusDelivered:
		o.DeliveredAt = &now
	}
	o.UpdatedAt = now
	return nil
}

// ItemView 订单明细（带图书信息）
type ItemView struct {
	Item
	Title         string
	ISBN          string
	CoverImageURL *string
}

// PurchasedBook 用户已购图书（我的书架）
type PurchasedBook struct {
	BookID          string
	Title           string
	ISBN            string
	Price           decimal.Decimal
	CoverImageURL   *string
	LastPurchasedAt time.Time
	HasReview       bool
	ReviewID        *string
	ReviewRating    *int
	ReviewComment   *string
}
