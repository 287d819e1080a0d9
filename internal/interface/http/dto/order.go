package dto

import (
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/TheJisus28/bookstore-api/internal/domain/order"
)

// CreateOrderRequest 下单
type CreateOrderRequest struct {
	AddressID    string `json:"address_id" binding:"required,uuid"`
	DiscountCode string `json:"discount_code" binding:"omitempty,max=50"`
}

// UpdateOrderStatusRequest 订单状态变更
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required" example:"shipped"`
}

// OrderItemResponse 订单明细
type OrderItemResponse struct {
	ID            string          `json:"id"`
	OrderID       string          `json:"order_id"`
	BookID        string          `json:"book_id"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price" swaggertype:"string"`
	Subtotal      decimal.Decimal `json:"subtotal" swaggertype:"string"`
	Title         string          `json:"title,omitempty"`
	ISBN          string          `json:"isbn,omitempty"`
	CoverImageURL *string         `json:"cover_image_url,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

func newOrderItemResponse(it *order.Item) OrderItemResponse {
	return OrderItemResponse{
		ID:        it.ID,
		OrderID:   it.OrderID,
		BookID:    it.BookID,
		Quantity:  it.Quantity,
		UnitPrice: it.UnitPrice,
		Subtotal:  it.Subtotal,
		CreatedAt: it.CreatedAt,
	}
}

// NewOrderItemResponses 明细视图 → 响应
func NewOrderItemResponses(items []*order.ItemView) []OrderItemResponse {
	return lo.Map(items, func(v *order.ItemView, _ int) OrderItemResponse {
		resp := newOrderItemResponse(&v.Item)
		resp.Title = v.Title
		resp.ISBN = v.ISBN
		resp.CoverImageURL = v.CoverImageURL
		return resp
	})
}

// OrderResponse 订单
type OrderResponse struct {
	ID             string              `json:"id"`
	UserID         string              `json:"user_id"`
	AddressID      string              `json:"address_id"`
	Status         string              `json:"status"`
	TotalAmount    decimal.Decimal     `json:"total_amount" swaggertype:"string"`
	ShippingCost   decimal.Decimal     `json:"shipping_cost" swaggertype:"string"`
	DiscountAmount decimal.Decimal     `json:"discount_amount" swaggertype:"string"`
	DiscountCode   *string             `json:"discount_code"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
	ShippedAt      *time.Time          `json:"shipped_at"`
	DeliveredAt    *time.Time          `json:"delivered_at"`
	Items          []OrderItemResponse `json:"items,omitempty"`
}

// NewOrderResponse 实体 → 响应（Items只在下单时返回）
func NewOrderResponse(o *order.Order) OrderResponse {
	resp := OrderResponse{
		ID:             o.ID,
		UserID:         o.UserID,
		AddressID:      o.AddressID,
		Status:         string(o.Status),
		TotalAmount:    o.TotalAmount,
		ShippingCost:   o.ShippingCost,
		DiscountAmount: o.DiscountAmount,
		DiscountCode:   o.DiscountCode,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
		ShippedAt:      o.ShippedAt,
		DeliveredAt:    o.DeliveredAt,
	}
	if len(o.Items) > 0 {
		resp.Items = lo.Map(o.Items, func(it *order.Item, _ int) OrderItemResponse {
			return newOrderItemResponse(it)
		})
	}
	return resp
}

// NewOrderResponses 列表转换
func NewOrderResponses(orders []*order.Order) []OrderResponse {
	return lo.Map(orders, func(o *order.Order, _ int) OrderResponse { return NewOrderResponse(o) })
}

// PurchasedBookResponse 已购图书
type PurchasedBookResponse struct {
	BookID          string          `json:"book_id"`
	Title           string          `json:"title"`
	ISBN            string          `json:"isbn"`
	Price           decimal.Decimal `json:"price" swaggertype:"string"`
	CoverImageURL   *string         `json:"cover_image_url"`
	LastPurchasedAt time.Time       `json:"last_purchased_at"`
	HasReview       bool            `json:"has_review"`
	ReviewID        *string         `json:"review_id"`
	ReviewRating    *int            `json:"review_rating"`
	ReviewComment   *string         `json:"review_comment"`
}

// NewPurchasedBookResponse 实体 → 响应
func NewPurchasedBookResponse(b *order.PurchasedBook) PurchasedBookResponse {
	return PurchasedBookResponse{
		BookID:          b.BookID,
		Title:           b.Title,
		ISBN:            b.ISBN,
		Price:           b.Price,
		CoverImageURL:   b.CoverImageURL,
		LastPurchasedAt: b.LastPurchasedAt,
		HasReview:       b.HasReview,
		ReviewID:        b.ReviewID,
		ReviewRating:    b.ReviewRating,
		ReviewComment:   b.ReviewComment,
	}
}
