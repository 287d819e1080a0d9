package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/TheJisus28/bookstore-api/internal/domain/cart"
)

// AddToCartRequest 加入购物车，已存在时数量累加
type AddToCartRequest struct {
	BookID   string `json:"book_id" binding:"required,uuid"`
	Quantity int    `json:"quantity" binding:"required,min=1" example:"1"`
}

// UpdateCartItemRequest 修改数量
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1" example:"2"`
}

// CartItemResponse 购物车项
type CartItemResponse struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	BookID        string          `json:"book_id"`
	Quantity      int             `json:"quantity"`
	Title         string          `json:"title,omitempty"`
	Price         decimal.Decimal `json:"price" swaggertype:"string"`
	CoverImageURL *string         `json:"cover_image_url"`
	Stock         int             `json:"stock"`
	Subtotal      decimal.Decimal `json:"subtotal" swaggertype:"string"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// NewCartItemResponse 实体 → 响应
func NewCartItemResponse(l *cart.Line) CartItemResponse {
	return CartItemResponse{
		ID:            l.ID,
		UserID:        l.UserID,
		BookID:        l.BookID,
		Quantity:      l.Quantity,
		Title:         l.Title,
		Price:         l.Price,
		CoverImageURL: l.CoverImageURL,
		Stock:         l.Stock,
		Subtotal:      l.Subtotal(),
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}
}

// CartResponse 购物车（total按当前价格计算）
type CartResponse struct {
	Items []CartItemResponse `json:"items"`
	Total decimal.Decimal    `json:"total" swaggertype:"string"`
	Count int                `json:"count"`
}

// NewCartResponse 购物车列表 → 响应
func NewCartResponse(lines []*cart.Line) CartResponse {
	resp := CartResponse{Items: make([]CartItemResponse, 0, len(lines)), Total: decimal.Zero}
	for _, l := range lines {
		resp.Items = append(resp.Items, NewCartItemResponse(l))
		resp.Total = resp.Total.Add(l.Subtotal())
		resp.Count += l.Quantity
	}
	return resp
}
