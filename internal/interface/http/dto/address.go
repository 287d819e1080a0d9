package dto

import (
	"time"

	"github.com/TheJisus28/bookstore-api/internal/domain/address"
)

// AddressRequest 创建收货地址
type AddressRequest struct {
	Street     string  `json:"street" binding:"required,max=255" example:"Calle 10 # 5-20"`
	City       string  `json:"city" binding:"required,max=100" example:"Bogotá"`
	State      *string `json:"state" binding:"omitempty,max=100" example:"Cundinamarca"`
	PostalCode string  `json:"postal_code" binding:"required,max=20" example:"110111"`
	Country    string  `json:"country" binding:"required,max=100" example:"Colombia"`
	IsDefault  bool    `json:"is_default"`
}

// ToEntity 转换为实体
func (r AddressRequest) ToEntity(userID string) *address.Address {
	return &address.Address{
		UserID:     userID,
		Street:     r.Street,
		City:       r.City,
		State:      r.State,
		PostalCode: r.PostalCode,
		Country:    r.Country,
		IsDefault:  r.IsDefault,
	}
}

// UpdateAddressRequest 部分更新收货地址
type UpdateAddressRequest struct {
	Street     *string `json:"street" binding:"omitempty,min=1,max=255"`
	City       *string `json:"city" binding:"omitempty,min=1,max=100"`
	State      *string `json:"state" binding:"omitempty,max=100"`
	PostalCode *string `json:"postal_code" binding:"omitempty,min=1,max=20"`
	Country    *string `json:"country" binding:"omitempty,min=1,max=100"`
	IsDefault  *bool   `json:"is_default"`
}

// ToInput 转换为部分更新
func (r UpdateAddressRequest) ToInput() address.UpdateInput {
	return address.UpdateInput{
		Street:     opt(r.Street),
		City:       opt(r.City),
		State:      opt(r.State),
		PostalCode: opt(r.PostalCode),
		Country:    opt(r.Country),
		IsDefault:  opt(r.IsDefault),
	}
}

// AddressResponse 收货地址
type AddressResponse struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Street     string    `json:"street"`
	City       string    `json:"city"`
	State      *string   `json:"state"`
	PostalCode string    `json:"postal_code"`
	Country    string    `json:"country"`
	IsDefault  bool      `json:"is_default"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewAddressResponse 实体 → 响应
func NewAddressResponse(a *address.Address) AddressResponse {
	return AddressResponse{
		ID:         a.ID,
		UserID:     a.UserID,
		Street:     a.Street,
		City:       a.City,
		State:      a.State,
		PostalCode: a.PostalCode,
		Country:    a.Country,
		IsDefault:  a.IsDefault,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}
