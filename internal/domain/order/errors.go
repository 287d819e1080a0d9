package order

import (
	apperrors "github.com/TheJisus28/bookstore-api/pkg/errors"
)

// 订单领域错误定义
var (
	ErrOrderNotFound     = apperrors.New(apperrors.ErrCodeNotFound, "Order not found")
	ErrNotOwner          = apperrors.New(apperrors.ErrCodeForbidden, "You can only view your own orders")
	ErrInvalidStatus     = apperrors.New(apperrors.ErrCodeInvalidOrderStatus, "Invalid order status")
	ErrInvalidTransition = apperrors.New(apperrors.ErrCodeInvalidOrderStatus, "Invalid order status transition")
	ErrEmptyCart         = apperrors.New(apperrors.ErrCodeBadRequest, "Cart is empty")
	ErrInvalidDiscount   = apperrors.New(apperrors.ErrCodeBadRequest, "Invalid discount code")
)
