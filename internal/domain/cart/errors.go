package cart

import (
	apperrors "github.com/TheJisus28/bookstore-api/pkg/errors"
)

var (
	ErrCartItemNotFound = apperrors.New(apperrors.ErrCodeNotFound, "Cart item not found")
	ErrInvalidQuantity  = apperrors.New(apperrors.ErrCodeInvalidParams, "Quantity must be at least 1")
)
