package address

import (
	apperrors "github.com/TheJisus28/bookstore-api/pkg/errors"
)

var (
	ErrAddressNotFound = apperrors.New(apperrors.ErrCodeNotFound, "Address not found")
	ErrNotOwner        = apperrors.New(apperrors.ErrCodeForbidden, "You can only access your own addresses")
)
