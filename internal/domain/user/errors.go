package user

import (
	apperrors "github.com/TheJisus28/bookstore-api/pkg/errors"
)

var (
	ErrUserNotFound   = apperrors.New(apperrors.ErrCodeNotFound, "User not found")
	ErrEmailDuplicate = apperrors.New(apperrors.ErrCodeEmailDuplicate, "Email already registered")
	ErrInvalidRole    = apperrors.New(apperrors.ErrCodeInvalidParams, "Invalid role")
)
