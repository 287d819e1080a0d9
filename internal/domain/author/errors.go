package author

import (
	apperrors "github.com/TheJisus28/bookstore-api/pkg/errors"
)

var ErrAuthorNotFound = apperrors.New(apperrors.ErrCodeNotFound, "Author not found")
