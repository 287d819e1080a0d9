package publisher

import (
	apperrors "github.com/TheJisus28/bookstore-api/pkg/errors"
)

var ErrPublisherNotFound = apperrors.New(apperrors.ErrCodeNotFound, "Publisher not found")
