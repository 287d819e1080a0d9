package report

import (
	apperrors "github.com/TheJisus28/bookstore-api/pkg/errors"
)

var (
	ErrDateRangeRequired = apperrors.New(apperrors.ErrCodeBadRequest, "startDate and endDate are required")
	ErrInvalidDateRange  = apperrors.New(apperrors.ErrCodeBadRequest, "startDate must not be after endDate")
	ErrInvalidPriceRange = apperrors.New(apperrors.ErrCodeBadRequest, "minPrice must not be greater than maxPrice")
)
