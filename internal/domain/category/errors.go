package category

import (
	apperrors "github.com/TheJisus28/bookstore-api/pkg/errors"
)

var (
	ErrCategoryNotFound = apperrors.New(apperrors.ErrCodeNotFound, "Category not found")
	ErrParentNotFound   = apperrors.New(apperrors.ErrCodeNotFound, "Parent category not found")
	ErrSelfParent       = apperrors.New(apperrors.ErrCodeBadRequest, "A category cannot be its own parent")
)
