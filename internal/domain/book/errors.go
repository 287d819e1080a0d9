package book

import (
	apperrors "github.com/TheJisus28/bookstore-api/pkg/errors"
)

// 图书领域错误定义
var (
	ErrBookNotFound         = apperrors.New(apperrors.ErrCodeNotFound, "Book not found")
	ErrISBNDuplicate        = apperrors.New(apperrors.ErrCodeISBNDuplicate, "ISBN already exists")
	ErrInsufficientStock    = apperrors.New(apperrors.ErrCodeInsufficientStock, "Insufficient stock")
	ErrBookNotAvailable     = apperrors.New(apperrors.ErrCodeBadRequest, "Book is not available")
	ErrAuthorAlreadyLinked  = apperrors.New(apperrors.ErrCodeBadRequest, "Author is already assigned to this book")
	ErrAuthorLinkNotFound   = apperrors.New(apperrors.ErrCodeNotFound, "Author-book relationship not found")
	ErrPrimaryNotInAuthors  = apperrors.New(apperrors.ErrCodeInvalidParams, "primary_author_id must be one of author_ids")
	ErrInvalidSearchOptions = apperrors.New(apperrors.ErrCodeInvalidParams, "Invalid sort options")
)
