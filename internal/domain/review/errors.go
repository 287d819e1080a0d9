package review

import (
	apperrors "github.com/TheJisus28/bookstore-api/pkg/errors"
)

var (
	ErrReviewNotFound  = apperrors.New(apperrors.ErrCodeNotFound, "Review not found")
	ErrNotPurchased    = apperrors.New(apperrors.ErrCodeBadRequest, "You can only review books you have purchased")
	ErrAlreadyReviewed = apperrors.New(apperrors.ErrCodeBadRequest, "You have already reviewed this book")
	ErrUpdateNotOwner  = apperrors.New(apperrors.ErrCodeForbidden, "You can only update your own reviews")
	ErrDeleteNotOwner  = apperrors.New(apperrors.ErrCodeForbidden, "You can only delete your own reviews")
	ErrInvalidRating   = apperrors.New(apperrors.ErrCodeBadRequest, "Rating must be between 1 and 5")
)
