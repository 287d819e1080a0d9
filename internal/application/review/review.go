package review

import (
	"context"

	"github.com/TheJisus28/bookstore-api/internal/domain/book"
	"github.com/TheJisus28/bookstore-api/internal/domain/review"
)

// PurchaseChecker 购买记录查询（order.Repository实现）
type PurchaseChecker interface {
	HasPurchased(ctx context.Context, userID, bookID string) (bool, error)
}

// ReviewUseCase 发表评价与评价资格
// 只有已购买（订单状态为shipped/delivered/completed）且未评价过的图书才能评价
type ReviewUseCase struct {
	reviews   review.Repository
	books     book.Repository
	purchases PurchaseChecker
}

// NewReviewUseCase 创建评价用例
func NewReviewUseCase(reviews review.Repository, books book.Repository, purchases PurchaseChecker) *ReviewUseCase {
	return &ReviewUseCase{reviews: reviews, books: books, purchases: purchases}
}

// CreateRequest 发表评价请求
type CreateRequest struct {
	UserID  string
	BookID  string
	Rating  int
	Comment *string
}

// Create 发表评价
func (uc *ReviewUseCase) Create(ctx context.Context, req CreateRequest) (*review.Review, error) {
	if !review.ValidRating(req.Rating) {
		return nil, review.ErrInvalidRating
	}
	if _, err := uc.books.FindByID(ctx, req.BookID); err != nil {
		return nil, err
	}

	purchased, err := uc.purchases.HasPurchased(ctx, req.UserID, req.BookID)
	if err != nil {
		return nil, err
	}
	if !purchased {
		return nil, review.ErrNotPurchased
	}

	exists, err := uc.reviews.Exists(ctx, req.UserID, req.BookID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, review.ErrAlreadyReviewed
	}

	r := &review.Review{
		UserID:  req.UserID,
		BookID:  req.BookID,
		Rating:  req.Rating,
		Comment: req.Comment,
	}
	// 并发提交时唯一索引返回ErrAlreadyReviewed
	if err := uc.reviews.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// Eligibility canReview = 已购买且未评价
func (uc *ReviewUseCase) Eligibility(ctx context.Context, userID, bookID string) (*review.Eligibility, error) {
	purchased, err := uc.purchases.HasPurchased(ctx, userID, bookID)
	if err != nil {
		return nil, err
	}
	reviewed, err := uc.reviews.Exists(ctx, userID, bookID)
	if err != nil {
		return nil, err
	}
	return &review.Eligibility{
		CanReview:   purchased && !reviewed,
		HasReviewed: reviewed,
	}, nil
}
