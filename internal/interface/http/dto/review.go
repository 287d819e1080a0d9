package dto

import (
	"time"

	"github.com/TheJisus28/bookstore-api/internal/application/review"
	domain "github.com/TheJisus28/bookstore-api/internal/domain/review"
)

// CreateReviewRequest 发表评价（需已购买）
type CreateReviewRequest struct {
	BookID  string  `json:"book_id" binding:"required,uuid"`
	Rating  int     `json:"rating" binding:"required,min=1,max=5" example:"5"`
	Comment *string `json:"comment" binding:"omitempty,max=2000"`
}

// ToCommand 转换为应用层请求
func (r CreateReviewRequest) ToCommand(userID string) review.CreateRequest {
	return review.CreateRequest{UserID: userID, BookID: r.BookID, Rating: r.Rating, Comment: r.Comment}
}

// UpdateReviewRequest 修改评价
type UpdateReviewRequest struct {
	Rating  *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Comment *string `json:"comment" binding:"omitempty,max=2000"`
}

// ToInput 转换为部分更新
func (r UpdateReviewRequest) ToInput() domain.UpdateInput {
	return domain.UpdateInput{Rating: opt(r.Rating), Comment: opt(r.Comment)}
}

// ReviewResponse 评价
type ReviewResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	BookID    string    `json:"book_id"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment"`
	FirstName string    `json:"first_name,omitempty"`
	LastName  string    `json:"last_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewReviewResponse 实体 → 响应
func NewReviewResponse(r *domain.Review) ReviewResponse {
	return ReviewResponse{
		ID:        r.ID,
		UserID:    r.UserID,
		BookID:    r.BookID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// NewReviewViewResponse 带评价人姓名
func NewReviewViewResponse(v *domain.View) ReviewResponse {
	resp := NewReviewResponse(&v.Review)
	resp.FirstName = v.FirstName
	resp.LastName = v.LastName
	return resp
}
