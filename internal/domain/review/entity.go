package review

import (
	"time"

	"github.com/samber/mo"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Review 图书评价，每个用户对每本书最多一条
type Review struct {
	ID        string
	UserID    string
	BookID    string
	Rating    int
	Comment   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOwnedBy 是否属于指定用户
func (r *Review) IsOwnedBy(userID string) bool {
	return r.UserID == userID
}

// View 带评价人姓名的评价
type View struct {
	Review
	FirstName string
	LastName  string
}

// UpdateInput 部分更新
type UpdateInput struct {
	Rating  mo.Option[int]
	Comment mo.Option[string]
}

// Eligibility 评价资格
type Eligibility struct {
	CanReview   bool `json:"canReview"`
	HasReviewed bool `json:"hasReviewed"`
}

// ValidRating 评分是否在1..5之间
func ValidRating(r int) bool {
	return r >= MinRating && r <= MaxRating
}
