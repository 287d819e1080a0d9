package store

import (
	"context"

	"github.com/samber/lo"
	"gorm.io/gorm"

	"github.com/TheJisus28/bookstore-api/internal/domain/review"
	apperrors "github.com/TheJisus28/bookstore-api/pkg/errors"
	"github.com/TheJisus28/bookstore-api/pkg/pagination"
	"github.com/TheJisus28/bookstore-api/pkg/sqlbuilder"
)

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository 创建评价仓储
func NewReviewRepository(db *gorm.DB) review.Repository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, rv *review.Review) error {
	model := &ReviewModel{
		UserID:  rv.UserID,
		BookID:  rv.BookID,
		Rating:  rv.Rating,
		Comment: rv.Comment,
	}
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return review.ErrAlreadyReviewed
		}
		return apperrors.Wrap(err, "创建评价失败")
	}
	rv.ID = model.ID
	rv.CreatedAt = model.CreatedAt
	rv.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id string) (*review.Review, error) {
	var model ReviewModel
	if err := getDB(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, translate(err, review.ErrReviewNotFound, "查询评价失败")
	}
	return toReviewEntity(&model), nil
}

type reviewRow struct {
	ReviewModel
	FirstName string
	LastName  string
}

func (r *reviewRepository) ListByBook(ctx context.Context, bookID string, page pagination.Params) ([]*review.View, int64, error) {
	base := getDB(ctx, r.db).Table("reviews r").
		Joins("JOIN users u ON u.id = r.user_id").
		Where("r.book_id = ?", bookID)

	var rows []reviewRow
	total, err := findPage(base, page,
		"r.id, r.user_id, r.book_id, r.rating, r.comment, r.created_at, r.updated_at, u.first_name, u.last_name",
		"r.created_at DESC, r.id DESC", &rows)
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询评价列表失败")
	}

	return lo.Map(rows, func(row reviewRow, _ int) *review.View {
		return &review.View{
			Review:    *toReviewEntity(&row.ReviewModel),
			FirstName: row.FirstName,
			LastName:  row.LastName,
		}
	}), total, nil
}

func (r *reviewRepository) Exists(ctx context.Context, userID, bookID string) (bool, error) {
	var count int64
	err := getDB(ctx, r.db).Model(&ReviewModel{}).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Wrap(err, "查询评价失败")
	}
	return count > 0, nil
}

func (r *reviewRepository) Update(ctx context.Context, id, userID string, in review.UpdateInput) (*review.Review, error) {
	existing, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !existing.IsOwnedBy(userID) {
		return nil, review.ErrUpdateNotOwner
	}

	patch := sqlbuilder.NewPatch("rating", "comment")
	sqlbuilder.Set(patch, "rating", in.Rating)
	if c, ok := in.Comment.Get(); ok {
		patch.SetValue("comment", nullable(c))
	}

	affected, err := applyPatch(getDB(ctx, r.db), &ReviewModel{}, patch, "id = ? AND user_id = ?", id, userID)
	if err != nil {
		return nil, apperrors.Wrap(err, "更新评价失败")
	}
	if affected == 0 {
		return nil, review.ErrUpdateNotOwner
	}
	if affected < 0 {
		return existing, nil
	}
	return r.FindByID(ctx, id)
}

func (r *reviewRepository) Delete(ctx context.Context, id, userID string) error {
	existing, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !existing.IsOwnedBy(userID) {
		return review.ErrDeleteNotOwner
	}

	result := getDB(ctx, r.db).Where("id = ? AND user_id = ?", id, userID).Delete(&ReviewModel{})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除评价失败")
	}
	if result.RowsAffected == 0 {
		return review.ErrReviewNotFound
	}
	return nil
}

func toReviewEntity(m *ReviewModel) *review.Review {
	return &review.Review{
		ID:        m.ID,
		UserID:    m.UserID,
		BookID:    m.BookID,
		Rating:    m.Rating,
		Comment:   m.Comment,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
