package store

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/TheJisus28/bookstore-api/internal/domain/cart"
	apperrors "github.com/TheJisus28/bookstore-api/pkg/errors"
)

const cartLineSelect = "ci.id, ci.user_id, ci.book_id, ci.quantity, ci.created_at, ci.updated_at, " +
	"b.title, b.price, b.cover_image_url, b.stock"

type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓储
func NewCartRepository(db *gorm.DB) cart.Repository {
	return &cartRepository{db: db}
}

// cartLineRow cart_items JOIN books
type cartLineRow struct {
	CartItemModel
	Title         string
	Price         decimal.Decimal
	CoverImageURL *string
	Stock         int
}

func (r *cartRepository) lines(ctx context.Context) *gorm.DB {
	return getDB(ctx, r.db).Table("cart_items ci").
		Select(cartLineSelect).
		Joins("JOIN books b ON b.id = ci.book_id")
}

func (r *cartRepository) ListByUser(ctx context.Context, userID string) ([]*cart.Line, error) {
	var rows []cartLineRow
	err := r.lines(ctx).
		Where("ci.user_id = ? AND b.is_active = ?", userID, true).
		Order("ci.created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询购物车失败")
	}

	out := make([]*cart.Line, len(rows))
	for i := range rows {
		out[i] = toCartLine(&rows[i])
	}
	return out, nil
}

func (r *cartRepository) FindLine(ctx context.Context, id string) (*cart.Line, error) {
	var row cartLineRow
	if err := r.lines(ctx).Where("ci.id = ?", id).Take(&row).Error; err != nil {
		return nil, translate(err, cart.ErrCartItemNotFound, "查询购物车项失败")
	}
	return toCartLine(&row), nil
}

func (r *cartRepository) FindByID(ctx context.Context, id, userID string) (*cart.Item, error) {
	var model CartItemModel
	err := getDB(ctx, r.db).Where("id = ? AND user_id = ?", id, userID).First(&model).Error
	if err != nil {
		return nil, translate(err, cart.ErrCartItemNotFound, "查询购物车项失败")
	}
	return toCartItem(&model), nil
}

func (r *cartRepository) FindByUserAndBook(ctx context.Context, userID, bookID string) (*cart.Item, error) {
	var model CartItemModel
	err := getDB(ctx, r.db).Where("user_id = ? AND book_id = ?", userID, bookID).First(&model).Error
	if err != nil {
		return nil, translate(err, cart.ErrCartItemNotFound, "查询购物车项失败")
	}
	return toCartItem(&model), nil
}

func (r *cartRepository) Create(ctx context.Context, item *cart.Item) error {
	model := &CartItemModel{UserID: item.UserID, BookID: item.BookID, Quantity: item.Quantity}
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return apperrors.ErrDuplicateEntry
		}
		return apperrors.Wrap(err, "加入购物车失败")
	}
	*item = *toCartItem(model)
	return nil
}

func (r *cartRepository) SetQuantity(ctx context.Context, id, userID string, quantity int) error {
	result := getDB(ctx, r.db).Model(&CartItemModel{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("quantity", quantity)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新购物车失败")
	}
	if result.RowsAffected == 0 {
		return cart.ErrCartItemNotFound
	}
	return nil
}

func (r *cartRepository) Delete(ctx context.Context, id, userID string) error {
	result := getDB(ctx, r.db).Where("id = ? AND user_id = ?", id, userID).Delete(&CartItemModel{})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除购物车项失败")
	}
	if result.RowsAffected == 0 {
		return cart.ErrCartItemNotFound
	}
	return nil
}

func (r *cartRepository) Clear(ctx context.Context, userID string) error {
	if err := getDB(ctx, r.db).Where("user_id = ?", userID).Delete(&CartItemModel{}).Error; err != nil {
		return apperrors.Wrap(err, "清空购物车失败")
	}
	return nil
}

// Items 结算用，按加入顺序返回
func (r *cartRepository) Items(ctx context.Context, userID string) ([]*cart.Item, error) {
	var models []CartItemModel
	err := getDB(ctx, r.db).Where("user_id = ?", userID).Order("created_at ASC").Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询购物车失败")
	}
	out := make([]*cart.Item, len(models))
	for i := range models {
		out[i] = toCartItem(&models[i])
	}
	return out, nil
}

func toCartItem(m *CartItemModel) *cart.Item {
	return &cart.Item{
		ID:        m.ID,
		UserID:    m.UserID,
		BookID:    m.BookID,
		Quantity:  m.Quantity,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toCartLine(row *cartLineRow) *cart.Line {
	return &cart.Line{
		Item:          *toCartItem(&row.CartItemModel),
		Title:         row.Title,
		Price:         row.Price,
		CoverImageURL: row.CoverImageURL,
		Stock:         row.Stock,
	}
}
