package store

import (
	"context"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/TheJisus28/bookstore-api/internal/domain/order"
	apperrors "github.com/TheJisus28/bookstore-api/pkg/errors"
	"github.com/TheJisus28/bookstore-api/pkg/pagination"
)

// orderRepository 订单仓储
// Order与OrderItem是聚合关系，在同一事务中写入
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) order.Repository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, o *order.Order) error {
	model := toOrderModel(o)

	err := inTx(ctx, r.db, func(tx *gorm.DB) error {
		if err := tx.Create(model).Error; err != nil {
			return err
		}
		if len(o.Items) == 0 {
			return nil
		}
		items := lo.Map(o.Items, func(it *order.Item, _ int) *OrderItemModel {
			return &OrderItemModel{
				OrderID:   model.ID,
				BookID:    it.BookID,
				Quantity:  it.Quantity,
				UnitPrice: it.UnitPrice,
				Subtotal:  it.Subtotal,
			}
		})
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		for i, it := range o.Items {
			it.ID = items[i].ID
			it.OrderID = model.ID
			it.CreatedAt = items[i].CreatedAt
		}
		return nil
	})
	if err != nil {
		return apperrors.Wrap(err, "创建订单失败")
	}

	o.ID = model.ID
	o.CreatedAt = model.CreatedAt
	o.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *orderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	var model OrderModel
	if err := getDB(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, translate(err, order.ErrOrderNotFound, "查询订单失败")
	}
	return toOrderEntity(&model), nil
}

func (r *orderRepository) List(ctx context.Context, page pagination.Params) ([]*order.Order, int64, error) {
	return r.list(getDB(ctx, r.db).Model(&OrderModel{}), page)
}

func (r *orderRepository) ListByUser(ctx context.Context, userID string, page pagination.Params) ([]*order.Order, int64, error) {
	return r.list(getDB(ctx, r.db).Model(&OrderModel{}).Where("user_id = ?", userID), page)
}

func (r *orderRepository) list(base *gorm.DB, page pagination.Params) ([]*order.Order, int64, error) {
	var models []OrderModel
	total, err := findPage(base, page, "", "created_at DESC, id DESC", &models)
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询订单列表失败")
	}
	return lo.Map(models, func(m OrderModel, _ int) *order.Order { return toOrderEntity(&m) }), total, nil
}

type orderItemRow struct {
	OrderItemModel
	Title         string
	ISBN          string `gorm:"column:isbn"`
	CoverImageURL *string
}

// Items 图书已删除时title/isbn为空
func (r *orderRepository) Items(ctx context.Context, orderID string) ([]*order.ItemView, error) {
	var rows []orderItemRow
	err := getDB(ctx, r.db).Table("order_items oi").
		Select("oi.id, oi.order_id, oi.book_id, oi.quantity, oi.unit_price, oi.subtotal, oi.created_at, "+
			"COALESCE(b.title, '') AS title, COALESCE(b.isbn, '') AS isbn, b.cover_image_url").
		Joins("LEFT JOIN books b ON b.id = oi.book_id").
		Where("oi.order_id = ?", orderID).
		Order("oi.created_at ASC, oi.id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询订单明细失败")
	}

	return lo.Map(rows, func(row orderItemRow, _ int) *order.ItemView {
		return &order.ItemView{
			Item:          *toOrderItem(&row.OrderItemModel),
			Title:         row.Title,
			ISBN:          row.ISBN,
			CoverImageURL: row.CoverImageURL,
		}
	}), nil
}

type purchasedRow struct {
	BookID          string
	Title           string
	ISBN            string `gorm:"column:isbn"`
	Price           decimal.Decimal
	CoverImageURL   *string
	LastPurchasedAt aggTime
	ReviewID        *string
	ReviewRating    *int
	ReviewComment   *string
}

// PurchasedBooks 用户已购图书，最近购买的在前
func (r *orderRepository) PurchasedBooks(ctx context.Context, userID string, page pagination.Params) ([]*order.PurchasedBook, int64, error) {
	db := getDB(ctx, r.db)
	statuses := order.StatusStrings(order.PurchasedStatuses)

	purchased := db.Table("order_items oi").
		Select("oi.book_id, MAX(o.created_at) AS last_purchased_at").
		Joins("JOIN orders o ON o.id = oi.order_id").
		Where("o.user_id = ? AND o.status IN ?", userID, statuses).
		Group("oi.book_id")

	var total int64
	if err := db.Table("(?) AS pb", purchased).
		Joins("JOIN books b ON b.id = pb.book_id").
		Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询已购图书失败")
	}
	if total == 0 {
		return []*order.PurchasedBook{}, 0, nil
	}

	p := page.Normalize()
	var rows []purchasedRow
	err := db.Table("(?) AS pb", purchased).
		Select("b.id AS book_id, b.title, b.isbn, b.price, b.cover_image_url, pb.last_purchased_at, "+
			"r.id AS review_id, r.rating AS review_rating, r.comment AS review_comment").
		Joins("JOIN books b ON b.id = pb.book_id").
		Joins("LEFT JOIN reviews r ON r.book_id = pb.book_id AND r.user_id = ?", userID).
		Order("pb.last_purchased_at DESC, b.title ASC").
		Limit(p.Limit).
		Offset(p.Offset()).
		Find(&rows).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询已购图书失败")
	}

	return lo.Map(rows, func(row purchasedRow, _ int) *order.PurchasedBook {
		return &order.PurchasedBook{
			BookID:          row.BookID,
			Title:           row.Title,
			ISBN:            row.ISBN,
			Price:           row.Price,
			CoverImageURL:   row.CoverImageURL,
			LastPurchasedAt: row.LastPurchasedAt.Time,
			HasReview:       row.ReviewID != nil,
			ReviewID:        row.ReviewID,
			ReviewRating:    row.ReviewRating,
			ReviewComment:   row.ReviewComment,
		}
	}), total, nil
}

func (r *orderRepository) HasPurchased(ctx context.Context, userID, bookID string) (bool, error) {
	var count int64
	err := getDB(ctx, r.db).Table("order_items oi").
		Joins("JOIN orders o ON o.id = oi.order_id").
		Where("o.user_id = ? AND oi.book_id = ? AND o.status IN ?",
			userID, bookID, order.StatusStrings(order.PurchasedStatuses)).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Wrap(err, "查询购买记录失败")
	}
	return count > 0, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, o *order.Order, from order.Status) error {
	db := getDB(ctx, r.db)
	result := db.Model(&OrderModel{}).Where("id = ? AND status = ?", o.ID, string(from)).Updates(map[string]any{
		"status":       string(o.Status),
		"shipped_at":   o.ShippedAt,
		"delivered_at": o.DeliveredAt,
	})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新订单状态失败")
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := db.Model(&OrderModel{}).Where("id = ?", o.ID).Count(&count).Error; err != nil {
		return apperrors.Wrap(err, "查询订单失败")
	}
	if count == 0 {
		return order.ErrOrderNotFound
	}
	return order.ErrInvalidTransition
}

func toOrderModel(o *order.Order) *OrderModel {
	return &OrderModel{
		UserID:         o.UserID,
		AddressID:      o.AddressID,
		Status:         string(o.Status),
		TotalAmount:    o.TotalAmount,
		ShippingCost:   o.ShippingCost,
		DiscountAmount: o.DiscountAmount,
		DiscountCode:   o.DiscountCode,
		ShippedAt:      o.ShippedAt,
		DeliveredAt:    o.DeliveredAt,
	}
}

func toOrderEntity(m *OrderModel) *order.Order {
	return &order.Order{
		ID:             m.ID,
		UserID:         m.UserID,
		AddressID:      m.AddressID,
		Status:         order.Status(m.Status),
		TotalAmount:    m.TotalAmount,
		ShippingCost:   m.ShippingCost,
		DiscountAmount: m.DiscountAmount,
		DiscountCode:   m.DiscountCode,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
		ShippedAt:      m.ShippedAt,
		DeliveredAt:    m.DeliveredAt,
	}
}

func toOrderItem(m *OrderItemModel) *order.Item {
	return &order.Item{
		ID:        m.ID,
		OrderID:   m.OrderID,
		BookID:    m.BookID,
		Quantity:  m.Quantity,
		UnitPrice: m.UnitPrice,
		Subtotal:  m.Subtotal,
		CreatedAt: m.CreatedAt,
	}
}
