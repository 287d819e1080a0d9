package store

import (
	"context"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/TheJisus28/bookstore-api/internal/domain/order"
	"github.com/TheJisus28/bookstore-api/internal/domain/report"
	apperrors "github.com/TheJisus28/bookstore-api/pkg/errors"
	"github.com/TheJisus28/bookstore-api/pkg/sqlbuilder"
)

// reportRepository 报表查询，只读
type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository 创建报表仓储
func NewReportRepository(db *gorm.DB) report.Repository {
	return &reportRepository{db: db}
}

// salesBase order_items为主表，关联订单与图书
// 两个销售报表共用同一组过滤条件
func salesBase(db *gorm.DB, f report.Filter) (*gorm.DB, error) {
	pred, err := sqlbuilder.NewFilter(sqlbuilder.DialectOf(db)).
		Where("o.created_at >= @start_date AND o.created_at < @end_date",
			sqlbuilder.P("start_date", f.StartInclusive()),
			sqlbuilder.P("end_date", f.EndExclusive())).
		Where("o.status IN @statuses", sqlbuilder.P("statuses", order.StatusStrings(f.Statuses))).
		Optional("category_id", sqlbuilder.KindText, sqlbuilder.Value(f.CategoryID), "b.category_id = @category_id").
		Optional("publisher_id", sqlbuilder.KindText, sqlbuilder.Value(f.PublisherID), "b.publisher_id = @publisher_id").
		Optional("book_id", sqlbuilder.KindText, sqlbuilder.Value(f.BookID), "oi.book_id = @book_id").
		Optional("author_id", sqlbuilder.KindText, sqlbuilder.Value(f.AuthorID),
			"EXISTS (SELECT 1 FROM book_authors ba WHERE ba.book_id = oi.book_id AND ba.author_id = @author_id)").
		Optional("min_price", sqlbuilder.KindNumeric, sqlbuilder.Value(f.MinPrice), "oi.unit_price >= @min_price").
		Optional("max_price", sqlbuilder.KindNumeric, sqlbuilder.Value(f.MaxPrice), "oi.unit_price <= @max_price").
		Predicate()
	if err != nil {
		return nil, err
	}

	return pred.Apply(db.Table("order_items oi").
		Joins("JOIN orders o ON o.id = oi.order_id").
		Joins("JOIN books b ON b.id = oi.book_id")), nil
}

// Sales 按天汇总，average_order_value = 当天收入 / 当天订单数
func (r *reportRepository) Sales(ctx context.Context, f report.Filter) ([]*report.DailySales, error) {
	db := getDB(ctx, r.db)
	base, err := salesBase(db, f)
	if err != nil {
		return nil, apperrors.Wrap(err, "构建查询条件失败")
	}

	day := sqlbuilder.DialectOf(db).DayExpr("o.created_at")
	rows := make([]*report.DailySales, 0)
	err = base.
		Select(day + " AS sale_date, COUNT(DISTINCT o.id) AS total_orders, " +
			"COUNT(DISTINCT o.user_id) AS unique_customers, SUM(oi.subtotal) AS total_revenue, " +
			"SUM(oi.quantity) AS total_items_sold").
		Group(day).
		Order("sale_date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询销售报表失败")
	}

	for _, row := range rows {
		row.TotalRevenue = row.TotalRevenue.Round(2)
		if row.TotalOrders > 0 {
			row.AverageOrderValue = row.TotalRevenue.Div(decimal.NewFromInt(row.TotalOrders)).Round(2)
		}
	}
	return rows, nil
}

func (r *reportRepository) SoldBooks(ctx context.Context, f report.Filter) ([]*report.SoldBook, error) {
	base, err := salesBase(getDB(ctx, r.db), f)
	if err != nil {
		return nil, apperrors.Wrap(err, "构建查询条件失败")
	}

	rows := make([]*report.SoldBook, 0)
	err = base.
		Joins("LEFT JOIN categories c ON c.id = b.category_id").
		Joins("LEFT JOIN publishers p ON p.id = b.publisher_id").
		Select("b.id AS book_id, b.title, b.isbn, b.price, b.cover_image_url, " +
			"c.name AS category_name, p.name AS publisher_name, " +
			"SUM(oi.quantity) AS total_quantity_sold, SUM(oi.subtotal) AS total_revenue, " +
			"COUNT(DISTINCT o.id) AS orders_count, AVG(oi.unit_price) AS average_sale_price").
		Group("b.id, b.title, b.isbn, b.price, b.cover_image_url, c.name, p.name").
		Order("total_quantity_sold DESC, b.title ASC").
		Find(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询图书销售报表失败")
	}

	for _, row := range rows {
		row.TotalRevenue = row.TotalRevenue.Round(2)
		row.AverageSalePrice = row.AverageSalePrice.Round(2)
	}
	return rows, nil
}

func (r *reportRepository) BookCatalog(ctx context.Context, limit int) ([]*report.CatalogEntry, error) {
	rows := make([]*report.CatalogEntry, 0)
	err := getDB(ctx, r.db).Table("books b").
		Joins("LEFT JOIN categories c ON c.id = b.category_id").
		Joins("LEFT JOIN publishers p ON p.id = b.publisher_id").
		Joins(ratingJoin).
		Select("b.id AS book_id, b.isbn, b.title, b.price, b.stock, b.language, b.is_active, " +
			"c.name AS category_name, p.name AS publisher_name, " +
			"(SELECT COUNT(*) FROM book_authors ba WHERE ba.book_id = b.id) AS author_count, " +
			"COALESCE(rs.avg_rating, 0) AS avg_rating, COALESCE(rs.review_count, 0) AS review_count").
		Order("b.title ASC, b.id ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询图书目录失败")
	}

	for _, row := range rows {
		row.AvgRating = row.AvgRating.Round(2)
	}
	return rows, nil
}

type orderSummaryRow struct {
	OrderID       string
	UserID        string
	CustomerEmail string
	FirstName     string
	LastName      string
	Status        string
	TotalAmount   decimal.Decimal
	ItemCount     int64
	TotalQuantity int64
	City          string
	Country       string
	CreatedAt     time.Time
}

// OrderSummary 最近的订单在前
func (r *reportRepository) OrderSummary(ctx context.Context, limit int) ([]*report.OrderSummary, error) {
	var rows []orderSummaryRow
	err := getDB(ctx, r.db).Table("orders o").
		Joins("JOIN users u ON u.id = o.user_id").
		Joins("LEFT JOIN addresses a ON a.id = o.address_id").
		Joins("LEFT JOIN order_items oi ON oi.order_id = o.id").
		Select("o.id AS order_id, o.user_id, u.email AS customer_email, u.first_name, u.last_name, " +
			"o.status, o.total_amount, COUNT(oi.id) AS item_count, COALESCE(SUM(oi.quantity), 0) AS total_quantity, " +
			"COALESCE(a.city, '') AS city, COALESCE(a.country, '') AS country, o.created_at").
		Group("o.id, o.user_id, u.email, u.first_name, u.last_name, o.status, o.total_amount, a.city, a.country, o.created_at").
		Order("o.created_at DESC, o.id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询订单概览失败")
	}

	return lo.Map(rows, func(row orderSummaryRow, _ int) *report.OrderSummary {
		return &report.OrderSummary{
			OrderID:       row.OrderID,
			UserID:        row.UserID,
			CustomerEmail: row.CustomerEmail,
			CustomerName:  row.FirstName + " " + row.LastName,
			Status:        row.Status,
			TotalAmount:   row.TotalAmount,
			ItemCount:     row.ItemCount,
			TotalQuantity: row.TotalQuantity,
			City:          row.City,
			Country:       row.Country,
			CreatedAt:     row.CreatedAt,
		}
	}), nil
}

type customerHistoryRow struct {
	UserID        string
	Email         string
	FirstName     string
	LastName      string
	TotalOrders   int64
	TotalSpent    decimal.Decimal
	BooksBought   int64
	LastOrderDate aggTime
}

// CustomerHistory 只统计已购买状态的订单，没有订单的客户也会列出
func (r *reportRepository) CustomerHistory(ctx context.Context, limit int) ([]*report.CustomerHistory, error) {
	db := getDB(ctx, r.db)
	statuses := order.StatusStrings(order.PurchasedStatuses)

	orderStats := db.Table("orders").
		Select("user_id, COUNT(*) AS total_orders, SUM(total_amount) AS total_spent, MAX(created_at) AS last_order_date").
		Where("status IN ?", statuses).
		Group("user_id")
	bookStats := db.Table("order_items oi").
		Select("o.user_id, SUM(oi.quantity) AS books_bought").
		Joins("JOIN orders o ON o.id = oi.order_id").
		Where("o.status IN ?", statuses).
		Group("o.user_id")

	var rows []customerHistoryRow
	err := db.Table("users u").
		Joins("LEFT JOIN (?) os ON os.user_id = u.id", orderStats).
		Joins("LEFT JOIN (?) bs ON bs.user_id = u.id", bookStats).
		Select("u.id AS user_id, u.email, u.first_name, u.last_name, "+
			"COALESCE(os.total_orders, 0) AS total_orders, COALESCE(os.total_spent, 0) AS total_spent, "+
			"COALESCE(bs.books_bought, 0) AS books_bought, os.last_order_date").
		Where("u.role = ?", "customer").
		Order("total_spent DESC, u.email ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询客户购买历史失败")
	}

	return lo.Map(rows, func(row customerHistoryRow, _ int) *report.CustomerHistory {
		return &report.CustomerHistory{
			UserID:        row.UserID,
			Email:         row.Email,
			FirstName:     row.FirstName,
			LastName:      row.LastName,
			TotalOrders:   row.TotalOrders,
			TotalSpent:    row.TotalSpent.Round(2),
			BooksBought:   row.BooksBought,
			LastOrderDate: row.LastOrderDate.Ptr(),
		}
	}), nil
}
