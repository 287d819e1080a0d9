// Package report 管理员报表
package report

import (
	"time"

	"github.com/samber/mo"
	"github.com/shopspring/decimal"

	"github.com/TheJisus28/bookstore-api/internal/domain/order"
)

// ViewLimit 视图类报表的最大行数
const ViewLimit = 100

// Filter 销售报表过滤条件
// 日期区间按天闭区间（包含EndDate当天）
type Filter struct {
	StartDate   time.Time
	EndDate     time.Time
	CategoryID  mo.Option[string]
	AuthorID    mo.Option[string]
	PublisherID mo.Option[string]
	BookID      mo.Option[string]
	MinPrice    mo.Option[decimal.Decimal]
	MaxPrice    mo.Option[decimal.Decimal]
	Statuses    []order.Status
}

// EndExclusive 区间上界（EndDate次日零点）
func (f Filter) EndExclusive() time.Time {
	return truncateDay(f.EndDate).AddDate(0, 0, 1)
}

// StartInclusive 区间下界（StartDate当天零点）
func (f Filter) StartInclusive() time.Time {
	return truncateDay(f.StartDate)
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DailySales 按天汇总的销售
type DailySales struct {
	SaleDate          string          `json:"sale_date"`
	TotalOrders       int64           `json:"total_orders"`
	UniqueCustomers   int64           `json:"unique_customers"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	TotalItemsSold    int64           `json:"total_items_sold"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
}

// SoldBook 按图书汇总的销售
type SoldBook struct {
	BookID            string          `json:"book_id"`
	Title             string          `json:"title"`
	ISBN              string          `json:"isbn"`
	Price             decimal.Decimal `json:"price"`
	CoverImageURL     *string         `json:"cover_image_url"`
	CategoryName      *string         `json:"category_name"`
	PublisherName     *string         `json:"publisher_name"`
	TotalQuantitySold int64           `json:"total_quantity_sold"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	OrdersCount       int64           `json:"orders_count"`
	AverageSalePrice  decimal.Decimal `json:"average_sale_price"`
}

// CatalogEntry 图书目录（含分类、出版社、作者与评分）
type CatalogEntry struct {
	BookID        string          `json:"book_id"`
	ISBN          string          `json:"isbn"`
	Title         string          `json:"title"`
	Price         decimal.Decimal `json:"price"`
	Stock         int             `json:"stock"`
	Language      string          `json:"language"`
	IsActive      bool            `json:"is_active"`
	CategoryName  *string         `json:"category_name"`
	PublisherName *string         `json:"publisher_name"`
	AuthorCount   int64           `json:"author_count"`
	AvgRating     decimal.Decimal `json:"avg_rating"`
	ReviewCount   int64           `json:"review_count"`
}

// OrderSummary 订单概览
type OrderSummary struct {
	OrderID       string          `json:"order_id"`
	UserID        string          `json:"user_id"`
	CustomerEmail string          `json:"customer_email"`
	CustomerName  string          `json:"customer_name"`
	Status        string          `json:"status"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	ItemCount     int64           `json:"item_count"`
	TotalQuantity int64           `json:"total_quantity"`
	City          string          `json:"city"`
	Country       string          `json:"country"`
	CreatedAt     time.Time       `json:"created_at"`
}

// CustomerHistory 客户购买历史
type CustomerHistory struct {
	UserID        string          `json:"user_id"`
	Email         string          `json:"email"`
	FirstName     string          `json:"first_name"`
	LastName      string          `json:"last_name"`
	TotalOrders   int64           `json:"total_orders"`
	TotalSpent    decimal.Decimal `json:"total_spent"`
	BooksBought   int64           `json:"books_bought"`
	LastOrderDate *time.Time      `json:"last_order_date"`
}
