package store

import (
	"context"
	"testing"
	"time"

	"github.com/samber/mo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheJisus28/bookstore-api/internal/domain/book"
	"github.com/TheJisus28/bookstore-api/internal/domain/category"
	"github.com/TheJisus28/bookstore-api/internal/domain/order"
	"github.com/TheJisus28/bookstore-api/internal/domain/report"
	"github.com/TheJisus28/bookstore-api/internal/domain/user"
)

type reportFixture struct {
	repo   report.Repository
	novel  *category.Category
	b1, b2 *book.Book
	day1   time.Time
	day2   time.Time
}

// newReportFixture 两天的订单：
//
//	day1: alice买b1×2、b2×1（shipped），bob买b1×1（completed）
//	day2: alice买b2×3（delivered）
//	另有pending与cancelled订单各一笔，不计入默认统计
func newReportFixture(t *testing.T) *reportFixture {
	t.Helper()
	db := newTestDB(t)
	ctx := context.Background()

	novel := &category.Category{Name: "Novela"}
	require.NoError(t, NewCategoryRepository(db).Create(ctx, novel))

	alice := createUser(t, db, "alice@test.com", user.RoleCustomer)
	bob := createUser(t, db, "bob@test.com", user.RoleCustomer)
	createUser(t, db, "admin@test.com", user.RoleAdmin)
	aa := createAddress(t, db, alice.ID, true)
	ba := createAddress(t, db, bob.ID, true)

	b1 := createBook(t, db, "9780000003001", "Novela uno", "10", 100, func(b *book.Book) { b.CategoryID = &novel.ID })
	b2 := createBook(t, db, "9780000003002", "Ensayo dos", "20", 100)

	day1 := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 3, 2, 15, 30, 0, 0, time.UTC)

	createOrder(t, db, alice.ID, aa.ID, order.StatusShipped, day1, line{b1, 2}, line{b2, 1})
	createOrder(t, db, bob.ID, ba.ID, order.StatusCompleted, day1.Add(time.Hour), line{b1, 1})
	createOrder(t, db, alice.ID, aa.ID, order.StatusDelivered, day2, line{b2, 3})
	createOrder(t, db, bob.ID, ba.ID, order.StatusPending, day2, line{b1, 10})
	createOrder(t, db, bob.ID, ba.ID, order.StatusCancelled, day2, line{b2, 10})

	return &reportFixture{repo: NewReportRepository(db), novel: novel, b1: b1, b2: b2, day1: day1, day2: day2}
}

func (f *reportFixture) filter() report.Filter {
	return report.Filter{
		StartDate: f.day1,
		EndDate:   f.day2,
		Statuses:  order.PurchasedStatuses,
	}
}

func TestReportRepository_Sales(t *testing.T) {
	f := newReportFixture(t)
	ctx := context.Background()

	rows, err := f.repo.Sales(ctx, f.filter())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "2024-03-01", rows[0].SaleDate)
	assert.Equal(t, int64(2), rows[0].TotalOrders)
	assert.Equal(t, int64(2), rows[0].UniqueCustomers)
	assert.Equal(t, int64(4), rows[0].TotalItemsSold)
	assert.True(t, rows[0].TotalRevenue.Equal(decimal.NewFromInt(50)), rows[0].TotalRevenue.String())
	assert.True(t, rows[0].AverageOrderValue.Equal(decimal.NewFromInt(25)), rows[0].AverageOrderValue.String())

	assert.Equal(t, "2024-03-02", rows[1].SaleDate)
	assert.Equal(t, int64(1), rows[1].TotalOrders)
	assert.True(t, rows[1].TotalRevenue.Equal(decimal.NewFromInt(60)))

	t.Run("结束日期当天包含在内", func(t *testing.T) {
		flt := f.filter()
		flt.StartDate = f.day2
		rows, err := f.repo.Sales(ctx, flt)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "2024-03-02", rows[0].SaleDate)
	})

	t.Run("指定状态", func(t *testing.T) {
		flt := f.filter()
		flt.Statuses = []order.Status{order.StatusPending}
		rows, err := f.repo.Sales(ctx, flt)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, int64(10), rows[0].TotalItemsSold)
	})

	t.Run("分类过滤", func(t *testing.T) {
		flt := f.filter()
		flt.CategoryID = mo.Some(f.novel.ID)
		rows, err := f.repo.Sales(ctx, flt)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, int64(3), rows[0].TotalItemsSold)
	})
}

func TestReportRepository_SoldBooks(t *testing.T) {
	f := newReportFixture(t)
	ctx := context.Background()

	rows, err := f.repo.SoldBooks(ctx, f.filter())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, f.b2.ID, rows[0].BookID, "按销量倒序")
	assert.Equal(t, int64(4), rows[0].TotalQuantitySold)
	assert.Equal(t, int64(2), rows[0].OrdersCount)
	assert.True(t, rows[0].TotalRevenue.Equal(decimal.NewFromInt(80)))
	assert.Nil(t, rows[0].CategoryName)

	assert.Equal(t, f.b1.ID, rows[1].BookID)
	assert.Equal(t, int64(3), rows[1].TotalQuantitySold)
	require.NotNil(t, rows[1].CategoryName)
	assert.Equal(t, "Novela", *rows[1].CategoryName)

	t.Run("单价区间", func(t *testing.T) {
		flt := f.filter()
		flt.MinPrice = mo.Some(decimal.NewFromInt(15))
		rows, err := f.repo.SoldBooks(ctx, flt)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, f.b2.ID, rows[0].BookID)
	})

	t.Run("图书过滤", func(t *testing.T) {
		flt := f.filter()
		flt.BookID = mo.Some(f.b1.ID)
		rows, err := f.repo.SoldBooks(ctx, flt)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, f.b1.ID, rows[0].BookID)
	})
}

func TestReportRepository_Views(t *testing.T) {
	f := newReportFixture(t)
	ctx := context.Background()

	t.Run("图书目录", func(t *testing.T) {
		rows, err := f.repo.BookCatalog(ctx, report.ViewLimit)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "Ensayo dos", rows[0].Title)
		assert.Zero(t, rows[0].ReviewCount)
	})

	t.Run("订单概览", func(t *testing.T) {
		rows, err := f.repo.OrderSummary(ctx, 3)
		require.NoError(t, err)
		require.Len(t, rows, 3)
		for _, row := range rows {
			assert.True(t, row.CreatedAt.Equal(f.day2), "最近的订单在前")
			assert.Equal(t, "Ana García", row.CustomerName)
			assert.Equal(t, "Bogotá", row.City)
			assert.Equal(t, int64(1), row.ItemCount)
		}
	})

	t.Run("客户购买历史", func(t *testing.T) {
		rows, err := f.repo.CustomerHistory(ctx, report.ViewLimit)
		require.NoError(t, err)
		require.Len(t, rows, 2, "只包含顾客")

		assert.Equal(t, "alice@test.com", rows[0].Email)
		assert.Equal(t, int64(2), rows[0].TotalOrders)
		assert.Equal(t, int64(6), rows[0].BooksBought)
		assert.True(t, rows[0].TotalSpent.Equal(decimal.NewFromInt(100)))
		require.NotNil(t, rows[0].LastOrderDate)
		assert.True(t, rows[0].LastOrderDate.Equal(f.day2))

		assert.Equal(t, "bob@test.com", rows[1].Email)
		assert.Equal(t, int64(1), rows[1].TotalOrders, "待处理和已取消的订单不计入")
	})
}
