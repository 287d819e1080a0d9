package order

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/TheJisus28/bookstore-api/internal/domain/address"
	"github.com/TheJisus28/bookstore-api/internal/domain/book"
	"github.com/TheJisus28/bookstore-api/internal/domain/cart"
	"github.com/TheJisus28/bookstore-api/internal/domain/order"
	"github.com/TheJisus28/bookstore-api/pkg/logger"
	"github.com/TheJisus28/bookstore-api/pkg/metrics"
)

// Transactor 事务边界（store.TxManager实现）
type Transactor interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// CheckoutUseCase 结算下单
// 涉及地址、购物车、图书库存、订单四个聚合，全部在一个事务内完成
type CheckoutUseCase struct {
	orders    order.Repository
	books     book.Repository
	carts     cart.Repository
	addresses address.Repository
	tx        Transactor
	discounts order.DiscountResolver
	events    order.EventPublisher
	shipping  decimal.Decimal
	log       *zap.Logger
}

// NewCheckoutUseCase 创建结算用例
func NewCheckoutUseCase(
	orders order.Repository,
	books book.Repository,
	carts cart.Repository,
	addresses address.Repository,
	tx Transactor,
	discounts order.DiscountResolver,
	events order.EventPublisher,
	shipping decimal.Decimal,
	log *zap.Logger,
) *CheckoutUseCase {
	if discounts == nil {
		discounts = order.NoDiscounts{}
	}
	return &CheckoutUseCase{
		orders:    orders,
		books:     books,
		carts:     carts,
		addresses: addresses,
		tx:        tx,
		discounts: discounts,
		events:    events,
		shipping:  shipping,
		log:       log.Named("checkout"),
	}
}

// CheckoutRequest 结算请求
type CheckoutRequest struct {
	UserID       string
	AddressID    string
	DiscountCode string
}

// Execute 执行结算
//
//  1. 地址必须存在且属于当前用户
//  2. 购物车不能为空
//  3. 按book_id顺序SELECT ... FOR UPDATE锁定图书，校验上架与库存
//  4. 以锁定时的价格生成订单明细
//  5. total = sum(subtotal) + shipping - discount
//  6. 写入订单、扣减库存、清空购物车
//
// 事务提交后才记录指标并发布事件，事件发布失败只写日志
func (uc *CheckoutUseCase) Execute(ctx context.Context, req CheckoutRequest) (*order.Order, error) {
	start := time.Now()
	o, err := uc.checkout(ctx, req)
	metrics.ObserveHistogram(metrics.OrderCreationDuration, time.Since(start).Seconds())
	if err != nil {
		metrics.IncCounter(metrics.OrdersFailedTotal)
		return nil, err
	}
	metrics.IncCounter(metrics.OrdersCreatedTotal)

	if err := uc.events.PublishCreated(ctx, order.NewCreatedEvent(o)); err != nil {
		uc.log.Warn("发布下单事件失败", append(logger.ContextFields(ctx),
			zap.String("order_id", o.ID), zap.Error(err))...)
	}
	return o, nil
}

func (uc *CheckoutUseCase) checkout(ctx context.Context, req CheckoutRequest) (*order.Order, error) {
	var created *order.Order
	err := uc.tx.Transaction(ctx, func(ctx context.Context) error {
		addr, err := uc.addresses.FindByID(ctx, req.AddressID)
		if err != nil {
			return err
		}
		if !addr.IsOwnedBy(req.UserID) {
			return address.ErrNotOwner
		}

		lines, err := uc.carts.Items(ctx, req.UserID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return order.ErrEmptyCart
		}

		// 固定加锁顺序，避免两个结算事务互相等待
		sort.Slice(lines, func(i, j int) bool { return lines[i].BookID < lines[j].BookID })

		items := make([]*order.Item, 0, len(lines))
		for _, line := range lines {
			b, err := uc.books.LockByID(ctx, line.BookID)
			if err != nil {
				return err
			}
			if !b.IsActive {
				return book.ErrBookNotAvailable
			}
			if !b.HasStock(line.Quantity) {
				return book.ErrInsufficientStock
			}
			items = append(items, order.NewItem(b.ID, line.Quantity, b.Price))
		}

		o := order.NewOrder(req.UserID, req.AddressID, items, uc.shipping, decimal.Zero, nil)
		discount, err := uc.discounts.Resolve(ctx, req.DiscountCode, o.Subtotal())
		if err != nil {
			return err
		}
		if code := strings.TrimSpace(req.DiscountCode); code != "" {
			o = order.NewOrder(req.UserID, req.AddressID, items, uc.shipping, discount, &code)
		}

		if err := uc.orders.Create(ctx, o); err != nil {
			return err
		}
		for _, it := range items {
			if err := uc.books.UpdateStock(ctx, it.BookID, -it.Quantity); err != nil {
				return err
			}
		}
		if err := uc.carts.Clear(ctx, req.UserID); err != nil {
			return err
		}

		created = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}
