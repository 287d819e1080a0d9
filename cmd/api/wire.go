//go:build wireinject
// +build wireinject

// Wire依赖注入配置
// 运行 `wire gen ./cmd/api` 生成wire_gen.go，生成结果与app.go中的buildEngine等价

package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/TheJisus28/bookstore-api/internal/application/auth"
	appbook "github.com/TheJisus28/bookstore-api/internal/application/book"
	apporder "github.com/TheJisus28/bookstore-api/internal/application/order"
	appreview "github.com/TheJisus28/bookstore-api/internal/application/review"
	"github.com/TheJisus28/bookstore-api/internal/domain/address"
	"github.com/TheJisus28/bookstore-api/internal/domain/author"
	"github.com/TheJisus28/bookstore-api/internal/domain/book"
	"github.com/TheJisus28/bookstore-api/internal/domain/cart"
	"github.com/TheJisus28/bookstore-api/internal/domain/category"
	"github.com/TheJisus28/bookstore-api/internal/domain/order"
	"github.com/TheJisus28/bookstore-api/internal/domain/publisher"
	"github.com/TheJisus28/bookstore-api/internal/domain/report"
	"github.com/TheJisus28/bookstore-api/internal/domain/review"
	"github.com/TheJisus28/bookstore-api/internal/domain/user"
	"github.com/TheJisus28/bookstore-api/internal/infrastructure/config"
	"github.com/TheJisus28/bookstore-api/internal/infrastructure/persistence/store"
	"github.com/TheJisus28/bookstore-api/internal/interface/http/handler"
	"github.com/TheJisus28/bookstore-api/internal/interface/http/middleware"
	"github.com/TheJisus28/bookstore-api/internal/interface/http/router"
	"github.com/TheJisus28/bookstore-api/pkg/jwt"
)

// repositorySet 仓储与事务管理器
var repositorySet = wire.NewSet(
	store.NewUserRepository,
	store.NewBookRepository,
	store.NewAuthorRepository,
	store.NewCategoryRepository,
	store.NewPublisherRepository,
	store.NewAddressRepository,
	store.NewCartRepository,
	store.NewOrderRepository,
	store.NewReviewRepository,
	store.NewReportRepository,
	store.NewTxManager,
	wire.Bind(new(appbook.Transactor), new(*store.TxManager)),
	wire.Bind(new(apporder.Transactor), new(*store.TxManager)),
	wire.Bind(new(cart.BookReader), new(book.Repository)),
	wire.Bind(new(appreview.PurchaseChecker), new(order.Repository)),
)

// domainSet 领域服务
var domainSet = wire.NewSet(
	user.NewService,
	book.NewService,
	author.NewService,
	category.NewService,
	publisher.NewService,
	address.NewService,
	cart.NewService,
	order.NewService,
	review.NewService,
	report.NewService,
)

// applicationSet 用例
var applicationSet = wire.NewSet(
	auth.NewRegisterUseCase,
	auth.NewLoginUseCase,
	auth.NewSessionUseCase,
	appbook.NewCatalogUseCase,
	apporder.NewCheckoutUseCase,
	apporder.NewUpdateStatusUseCase,
	appreview.NewReviewUseCase,
	provideJWTManager,
	provideShipping,
	provideDiscounts,
)

// handlerSet HTTP处理器与路由
var handlerSet = wire.NewSet(
	handler.NewAuthHandler,
	handler.NewBookHandler,
	handler.NewAuthorHandler,
	handler.NewCategoryHandler,
	handler.NewPublisherHandler,
	handler.NewAddressHandler,
	handler.NewCartHandler,
	handler.NewOrderHandler,
	handler.NewReviewHandler,
	handler.NewUserHandler,
	handler.NewReportHandler,
	handler.NewHealthHandler,
	providePing,
	middleware.NewAuthMiddleware,
	wire.Bind(new(middleware.SessionValidator), new(*auth.SessionUseCase)),
	wire.Struct(new(router.Handlers), "*"),
	provideGuards,
	router.New,
)

func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpire, cfg.JWT.RefreshTokenExpire)
}

func provideShipping(cfg *config.Config) decimal.Decimal {
	return cfg.Checkout.Shipping()
}

func provideDiscounts() order.DiscountResolver {
	return order.NoDiscounts{}
}

func providePing(db *gorm.DB) handler.PingFunc {
	return func(ctx context.Context) error {
		return store.Ping(ctx, db)
	}
}

func provideGuards(auth *middleware.AuthMiddleware, orders order.Service) router.Guards {
	return router.Guards{Auth: auth, OrderOwner: orders.OwnerOf}
}

// InitializeEngine 组装HTTP引擎
// blacklist、events由main根据Redis/MQ是否启用提供
func InitializeEngine(
	cfg *config.Config,
	log *zap.Logger,
	db *gorm.DB,
	blacklist auth.TokenBlacklist,
	events order.EventPublisher,
) *gin.Engine {
	wire.Build(repositorySet, domainSet, applicationSet, handlerSet)
	return nil
}
