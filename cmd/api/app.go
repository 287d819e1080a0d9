package main

import (
	"context"

	"github.com/gin-gonic/gin"
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
	"github.com/TheJisus28/bookstore-api/internal/infrastructure/messaging"
	"github.com/TheJisus28/bookstore-api/internal/infrastructure/persistence/store"
	"github.com/TheJisus28/bookstore-api/internal/interface/http/handler"
	"github.com/TheJisus28/bookstore-api/internal/interface/http/middleware"
	"github.com/TheJisus28/bookstore-api/internal/interface/http/router"
	"github.com/TheJisus28/bookstore-api/pkg/jwt"
)

// buildEngine 手动依赖注入
// Repository ← Service / UseCase ← Handler ← Router
// blacklist、events可为nil（Redis、MQ未启用）
func buildEngine(
	cfg *config.Config,
	log *zap.Logger,
	db *gorm.DB,
	blacklist auth.TokenBlacklist,
	events order.EventPublisher,
) *gin.Engine {
	if events == nil {
		events = messaging.NopPublisher{}
	}

	// 基础设施层
	userRepo := store.NewUserRepository(db)
	bookRepo := store.NewBookRepository(db)
	authorRepo := store.NewAuthorRepository(db)
	categoryRepo := store.NewCategoryRepository(db)
	publisherRepo := store.NewPublisherRepository(db)
	addressRepo := store.NewAddressRepository(db)
	cartRepo := store.NewCartRepository(db)
	orderRepo := store.NewOrderRepository(db)
	reviewRepo := store.NewReviewRepository(db)
	reportRepo := store.NewReportRepository(db)
	txManager := store.NewTxManager(db)
	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpire, cfg.JWT.RefreshTokenExpire)

	// 领域层
	userService := user.NewService(userRepo)
	bookService := book.NewService(bookRepo)
	authorService := author.NewService(authorRepo)
	categoryService := category.NewService(categoryRepo)
	publisherService := publisher.NewService(publisherRepo)
	addressService := address.NewService(addressRepo)
	cartService := cart.NewService(cartRepo, bookRepo)
	orderService := order.NewService(orderRepo)
	reviewService := review.NewService(reviewRepo)
	reportService := report.NewService(reportRepo)

	// 应用层
	registerUseCase := auth.NewRegisterUseCase(userRepo, jwtManager, log)
	loginUseCase := auth.NewLoginUseCase(userRepo, jwtManager)
	sessionUseCase := auth.NewSessionUseCase(userRepo, jwtManager, blacklist)
	catalogUseCase := appbook.NewCatalogUseCase(bookRepo, authorRepo, categoryRepo, publisherRepo, txManager)
	checkoutUseCase := apporder.NewCheckoutUseCase(
		orderRepo, bookRepo, cartRepo, addressRepo, txManager,
		order.NoDiscounts{}, events, cfg.Checkout.Shipping(), log,
	)
	updateStatusUseCase := apporder.NewUpdateStatusUseCase(orderRepo, events, log)
	reviewUseCase := appreview.NewReviewUseCase(reviewRepo, bookRepo, orderRepo)

	// 接口层
	handlers := router.Handlers{
		Health: handler.NewHealthHandler(func(ctx context.Context) error {
			return store.Ping(ctx, db)
		}),
		Auth:      handler.NewAuthHandler(registerUseCase, loginUseCase, sessionUseCase, userService),
		Book:      handler.NewBookHandler(catalogUseCase, bookService),
		Author:    handler.NewAuthorHandler(authorService),
		Category:  handler.NewCategoryHandler(categoryService),
		Publisher: handler.NewPublisherHandler(publisherService),
		Address:   handler.NewAddressHandler(addressService),
		Cart:      handler.NewCartHandler(cartService),
		Order:     handler.NewOrderHandler(orderService, checkoutUseCase, updateStatusUseCase),
		Review:    handler.NewReviewHandler(reviewService, reviewUseCase),
		User:      handler.NewUserHandler(userService),
		Report:    handler.NewReportHandler(reportService),
	}
	guards := router.Guards{
		Auth:       middleware.NewAuthMiddleware(jwtManager, sessionUseCase),
		OrderOwner: orderService.OwnerOf,
	}

	return router.New(cfg, log, handlers, guards)
}
