// Package router 路由注册
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/TheJisus28/bookstore-api/internal/domain/user"
	"github.com/TheJisus28/bookstore-api/internal/infrastructure/config"
	"github.com/TheJisus28/bookstore-api/internal/interface/http/handler"
	"github.com/TheJisus28/bookstore-api/internal/interface/http/middleware"
)

// Handlers 路由依赖的全部处理器
type Handlers struct {
	Health    *handler.HealthHandler
	Auth      *handler.AuthHandler
	Book      *handler.BookHandler
	Author    *handler.AuthorHandler
	Category  *handler.CategoryHandler
	Publisher *handler.PublisherHandler
	Address   *handler.AddressHandler
	Cart      *handler.CartHandler
	Order     *handler.OrderHandler
	Review    *handler.ReviewHandler
	User      *handler.UserHandler
	Report    *handler.ReportHandler
}

// Guards 鉴权中间件与资源所有者解析
type Guards struct {
	Auth       *middleware.AuthMiddleware
	OrderOwner middleware.OwnerResolver
}

// New 创建Gin引擎并注册全部路由
// 全局中间件顺序：Recovery → Tracing → RequestLogger → Metrics → CORS
func New(cfg *config.Config, log *zap.Logger, h Handlers, g Guards) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.Recovery(log),
		middleware.Tracing(),
		middleware.RequestLogger(log),
		middleware.Metrics(),
		middleware.CORS(cfg.Server.CORSOrigins),
	)

	r.GET("/", h.Health.Root)
	r.GET("/health", h.Health.Health)
	if cfg.Metrics.Enabled {
		r.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	auth := g.Auth.RequireAuth()
	admin := g.Auth.RequireRole(user.RoleAdmin)
	customer := g.Auth.RequireRole(user.RoleCustomer)

	v1 := r.Group("/api/v1")

	// 认证
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/refresh", h.Auth.Refresh)
		authGroup.POST("/logout", auth, h.Auth.Logout)
		authGroup.GET("/profile", auth, h.Auth.Profile)
	}

	// 图书（静态路径必须在 :id 之前注册）
	books := v1.Group("/books")
	{
		books.GET("", h.Book.List)
		books.GET("/admin", auth, admin, h.Book.AdminList)
		books.GET("/search/advanced", h.Book.Search)
		books.GET("/bestsellers", h.Book.Bestsellers)
		books.GET("/:id", h.Book.Get)
		books.POST("", auth, admin, h.Book.Create)
		books.PUT("/:id", auth, admin, h.Book.Update)
		books.DELETE("/:id", auth, admin, h.Book.Delete)
		books.GET("/:id/authors", h.Book.Authors)
		books.POST("/:id/authors", auth, admin, h.Book.AddAuthor)
		books.DELETE("/:id/authors/:authorId", auth, admin, h.Book.RemoveAuthor)
	}

	crud(v1.Group("/authors"), auth, admin, h.Author)
	crud(v1.Group("/categories"), auth, admin, h.Category)
	crud(v1.Group("/publishers"), auth, admin, h.Publisher)

	addresses := v1.Group("/addresses", auth)
	{
		addresses.GET("", h.Address.List)
		addresses.GET("/:id", h.Address.Get)
		addresses.POST("", h.Address.Create)
		addresses.PUT("/:id", h.Address.Update)
		addresses.DELETE("/:id", h.Address.Delete)
	}

	cart := v1.Group("/cart", auth, customer)
	{
		cart.GET("", h.Cart.List)
		cart.POST("", h.Cart.Add)
		cart.PUT("/:id", h.Cart.Update)
		cart.DELETE("/:id", h.Cart.Remove)
		cart.DELETE("", h.Cart.Clear)
	}

	orderOwner := g.Auth.RequireOwnership("id", g.OrderOwner)
	orders := v1.Group("/orders", auth)
	{
		orders.GET("/admin", admin, h.Order.AdminList)
		orders.GET("/my-orders", h.Order.MyOrders)
		orders.GET("/my-books", h.Order.MyBooks)
		orders.POST("", h.Order.Checkout)
		orders.GET("/:id", orderOwner, h.Order.Get)
		orders.PUT("/:id/status", admin, h.Order.UpdateStatus)
		orders.GET("/:id/items", orderOwner, h.Order.Items)
	}

	reviews := v1.Group("/reviews")
	{
		reviews.GET("/book/:bookId", h.Review.ListByBook)
		reviews.GET("/can-review/:bookId", auth, h.Review.CanReview)
		reviews.GET("/:id", h.Review.Get)
		reviews.POST("", auth, customer, h.Review.Create)
		reviews.PUT("/:id", auth, customer, h.Review.Update)
		reviews.DELETE("/:id", auth, customer, h.Review.Delete)
	}

	users := v1.Group("/users", auth, admin)
	{
		users.GET("", h.User.List)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id", h.User.Update)
	}

	reports := v1.Group("/reports", auth, admin)
	{
		reports.GET("/sales", h.Report.Sales)
		reports.GET("/sold-books", h.Report.SoldBooks)
		reports.GET("/book-catalog", h.Report.BookCatalog)
		reports.GET("/order-summary", h.Report.OrderSummary)
		reports.GET("/customer-history", h.Report.CustomerHistory)
	}

	return r
}

// resource 公开读、管理员写的资源
type resource interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

func crud(g *gin.RouterGroup, auth, admin gin.HandlerFunc, h resource) {
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("", auth, admin, h.Create)
	g.PUT("/:id", auth, admin, h.Update)
	g.DELETE("/:id", auth, admin, h.Delete)
}
