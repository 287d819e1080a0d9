package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/TheJisus28/bookstore-api/internal/infrastructure/config"
	"github.com/TheJisus28/bookstore-api/internal/infrastructure/persistence/store"
	"github.com/TheJisus28/bookstore-api/pkg/response"
)

const (
	adminEmail    = "admin@bookstore.test"
	adminPassword = "admin123"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	response.SetupBinding()
	os.Exit(m.Run())
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type api struct {
	t      *testing.T
	engine *gin.Engine
}

// newAPI 完整装配的HTTP引擎（SQLite内存库，运费5）
func newAPI(t *testing.T) *api {
	t.Helper()
	cfg := &config.Config{
		Server:   config.ServerConfig{Mode: gin.TestMode, CORSOrigins: []string{"*"}},
		JWT:      config.JWTConfig{Secret: "test-secret", AccessTokenExpire: time.Hour, RefreshTokenExpire: 24 * time.Hour},
		Seed:     config.SeedConfig{Enabled: true, AdminEmail: adminEmail, AdminPassword: adminPassword},
		Checkout: config.CheckoutConfig{ShippingCost: 5},
	}
	db, err := store.Open(config.DatabaseConfig{
		Driver:      config.DriverSQLite,
		Path:        "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		AutoMigrate: true,
	}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close(db) })

	store.Seed(context.Background(), store.NewUserRepository(db), cfg.Seed, zap.NewNop())
	return &api{t: t, engine: buildEngine(cfg, zap.NewNop(), db, nil, nil)}
}

func (a *api) do(method, path, token string, body any) (int, envelope) {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)

	var env envelope
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func (a *api) data(env envelope) map[string]any {
	a.t.Helper()
	var m map[string]any
	require.NoError(a.t, json.Unmarshal(env.Data, &m))
	return m
}

// register 注册顾客并返回access token
func (a *api) register(email string) string {
	a.t.Helper()
	status, env := a.do(http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"email": email, "password": "secret123", "first_name": "Ana", "last_name": "García",
	})
	require.Equal(a.t, http.StatusCreated, status, env.Message)
	return a.data(env)["access_token"].(string)
}

func (a *api) login(email, password string) string {
	a.t.Helper()
	status, env := a.do(http.MethodPost, "/api/v1/auth/login", "", map[string]any{"email": email, "password": password})
	require.Equal(a.t, http.StatusOK, status, env.Message)
	return a.data(env)["access_token"].(string)
}

// create POST并返回新资源ID
func (a *api) create(path, token string, body any) string {
	a.t.Helper()
	status, env := a.do(http.MethodPost, path, token, body)
	require.Equal(a.t, http.StatusCreated, status, env.Message)
	return a.data(env)["id"].(string)
}

func TestAuthAPI(t *testing.T) {
	a := newAPI(t)

	t.Run("注册返回201与顾客角色", func(t *testing.T) {
		status, env := a.do(http.MethodPost, "/api/v1/auth/register", "", map[string]any{
			"email": "Ana@Example.com", "password": "secret123", "first_name": "Ana", "last_name": "García",
		})
		require.Equal(t, http.StatusCreated, status)
		assert.Equal(t, 0, env.Code)

		data := a.data(env)
		assert.NotEmpty(t, data["access_token"])
		assert.NotEmpty(t, data["refresh_token"])
		u := data["user"].(map[string]any)
		assert.Equal(t, "customer", u["role"])
		assert.Equal(t, "ana@example.com", u["email"])
		assert.NotContains(t, string(env.Data), "password", "响应不能包含密码哈希")
	})

	t.Run("重复邮箱返回409", func(t *testing.T) {
		status, env := a.do(http.MethodPost, "/api/v1/auth/register", "", map[string]any{
			"email": "ana@example.com", "password": "secret123", "first_name": "Ana", "last_name": "García",
		})
		assert.Equal(t, http.StatusConflict, status)
		assert.Equal(t, "Email already registered", env.Message)
	})

	t.Run("未知字段返回400", func(t *testing.T) {
		status, _ := a.do(http.MethodPost, "/api/v1/auth/register", "", map[string]any{
			"email": "eve@example.com", "password": "secret123", "first_name": "Eve", "last_name": "X", "role": "admin",
		})
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("字段类型错误返回400", func(t *testing.T) {
		status, _ := a.do(http.MethodPost, "/api/v1/auth/login", "", `{"email": 42, "password": "x"}`)
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("校验失败按字段返回", func(t *testing.T) {
		status, env := a.do(http.MethodPost, "/api/v1/auth/register", "", map[string]any{
			"email": "not-an-email", "password": "123", "first_name": "A", "last_name": "B",
		})
		require.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Validation failed", env.Message)
		var fields []response.FieldError
		require.NoError(t, json.Unmarshal(env.Data, &fields))
		assert.Len(t, fields, 2)
	})

	t.Run("密码错误返回401", func(t *testing.T) {
		status, env := a.do(http.MethodPost, "/api/v1/auth/login", "", map[string]any{"email": "ana@example.com", "password": "wrong"})
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "Invalid credentials", env.Message)
	})

	t.Run("profile需要登录", func(t *testing.T) {
		status, _ := a.do(http.MethodGet, "/api/v1/auth/profile", "", nil)
		assert.Equal(t, http.StatusUnauthorized, status)

		token := a.login("ana@example.com", "secret123")
		status, env := a.do(http.MethodGet, "/api/v1/auth/profile", token, nil)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, "ana@example.com", a.data(env)["email"])
	})

	t.Run("refresh token不能作为access token", func(t *testing.T) {
		_, env := a.do(http.MethodPost, "/api/v1/auth/login", "", map[string]any{"email": "ana@example.com", "password": "secret123"})
		refresh := a.data(env)["refresh_token"].(string)

		status, _ := a.do(http.MethodGet, "/api/v1/auth/profile", refresh, nil)
		assert.Equal(t, http.StatusUnauthorized, status)

		status, env = a.do(http.MethodPost, "/api/v1/auth/refresh", "", map[string]any{"refresh_token": refresh})
		require.Equal(t, http.StatusOK, status)
		assert.NotEmpty(t, a.data(env)["access_token"])
	})
}

func TestAuthorizationAPI(t *testing.T) {
	a := newAPI(t)
	customer := a.register("bob@example.com")
	admin := a.login(adminEmail, adminPassword)

	t.Run("管理员接口：未登录401，顾客403，管理员200", func(t *testing.T) {
		status, _ := a.do(http.MethodGet, "/api/v1/users", "", nil)
		assert.Equal(t, http.StatusUnauthorized, status)

		status, _ = a.do(http.MethodGet, "/api/v1/users", customer, nil)
		assert.Equal(t, http.StatusForbidden, status)

		status, env := a.do(http.MethodGet, "/api/v1/users?role=customer", admin, nil)
		require.Equal(t, http.StatusOK, status)
		assert.EqualValues(t, 1, a.data(env)["total"])
	})

	t.Run("购物车只允许顾客", func(t *testing.T) {
		status, _ := a.do(http.MethodGet, "/api/v1/cart", admin, nil)
		assert.Equal(t, http.StatusForbidden, status)
	})

	t.Run("非法UUID返回400", func(t *testing.T) {
		status, _ := a.do(http.MethodGet, "/api/v1/books/not-a-uuid", "", nil)
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("不存在的订单返回404", func(t *testing.T) {
		status, _ := a.do(http.MethodGet, "/api/v1/orders/"+uuid.NewString(), customer, nil)
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("无效Token返回401", func(t *testing.T) {
		status, _ := a.do(http.MethodGet, "/api/v1/addresses", "garbage", nil)
		assert.Equal(t, http.StatusUnauthorized, status)
	})
}

func TestCheckoutAPI(t *testing.T) {
	a := newAPI(t)
	admin := a.login(adminEmail, adminPassword)
	customer := a.register("carla@example.com")
	other := a.register("dan@example.com")

	authorID := a.create("/api/v1/authors", admin, map[string]any{"first_name": "Gabriel", "last_name": "García Márquez"})
	bookID := a.create("/api/v1/books", admin, map[string]any{
		"isbn": "9780307474728", "title": "Cien años de soledad", "price": 10.5, "stock": 2,
		"author_ids": []string{authorID},
	})
	addressID := a.create("/api/v1/addresses", customer, map[string]any{
		"street": "Calle 10", "city": "Bogotá", "postal_code": "110111", "country": "Colombia", "is_default": true,
	})

	status, _ := a.do(http.MethodPost, "/api/v1/cart", customer, map[string]any{"book_id": bookID, "quantity": 2})
	require.Equal(t, http.StatusCreated, status)

	t.Run("库存不足时下单失败", func(t *testing.T) {
		status, _ := a.do(http.MethodPut, "/api/v1/books/"+bookID, admin, map[string]any{"stock": 1})
		require.Equal(t, http.StatusOK, status)

		status, env := a.do(http.MethodPost, "/api/v1/orders", customer, map[string]any{"address_id": addressID})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Insufficient stock", env.Message)

		_, env = a.do(http.MethodGet, "/api/v1/cart", customer, nil)
		assert.EqualValues(t, 2, a.data(env)["count"], "失败后购物车保持不变")
	})

	status, _ = a.do(http.MethodPut, "/api/v1/books/"+bookID, admin, map[string]any{"stock": 5})
	require.Equal(t, http.StatusOK, status)

	t.Run("折扣码无效时整单回滚", func(t *testing.T) {
		status, env := a.do(http.MethodPost, "/api/v1/orders", customer, map[string]any{"address_id": addressID, "discount_code": "SAVE10"})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Invalid discount code", env.Message)

		_, env = a.do(http.MethodGet, "/api/v1/books/"+bookID, "", nil)
		assert.EqualValues(t, 5, a.data(env)["stock"])
	})

	var orderID string
	t.Run("下单成功返回201", func(t *testing.T) {
		status, env := a.do(http.MethodPost, "/api/v1/orders", customer, map[string]any{"address_id": addressID})
		require.Equal(t, http.StatusCreated, status, env.Message)
		data := a.data(env)
		orderID = data["id"].(string)
		assert.Equal(t, "pending", data["status"])
		total := decimal.RequireFromString(data["total_amount"].(string))
		assert.True(t, total.Equal(decimal.RequireFromString("26")), "total = 10.5*2 + 5，实际 %s", total)

		_, env = a.do(http.MethodGet, "/api/v1/books/"+bookID, "", nil)
		assert.EqualValues(t, 3, a.data(env)["stock"])

		_, env = a.do(http.MethodGet, "/api/v1/cart", customer, nil)
		assert.EqualValues(t, 0, a.data(env)["count"])
	})
	require.NotEmpty(t, orderID)

	t.Run("订单只有本人和管理员可见", func(t *testing.T) {
		status, _ := a.do(http.MethodGet, "/api/v1/orders/"+orderID, customer, nil)
		assert.Equal(t, http.StatusOK, status)
		status, _ = a.do(http.MethodGet, "/api/v1/orders/"+orderID+"/items", admin, nil)
		assert.Equal(t, http.StatusOK, status)
		status, _ = a.do(http.MethodGet, "/api/v1/orders/"+orderID, other, nil)
		assert.Equal(t, http.StatusForbidden, status)
	})

	t.Run("未购买不能评价", func(t *testing.T) {
		status, env := a.do(http.MethodPost, "/api/v1/reviews", customer, map[string]any{"book_id": bookID, "rating": 5})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "You can only review books you have purchased", env.Message)
	})

	t.Run("发货写入shipped_at", func(t *testing.T) {
		status, env := a.do(http.MethodPut, "/api/v1/orders/"+orderID+"/status", admin, map[string]any{"status": "shipped"})
		require.Equal(t, http.StatusOK, status, env.Message)
		data := a.data(env)
		assert.Equal(t, "shipped", data["status"])
		assert.NotNil(t, data["shipped_at"])
		assert.Nil(t, data["delivered_at"])
	})

	t.Run("不允许回到pending", func(t *testing.T) {
		status, _ := a.do(http.MethodPut, "/api/v1/orders/"+orderID+"/status", admin, map[string]any{"status": "pending"})
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("顾客不能修改订单状态", func(t *testing.T) {
		status, _ := a.do(http.MethodPut, "/api/v1/orders/"+orderID+"/status", customer, map[string]any{"status": "delivered"})
		assert.Equal(t, http.StatusForbidden, status)
	})

	t.Run("发货后可以评价一次", func(t *testing.T) {
		_, env := a.do(http.MethodGet, "/api/v1/reviews/can-review/"+bookID, customer, nil)
		assert.Equal(t, true, a.data(env)["canReview"])

		a.create("/api/v1/reviews", customer, map[string]any{"book_id": bookID, "rating": 5, "comment": "Obra maestra"})

		_, env = a.do(http.MethodGet, "/api/v1/reviews/can-review/"+bookID, customer, nil)
		data := a.data(env)
		assert.Equal(t, false, data["canReview"])
		assert.Equal(t, true, data["hasReviewed"])

		status, _ := a.do(http.MethodPost, "/api/v1/reviews", customer, map[string]any{"book_id": bookID, "rating": 4})
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("我的书架与图书列表", func(t *testing.T) {
		_, env := a.do(http.MethodGet, "/api/v1/orders/my-books", customer, nil)
		assert.EqualValues(t, 1, a.data(env)["total"])

		status, env := a.do(http.MethodGet, "/api/v1/books?page=1&limit=10", "", nil)
		require.Equal(t, http.StatusOK, status)
		page := a.data(env)
		assert.EqualValues(t, 1, page["total"])
		assert.EqualValues(t, 1, page["totalPages"])
	})
}

func TestHealthAPI(t *testing.T) {
	a := newAPI(t)

	status, env := a.do(http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, status)
	data := a.data(env)
	assert.Equal(t, "ok", data["status"])
	assert.Equal(t, "connected", data["database"])

	status, _ = a.do(http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestBookCategoryAPI(t *testing.T) {
	a := newAPI(t)
	admin := a.login(adminEmail, adminPassword)

	categoryID := a.create("/api/v1/categories", admin, map[string]any{"name": "Novela"})
	bookID := a.create("/api/v1/books", admin, map[string]any{
		"isbn": "9788437604947", "title": "Rayuela", "price": 20, "stock": 1, "category_id": categoryID,
	})

	t.Run("空字符串清空分类", func(t *testing.T) {
		status, env := a.do(http.MethodPut, "/api/v1/books/"+bookID, admin, map[string]any{"category_id": ""})
		require.Equal(t, http.StatusOK, status, env.Message)
		assert.Nil(t, a.data(env)["category_id"])

		_, env = a.do(http.MethodGet, "/api/v1/books/"+bookID, "", nil)
		assert.Nil(t, a.data(env)["category_id"])
	})

	t.Run("非法分类ID返回400", func(t *testing.T) {
		status, _ := a.do(http.MethodPut, "/api/v1/books/"+bookID, admin, map[string]any{"category_id": "abc"})
		assert.Equal(t, http.StatusBadRequest, status)
	})
}
