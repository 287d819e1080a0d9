package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/TheJisus28/bookstore-api/internal/interface/http/dto"
	"github.com/TheJisus28/bookstore-api/pkg/response"
)

// PingFunc 数据库连通性检查
type PingFunc func(ctx context.Context) error

// HealthHandler 健康检查
type HealthHandler struct {
	ping    PingFunc
	timeout time.Duration
}

// HealthResponse 健康检查结果
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Database  string    `json:"database"`
}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler(ping PingFunc) *HealthHandler {
	return &HealthHandler{ping: ping, timeout: 2 * time.Second}
}

// Root 欢迎信息
// @Summary      欢迎信息
// @Tags         系统
// @Produce      json
// @Success      200 {object} response.Response{data=dto.MessageResponse}
// @Router       / [get]
func (h *HealthHandler) Root(c *gin.Context) {
	response.Success(c, dto.MessageResponse{Message: "Welcome to the Bookstore API"})
}

// Health 健康检查
// 数据库不可用时返回503，status为degraded
// @Summary      健康检查
// @Tags         系统
// @Produce      json
// @Success      200 {object} response.Response{data=HealthResponse}
// @Failure      503 {object} response.Response{data=HealthResponse}
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	resp := HealthResponse{Status: "ok", Timestamp: time.Now().UTC(), Database: "connected"}
	if err := h.ping(ctx); err != nil {
		resp.Status = "degraded"
		resp.Database = "disconnected"
		c.JSON(http.StatusServiceUnavailable, response.Response{
			Code:    http.StatusServiceUnavailable * 100,
			Message: "Database unavailable",
			Data:    resp,
		})
		return
	}
	response.Success(c, resp)
}
