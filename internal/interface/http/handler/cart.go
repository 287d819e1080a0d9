package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/TheJisus28/bookstore-api/internal/domain/cart"
	"github.com/TheJisus28/bookstore-api/internal/interface/http/dto"
	"github.com/TheJisus28/bookstore-api/internal/interface/http/middleware"
	"github.com/TheJisus28/bookstore-api/pkg/response"
)

// CartHandler 购物车（顾客）
type CartHandler struct {
	carts cart.Service
}

// NewCartHandler 创建购物车处理器
func NewCartHandler(carts cart.Service) *CartHandler {
	return &CartHandler{carts: carts}
}

// List 我的购物车
// @Summary      我的购物车
// @Description  只包含上架图书，total按当前价格计算
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=dto.CartResponse}
// @Router       /cart [get]
func (h *CartHandler) List(c *gin.Context) {
	lines, err := h.carts.List(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewCartResponse(lines))
}

// Add 加入购物车
// @Summary      加入购物车
// @Description  同一本书数量累加，并按库存重新校验
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.AddToCartRequest true "图书与数量"
// @Success      201 {object} response.Response{data=dto.CartItemResponse}
// @Failure      400 {object} response.Response "库存不足或图书已下架"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /cart [post]
func (h *CartHandler) Add(c *gin.Context) {
	var req dto.AddToCartRequest
	if !bindJSON(c, &req) {
		return
	}

	line, err := h.carts.Add(c.Request.Context(), middleware.GetUserID(c), req.BookID, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.NewCartItemResponse(line))
}

// Update 修改数量
// @Summary      修改数量
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path string                    true "购物车项ID"
// @Param        request body dto.UpdateCartItemRequest true "数量"
// @Success      200 {object} response.Response{data=dto.CartItemResponse}
// @Failure      400 {object} response.Response "库存不足"
// @Failure      404 {object} response.Response "购物车项不存在"
// @Router       /cart/{id} [put]
func (h *CartHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateCartItemRequest
	if !bindJSON(c, &req) {
		return
	}

	line, err := h.carts.UpdateQuantity(c.Request.Context(), id, middleware.GetUserID(c), req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewCartItemResponse(line))
}

// Remove 移除购物车项
// @Summary      移除购物车项
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "购物车项ID"
// @Success      200 {object} response.Response{data=dto.MessageResponse}
// @Failure      404 {object} response.Response "购物车项不存在"
// @Router       /cart/{id} [delete]
func (h *CartHandler) Remove(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.carts.Remove(c.Request.Context(), id, middleware.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.MessageResponse{Message: "Item removed from cart"})
}

// Clear 清空购物车
// @Summary      清空购物车
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=dto.MessageResponse}
// @Router       /cart [delete]
func (h *CartHandler) Clear(c *gin.Context) {
	if err := h.carts.Clear(c.Request.Context(), middleware.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.MessageResponse{Message: "Cart cleared"})
}
