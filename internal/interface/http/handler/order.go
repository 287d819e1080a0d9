package handler

import (
	"github.com/gin-gonic/gin"

	apporder "github.com/TheJisus28/bookstore-api/internal/application/order"
	"github.com/TheJisus28/bookstore-api/internal/domain/order"
	"github.com/TheJisus28/bookstore-api/internal/interface/http/dto"
	"github.com/TheJisus28/bookstore-api/internal/interface/http/middleware"
	"github.com/TheJisus28/bookstore-api/pkg/pagination"
	"github.com/TheJisus28/bookstore-api/pkg/response"
)

// OrderHandler 订单HTTP处理器
type OrderHandler struct {
	orders       order.Service
	checkout     *apporder.CheckoutUseCase
	updateStatus *apporder.UpdateStatusUseCase
}

// NewOrderHandler 创建订单处理器
func NewOrderHandler(orders order.Service, checkout *apporder.CheckoutUseCase, updateStatus *apporder.UpdateStatusUseCase) *OrderHandler {
	return &OrderHandler{orders: orders, checkout: checkout, updateStatus: updateStatus}
}

// Checkout 下单
// @Summary      下单
// @Description  将购物车转换为订单：锁定库存、快照单价、扣减库存并清空购物车，全部在一个事务内完成
// @Tags         订单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateOrderRequest true "收货地址与折扣码"
// @Success      201 {object} response.Response{data=dto.OrderResponse}
// @Failure      400 {object} response.Response "购物车为空/库存不足/折扣码无效"
// @Failure      403 {object} response.Response "不是本人地址"
// @Failure      404 {object} response.Response "地址不存在"
// @Router       /orders [post]
func (h *OrderHandler) Checkout(c *gin.Context) {
	var req dto.CreateOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	o, err := h.checkout.Execute(c.Request.Context(), apporder.CheckoutRequest{
		UserID:       middleware.GetUserID(c),
		AddressID:    req.AddressID,
		DiscountCode: req.DiscountCode,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.NewOrderResponse(o))
}

// AdminList 全部订单
// @Summary      全部订单（管理员）
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        page  query int false "页码"
// @Param        limit query int false "每页条数"
// @Success      200 {object} response.Response{data=pagination.Page[dto.OrderResponse]}
// @Router       /orders/admin [get]
func (h *OrderHandler) AdminList(c *gin.Context) {
	p, ok := pageParams(c)
	if !ok {
		return
	}

	page, err := h.orders.List(c.Request.Context(), p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, pagination.Map(page, dto.NewOrderResponse))
}

// MyOrders 我的订单
// @Summary      我的订单
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        page  query int false "页码"
// @Param        limit query int false "每页条数"
// @Success      200 {object} response.Response{data=pagination.Page[dto.OrderResponse]}
// @Router       /orders/my-orders [get]
func (h *OrderHandler) MyOrders(c *gin.Context) {
	p, ok := pageParams(c)
	if !ok {
		return
	}

	page, err := h.orders.ListByUser(c.Request.Context(), middleware.GetUserID(c), p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, pagination.Map(page, dto.NewOrderResponse))
}

// MyBooks 我的书架
// @Summary      已购图书
// @Description  只统计已发货/已送达/已完成订单，附带评价状态
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        page  query int false "页码"
// @Param        limit query int false "每页条数"
// @Success      200 {object} response.Response{data=pagination.Page[dto.PurchasedBookResponse]}
// @Router       /orders/my-books [get]
func (h *OrderHandler) MyBooks(c *gin.Context) {
	p, ok := pageParams(c)
	if !ok {
		return
	}

	page, err := h.orders.PurchasedBooks(c.Request.Context(), middleware.GetUserID(c), p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, pagination.Map(page, dto.NewPurchasedBookResponse))
}

// Get 订单详情（本人或管理员）
// @Summary      订单详情
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "订单ID"
// @Success      200 {object} response.Response{data=dto.OrderResponse}
// @Failure      403 {object} response.Response "不是本人订单"
// @Failure      404 {object} response.Response "订单不存在"
// @Router       /orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	o, err := h.orders.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewOrderResponse(o))
}

// Items 订单明细（本人或管理员）
// @Summary      订单明细
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "订单ID"
// @Success      200 {object} response.Response{data=[]dto.OrderItemResponse}
// @Failure      403 {object} response.Response "不是本人订单"
// @Failure      404 {object} response.Response "订单不存在"
// @Router       /orders/{id}/items [get]
func (h *OrderHandler) Items(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	items, err := h.orders.Items(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewOrderItemResponses(items))
}

// UpdateStatus 订单状态变更
// @Summary      订单状态变更（管理员）
// @Description  pending→shipped|cancelled，shipped→delivered|cancelled，delivered→completed
// @Tags         订单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path string                       true "订单ID"
// @Param        request body dto.UpdateOrderStatusRequest true "目标状态"
// @Success      200 {object} response.Response{data=dto.OrderResponse}
// @Failure      400 {object} response.Response "状态无效或不允许的变更"
// @Failure      404 {object} response.Response "订单不存在"
// @Router       /orders/{id}/status [put]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateOrderStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	o, err := h.updateStatus.Execute(c.Request.Context(), id, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewOrderResponse(o))
}
