package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/TheJisus28/bookstore-api/internal/domain/address"
	"github.com/TheJisus28/bookstore-api/internal/interface/http/dto"
	"github.com/TheJisus28/bookstore-api/internal/interface/http/middleware"
	"github.com/TheJisus28/bookstore-api/pkg/response"
)

// AddressHandler 收货地址，所有操作限定为当前用户
type AddressHandler struct {
	addresses address.Service
}

// NewAddressHandler 创建地址处理器
func NewAddressHandler(addresses address.Service) *AddressHandler {
	return &AddressHandler{addresses: addresses}
}

// List 我的地址（默认地址在前）
// @Summary      我的地址
// @Tags         地址
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=[]dto.AddressResponse}
// @Router       /addresses [get]
func (h *AddressHandler) List(c *gin.Context) {
	list, err := h.addresses.List(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, lo.Map(list, func(a *address.Address, _ int) dto.AddressResponse {
		return dto.NewAddressResponse(a)
	}))
}

// Get 地址详情
// @Summary      地址详情
// @Tags         地址
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "地址ID"
// @Success      200 {object} response.Response{data=dto.AddressResponse}
// @Failure      403 {object} response.Response "不是本人地址"
// @Failure      404 {object} response.Response "地址不存在"
// @Router       /addresses/{id} [get]
func (h *AddressHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	a, err := h.addresses.Get(c.Request.Context(), id, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewAddressResponse(a))
}

// Create 新增地址
// @Summary      新增地址
// @Description  is_default为true时取消其他默认地址
// @Tags         地址
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.AddressRequest true "地址"
// @Success      201 {object} response.Response{data=dto.AddressResponse}
// @Router       /addresses [post]
func (h *AddressHandler) Create(c *gin.Context) {
	var req dto.AddressRequest
	if !bindJSON(c, &req) {
		return
	}

	a, err := h.addresses.Create(c.Request.Context(), req.ToEntity(middleware.GetUserID(c)))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.NewAddressResponse(a))
}

// Update 更新地址
// @Summary      更新地址
// @Tags         地址
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path string                   true "地址ID"
// @Param        request body dto.UpdateAddressRequest true "更新内容"
// @Success      200 {object} response.Response{data=dto.AddressResponse}
// @Failure      404 {object} response.Response "地址不存在"
// @Router       /addresses/{id} [put]
func (h *AddressHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateAddressRequest
	if !bindJSON(c, &req) {
		return
	}

	a, err := h.addresses.Update(c.Request.Context(), id, middleware.GetUserID(c), req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewAddressResponse(a))
}

// Delete 删除地址
// @Summary      删除地址
// @Tags         地址
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "地址ID"
// @Success      200 {object} response.Response{data=dto.MessageResponse}
// @Failure      404 {object} response.Response "地址不存在"
// @Router       /addresses/{id} [delete]
func (h *AddressHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.addresses.Delete(c.Request.Context(), id, middleware.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.MessageResponse{Message: "Address deleted"})
}
