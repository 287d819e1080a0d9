package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/TheJisus28/bookstore-api/internal/domain/publisher"
	"github.com/TheJisus28/bookstore-api/internal/interface/http/dto"
	"github.com/TheJisus28/bookstore-api/pkg/pagination"
	"github.com/TheJisus28/bookstore-api/pkg/response"
)

// PublisherHandler 出版社HTTP处理器
type PublisherHandler struct {
	publishers publisher.Service
}

// NewPublisherHandler 创建出版社处理器
func NewPublisherHandler(publishers publisher.Service) *PublisherHandler {
	return &PublisherHandler{publishers: publishers}
}

// List 出版社列表
// @Summary      出版社列表
// @Tags         出版社
// @Produce      json
// @Param        page  query int false "页码"
// @Param        limit query int false "每页条数"
// @Success      200 {object} response.Response{data=pagination.Page[dto.PublisherResponse]}
// @Router       /publishers [get]
func (h *PublisherHandler) List(c *gin.Context) {
	q, ok := pageParams(c)
	if !ok {
		return
	}

	page, err := h.publishers.List(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, pagination.Map(page, dto.NewPublisherResponse))
}

// Get 出版社详情
// @Summary      出版社详情
// @Tags         出版社
// @Produce      json
// @Param        id path string true "出版社ID"
// @Success      200 {object} response.Response{data=dto.PublisherResponse}
// @Failure      404 {object} response.Response "出版社不存在"
// @Router       /publishers/{id} [get]
func (h *PublisherHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	p, err := h.publishers.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewPublisherResponse(p))
}

// Create 创建出版社
// @Summary      创建出版社
// @Tags         出版社
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.PublisherRequest true "出版社信息"
// @Success      201 {object} response.Response{data=dto.PublisherResponse}
// @Router       /publishers [post]
func (h *PublisherHandler) Create(c *gin.Context) {
	var req dto.PublisherRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.publishers.Create(c.Request.Context(), req.ToEntity())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.NewPublisherResponse(p))
}

// Update 更新出版社
// @Summary      更新出版社
// @Tags         出版社
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path string                    true "出版社ID"
// @Param        request body dto.UpdatePublisherRequest true "更新内容"
// @Success      200 {object} response.Response{data=dto.PublisherResponse}
// @Failure      404 {object} response.Response "出版社不存在"
// @Router       /publishers/{id} [put]
func (h *PublisherHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdatePublisherRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.publishers.Update(c.Request.Context(), id, req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewPublisherResponse(p))
}

// Delete 删除出版社
// @Summary      删除出版社
// @Tags         出版社
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "出版社ID"
// @Success      200 {object} response.Response{data=dto.MessageResponse}
// @Router       /publishers/{id} [delete]
func (h *PublisherHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.publishers.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.MessageResponse{Message: "Publisher deleted"})
}
