package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/TheJisus28/bookstore-api/internal/domain/category"
	"github.com/TheJisus28/bookstore-api/internal/interface/http/dto"
	"github.com/TheJisus28/bookstore-api/pkg/pagination"
	"github.com/TheJisus28/bookstore-api/pkg/response"
)

// CategoryHandler 分类HTTP处理器
type CategoryHandler struct {
	categories category.Service
}

// NewCategoryHandler 创建分类处理器
func NewCategoryHandler(categories category.Service) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// List 分类列表
// @Summary      分类列表
// @Tags         分类
// @Produce      json
// @Param        page  query int false "页码"
// @Param        limit query int false "每页条数"
// @Success      200 {object} response.Response{data=pagination.Page[dto.CategoryResponse]}
// @Router       /categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	p, ok := pageParams(c)
	if !ok {
		return
	}

	page, err := h.categories.List(c.Request.Context(), p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, pagination.Map(page, dto.NewCategoryResponse))
}

// Get 分类详情
// @Summary      分类详情
// @Tags         分类
// @Produce      json
// @Param        id path string true "分类ID"
// @Success      200 {object} response.Response{data=dto.CategoryResponse}
// @Failure      404 {object} response.Response "分类不存在"
// @Router       /categories/{id} [get]
func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	cat, err := h.categories.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewCategoryResponse(cat))
}

// Create 创建分类
// @Summary      创建分类
// @Tags         分类
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CategoryRequest true "分类信息"
// @Success      201 {object} response.Response{data=dto.CategoryResponse}
// @Failure      404 {object} response.Response "父分类不存在"
// @Router       /categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	cat, err := h.categories.Create(c.Request.Context(), req.ToEntity())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.NewCategoryResponse(cat))
}

// Update 更新分类
// @Summary      更新分类
// @Description  parent_id传空字符串表示移到根节点
// @Tags         分类
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path string                    true "分类ID"
// @Param        request body dto.UpdateCategoryRequest true "更新内容"
// @Success      200 {object} response.Response{data=dto.CategoryResponse}
// @Failure      400 {object} response.Response "不能以自身为父分类"
// @Failure      404 {object} response.Response "分类不存在"
// @Router       /categories/{id} [put]
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	cat, err := h.categories.Update(c.Request.Context(), id, req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewCategoryResponse(cat))
}

// Delete 删除分类
// @Summary      删除分类
// @Tags         分类
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "分类ID"
// @Success      200 {object} response.Response{data=dto.MessageResponse}
// @Router       /categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.categories.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.MessageResponse{Message: "Category deleted"})
}
