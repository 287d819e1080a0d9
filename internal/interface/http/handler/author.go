package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/TheJisus28/bookstore-api/internal/domain/author"
	"github.com/TheJisus28/bookstore-api/internal/interface/http/dto"
	"github.com/TheJisus28/bookstore-api/pkg/pagination"
	"github.com/TheJisus28/bookstore-api/pkg/response"
)

// AuthorHandler 作者HTTP处理器
type AuthorHandler struct {
	authors author.Service
}

// NewAuthorHandler 创建作者处理器
func NewAuthorHandler(authors author.Service) *AuthorHandler {
	return &AuthorHandler{authors: authors}
}

// List 作者列表
// @Summary      作者列表
// @Description  按姓、名排序
// @Tags         作者
// @Produce      json
// @Param        page  query int false "页码"
// @Param        limit query int false "每页条数"
// @Success      200 {object} response.Response{data=pagination.Page[dto.AuthorResponse]}
// @Router       /authors [get]
func (h *AuthorHandler) List(c *gin.Context) {
	p, ok := pageParams(c)
	if !ok {
		return
	}

	page, err := h.authors.List(c.Request.Context(), p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, pagination.Map(page, dto.NewAuthorResponse))
}

// Get 作者详情
// @Summary      作者详情
// @Tags         作者
// @Produce      json
// @Param        id path string true "作者ID"
// @Success      200 {object} response.Response{data=dto.AuthorResponse}
// @Failure      404 {object} response.Response "作者不存在"
// @Router       /authors/{id} [get]
func (h *AuthorHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	a, err := h.authors.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewAuthorResponse(a))
}

// Create 创建作者
// @Summary      创建作者
// @Tags         作者
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.AuthorRequest true "作者信息"
// @Success      201 {object} response.Response{data=dto.AuthorResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Router       /authors [post]
func (h *AuthorHandler) Create(c *gin.Context) {
	var req dto.AuthorRequest
	if !bindJSON(c, &req) {
		return
	}
	a, err := req.ToEntity()
	if err != nil {
		response.Error(c, err)
		return
	}

	created, err := h.authors.Create(c.Request.Context(), a)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.NewAuthorResponse(created))
}

// Update 更新作者
// @Summary      更新作者
// @Tags         作者
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path string                  true "作者ID"
// @Param        request body dto.UpdateAuthorRequest true "更新内容"
// @Success      200 {object} response.Response{data=dto.AuthorResponse}
// @Failure      404 {object} response.Response "作者不存在"
// @Router       /authors/{id} [put]
func (h *AuthorHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateAuthorRequest
	if !bindJSON(c, &req) {
		return
	}
	in, err := req.ToInput()
	if err != nil {
		response.Error(c, err)
		return
	}

	a, err := h.authors.Update(c.Request.Context(), id, in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewAuthorResponse(a))
}

// Delete 删除作者
// @Summary      删除作者
// @Tags         作者
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "作者ID"
// @Success      200 {object} response.Response{data=dto.MessageResponse}
// @Failure      404 {object} response.Response "作者不存在"
// @Router       /authors/{id} [delete]
func (h *AuthorHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.authors.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.MessageResponse{Message: "Author deleted"})
}
