package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/TheJisus28/bookstore-api/internal/domain/user"
	"github.com/TheJisus28/bookstore-api/internal/interface/http/dto"
	"github.com/TheJisus28/bookstore-api/pkg/pagination"
	"github.com/TheJisus28/bookstore-api/pkg/response"
)

// UserHandler 用户管理（管理员）
type UserHandler struct {
	users user.Service
}

// NewUserHandler 创建用户处理器
func NewUserHandler(users user.Service) *UserHandler {
	return &UserHandler{users: users}
}

// List 用户列表
// @Summary      用户列表
// @Tags         用户
// @Produce      json
// @Security     BearerAuth
// @Param        page  query int    false "页码"
// @Param        limit query int    false "每页条数"
// @Param        role  query string false "角色" Enums(admin, customer)
// @Success      200 {object} response.Response{data=pagination.Page[dto.UserResponse]}
// @Router       /users [get]
func (h *UserHandler) List(c *gin.Context) {
	var q dto.UserListQuery
	if !bindQuery(c, &q) {
		return
	}

	page, err := h.users.List(c.Request.Context(), q.ToFilter(), q.Params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, pagination.Map(page, dto.NewUserResponse))
}

// Get 用户详情
// @Summary      用户详情
// @Tags         用户
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "用户ID"
// @Success      200 {object} response.Response{data=dto.UserResponse}
// @Failure      404 {object} response.Response "用户不存在"
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	u, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewUserResponse(u))
}

// Update 更新用户
// @Summary      更新用户
// @Description  只更新请求中出现的字段
// @Tags         用户
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path string                true "用户ID"
// @Param        request body dto.UpdateUserRequest true "更新内容"
// @Success      200 {object} response.Response{data=dto.UserResponse}
// @Failure      404 {object} response.Response "用户不存在"
// @Failure      409 {object} response.Response "邮箱已注册"
// @Router       /users/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	u, err := h.users.Update(c.Request.Context(), id, req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewUserResponse(u))
}
