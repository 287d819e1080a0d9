package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/TheJisus28/bookstore-api/internal/application/auth"
	"github.com/TheJisus28/bookstore-api/internal/domain/user"
	"github.com/TheJisus28/bookstore-api/internal/interface/http/dto"
	"github.com/TheJisus28/bookstore-api/internal/interface/http/middleware"
	"github.com/TheJisus28/bookstore-api/pkg/response"
)

// AuthHandler 认证HTTP处理器
type AuthHandler struct {
	register *auth.RegisterUseCase
	login    *auth.LoginUseCase
	session  *auth.SessionUseCase
	users    user.Service
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(
	register *auth.RegisterUseCase,
	login *auth.LoginUseCase,
	session *auth.SessionUseCase,
	users user.Service,
) *AuthHandler {
	return &AuthHandler{register: register, login: login, session: session, users: users}
}

// Register 用户注册
// @Summary      用户注册
// @Description  注册顾客账号，成功后直接返回Token
// @Tags         认证
// @Accept       json
// @Produce      json
// @Param        request body dto.RegisterRequest true "注册信息"
// @Success      201 {object} response.Response{data=dto.AuthResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      409 {object} response.Response "邮箱已注册"
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.register.Execute(c.Request.Context(), req.ToCommand())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.NewAuthResponse(res))
}

// Login 用户登录
// @Summary      用户登录
// @Tags         认证
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "登录信息"
// @Success      200 {object} response.Response{data=dto.AuthResponse}
// @Failure      401 {object} response.Response "邮箱或密码错误"
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.login.Execute(c.Request.Context(), auth.LoginRequest{Email: req.Email, Password: req.Password})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewAuthResponse(res))
}

// Refresh 刷新Access Token
// @Summary      刷新Token
// @Tags         认证
// @Accept       json
// @Produce      json
// @Param        request body dto.RefreshRequest true "Refresh Token"
// @Success      200 {object} response.Response{data=auth.RefreshResult}
// @Failure      401 {object} response.Response "Token无效或已注销"
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.session.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// Logout 注销
// @Summary      注销
// @Description  启用Redis时当前Token加入黑名单直到过期
// @Tags         认证
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=dto.MessageResponse}
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.session.Logout(c.Request.Context(), middleware.GetToken(c), middleware.GetClaims(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.MessageResponse{Message: "Logged out"})
}

// Profile 当前用户信息
// @Summary      当前用户信息
// @Tags         认证
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=dto.UserResponse}
// @Failure      401 {object} response.Response "未登录"
// @Router       /auth/profile [get]
func (h *AuthHandler) Profile(c *gin.Context) {
	u, err := h.users.Get(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewUserResponse(u))
}
