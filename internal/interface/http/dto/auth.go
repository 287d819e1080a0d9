package dto

import (
	"time"

	"github.com/TheJisus28/bookstore-api/internal/application/auth"
	"github.com/TheJisus28/bookstore-api/internal/domain/user"
	"github.com/TheJisus28/bookstore-api/pkg/pagination"
)

// RegisterRequest 注册
type RegisterRequest struct {
	Email     string  `json:"email" binding:"required,email,max=255" example:"ana@example.com"`
	Password  string  `json:"password" binding:"required,min=6,max=72" example:"secret123"`
	FirstName string  `json:"first_name" binding:"required,max=100" example:"Ana"`
	LastName  string  `json:"last_name" binding:"required,max=100" example:"García"`
	Phone     *string `json:"phone" binding:"omitempty,max=20" example:"+57 300 000 0000"`
}

// ToCommand 转换为应用层请求
func (r RegisterRequest) ToCommand() auth.RegisterRequest {
	return auth.RegisterRequest{
		Email:     r.Email,
		Password:  r.Password,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Phone:     r.Phone,
	}
}

// LoginRequest 登录
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"admin@admin.com"`
	Password string `json:"password" binding:"required" example:"admin123"`
}

// RefreshRequest 刷新Token
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// AuthResponse 注册/登录响应
type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int64        `json:"expires_in"`
	User         UserResponse `json:"user"`
}

// NewAuthResponse 由应用层结果构建
func NewAuthResponse(res *auth.Result) AuthResponse {
	return AuthResponse{
		AccessToken:  res.Tokens.AccessToken,
		RefreshToken: res.Tokens.RefreshToken,
		ExpiresIn:    res.Tokens.ExpiresIn,
		User:         NewUserResponse(res.User),
	}
}

// UserResponse 用户（不包含密码哈希）
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     *string   `json:"phone"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUserResponse 实体 → 响应
func NewUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		Role:      string(u.Role),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// UserListQuery 用户列表
type UserListQuery struct {
	pagination.Params
	Role string `form:"role" binding:"omitempty,oneof=admin customer"`
}

// ToFilter 转换为过滤条件
func (q UserListQuery) ToFilter() user.ListFilter {
	return user.ListFilter{Role: optMap(nilIfEmpty(q.Role), func(r string) user.Role { return user.Role(r) })}
}

// UpdateUserRequest 管理员更新用户
type UpdateUserRequest struct {
	Email     *string `json:"email" binding:"omitempty,email,max=255"`
	FirstName *string `json:"first_name" binding:"omitempty,min=1,max=100"`
	LastName  *string `json:"last_name" binding:"omitempty,min=1,max=100"`
	Phone     *string `json:"phone" binding:"omitempty,max=20"`
	Role      *string `json:"role" binding:"omitempty,oneof=admin customer"`
	IsActive  *bool   `json:"is_active"`
}

// ToInput 转换为部分更新
func (r UpdateUserRequest) ToInput() user.UpdateInput {
	return user.UpdateInput{
		Email:     opt(r.Email),
		FirstName: opt(r.FirstName),
		LastName:  opt(r.LastName),
		Phone:     opt(r.Phone),
		Role:      optMap(r.Role, func(s string) user.Role { return user.Role(s) }),
		IsActive:  opt(r.IsActive),
	}
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
