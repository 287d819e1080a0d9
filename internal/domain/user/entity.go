package user

import (
	"time"

	"github.com/samber/mo"
)

// Role 用户角色
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

// Valid 是否为已知角色
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleCustomer
}

// User 用户实体（聚合根）
// 密码只保存bcrypt哈希，任何响应都不返回PasswordHash
type User struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Phone        *string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser 创建新用户（注册），角色固定为customer
func NewUser(email, passwordHash, firstName, lastName string, phone *string) *User {
	return &User{
		Email:        email,
		PasswordHash: passwordHash,
		FirstName:    firstName,
		LastName:     lastName,
		Phone:        phone,
		Role:         RoleCustomer,
		IsActive:     true,
	}
}

// IsAdmin 是否管理员
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// FullName 姓名
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// UpdateInput 管理员更新用户（只更新出现的字段）
type UpdateInput struct {
	Email     mo.Option[string]
	FirstName mo.Option[string]
	LastName  mo.Option[string]
	Phone     mo.Option[string]
	Role      mo.Option[Role]
	IsActive  mo.Option[bool]
}

// ListFilter 用户列表过滤条件
type ListFilter struct {
	Role mo.Option[Role]
}
