package address

import (
	"time"

	"github.com/samber/mo"
)

// Address 收货地址，每个用户最多一个默认地址
type Address struct {
	ID         string
	UserID     string
	Street     string
	City       string
	State      *string
	PostalCode string
	Country    string
	IsDefault  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsOwnedBy 是否属于指定用户
func (a *Address) IsOwnedBy(userID string) bool {
	return a.UserID == userID
}

// UpdateInput 部分更新
type UpdateInput struct {
	Street     mo.Option[string]
	City       mo.Option[string]
	State      mo.Option[string]
	PostalCode mo.Option[string]
	Country    mo.Option[string]
	IsDefault  mo.Option[bool]
}
