package publisher

import (
	"time"

	"github.com/samber/mo"
)

// Publisher 出版社
type Publisher struct {
	ID        string
	Name      string
	Address   *string
	City      *string
	Country   *string
	Phone     *string
	Email     *string
	Website   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UpdateInput 部分更新
type UpdateInput struct {
	Name    mo.Option[string]
	Address mo.Option[string]
	City    mo.Option[string]
	Country mo.Option[string]
	Phone   mo.Option[string]
	Email   mo.Option[string]
	Website mo.Option[string]
}
