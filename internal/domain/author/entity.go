package author

import (
	"time"

	"github.com/samber/mo"
)

// Author 作者
type Author struct {
	ID          string
	FirstName   string
	LastName    string
	Bio         *string
	BirthDate   *time.Time
	Nationality *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// FullName "名 姓"
func (a *Author) FullName() string {
	return a.FirstName + " " + a.LastName
}

// UpdateInput 部分更新
type UpdateInput struct {
	FirstName   mo.Option[string]
	LastName    mo.Option[string]
	Bio         mo.Option[string]
	BirthDate   mo.Option[time.Time]
	Nationality mo.Option[string]
}
