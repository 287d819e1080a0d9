package category

import (
	"time"

	"github.com/samber/mo"
)

// Category 图书分类，ParentID构成任意深度的树
type Category struct {
	ID          string
	Name        string
	Description *string
	ParentID    *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// UpdateInput 部分更新
// ParentID为Some("")表示移到根节点
type UpdateInput struct {
	Name        mo.Option[string]
	Description mo.Option[string]
	ParentID    mo.Option[string]
}
