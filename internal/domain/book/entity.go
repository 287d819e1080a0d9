package book

import (
	"time"

	"github.com/samber/mo"
	"github.com/shopspring/decimal"
)

// DefaultLanguage 未指定语言时的默认值
const DefaultLanguage = "Spanish"

// Book 图书实体（聚合根）
// IsActive=false只对顾客隐藏，管理员列表仍可见
type Book struct {
	ID              string
	ISBN            string
	Title           string
	Description     *string
	Price           decimal.Decimal
	Stock           int
	Pages           *int
	PublicationDate *time.Time
	Language        string
	PublisherID     *string
	CategoryID      *string
	CoverImageURL   *string
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Authors 只在列表/详情查询时填充
	Authors []AuthorRef
}

// AuthorRef 图书上的作者（主作者排在前面）
type AuthorRef struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	IsPrimary bool   `json:"is_primary"`
}

// HasStock 库存是否足够
func (b *Book) HasStock(quantity int) bool {
	return b.Stock >= quantity
}

// AuthorAssignment 创建/替换作者关联时的输入
// PrimaryID为空时第一个作者为主作者
type AuthorAssignment struct {
	AuthorIDs []string
	PrimaryID string
}

// Normalize 去重并确定主作者
func (a AuthorAssignment) Normalize() (AuthorAssignment, error) {
	seen := make(map[string]struct{}, len(a.AuthorIDs))
	ids := make([]string, 0, len(a.AuthorIDs))
	for _, id := range a.AuthorIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	primary := a.PrimaryID
	if len(ids) == 0 {
		if primary != "" {
			return a, ErrPrimaryNotInAuthors
		}
		return AuthorAssignment{}, nil
	}
	if primary == "" {
		primary = ids[0]
	}
	if _, ok := seen[primary]; !ok {
		return a, ErrPrimaryNotInAuthors
	}
	return AuthorAssignment{AuthorIDs: ids, PrimaryID: primary}, nil
}

// UpdateInput 部分更新
// Authors出现时整体替换作者关联
type UpdateInput struct {
	ISBN            mo.Option[string]
	Title           mo.Option[string]
	Description     mo.Option[string]
	Price           mo.Option[decimal.Decimal]
	Stock           mo.Option[int]
	Pages           mo.Option[int]
	PublicationDate mo.Option[time.Time]
	Language        mo.Option[string]
	PublisherID     mo.Option[string]
	CategoryID      mo.Option[string]
	CoverImageURL   mo.Option[string]
	IsActive        mo.Option[bool]
	Authors         mo.Option[AuthorAssignment]
}

// ListFilter 列表过滤条件
type ListFilter struct {
	IncludeInactive bool
	Search          mo.Option[string]
}

// AuthorLink 图书-作者关联
type AuthorLink struct {
	BookID     string `json:"book_id"`
	BookTitle  string `json:"book_title"`
	AuthorID   string `json:"author_id"`
	AuthorName string `json:"author_name"`
	IsPrimary  bool   `json:"is_primary"`
}

// Bestseller 畅销书统计（只统计已发货/已送达/已完成的订单）
type Bestseller struct {
	BookID        string          `json:"book_id"`
	Title         string          `json:"title"`
	ISBN          string          `json:"isbn"`
	Price         decimal.Decimal `json:"price"`
	CoverImageURL *string         `json:"cover_image_url"`
	TotalSold     int64           `json:"total_sold"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
}

// BestsellerQuery 畅销书查询
type BestsellerQuery struct {
	Limit     int
	StartDate mo.Option[time.Time]
	EndDate   mo.Option[time.Time]
}
