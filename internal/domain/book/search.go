package book

import (
	"time"

	"github.com/samber/mo"
	"github.com/shopspring/decimal"
)

// 高级搜索排序字段
const (
	SortByTitle  = "title"
	SortByPrice  = "price"
	SortByDate   = "date"
	SortByRating = "rating"
)

// SearchCriteria 高级搜索条件，未出现的条件不参与过滤
// 范围条件两端都包含
type SearchCriteria struct {
	Search      mo.Option[string]
	CategoryID  mo.Option[string]
	AuthorID    mo.Option[string]
	PublisherID mo.Option[string]
	MinPrice    mo.Option[decimal.Decimal]
	MaxPrice    mo.Option[decimal.Decimal]
	MinRating   mo.Option[float64]
	Language    mo.Option[string]
	MinStock    mo.Option[int]
	MaxStock    mo.Option[int]
	StartDate   mo.Option[time.Time]
	EndDate     mo.Option[time.Time]
	SortBy      string
	SortOrder   string
}

// SearchResult 高级搜索结果行（只包含上架图书）
type SearchResult struct {
	BookID          string          `json:"book_id"`
	Title           string          `json:"title"`
	Price           decimal.Decimal `json:"price"`
	Stock           int             `json:"stock"`
	AverageRating   float64         `json:"average_rating"`
	TotalReviews    int64           `json:"total_reviews"`
	PublisherName   *string         `json:"publisher_name"`
	CategoryName    *string         `json:"category_name"`
	PublicationDate *time.Time      `json:"publication_date"`
	Language        string          `json:"language"`
	CoverImageURL   *string         `json:"cover_image_url"`
	Authors         []AuthorRef     `json:"authors"`
}
