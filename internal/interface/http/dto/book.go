package dto

import (
	"strings"
	"time"

	"github.com/samber/mo"
	"github.com/shopspring/decimal"

	"github.com/TheJisus28/bookstore-api/internal/domain/book"
	"github.com/TheJisus28/bookstore-api/pkg/pagination"
)

// CreateBookRequest 创建图书
type CreateBookRequest struct {
	ISBN            string   `json:"isbn" binding:"required,max=20" example:"9780307474728"`
	Title           string   `json:"title" binding:"required,max=255" example:"Cien años de soledad"`
	Description     *string  `json:"description"`
	Price           *float64 `json:"price" binding:"required,gte=0" example:"59.90"`
	Stock           *int     `json:"stock" binding:"required,gte=0" example:"10"`
	Pages           *int     `json:"pages" binding:"omitempty,gt=0"`
	PublicationDate *string  `json:"publication_date" example:"1967-05-30"`
	Language        *string  `json:"language" binding:"omitempty,max=50"`
	PublisherID     *string  `json:"publisher_id" binding:"omitempty,uuid"`
	CategoryID      *string  `json:"category_id" binding:"omitempty,uuid"`
	CoverImageURL   *string  `json:"cover_image_url" binding:"omitempty,max=500"`
	IsActive        *bool    `json:"is_active"`
	AuthorIDs       []string `json:"author_ids" binding:"omitempty,dive,uuid"`
	PrimaryAuthorID *string  `json:"primary_author_id" binding:"omitempty,uuid"`
}

// ToEntity 转换为图书实体与作者分配
func (r CreateBookRequest) ToEntity() (*book.Book, book.AuthorAssignment, error) {
	published, err := datePtr("publication_date", r.PublicationDate)
	if err != nil {
		return nil, book.AuthorAssignment{}, err
	}
	b := &book.Book{
		ISBN:            strings.TrimSpace(r.ISBN),
		Title:           r.Title,
		Description:     r.Description,
		Price:           money(*r.Price),
		Stock:           *r.Stock,
		Pages:           r.Pages,
		PublicationDate: published,
		Language:        book.DefaultLanguage,
		PublisherID:     r.PublisherID,
		CategoryID:      r.CategoryID,
		CoverImageURL:   r.CoverImageURL,
		IsActive:        true,
	}
	if r.Language != nil && *r.Language != "" {
		b.Language = *r.Language
	}
	if r.IsActive != nil {
		b.IsActive = *r.IsActive
	}
	return b, book.AuthorAssignment{AuthorIDs: r.AuthorIDs, PrimaryID: deref(r.PrimaryAuthorID)}, nil
}

// UpdateBookRequest 部分更新；author_ids出现时整体替换作者
// publisher_id/category_id传空字符串表示清空
type UpdateBookRequest struct {
	ISBN            *string  `json:"isbn" binding:"omitempty,min=1,max=20"`
	Title           *string  `json:"title" binding:"omitempty,min=1,max=255"`
	Description     *string  `json:"description"`
	Price           *float64 `json:"price" binding:"omitempty,gte=0"`
	Stock           *int     `json:"stock" binding:"omitempty,gte=0"`
	Pages           *int     `json:"pages" binding:"omitempty,gt=0"`
	PublicationDate *string  `json:"publication_date"`
	Language        *string  `json:"language" binding:"omitempty,min=1,max=50"`
	PublisherID     *string  `json:"publisher_id" binding:"omitempty,uuid|len=0"`
	CategoryID      *string  `json:"category_id" binding:"omitempty,uuid|len=0"`
	CoverImageURL   *string  `json:"cover_image_url" binding:"omitempty,max=500"`
	IsActive        *bool    `json:"is_active"`
	AuthorIDs       []string `json:"author_ids" binding:"omitempty,dive,uuid"`
	PrimaryAuthorID *string  `json:"primary_author_id" binding:"omitempty,uuid"`
}

// ToInput 转换为部分更新
func (r UpdateBookRequest) ToInput() (book.UpdateInput, error) {
	published, err := optDate("publication_date", r.PublicationDate)
	if err != nil {
		return book.UpdateInput{}, err
	}
	in := book.UpdateInput{
		ISBN:            opt(r.ISBN),
		Title:           opt(r.Title),
		Description:     opt(r.Description),
		Price:           optMap(r.Price, money),
		Stock:           opt(r.Stock),
		Pages:           opt(r.Pages),
		PublicationDate: published,
		Language:        opt(r.Language),
		PublisherID:     opt(r.PublisherID),
		CategoryID:      opt(r.CategoryID),
		CoverImageURL:   opt(r.CoverImageURL),
		IsActive:        opt(r.IsActive),
	}
	if r.AuthorIDs != nil {
		in.Authors = mo.Some(book.AuthorAssignment{AuthorIDs: r.AuthorIDs, PrimaryID: deref(r.PrimaryAuthorID)})
	} else if r.PrimaryAuthorID != nil {
		return in, book.ErrPrimaryNotInAuthors
	}
	return in, nil
}

// BookResponse 图书
type BookResponse struct {
	ID              string           `json:"id"`
	ISBN            string           `json:"isbn"`
	Title           string           `json:"title"`
	Description     *string          `json:"description"`
	Price           decimal.Decimal  `json:"price" swaggertype:"string" example:"59.90"`
	Stock           int              `json:"stock"`
	Pages           *int             `json:"pages"`
	PublicationDate *string          `json:"publication_date"`
	Language        string           `json:"language"`
	PublisherID     *string          `json:"publisher_id"`
	CategoryID      *string          `json:"category_id"`
	CoverImageURL   *string          `json:"cover_image_url"`
	IsActive        bool             `json:"is_active"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
	Authors         []book.AuthorRef `json:"authors"`
}

// NewBookResponse 实体 → 响应
func NewBookResponse(b *book.Book) BookResponse {
	authors := b.Authors
	if authors == nil {
		authors = []book.AuthorRef{}
	}
	return BookResponse{
		ID:              b.ID,
		ISBN:            b.ISBN,
		Title:           b.Title,
		Description:     b.Description,
		Price:           b.Price,
		Stock:           b.Stock,
		Pages:           b.Pages,
		PublicationDate: formatDate(b.PublicationDate),
		Language:        b.Language,
		PublisherID:     b.PublisherID,
		CategoryID:      b.CategoryID,
		CoverImageURL:   b.CoverImageURL,
		IsActive:        b.IsActive,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
		Authors:         authors,
	}
}

// BookListQuery 图书列表
type BookListQuery struct {
	pagination.Params
	Search string `form:"search" binding:"omitempty,max=200"`
}

// BookSearchQuery 高级搜索，范围条件两端都包含
type BookSearchQuery struct {
	pagination.Params
	Search    string   `form:"search" binding:"omitempty,max=200"`
	Category  string   `form:"category" binding:"omitempty,uuid"`
	Author    string   `form:"author" binding:"omitempty,uuid"`
	Publisher string   `form:"publisher" binding:"omitempty,uuid"`
	MinPrice  *float64 `form:"minPrice" binding:"omitempty,gte=0"`
	MaxPrice  *float64 `form:"maxPrice" binding:"omitempty,gte=0"`
	MinRating *float64 `form:"minRating" binding:"omitempty,gte=0,lte=5"`
	Language  string   `form:"language" binding:"omitempty,max=50"`
	MinStock  *int     `form:"minStock" binding:"omitempty,gte=0"`
	MaxStock  *int     `form:"maxStock" binding:"omitempty,gte=0"`
	StartDate *string  `form:"startDate"`
	EndDate   *string  `form:"endDate"`
	SortBy    string   `form:"sortBy" binding:"omitempty,oneof=title price date rating"`
	SortOrder string   `form:"sortOrder" binding:"omitempty,oneof=ASC DESC asc desc"`
}

// ToCriteria 转换为搜索条件
func (q BookSearchQuery) ToCriteria() (book.SearchCriteria, error) {
	start, err := optDate("startDate", q.StartDate)
	if err != nil {
		return book.SearchCriteria{}, err
	}
	end, err := optDate("endDate", q.EndDate)
	if err != nil {
		return book.SearchCriteria{}, err
	}
	return book.SearchCriteria{
		Search:      optString(q.Search),
		CategoryID:  optString(q.Category),
		AuthorID:    optString(q.Author),
		PublisherID: optString(q.Publisher),
		MinPrice:    optMap(q.MinPrice, money),
		MaxPrice:    optMap(q.MaxPrice, money),
		MinRating:   opt(q.MinRating),
		Language:    optString(q.Language),
		MinStock:    opt(q.MinStock),
		MaxStock:    opt(q.MaxStock),
		StartDate:   start,
		EndDate:     end,
		SortBy:      q.SortBy,
		SortOrder:   q.SortOrder,
	}, nil
}

// BestsellerQuery 畅销书
type BestsellerQuery struct {
	Limit     int     `form:"limit" binding:"omitempty,min=1,max=100"`
	StartDate *string `form:"startDate"`
	EndDate   *string `form:"endDate"`
}

// ToQuery 转换为领域查询
func (q BestsellerQuery) ToQuery() (book.BestsellerQuery, error) {
	start, err := optDate("startDate", q.StartDate)
	if err != nil {
		return book.BestsellerQuery{}, err
	}
	end, err := optDate("endDate", q.EndDate)
	if err != nil {
		return book.BestsellerQuery{}, err
	}
	return book.BestsellerQuery{Limit: q.Limit, StartDate: start, EndDate: end}, nil
}

// AddAuthorRequest 为图书添加作者
type AddAuthorRequest struct {
	AuthorID  string `json:"author_id" binding:"required,uuid"`
	IsPrimary bool   `json:"is_primary"`
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
