package dto

import (
	"time"

	"github.com/TheJisus28/bookstore-api/internal/domain/author"
	"github.com/TheJisus28/bookstore-api/internal/domain/category"
	"github.com/TheJisus28/bookstore-api/internal/domain/publisher"
)

// ---- 作者 ----

// AuthorRequest 创建作者
type AuthorRequest struct {
	FirstName   string  `json:"first_name" binding:"required,max=100" example:"Gabriel"`
	LastName    string  `json:"last_name" binding:"required,max=100" example:"García Márquez"`
	Bio         *string `json:"bio"`
	BirthDate   *string `json:"birth_date" example:"1927-03-06"`
	Nationality *string `json:"nationality" binding:"omitempty,max=100" example:"Colombian"`
}

// ToEntity 转换为实体
func (r AuthorRequest) ToEntity() (*author.Author, error) {
	birth, err := datePtr("birth_date", r.BirthDate)
	if err != nil {
		return nil, err
	}
	return &author.Author{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Bio:         r.Bio,
		BirthDate:   birth,
		Nationality: r.Nationality,
	}, nil
}

// UpdateAuthorRequest 部分更新作者
type UpdateAuthorRequest struct {
	FirstName   *string `json:"first_name" binding:"omitempty,min=1,max=100"`
	LastName    *string `json:"last_name" binding:"omitempty,min=1,max=100"`
	Bio         *string `json:"bio"`
	BirthDate   *string `json:"birth_date"`
	Nationality *string `json:"nationality" binding:"omitempty,max=100"`
}

// ToInput 转换为部分更新
func (r UpdateAuthorRequest) ToInput() (author.UpdateInput, error) {
	birth, err := optDate("birth_date", r.BirthDate)
	if err != nil {
		return author.UpdateInput{}, err
	}
	return author.UpdateInput{
		FirstName:   opt(r.FirstName),
		LastName:    opt(r.LastName),
		Bio:         opt(r.Bio),
		BirthDate:   birth,
		Nationality: opt(r.Nationality),
	}, nil
}

// AuthorResponse 作者
type AuthorResponse struct {
	ID          string    `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Bio         *string   `json:"bio"`
	BirthDate   *string   `json:"birth_date"`
	Nationality *string   `json:"nationality"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewAuthorResponse 实体 → 响应
func NewAuthorResponse(a *author.Author) AuthorResponse {
	return AuthorResponse{
		ID:          a.ID,
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		Bio:         a.Bio,
		BirthDate:   formatDate(a.BirthDate),
		Nationality: a.Nationality,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// ---- 分类 ----

// CategoryRequest 创建分类
type CategoryRequest struct {
	Name        string  `json:"name" binding:"required,max=100" example:"Novela"`
	Description *string `json:"description"`
	ParentID    *string `json:"parent_id" binding:"omitempty,uuid"`
}

// ToEntity 转换为实体
func (r CategoryRequest) ToEntity() *category.Category {
	return &category.Category{Name: r.Name, Description: r.Description, ParentID: r.ParentID}
}

// UpdateCategoryRequest parent_id传空字符串表示移到根节点
type UpdateCategoryRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description"`
	ParentID    *string `json:"parent_id" binding:"omitempty,uuid|len=0"`
}

// ToInput 转换为部分更新
func (r UpdateCategoryRequest) ToInput() category.UpdateInput {
	return category.UpdateInput{
		Name:        opt(r.Name),
		Description: opt(r.Description),
		ParentID:    opt(r.ParentID),
	}
}

// CategoryResponse 分类
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	ParentID    *string   `json:"parent_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewCategoryResponse 实体 → 响应
func NewCategoryResponse(c *category.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		ParentID:    c.ParentID,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// ---- 出版社 ----

// PublisherRequest 创建出版社
type PublisherRequest struct {
	Name    string  `json:"name" binding:"required,max=200" example:"Editorial Sudamericana"`
	Address *string `json:"address"`
	City    *string `json:"city" binding:"omitempty,max=100"`
	Country *string `json:"country" binding:"omitempty,max=100"`
	Phone   *string `json:"phone" binding:"omitempty,max=20"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Website *string `json:"website" binding:"omitempty,url"`
}

// ToEntity 转换为实体
func (r PublisherRequest) ToEntity() *publisher.Publisher {
	return &publisher.Publisher{
		Name:    r.Name,
		Address: r.Address,
		City:    r.City,
		Country: r.Country,
		Phone:   r.Phone,
		Email:   r.Email,
		Website: r.Website,
	}
}

// UpdatePublisherRequest 部分更新出版社
type UpdatePublisherRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=1,max=200"`
	Address *string `json:"address"`
	City    *string `json:"city" binding:"omitempty,max=100"`
	Country *string `json:"country" binding:"omitempty,max=100"`
	Phone   *string `json:"phone" binding:"omitempty,max=20"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Website *string `json:"website" binding:"omitempty,url"`
}

// ToInput 转换为部分更新
func (r UpdatePublisherRequest) ToInput() publisher.UpdateInput {
	return publisher.UpdateInput{
		Name:    opt(r.Name),
		Address: opt(r.Address),
		City:    opt(r.City),
		Country: opt(r.Country),
		Phone:   opt(r.Phone),
		Email:   opt(r.Email),
		Website: opt(r.Website),
	}
}

// PublisherResponse 出版社
type PublisherResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   *string   `json:"address"`
	City      *string   `json:"city"`
	Country   *string   `json:"country"`
	Phone     *string   `json:"phone"`
	Email     *string   `json:"email"`
	Website   *string   `json:"website"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewPublisherResponse 实体 → 响应
func NewPublisherResponse(p *publisher.Publisher) PublisherResponse {
	return PublisherResponse{
		ID:        p.ID,
		Name:      p.Name,
		Address:   p.Address,
		City:      p.City,
		Country:   p.Country,
		Phone:     p.Phone,
		Email:     p.Email,
		Website:   p.Website,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
