// Package pagination 列表接口统一的分页入参与出参
package pagination

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Params 分页参数（query: page, limit）
type Params struct {
	Page  int `form:"page" json:"page" binding:"omitempty,min=1" example:"1"`
	Limit int `form:"limit" json:"limit" binding:"omitempty,min=1,max=100" example:"10"`
}

// Normalize 填充默认值并限制上限
func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// Offset 计算偏移量
func (p Params) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.Limit
}

// Page 分页响应封装
type Page[T any] struct {
	Data       []T   `json:"data"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

// New 构建分页结果，TotalPages = ceil(total/limit)
func New[T any](data []T, total int64, p Params) *Page[T] {
	p = p.Normalize()
	if data == nil {
		data = []T{}
	}
	return &Page[T]{
		Data:       data,
		Total:      total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: TotalPages(total, p.Limit),
	}
}

// Map 转换每一项（实体 → DTO），分页信息不变
func Map[T, R any](p *Page[T], fn func(T) R) *Page[R] {
	out := make([]R, len(p.Data))
	for i, item := range p.Data {
		out[i] = fn(item)
	}
	return &Page[R]{
		Data:       out,
		Total:      p.Total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: p.TotalPages,
	}
}

// TotalPages 计算总页数
func TotalPages(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
