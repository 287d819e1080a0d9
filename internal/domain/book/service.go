package book

import (
	"context"
	"strings"
)

// DefaultBestsellerLimit 畅销书默认条数
const DefaultBestsellerLimit = 10

// Service 图书领域服务（单聚合内的规则）
// 涉及分类、出版社、作者存在性校验的用例在application/book
type Service interface {
	Delete(ctx context.Context, id string) error
	Bestsellers(ctx context.Context, q BestsellerQuery) ([]*Bestseller, error)
	AuthorLinks(ctx context.Context, bookID string) ([]*AuthorLink, error)
	RemoveAuthor(ctx context.Context, bookID, authorID string) error
}

type service struct {
	repo Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) Bestsellers(ctx context.Context, q BestsellerQuery) ([]*Bestseller, error) {
	if q.Limit <= 0 {
		q.Limit = DefaultBestsellerLimit
	}
	return s.repo.Bestsellers(ctx, q)
}

func (s *service) AuthorLinks(ctx context.Context, bookID string) ([]*AuthorLink, error) {
	if _, err := s.repo.FindByID(ctx, bookID); err != nil {
		return nil, err
	}
	return s.repo.AuthorLinks(ctx, bookID)
}

func (s *service) RemoveAuthor(ctx context.Context, bookID, authorID string) error {
	return s.repo.RemoveAuthor(ctx, bookID, authorID)
}

// NormalizeSort 校验并补全排序条件（默认title ASC）
func NormalizeSort(sortBy, sortOrder string) (string, string, error) {
	if sortBy == "" {
		sortBy = SortByTitle
	}
	switch sortBy {
	case SortByTitle, SortByPrice, SortByDate, SortByRating:
	default:
		return "", "", ErrInvalidSearchOptions
	}

	order := strings.ToUpper(sortOrder)
	if order == "" {
		order = "ASC"
	}
	if order != "ASC" && order != "DESC" {
		return "", "", ErrInvalidSearchOptions
	}
	return sortBy, order, nil
}
