package category

import (
	"context"
	"errors"

	"github.com/TheJisus28/bookstore-api/pkg/pagination"
)

// Service 分类管理
type Service interface {
	Create(ctx context.Context, c *Category) (*Category, error)
	Get(ctx context.Context, id string) (*Category, error)
	List(ctx context.Context, page pagination.Params) (*pagination.Page[*Category], error)
	Update(ctx context.Context, id string, in UpdateInput) (*Category, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

// NewService 创建分类服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, c *Category) (*Category, error) {
	if c.ParentID != nil {
		if err := s.checkParent(ctx, "", *c.ParentID); err != nil {
			return nil, err
		}
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Get(ctx context.Context, id string) (*Category, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) List(ctx context.Context, page pagination.Params) (*pagination.Page[*Category], error) {
	categories, total, err := s.repo.List(ctx, page)
	if err != nil {
		return nil, err
	}
	return pagination.New(categories, total, page), nil
}

// Update 更新分类
// 父分类必须存在且不能是自己；更深的环（A→B→A）不做检查
func (s *service) Update(ctx context.Context, id string, in UpdateInput) (*Category, error) {
	if parentID, ok := in.ParentID.Get(); ok && parentID != "" {
		if err := s.checkParent(ctx, id, parentID); err != nil {
			return nil, err
		}
	}
	return s.repo.Update(ctx, id, in)
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) checkParent(ctx context.Context, id, parentID string) error {
	if id != "" && parentID == id {
		return ErrSelfParent
	}
	if _, err := s.repo.FindByID(ctx, parentID); err != nil {
		if errors.Is(err, ErrCategoryNotFound) {
			return ErrParentNotFound
		}
		return err
	}
	return nil
}
