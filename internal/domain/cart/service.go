package cart

import (
	"context"
	"errors"

	"github.com/TheJisus28/bookstore-api/internal/domain/book"
)

// BookReader 购物车需要的图书查询能力
type BookReader interface {
	FindByID(ctx context.Context, id string) (*book.Book, error)
}

// Service 购物车
// 每次加购/改数量都按当前库存重新校验（库存在两次读取之间可能变化）
type Service interface {
	List(ctx context.Context, userID string) ([]*Line, error)
	Add(ctx context.Context, userID, bookID string, quantity int) (*Line, error)
	UpdateQuantity(ctx context.Context, id, userID string, quantity int) (*Line, error)
	Remove(ctx context.Context, id, userID string) error
	Clear(ctx context.Context, userID string) error
}

type service struct {
	repo  Repository
	books BookReader
}

// NewService 创建购物车服务
func NewService(repo Repository, books BookReader) Service {
	return &service{repo: repo, books: books}
}

func (s *service) List(ctx context.Context, userID string) ([]*Line, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Add 加入购物车，同一本书累加数量
func (s *service) Add(ctx context.Context, userID, bookID string, quantity int) (*Line, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	b, err := s.books.FindByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if !b.IsActive {
		return nil, book.ErrBookNotAvailable
	}
	if !b.HasStock(quantity) {
		return nil, book.ErrInsufficientStock
	}

	existing, err := s.repo.FindByUserAndBook(ctx, userID, bookID)
	switch {
	case err == nil:
		total := existing.Quantity + quantity
		if !b.HasStock(total) {
			return nil, book.ErrInsufficientStock
		}
		if err := s.repo.SetQuantity(ctx, existing.ID, userID, total); err != nil {
			return nil, err
		}
		return s.repo.FindLine(ctx, existing.ID)
	case errors.Is(err, ErrCartItemNotFound):
		item := &Item{UserID: userID, BookID: bookID, Quantity: quantity}
		if err := s.repo.Create(ctx, item); err != nil {
			return nil, err
		}
		return s.repo.FindLine(ctx, item.ID)
	default:
		return nil, err
	}
}

func (s *service) UpdateQuantity(ctx context.Context, id, userID string, quantity int) (*Line, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	item, err := s.repo.FindByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	b, err := s.books.FindByID(ctx, item.BookID)
	if err != nil {
		return nil, err
	}
	if !b.IsActive {
		return nil, book.ErrBookNotAvailable
	}
	if !b.HasStock(quantity) {
		return nil, book.ErrInsufficientStock
	}

	if err := s.repo.SetQuantity(ctx, id, userID, quantity); err != nil {
		return nil, err
	}
	return s.repo.FindLine(ctx, id)
}

func (s *service) Remove(ctx context.Context, id, userID string) error {
	return s.repo.Delete(ctx, id, userID)
}

func (s *service) Clear(ctx context.Context, userID string) error {
	return s.repo.Clear(ctx, userID)
}
