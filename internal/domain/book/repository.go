package book

import (
	"context"

	"github.com/TheJisus28/bookstore-api/pkg/pagination"
)

// Repository 图书仓储接口
// 需要事务的操作（LockByID、UpdateStock、SetAuthors）通过ctx中的事务执行
type Repository interface {
	// Create ISBN重复返回ErrISBNDuplicate
	Create(ctx context.Context, b *Book) error

	// FindByID 不存在返回ErrBookNotFound（不含作者）
	FindByID(ctx context.Context, id string) (*Book, error)

	// List 按title排序分页（不含作者）
	List(ctx context.Context, filter ListFilter, page pagination.Params) ([]*Book, int64, error)

	// Update 部分更新（不处理Authors），没有字段时返回当前记录
	Update(ctx context.Context, id string, in UpdateInput) (*Book, error)

	// Delete 硬删除，同时删除作者关联和购物车项
	Delete(ctx context.Context, id string) error

	// Search 高级搜索（不含作者），计数与数据查询使用同一谓词
	Search(ctx context.Context, criteria SearchCriteria, page pagination.Params) ([]*SearchResult, int64, error)

	// AuthorsOf 一次查询取出一页图书的作者，按book_id分组
	AuthorsOf(ctx context.Context, bookIDs []string) (map[string][]AuthorRef, error)

	// SetAuthors 替换全部作者关联
	SetAuthors(ctx context.Context, bookID string, assignment AuthorAssignment) error

	// AuthorLinks 图书的作者关联（主作者在前）
	AuthorLinks(ctx context.Context, bookID string) ([]*AuthorLink, error)

	// AddAuthor 已关联返回ErrAuthorAlreadyLinked；isPrimary时先清除其他主作者
	AddAuthor(ctx context.Context, bookID, authorID string, isPrimary bool) error

	// RemoveAuthor 关联不存在返回ErrAuthorLinkNotFound
	RemoveAuthor(ctx context.Context, bookID, authorID string) error

	// Bestsellers 按销量倒序
	Bestsellers(ctx context.Context, q BestsellerQuery) ([]*Bestseller, error)

	// LockByID SELECT ... FOR UPDATE（必须在事务中调用）
	LockByID(ctx context.Context, id string) (*Book, error)

	// UpdateStock 原子更新库存，delta为负时库存不足返回ErrInsufficientStock
	UpdateStock(ctx context.Context, id string, delta int) error
}
