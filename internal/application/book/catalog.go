package book

import (
	"context"

	"github.com/samber/lo"

	"github.com/TheJisus28/bookstore-api/internal/domain/author"
	"github.com/TheJisus28/bookstore-api/internal/domain/book"
	"github.com/TheJisus28/bookstore-api/internal/domain/category"
	"github.com/TheJisus28/bookstore-api/internal/domain/publisher"
	"github.com/TheJisus28/bookstore-api/pkg/pagination"
)

// Transactor 事务边界（store.TxManager实现）
type Transactor interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// CatalogUseCase 图书目录
// 创建/更新需要校验分类、出版社、作者是否存在，列表与详情附带作者
type CatalogUseCase struct {
	books      book.Repository
	authors    author.Repository
	categories category.Repository
	publishers publisher.Repository
	tx         Transactor
}

// NewCatalogUseCase 创建图书目录用例
func NewCatalogUseCase(
	books book.Repository,
	authors author.Repository,
	categories category.Repository,
	publishers publisher.Repository,
	tx Transactor,
) *CatalogUseCase {
	return &CatalogUseCase{
		books:      books,
		authors:    authors,
		categories: categories,
		publishers: publishers,
		tx:         tx,
	}
}

// Create 创建图书并写入作者关联
func (uc *CatalogUseCase) Create(ctx context.Context, b *book.Book, assignment book.AuthorAssignment) (*book.Book, error) {
	assignment, err := assignment.Normalize()
	if err != nil {
		return nil, err
	}
	if err := uc.checkReferences(ctx, b.CategoryID, b.PublisherID, assignment.AuthorIDs); err != nil {
		return nil, err
	}

	err = uc.tx.Transaction(ctx, func(ctx context.Context) error {
		if err := uc.books.Create(ctx, b); err != nil {
			return err
		}
		if len(assignment.AuthorIDs) == 0 {
			return nil
		}
		return uc.books.SetAuthors(ctx, b.ID, assignment)
	})
	if err != nil {
		return nil, err
	}
	return uc.Get(ctx, b.ID)
}

// Update 部分更新；出现Authors时在同一事务内替换作者关联
func (uc *CatalogUseCase) Update(ctx context.Context, id string, in book.UpdateInput) (*book.Book, error) {
	if _, err := uc.books.FindByID(ctx, id); err != nil {
		return nil, err
	}

	var categoryID, publisherID *string
	if v, ok := in.CategoryID.Get(); ok && v != "" {
		categoryID = &v
	}
	if v, ok := in.PublisherID.Get(); ok && v != "" {
		publisherID = &v
	}
	assignment, replaceAuthors := in.Authors.Get()
	if replaceAuthors {
		normalized, err := assignment.Normalize()
		if err != nil {
			return nil, err
		}
		assignment = normalized
	}
	if err := uc.checkReferences(ctx, categoryID, publisherID, assignment.AuthorIDs); err != nil {
		return nil, err
	}

	err := uc.tx.Transaction(ctx, func(ctx context.Context) error {
		if _, err := uc.books.Update(ctx, id, in); err != nil {
			return err
		}
		if !replaceAuthors {
			return nil
		}
		return uc.books.SetAuthors(ctx, id, assignment)
	})
	if err != nil {
		return nil, err
	}
	return uc.Get(ctx, id)
}

// Get 图书详情（含作者）
func (uc *CatalogUseCase) Get(ctx context.Context, id string) (*book.Book, error) {
	b, err := uc.books.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.attachAuthors(ctx, []*book.Book{b}); err != nil {
		return nil, err
	}
	return b, nil
}

// List 图书列表（含作者），每页固定两次查询加一次作者查询
func (uc *CatalogUseCase) List(ctx context.Context, filter book.ListFilter, page pagination.Params) (*pagination.Page[*book.Book], error) {
	books, total, err := uc.books.List(ctx, filter, page)
	if err != nil {
		return nil, err
	}
	if err := uc.attachAuthors(ctx, books); err != nil {
		return nil, err
	}
	return pagination.New(books, total, page), nil
}

// Search 高级搜索
func (uc *CatalogUseCase) Search(ctx context.Context, criteria book.SearchCriteria, page pagination.Params) (*pagination.Page[*book.SearchResult], error) {
	sortBy, sortOrder, err := book.NormalizeSort(criteria.SortBy, criteria.SortOrder)
	if err != nil {
		return nil, err
	}
	criteria.SortBy, criteria.SortOrder = sortBy, sortOrder

	results, total, err := uc.books.Search(ctx, criteria, page)
	if err != nil {
		return nil, err
	}

	byBook, err := uc.books.AuthorsOf(ctx, lo.Map(results, func(r *book.SearchResult, _ int) string { return r.BookID }))
	if err != nil {
		return nil, err
	}
	for _, r := range results {
		r.Authors = authorsOrEmpty(byBook, r.BookID)
	}
	return pagination.New(results, total, page), nil
}

// AddAuthor 关联作者，图书与作者都必须存在
func (uc *CatalogUseCase) AddAuthor(ctx context.Context, bookID, authorID string, isPrimary bool) ([]*book.AuthorLink, error) {
	if _, err := uc.books.FindByID(ctx, bookID); err != nil {
		return nil, err
	}
	if _, err := uc.authors.FindByID(ctx, authorID); err != nil {
		return nil, err
	}
	if err := uc.books.AddAuthor(ctx, bookID, authorID, isPrimary); err != nil {
		return nil, err
	}
	return uc.books.AuthorLinks(ctx, bookID)
}

func (uc *CatalogUseCase) checkReferences(ctx context.Context, categoryID, publisherID *string, authorIDs []string) error {
	if categoryID != nil {
		if _, err := uc.categories.FindByID(ctx, *categoryID); err != nil {
			return err
		}
	}
	if publisherID != nil {
		if _, err := uc.publishers.FindByID(ctx, *publisherID); err != nil {
			return err
		}
	}
	if len(authorIDs) > 0 {
		found, err := uc.authors.FindByIDs(ctx, authorIDs)
		if err != nil {
			return err
		}
		if len(found) != len(lo.Uniq(authorIDs)) {
			return author.ErrAuthorNotFound
		}
	}
	return nil
}

func (uc *CatalogUseCase) attachAuthors(ctx context.Context, books []*book.Book) error {
	byBook, err := uc.books.AuthorsOf(ctx, lo.Map(books, func(b *book.Book, _ int) string { return b.ID }))
	if err != nil {
		return err
	}
	for _, b := range books {
		b.Authors = authorsOrEmpty(byBook, b.ID)
	}
	return nil
}

func authorsOrEmpty(byBook map[string][]book.AuthorRef, bookID string) []book.AuthorRef {
	if refs, ok := byBook[bookID]; ok {
		return refs
	}
	return []book.AuthorRef{}
}
