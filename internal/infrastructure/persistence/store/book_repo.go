package store

import (
	"context"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/TheJisus28/bookstore-api/internal/domain/book"
	"github.com/TheJisus28/bookstore-api/internal/domain/order"
	apperrors "github.com/TheJisus28/bookstore-api/pkg/errors"
	"github.com/TheJisus28/bookstore-api/pkg/pagination"
	"github.com/TheJisus28/bookstore-api/pkg/sqlbuilder"
)

// ratingJoin 每本书的平均评分与评价数
const ratingJoin = "LEFT JOIN (SELECT book_id, AVG(rating) AS avg_rating, COUNT(*) AS review_count FROM reviews GROUP BY book_id) rs ON rs.book_id = b.id"

// searchSort 高级搜索排序键白名单
var searchSort = sqlbuilder.NewSort(map[string]string{
	book.SortByTitle:  "b.title",
	book.SortByPrice:  "b.price",
	book.SortByDate:   "b.publication_date",
	book.SortByRating: "COALESCE(rs.avg_rating, 0)",
}, book.SortByTitle, sqlbuilder.Asc)

type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := &BookModel{
		ISBN:            b.ISBN,
		Title:           b.Title,
		Description:     b.Description,
		Price:           b.Price,
		Stock:           b.Stock,
		Pages:           b.Pages,
		PublicationDate: b.PublicationDate,
		Language:        b.Language,
		PublisherID:     b.PublisherID,
		CategoryID:      b.CategoryID,
		CoverImageURL:   b.CoverImageURL,
		IsActive:        b.IsActive,
	}
	if model.Language == "" {
		model.Language = book.DefaultLanguage
	}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return book.ErrISBNDuplicate
		}
		return apperrors.Wrap(err, "创建图书失败")
	}

	authors := b.Authors
	*b = *toBookEntity(model)
	b.Authors = authors
	return nil
}

func (r *bookRepository) FindByID(ctx context.Context, id string) (*book.Book, error) {
	var model BookModel
	if err := getDB(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, translate(err, book.ErrBookNotFound, "查询图书失败")
	}
	return toBookEntity(&model), nil
}

// List 顾客列表只包含上架图书，管理员列表包含全部
func (r *bookRepository) List(ctx context.Context, filter book.ListFilter, page pagination.Params) ([]*book.Book, int64, error) {
	base := getDB(ctx, r.db).Model(&BookModel{})
	if !filter.IncludeInactive {
		base = base.Where("is_active = ?", true)
	}
	if term, ok := filter.Search.Get(); ok && strings.TrimSpace(term) != "" {
		pattern := sqlbuilder.Like(term)
		base = base.Where("LOWER(title) LIKE ? OR LOWER(COALESCE(description, '')) LIKE ?", pattern, pattern)
	}

	var models []BookModel
	total, err := findPage(base, page, "", "title ASC, id ASC", &models)
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书列表失败")
	}

	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	return books, total, nil
}

func (r *bookRepository) Update(ctx context.Context, id string, in book.UpdateInput) (*book.Book, error) {
	if _, err := r.FindByID(ctx, id); err != nil {
		return nil, err
	}

	patch := sqlbuilder.NewPatch("isbn", "title", "description", "price", "stock", "pages",
		"publication_date", "language", "publisher_id", "category_id", "cover_image_url", "is_active")
	sqlbuilder.Set(patch, "isbn", in.ISBN)
	sqlbuilder.Set(patch, "title", in.Title)
	sqlbuilder.Set(patch, "description", in.Description)
	sqlbuilder.Set(patch, "price", in.Price)
	sqlbuilder.Set(patch, "stock", in.Stock)
	sqlbuilder.Set(patch, "pages", in.Pages)
	sqlbuilder.Set(patch, "publication_date", in.PublicationDate)
	sqlbuilder.Set(patch, "language", in.Language)
	if v, ok := in.PublisherID.Get(); ok {
		patch.SetValue("publisher_id", nullable(v))
	}
	if v, ok := in.CategoryID.Get(); ok {
		patch.SetValue("category_id", nullable(v))
	}
	sqlbuilder.Set(patch, "cover_image_url", in.CoverImageURL)
	sqlbuilder.Set(patch, "is_active", in.IsActive)

	if _, err := applyPatch(getDB(ctx, r.db), &BookModel{}, patch, "id = ?", id); err != nil {
		if isDuplicateError(err) {
			return nil, book.ErrISBNDuplicate
		}
		return nil, apperrors.Wrap(err, "更新图书失败")
	}
	return r.FindByID(ctx, id)
}

// Delete 硬删除，先删除作者关联与购物车项
func (r *bookRepository) Delete(ctx context.Context, id string) error {
	return inTx(ctx, r.db, func(tx *gorm.DB) error {
		if err := tx.Where("book_id = ?", id).Delete(&BookAuthorModel{}).Error; err != nil {
			return apperrors.Wrap(err, "删除图书作者关联失败")
		}
		if err := tx.Where("book_id = ?", id).Delete(&CartItemModel{}).Error; err != nil {
			return apperrors.Wrap(err, "删除购物车项失败")
		}
		result := tx.Where("id = ?", id).Delete(&BookModel{})
		if result.Error != nil {
			return apperrors.Wrap(result.Error, "删除图书失败")
		}
		if result.RowsAffected == 0 {
			return book.ErrBookNotFound
		}
		return nil
	})
}

// searchRow 高级搜索结果
type searchRow struct {
	BookID          string
	Title           string
	Price           decimal.Decimal
	Stock           int
	AverageRating   float64
	TotalReviews    int64
	PublisherName   *string
	CategoryName    *string
	PublicationDate *time.Time
	Language        string
	CoverImageURL   *string
}

// Search 高级搜索
// 所有条件都以命名参数出现，缺省条件绑定NULL
func (r *bookRepository) Search(ctx context.Context, c book.SearchCriteria, page pagination.Params) ([]*book.SearchResult, int64, error) {
	db := getDB(ctx, r.db)
	dialect := sqlbuilder.DialectOf(db)

	orderBy, err := searchSort.Resolve(c.SortBy, c.SortOrder)
	if err != nil {
		return nil, 0, book.ErrInvalidSearchOptions
	}

	pred, err := searchFilter(dialect, c).Predicate()
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "构建搜索条件失败")
	}

	base := pred.Apply(db.Table("books b").
		Joins(ratingJoin).
		Joins("LEFT JOIN publishers p ON p.id = b.publisher_id").
		Joins("LEFT JOIN categories c ON c.id = b.category_id"))

	var rows []searchRow
	total, err := findPage(base, page,
		"b.id AS book_id, b.title, b.price, b.stock, "+
			"COALESCE(rs.avg_rating, 0) AS average_rating, COALESCE(rs.review_count, 0) AS total_reviews, "+
			"p.name AS publisher_name, c.name AS category_name, b.publication_date, b.language, b.cover_image_url",
		clause.OrderBy{Columns: []clause.OrderByColumn{
			orderBy,
			{Column: clause.Column{Name: "b.id", Raw: true}},
		}},
		&rows)
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "搜索图书失败")
	}

	results := make([]*book.SearchResult, len(rows))
	for i, row := range rows {
		results[i] = &book.SearchResult{
			BookID:          row.BookID,
			Title:           row.Title,
			Price:           row.Price,
			Stock:           row.Stock,
			AverageRating:   row.AverageRating,
			TotalReviews:    row.TotalReviews,
			PublisherName:   row.PublisherName,
			CategoryName:    row.CategoryName,
			PublicationDate: row.PublicationDate,
			Language:        row.Language,
			CoverImageURL:   row.CoverImageURL,
		}
	}
	return results, total, nil
}

func searchFilter(d sqlbuilder.Dialect, c book.SearchCriteria) *sqlbuilder.Filter {
	f := sqlbuilder.NewFilter(d).
		Where("b.is_active = @active", sqlbuilder.P("active", true))

	textCond := "LOWER(b.title) LIKE @pattern OR LOWER(COALESCE(b.description, '')) LIKE @pattern"
	if d.SupportsFullText() {
		textCond += " OR to_tsvector('spanish', b.title || ' ' || COALESCE(b.description, '')) @@ plainto_tsquery('spanish', @search)"
	}
	search := c.Search.Map(func(s string) (string, bool) {
		s = strings.TrimSpace(s)
		return s, s != ""
	})
	f.Optional("search", sqlbuilder.KindText, sqlbuilder.Value(search), textCond).
		Bind("pattern", sqlbuilder.Value(search.Map(func(s string) (string, bool) {
			return sqlbuilder.Like(s), true
		})))

	language := c.Language.Map(func(s string) (string, bool) {
		s = strings.ToLower(strings.TrimSpace(s))
		return s, s != ""
	})

	return f.
		Optional("category_id", sqlbuilder.KindText, sqlbuilder.Value(c.CategoryID), "b.category_id = @category_id").
		Optional("author_id", sqlbuilder.KindText, sqlbuilder.Value(c.AuthorID),
			"EXISTS (SELECT 1 FROM book_authors ba WHERE ba.book_id = b.id AND ba.author_id = @author_id)").
		Optional("publisher_id", sqlbuilder.KindText, sqlbuilder.Value(c.PublisherID), "b.publisher_id = @publisher_id").
		Optional("min_price", sqlbuilder.KindNumeric, sqlbuilder.Value(c.MinPrice), "b.price >= @min_price").
		Optional("max_price", sqlbuilder.KindNumeric, sqlbuilder.Value(c.MaxPrice), "b.price <= @max_price").
		Optional("min_rating", sqlbuilder.KindNumeric, sqlbuilder.Value(c.MinRating), "COALESCE(rs.avg_rating, 0) >= @min_rating").
		Optional("language", sqlbuilder.KindText, sqlbuilder.Value(language), "LOWER(b.language) = @language").
		Optional("min_stock", sqlbuilder.KindInteger, sqlbuilder.Value(c.MinStock), "b.stock >= @min_stock").
		Optional("max_stock", sqlbuilder.KindInteger, sqlbuilder.Value(c.MaxStock), "b.stock <= @max_stock").
		Optional("start_date", sqlbuilder.KindTime, sqlbuilder.Value(c.StartDate), "b.publication_date >= @start_date").
		Optional("end_date", sqlbuilder.KindTime, sqlbuilder.Value(c.EndDate), "b.publication_date <= @end_date")
}

// authorRow book_authors JOIN authors
type authorRow struct {
	BookID    string
	AuthorID  string
	FirstName string
	LastName  string
	IsPrimary bool
	BookTitle string
}

// AuthorsOf 一次IN查询取出多本书的作者
func (r *bookRepository) AuthorsOf(ctx context.Context, bookIDs []string) (map[string][]book.AuthorRef, error) {
	if len(bookIDs) == 0 {
		return map[string][]book.AuthorRef{}, nil
	}

	var rows []authorRow
	err := getDB(ctx, r.db).Table("book_authors ba").
		Select("ba.book_id, ba.author_id, a.first_name, a.last_name, ba.is_primary").
		Joins("JOIN authors a ON a.id = ba.author_id").
		Where("ba.book_id IN ?", lo.Uniq(bookIDs)).
		Order("ba.is_primary DESC, a.last_name ASC, a.first_name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询图书作者失败")
	}

	grouped := lo.GroupBy(rows, func(row authorRow) string { return row.BookID })
	return lo.MapValues(grouped, func(rows []authorRow, _ string) []book.AuthorRef {
		return lo.Map(rows, func(row authorRow, _ int) book.AuthorRef {
			return book.AuthorRef{
				ID:        row.AuthorID,
				FirstName: row.FirstName,
				LastName:  row.LastName,
				IsPrimary: row.IsPrimary,
			}
		})
	}), nil
}

// SetAuthors 删除原有关联后按顺序写入
func (r *bookRepository) SetAuthors(ctx context.Context, bookID string, a book.AuthorAssignment) error {
	return inTx(ctx, r.db, func(tx *gorm.DB) error {
		if err := tx.Where("book_id = ?", bookID).Delete(&BookAuthorModel{}).Error; err != nil {
			return apperrors.Wrap(err, "删除图书作者关联失败")
		}
		if len(a.AuthorIDs) == 0 {
			return nil
		}
		links := lo.Map(a.AuthorIDs, func(authorID string, _ int) *BookAuthorModel {
			return &BookAuthorModel{BookID: bookID, AuthorID: authorID, IsPrimary: authorID == a.PrimaryID}
		})
		if err := tx.Create(&links).Error; err != nil {
			return apperrors.Wrap(err, "写入图书作者关联失败")
		}
		return nil
	})
}

func (r *bookRepository) AuthorLinks(ctx context.Context, bookID string) ([]*book.AuthorLink, error) {
	var rows []authorRow
	err := getDB(ctx, r.db).Table("book_authors ba").
		Select("ba.book_id, b.title AS book_title, ba.author_id, a.first_name, a.last_name, ba.is_primary").
		Joins("JOIN authors a ON a.id = ba.author_id").
		Joins("JOIN books b ON b.id = ba.book_id").
		Where("ba.book_id = ?", bookID).
		Order("ba.is_primary DESC, a.last_name ASC, a.first_name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询图书作者失败")
	}

	return lo.Map(rows, func(row authorRow, _ int) *book.AuthorLink {
		return &book.AuthorLink{
			BookID:     row.BookID,
			BookTitle:  row.BookTitle,
			AuthorID:   row.AuthorID,
			AuthorName: row.FirstName + " " + row.LastName,
			IsPrimary:  row.IsPrimary,
		}
	}), nil
}

// AddAuthor 设为主作者时先清除其他主作者
func (r *bookRepository) AddAuthor(ctx context.Context, bookID, authorID string, isPrimary bool) error {
	return inTx(ctx, r.db, func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&BookAuthorModel{}).
			Where("book_id = ? AND author_id = ?", bookID, authorID).
			Count(&count).Error; err != nil {
			return apperrors.Wrap(err, "查询图书作者关联失败")
		}
		if count > 0 {
			return book.ErrAuthorAlreadyLinked
		}

		if isPrimary {
			if err := tx.Model(&BookAuthorModel{}).
				Where("book_id = ? AND is_primary = ?", bookID, true).
				Update("is_primary", false).Error; err != nil {
				return apperrors.Wrap(err, "清除主作者失败")
			}
		}

		link := &BookAuthorModel{BookID: bookID, AuthorID: authorID, IsPrimary: isPrimary}
		if err := tx.Create(link).Error; err != nil {
			if isDuplicateError(err) {
				return book.ErrAuthorAlreadyLinked
			}
			return apperrors.Wrap(err, "添加图书作者失败")
		}
		return nil
	})
}

func (r *bookRepository) RemoveAuthor(ctx context.Context, bookID, authorID string) error {
	result := getDB(ctx, r.db).
		Where("book_id = ? AND author_id = ?", bookID, authorID).
		Delete(&BookAuthorModel{})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除图书作者失败")
	}
	if result.RowsAffected == 0 {
		return book.ErrAuthorLinkNotFound
	}
	return nil
}

type bestsellerRow struct {
	BookID        string
	Title         string
	ISBN          string `gorm:"column:isbn"`
	Price         decimal.Decimal
	CoverImageURL *string
	TotalSold     int64
	TotalRevenue  decimal.Decimal
}

// Bestsellers 只统计已购买状态的订单，EndDate当天包含在内
func (r *bookRepository) Bestsellers(ctx context.Context, q book.BestsellerQuery) ([]*book.Bestseller, error) {
	db := getDB(ctx, r.db)
	end := q.EndDate.Map(func(t time.Time) (time.Time, bool) { return nextDay(t), true })

	pred, err := sqlbuilder.NewFilter(sqlbuilder.DialectOf(db)).
		Where("o.status IN @statuses", sqlbuilder.P("statuses", order.StatusStrings(order.PurchasedStatuses))).
		Optional("start_date", sqlbuilder.KindTime, sqlbuilder.Value(q.StartDate), "o.created_at >= @start_date").
		Optional("end_date", sqlbuilder.KindTime, sqlbuilder.Value(end), "o.created_at < @end_date").
		Predicate()
	if err != nil {
		return nil, apperrors.Wrap(err, "构建查询条件失败")
	}

	var rows []bestsellerRow
	err = pred.Apply(db.Table("order_items oi").
		Joins("JOIN orders o ON o.id = oi.order_id").
		Joins("JOIN books b ON b.id = oi.book_id")).
		Select("b.id AS book_id, b.title, b.isbn, b.price, b.cover_image_url, " +
			"SUM(oi.quantity) AS total_sold, SUM(oi.subtotal) AS total_revenue").
		Group("b.id, b.title, b.isbn, b.price, b.cover_image_url").
		Order("total_sold DESC, b.title ASC").
		Limit(q.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询畅销书失败")
	}

	return lo.Map(rows, func(row bestsellerRow, _ int) *book.Bestseller {
		return &book.Bestseller{
			BookID:        row.BookID,
			Title:         row.Title,
			ISBN:          row.ISBN,
			Price:         row.Price,
			CoverImageURL: row.CoverImageURL,
			TotalSold:     row.TotalSold,
			TotalRevenue:  row.TotalRevenue,
		}
	}), nil
}

// LockByID SELECT ... FOR UPDATE，必须在事务中调用（SQLite忽略行锁）
func (r *bookRepository) LockByID(ctx context.Context, id string) (*book.Book, error) {
	var model BookModel
	err := getDB(ctx, r.db).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Where("id = ?", id).
		First(&model).Error
	if err != nil {
		return nil, translate(err, book.ErrBookNotFound, "锁定图书失败")
	}
	return toBookEntity(&model), nil
}

// UpdateStock 原子更新：UPDATE books SET stock = stock + delta WHERE id = ? AND stock + delta >= 0
func (r *bookRepository) UpdateStock(ctx context.Context, id string, delta int) error {
	db := getDB(ctx, r.db)
	result := db.Model(&BookModel{}).
		Where("id = ?", id).
		Where("stock + ? >= 0", delta).
		Update("stock", gorm.Expr("stock + ?", delta))
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新库存失败")
	}
	if result.RowsAffected > 0 {
		return nil
	}

	// 区分图书不存在与库存不足
	if _, err := r.FindByID(ctx, id); err != nil {
		return err
	}
	return book.ErrInsufficientStock
}

func toBookEntity(m *BookModel) *book.Book {
	return &book.Book{
		ID:              m.ID,
		ISBN:            m.ISBN,
		Title:           m.Title,
		Description:     m.Description,
		Price:           m.Price,
		Stock:           m.Stock,
		Pages:           m.Pages,
		PublicationDate: m.PublicationDate,
		Language:        m.Language,
		PublisherID:     m.PublisherID,
		CategoryID:      m.CategoryID,
		CoverImageURL:   m.CoverImageURL,
		IsActive:        m.IsActive,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// nextDay 下一天零点，用于"截至某天（含）"的区间上界
func nextDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location()).AddDate(0, 0, 1)
}
