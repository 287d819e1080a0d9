package sqlbuilder

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type item struct {
	ID        uint `gorm:"primaryKey"`
	Title     string
	Price     float64
	Stock     int
	Language  string
	Published time.Time
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&item{}))

	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	items := []item{
		{Title: "Cien años de soledad", Price: 20, Stock: 5, Language: "Spanish", Published: day(1)},
		{Title: "El Aleph", Price: 12.5, Stock: 0, Language: "Spanish", Published: day(10)},
		{Title: "Dune", Price: 30, Stock: 8, Language: "English", Published: day(20)},
	}
	require.NoError(t, db.Create(&items).Error)
	return db
}

func TestDialectOf(t *testing.T) {
	db := newTestDB(t)
	assert.Equal(t, SQLite, DialectOf(db))
	assert.False(t, SQLite.SupportsFullText())
	assert.True(t, Postgres.SupportsFullText())
	assert.Equal(t, "DECIMAL(12,2)", MySQL.CastType(KindNumeric))
	assert.Equal(t, "TIMESTAMP", Postgres.CastType(KindTime))
	assert.Equal(t, "TO_CHAR(o.created_at, 'YYYY-MM-DD')", Postgres.DayExpr("o.created_at"))
	assert.Equal(t, "substr(o.created_at, 1, 10)", SQLite.DayExpr("o.created_at"))
}

func TestFilter_Optional(t *testing.T) {
	db := newTestDB(t)

	type criteria struct {
		search   mo.Option[string]
		minPrice mo.Option[float64]
		maxPrice mo.Option[float64]
		minStock mo.Option[int]
		language mo.Option[string]
	}

	run := func(t *testing.T, c criteria) ([]item, int64) {
		t.Helper()
		var pattern any
		if s, ok := c.search.Get(); ok {
			pattern = Like(s)
		}
		f := NewFilter(DialectOf(db)).
			Optional("search", KindText, Value(c.search), "LOWER(title) LIKE @pattern").
			Bind("pattern", pattern).
			Optional("min_price", KindNumeric, Value(c.minPrice), "price >= @min_price").
			Optional("max_price", KindNumeric, Value(c.maxPrice), "price <= @max_price").
			Optional("min_stock", KindInteger, Value(c.minStock), "stock >= @min_stock").
			Optional("language", KindText, Value(c.language), "LOWER(language) = LOWER(@language)")
		pred, err := f.Predicate()
		require.NoError(t, err)

		var total int64
		require.NoError(t, pred.Apply(db.Model(&item{})).Count(&total).Error)

		var rows []item
		require.NoError(t, pred.Apply(db.Model(&item{})).Order("id").Find(&rows).Error)
		return rows, total
	}

	t.Run("absent filters match everything", func(t *testing.T) {
		rows, total := run(t, criteria{})
		assert.Len(t, rows, 3)
		assert.EqualValues(t, 3, total)
	})

	t.Run("ranges are inclusive", func(t *testing.T) {
		rows, total := run(t, criteria{minPrice: mo.Some(12.5), maxPrice: mo.Some(20.0)})
		assert.EqualValues(t, 2, total)
		assert.Len(t, rows, 2)
	})

	t.Run("zero is a real bound", func(t *testing.T) {
		rows, _ := run(t, criteria{minStock: mo.Some(0)})
		assert.Len(t, rows, 3)
	})

	t.Run("free text is case insensitive", func(t *testing.T) {
		rows, total := run(t, criteria{search: mo.Some("ALEPH")})
		require.Len(t, rows, 1)
		assert.Equal(t, "El Aleph", rows[0].Title)
		assert.EqualValues(t, 1, total)
	})

	t.Run("language equality ignores case", func(t *testing.T) {
		rows, _ := run(t, criteria{language: mo.Some("english")})
		require.Len(t, rows, 1)
		assert.Equal(t, "Dune", rows[0].Title)
	})
}

func TestFilter_Where(t *testing.T) {
	db := newTestDB(t)
	pred, err := NewFilter(SQLite).
		Where("stock > @zero", P("zero", 0)).
		Predicate()
	require.NoError(t, err)

	var total int64
	require.NoError(t, pred.Apply(db.Model(&item{})).Count(&total).Error)
	assert.EqualValues(t, 2, total)
}

func TestFilter_DuplicateParameter(t *testing.T) {
	_, err := NewFilter(SQLite).
		Optional("x", KindText, nil, "title = @x").
		Optional("x", KindText, "a", "title = @x").
		Predicate()
	assert.Error(t, err)
}

func TestPredicate_ApplyEmpty(t *testing.T) {
	db := newTestDB(t)
	pred, err := NewFilter(SQLite).Predicate()
	require.NoError(t, err)

	var total int64
	require.NoError(t, pred.Apply(db.Model(&item{})).Count(&total).Error)
	assert.EqualValues(t, 3, total)
}

func TestSort_Resolve(t *testing.T) {
	s := NewSort(map[string]string{
		"title": "title",
		"price": "price",
	}, "title", Asc)

	t.Run("defaults", func(t *testing.T) {
		col, err := s.Resolve("", "")
		require.NoError(t, err)
		assert.Equal(t, "title", col.Column.Name)
		assert.False(t, col.Desc)
	})

	t.Run("direction is case insensitive", func(t *testing.T) {
		col, err := s.Resolve("price", "desc")
		require.NoError(t, err)
		assert.Equal(t, "price", col.Column.Name)
		assert.True(t, col.Desc)
	})

	t.Run("rejects unknown key", func(t *testing.T) {
		_, err := s.Resolve("price; DROP TABLE items", "ASC")
		assert.Error(t, err)
	})

	t.Run("rejects unknown direction", func(t *testing.T) {
		_, err := s.Resolve("title", "sideways")
		assert.Error(t, err)
	})

	t.Run("orders rows", func(t *testing.T) {
		db := newTestDB(t)
		col, err := s.Resolve("price", "DESC")
		require.NoError(t, err)

		var rows []item
		require.NoError(t, db.Order(col).Find(&rows).Error)
		require.Len(t, rows, 3)
		assert.Equal(t, "Dune", rows[0].Title)
	})
}

func TestPatch(t *testing.T) {
	t.Run("absent options are skipped", func(t *testing.T) {
		p := NewPatch("title", "price")
		Set(p, "title", mo.None[string]())
		Set(p, "price", mo.None[float64]())
		assert.True(t, p.Empty())

		values, err := p.Values()
		require.NoError(t, err)
		assert.Empty(t, values)
	})

	t.Run("falsy values are applied", func(t *testing.T) {
		p := NewPatch("title", "stock", "is_active")
		Set(p, "title", mo.Some(""))
		Set(p, "stock", mo.Some(0))
		Set(p, "is_active", mo.Some(false))

		values, err := p.Values()
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"title": "", "stock": 0, "is_active": false}, values)
		assert.Equal(t, []string{"is_active", "stock", "title"}, p.Columns())
	})

	t.Run("columns outside the allow-list are rejected", func(t *testing.T) {
		p := NewPatch("title")
		Set(p, "role", mo.Some("admin"))

		assert.False(t, p.Empty())
		assert.False(t, p.Has("role"))
		_, err := p.Values()
		assert.Error(t, err)
	})

	t.Run("updates only the given columns", func(t *testing.T) {
		db := newTestDB(t)
		p := NewPatch("title", "price")
		Set(p, "price", mo.Some(99.0))

		values, err := p.Values()
		require.NoError(t, err)
		require.NoError(t, db.Model(&item{}).Where("id = ?", 1).Updates(values).Error)

		var got item
		require.NoError(t, db.First(&got, 1).Error)
		assert.Equal(t, 99.0, got.Price)
		assert.Equal(t, "Cien años de soledad", got.Title)
	})
}
