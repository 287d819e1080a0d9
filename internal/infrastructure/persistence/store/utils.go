package store

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	apperrors "github.com/TheJisus28/bookstore-api/pkg/errors"
	"github.com/TheJisus28/bookstore-api/pkg/pagination"
	"github.com/TheJisus28/bookstore-api/pkg/sqlbuilder"
)

const (
	pgUniqueViolation    = "23505"
	mysqlDuplicateEntry  = 1062
	sqliteUniqueViolated = "UNIQUE constraint failed"
)

// isDuplicateError 唯一索引冲突
//   - PostgreSQL: SQLSTATE 23505
//   - MySQL: 1062 Duplicate entry
//   - SQLite: UNIQUE constraint failed
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlDuplicateEntry
	}
	return strings.Contains(err.Error(), sqliteUniqueViolated)
}

// translate 记录不存在转换为领域错误，其他错误包装为内部错误
func translate(err error, notFound error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return apperrors.Wrap(err, message)
}

// findPage 计数与分页查询共用base上的FROM/JOIN/WHERE
// base不能带Select，列在selectExpr中给出
func findPage(base *gorm.DB, page pagination.Params, selectExpr string, orderBy any, dest any) (int64, error) {
	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, nil
	}

	p := page.Normalize()
	q := base.Session(&gorm.Session{})
	if selectExpr != "" {
		q = q.Select(selectExpr)
	}
	err := q.Order(orderBy).Limit(p.Limit).Offset(p.Offset()).Find(dest).Error
	return total, err
}

// applyPatch 执行部分更新，patch为空时不发出UPDATE
// 返回受影响行数
func applyPatch(db *gorm.DB, model any, patch *sqlbuilder.Patch, where string, args ...any) (int64, error) {
	if patch.Empty() {
		return -1, nil
	}
	values, err := patch.Values()
	if err != nil {
		return 0, apperrors.Wrap(err, "构建更新语句失败")
	}
	result := db.Model(model).Where(where, args...).Updates(values)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// nullable 空字符串转为NULL
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// sqliteTimeLayouts SQLite以文本保存时间，聚合结果（MAX等）不带列类型，驱动不会自动转换
var sqliteTimeLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

// aggTime 聚合查询得到的时间列
type aggTime struct {
	Time  time.Time
	Valid bool
}

// Scan 实现sql.Scanner
func (t *aggTime) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		t.Time, t.Valid = time.Time{}, false
		return nil
	case time.Time:
		t.Time, t.Valid = v.UTC(), true
		return nil
	case []byte:
		return t.parse(string(v))
	case string:
		return t.parse(v)
	}
	return fmt.Errorf("store: cannot scan %T into time", src)
}

func (t *aggTime) parse(s string) error {
	for _, layout := range sqliteTimeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time, t.Valid = parsed.UTC(), true
			return nil
		}
	}
	return fmt.Errorf("store: cannot parse time %q", s)
}

// Value 实现driver.Valuer
func (t aggTime) Value() (driver.Value, error) {
	if !t.Valid {
		return nil, nil
	}
	return t.Time, nil
}

// Ptr 无值时返回nil
func (t aggTime) Ptr() *time.Time {
	if !t.Valid {
		return nil
	}
	tt := t.Time
	return &tt
}
