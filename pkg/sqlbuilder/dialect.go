// Package sqlbuilder 动态构建WHERE/ORDER BY/SET子句
//
// 三个组件：
//   - Filter: 可选过滤条件，缺省参数绑定NULL，计数查询与数据查询共用同一Predicate
//   - Sort:   排序键白名单
//   - Patch:  部分更新，列名白名单 + mo.Option取值
//
// 所有取值都通过GORM参数绑定，列名只来自代码中的白名单。
package sqlbuilder

import "gorm.io/gorm"

// Dialect 数据库方言
type Dialect string

const (
	Postgres Dialect = "postgres"
	MySQL    Dialect = "mysql"
	SQLite   Dialect = "sqlite"
)

// Kind 参数类型（决定CAST的目标类型）
type Kind int

const (
	KindText Kind = iota
	KindNumeric
	KindInteger
	KindTime
)

// DialectOf 根据GORM Dialector识别方言，未知方言按SQLite处理
func DialectOf(db *gorm.DB) Dialect {
	switch db.Dialector.Name() {
	case "postgres":
		return Postgres
	case "mysql":
		return MySQL
	default:
		return SQLite
	}
}

// CastType 返回CAST(x AS <type>)中的类型名
func (d Dialect) CastType(k Kind) string {
	switch d {
	case Postgres:
		switch k {
		case KindNumeric:
			return "NUMERIC"
		case KindInteger:
			return "INTEGER"
		case KindTime:
			return "TIMESTAMP"
		default:
			return "TEXT"
		}
	case MySQL:
		switch k {
		case KindNumeric:
			return "DECIMAL(12,2)"
		case KindInteger:
			return "SIGNED"
		case KindTime:
			return "DATETIME"
		default:
			return "CHAR"
		}
	default:
		switch k {
		case KindNumeric:
			return "NUMERIC"
		case KindInteger:
			return "INTEGER"
		default:
			return "TEXT"
		}
	}
}

// SupportsFullText 是否支持to_tsvector全文检索（仅PostgreSQL）
func (d Dialect) SupportsFullText() bool {
	return d == Postgres
}

// DayExpr 将时间列格式化为YYYY-MM-DD
// SQLite中时间以文本存储，直接截取前10位
func (d Dialect) DayExpr(col string) string {
	switch d {
	case Postgres:
		return "TO_CHAR(" + col + ", 'YYYY-MM-DD')"
	case MySQL:
		return "DATE_FORMAT(" + col + ", '%Y-%m-%d')"
	default:
		return "substr(" + col + ", 1, 10)"
	}
}
