package sqlbuilder

import (
	"fmt"
	"strings"

	"gorm.io/gorm/clause"
)

// Direction 排序方向
type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// Sort 排序白名单：排序键 → 列表达式
type Sort struct {
	columns    map[string]string
	defaultKey string
	defaultDir Direction
}

// NewSort 创建排序白名单，defaultKey必须在columns中
func NewSort(columns map[string]string, defaultKey string, defaultDir Direction) Sort {
	return Sort{columns: columns, defaultKey: defaultKey, defaultDir: defaultDir}
}

// Resolve 解析排序键与方向，空值使用默认值，白名单之外的值返回错误
func (s Sort) Resolve(key, dir string) (clause.OrderByColumn, error) {
	if key == "" {
		key = s.defaultKey
	}
	col, ok := s.columns[key]
	if !ok {
		return clause.OrderByColumn{}, fmt.Errorf("sqlbuilder: unsupported sort key %q", key)
	}

	d := s.defaultDir
	if dir != "" {
		d = Direction(strings.ToUpper(dir))
	}
	if d != Asc && d != Desc {
		return clause.OrderByColumn{}, fmt.Errorf("sqlbuilder: unsupported sort direction %q", dir)
	}

	return clause.OrderByColumn{
		Column: clause.Column{Name: col, Raw: true},
		Desc:   d == Desc,
	}, nil
}
