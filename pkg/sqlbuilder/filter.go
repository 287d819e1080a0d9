package sqlbuilder

import (
	"fmt"
	"strings"

	"github.com/samber/mo"
	"gorm.io/gorm"
)

// Param 命名参数
type Param struct {
	Name  string
	Value any
}

// P 构造命名参数
func P(name string, value any) Param {
	return Param{Name: name, Value: value}
}

// Filter 动态WHERE构建器
//
// 条件中的参数统一使用GORM命名参数（@name），不能出现"?"。
// 参数名后必须紧跟空格、逗号或右括号。
//
//	f := sqlbuilder.NewFilter(sqlbuilder.DialectOf(db)).
//	    Where("b.is_active = @active", sqlbuilder.P("active", true)).
//	    Optional("min_price", sqlbuilder.KindNumeric, sqlbuilder.Value(minPrice), "b.price >= @min_price")
//	pred := f.Predicate()
//	pred.Apply(db.Table("books b")).Count(&total)
type Filter struct {
	dialect Dialect
	conds   []string
	args    map[string]any
	err     error
}

// NewFilter 创建过滤器
func NewFilter(d Dialect) *Filter {
	return &Filter{dialect: d, args: make(map[string]any)}
}

// Dialect 返回过滤器使用的方言
func (f *Filter) Dialect() Dialect {
	return f.dialect
}

// Where 添加无条件生效的谓词
func (f *Filter) Where(cond string, params ...Param) *Filter {
	for _, p := range params {
		f.bind(p.Name, p.Value)
	}
	f.conds = append(f.conds, "("+cond+")")
	return f
}

// Optional 添加可选谓词：(CAST(@name AS T) IS NULL OR (cond))
// value为nil时参数绑定NULL，谓词恒为真，参数列表保持不变
func (f *Filter) Optional(name string, kind Kind, value any, cond string) *Filter {
	f.bind(name, value)
	f.conds = append(f.conds, fmt.Sprintf("(CAST(@%s AS %s) IS NULL OR (%s))",
		name, f.dialect.CastType(kind), cond))
	return f
}

// Bind 绑定条件中引用的额外参数（例如同一个搜索词的LIKE模式）
func (f *Filter) Bind(name string, value any) *Filter {
	f.bind(name, value)
	return f
}

func (f *Filter) bind(name string, value any) {
	if _, ok := f.args[name]; ok {
		f.err = fmt.Errorf("sqlbuilder: parameter %q bound twice", name)
		return
	}
	f.args[name] = value
}

// Predicate 生成谓词
func (f *Filter) Predicate() (Predicate, error) {
	if f.err != nil {
		return Predicate{}, f.err
	}
	args := make(map[string]any, len(f.args))
	for k, v := range f.args {
		args[k] = v
	}
	return Predicate{SQL: strings.Join(f.conds, " AND "), Args: args}, nil
}

// Predicate 一个完整的WHERE谓词及其命名参数
// 计数查询和数据查询必须使用同一个Predicate
type Predicate struct {
	SQL  string
	Args map[string]any
}

// Apply 将谓词追加到查询
func (p Predicate) Apply(db *gorm.DB) *gorm.DB {
	if p.SQL == "" {
		return db
	}
	if len(p.Args) == 0 {
		return db.Where(p.SQL)
	}
	return db.Where(p.SQL, p.Args)
}

// Value 将mo.Option转换为绑定值，缺省返回nil（绑定为NULL）
func Value[T any](o mo.Option[T]) any {
	if v, ok := o.Get(); ok {
		return v
	}
	return nil
}

// Like 构造小写的子串匹配模式（%term%），配合 LOWER(col) LIKE @pattern 使用
func Like(term string) string {
	return "%" + strings.ToLower(strings.TrimSpace(term)) + "%"
}
