package sqlbuilder

import (
	"fmt"
	"sort"

	"github.com/samber/mo"
)

// Patch 部分更新构建器
//
//	p := sqlbuilder.NewPatch("title", "price", "is_active")
//	sqlbuilder.Set(p, "title", in.Title)       // mo.None 跳过
//	sqlbuilder.Set(p, "is_active", in.Active)  // mo.Some(false) 生效
//	if p.Empty() { return existing }
//	values, err := p.Values()
//	db.Model(&BookModel{}).Where("id = ?", id).Updates(values)
type Patch struct {
	allowed map[string]struct{}
	values  map[string]any
	err     error
}

// NewPatch 创建部分更新，allowed为允许更新的列
func NewPatch(allowed ...string) *Patch {
	p := &Patch{
		allowed: make(map[string]struct{}, len(allowed)),
		values:  make(map[string]any),
	}
	for _, col := range allowed {
		p.allowed[col] = struct{}{}
	}
	return p
}

// Set 记录可选字段，仅在Option有值时生效（false、0、""同样生效）
func Set[T any](p *Patch, column string, v mo.Option[T]) *Patch {
	if val, ok := v.Get(); ok {
		p.SetValue(column, val)
	}
	return p
}

// SetValue 无条件记录一个列值
func (p *Patch) SetValue(column string, value any) *Patch {
	if _, ok := p.allowed[column]; !ok {
		if p.err == nil {
			p.err = fmt.Errorf("sqlbuilder: column %q is not updatable", column)
		}
		return p
	}
	p.values[column] = value
	return p
}

// Empty 没有任何待更新列
func (p *Patch) Empty() bool {
	return len(p.values) == 0 && p.err == nil
}

// Has 是否设置了某列
func (p *Patch) Has(column string) bool {
	_, ok := p.values[column]
	return ok
}

// Get 读取已设置的列值
func (p *Patch) Get(column string) (any, bool) {
	v, ok := p.values[column]
	return v, ok
}

// Columns 已设置的列（有序）
func (p *Patch) Columns() []string {
	cols := make([]string, 0, len(p.values))
	for col := range p.values {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	return cols
}

// Values 返回 列 → 值，用于GORM Updates(map)
func (p *Patch) Values() (map[string]any, error) {
	if p.err != nil {
		return nil, p.err
	}
	out := make(map[string]any, len(p.values))
	for k, v := range p.values {
		out[k] = v
	}
	return out, nil
}
