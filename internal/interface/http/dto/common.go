// Package dto HTTP请求/响应结构
// 请求体字段使用指针区分"未传"与零值，转换为领域层的mo.Option
package dto

import (
	"strings"
	"time"

	"github.com/samber/mo"
	"github.com/shopspring/decimal"

	apperrors "github.com/TheJisus28/bookstore-api/pkg/errors"
)

// DateLayout 日期字段格式
const DateLayout = time.DateOnly

// IDResponse 只返回ID的响应
type IDResponse struct {
	ID string `json:"id"`
}

// MessageResponse 只返回提示信息的响应
type MessageResponse struct {
	Message string `json:"message"`
}

// opt 指针 → mo.Option（nil为None）
func opt[T any](p *T) mo.Option[T] {
	if p == nil {
		return mo.None[T]()
	}
	return mo.Some(*p)
}

// optMap 指针 → mo.Option，同时转换类型
func optMap[T, R any](p *T, fn func(T) R) mo.Option[R] {
	if p == nil {
		return mo.None[R]()
	}
	return mo.Some(fn(*p))
}

// money 价格统一保留两位小数
func money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

// parseDate 接受YYYY-MM-DD或RFC3339，结果为UTC
func parseDate(field, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.ParseInLocation(DateLayout, value, time.UTC); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, apperrors.ErrInvalidParams.WithMessage(field + " must be a date (YYYY-MM-DD)")
}

// optDate 可选日期字段
func optDate(field string, value *string) (mo.Option[time.Time], error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return mo.None[time.Time](), nil
	}
	t, err := parseDate(field, *value)
	if err != nil {
		return mo.None[time.Time](), err
	}
	return mo.Some(t), nil
}

// datePtr 可选日期（创建时使用）
func datePtr(field string, value *string) (*time.Time, error) {
	o, err := optDate(field, value)
	if err != nil {
		return nil, err
	}
	if t, ok := o.Get(); ok {
		return &t, nil
	}
	return nil, nil
}

// formatDate 日期字段输出YYYY-MM-DD
func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(DateLayout)
	return &s
}

// optString 查询参数：空字符串视为未传
func optString(s string) mo.Option[string] {
	s = strings.TrimSpace(s)
	if s == "" {
		return mo.None[string]()
	}
	return mo.Some(s)
}
