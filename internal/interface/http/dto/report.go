package dto

import (
	"strings"

	"github.com/samber/lo"

	"github.com/TheJisus28/bookstore-api/internal/domain/order"
	"github.com/TheJisus28/bookstore-api/internal/domain/report"
	apperrors "github.com/TheJisus28/bookstore-api/pkg/errors"
)

// ReportQuery 销售报表参数
// status为逗号分隔的订单状态，未传时统计已发货/已送达/已完成
type ReportQuery struct {
	StartDate string   `form:"startDate" binding:"required" example:"2024-01-01"`
	EndDate   string   `form:"endDate" binding:"required" example:"2024-12-31"`
	Category  string   `form:"category" binding:"omitempty,uuid"`
	Author    string   `form:"author" binding:"omitempty,uuid"`
	Publisher string   `form:"publisher" binding:"omitempty,uuid"`
	Book      string   `form:"book" binding:"omitempty,uuid"`
	MinPrice  *float64 `form:"minPrice" binding:"omitempty,gte=0"`
	MaxPrice  *float64 `form:"maxPrice" binding:"omitempty,gte=0"`
	Status    string   `form:"status" example:"shipped,delivered"`
}

// ToFilter 转换为报表过滤条件
func (q ReportQuery) ToFilter() (report.Filter, error) {
	start, err := parseDate("startDate", q.StartDate)
	if err != nil {
		return report.Filter{}, err
	}
	end, err := parseDate("endDate", q.EndDate)
	if err != nil {
		return report.Filter{}, err
	}
	if end.Before(start) {
		return report.Filter{}, apperrors.ErrInvalidParams.WithMessage("endDate must not be before startDate")
	}
	statuses, err := parseStatuses(q.Status)
	if err != nil {
		return report.Filter{}, err
	}
	return report.Filter{
		StartDate:   start,
		EndDate:     end,
		CategoryID:  optString(q.Category),
		AuthorID:    optString(q.Author),
		PublisherID: optString(q.Publisher),
		BookID:      optString(q.Book),
		MinPrice:    optMap(q.MinPrice, money),
		MaxPrice:    optMap(q.MaxPrice, money),
		Statuses:    statuses,
	}, nil
}

func parseStatuses(raw string) ([]order.Status, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var out []order.Status
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		st, err := order.ParseStatus(part)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return lo.Uniq(out), nil
}
