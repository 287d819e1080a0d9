package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/TheJisus28/bookstore-api/internal/domain/report"
	"github.com/TheJisus28/bookstore-api/internal/interface/http/dto"
	"github.com/TheJisus28/bookstore-api/pkg/response"
)

// ReportHandler 管理员报表
type ReportHandler struct {
	reports report.Service
}

// NewReportHandler 创建报表处理器
func NewReportHandler(reports report.Service) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Sales 按天汇总的销售报表
// @Summary      销售报表
// @Description  status为逗号分隔的订单状态，默认shipped,delivered,completed
// @Tags         报表
// @Produce      json
// @Security     BearerAuth
// @Param        startDate query string true  "开始日期 YYYY-MM-DD"
// @Param        endDate   query string true  "结束日期 YYYY-MM-DD（包含当天）"
// @Param        category  query string false "分类ID"
// @Param        author    query string false "作者ID"
// @Param        publisher query string false "出版社ID"
// @Param        book      query string false "图书ID"
// @Param        minPrice  query number false "最低单价"
// @Param        maxPrice  query number false "最高单价"
// @Param        status    query string false "订单状态"
// @Success      200 {object} response.Response{data=[]report.DailySales}
// @Failure      400 {object} response.Response "参数错误"
// @Router       /reports/sales [get]
func (h *ReportHandler) Sales(c *gin.Context) {
	f, ok := reportFilter(c)
	if !ok {
		return
	}

	rows, err := h.reports.Sales(c.Request.Context(), f)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, rows)
}

// SoldBooks 按图书汇总的销售报表
// @Summary      图书销量报表
// @Tags         报表
// @Produce      json
// @Security     BearerAuth
// @Param        startDate query string true  "开始日期 YYYY-MM-DD"
// @Param        endDate   query string true  "结束日期 YYYY-MM-DD（包含当天）"
// @Param        category  query string false "分类ID"
// @Param        author    query string false "作者ID"
// @Param        publisher query string false "出版社ID"
// @Param        book      query string false "图书ID"
// @Param        minPrice  query number false "最低单价"
// @Param        maxPrice  query number false "最高单价"
// @Param        status    query string false "订单状态"
// @Success      200 {object} response.Response{data=[]report.SoldBook}
// @Router       /reports/sold-books [get]
func (h *ReportHandler) SoldBooks(c *gin.Context) {
	f, ok := reportFilter(c)
	if !ok {
		return
	}

	rows, err := h.reports.SoldBooks(c.Request.Context(), f)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, rows)
}

// BookCatalog 图书目录
// @Summary      图书目录
// @Tags         报表
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=[]report.CatalogEntry}
// @Router       /reports/book-catalog [get]
func (h *ReportHandler) BookCatalog(c *gin.Context) {
	rows, err := h.reports.BookCatalog(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, rows)
}

// OrderSummary 订单概览
// @Summary      订单概览
// @Tags         报表
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=[]report.OrderSummary}
// @Router       /reports/order-summary [get]
func (h *ReportHandler) OrderSummary(c *gin.Context) {
	rows, err := h.reports.OrderSummary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, rows)
}

// CustomerHistory 客户购买历史
// @Summary      客户购买历史
// @Tags         报表
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=[]report.CustomerHistory}
// @Router       /reports/customer-history [get]
func (h *ReportHandler) CustomerHistory(c *gin.Context) {
	rows, err := h.reports.CustomerHistory(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, rows)
}

func reportFilter(c *gin.Context) (report.Filter, bool) {
	var q dto.ReportQuery
	if !bindQuery(c, &q) {
		return report.Filter{}, false
	}
	f, err := q.ToFilter()
	if err != nil {
		response.Error(c, err)
		return report.Filter{}, false
	}
	return f, true
}
