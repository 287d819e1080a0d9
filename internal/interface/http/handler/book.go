package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/samber/mo"

	appbook "github.com/TheJisus28/bookstore-api/internal/application/book"
	"github.com/TheJisus28/bookstore-api/internal/domain/book"
	"github.com/TheJisus28/bookstore-api/internal/interface/http/dto"
	"github.com/TheJisus28/bookstore-api/pkg/pagination"
	"github.com/TheJisus28/bookstore-api/pkg/response"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	catalog *appbook.CatalogUseCase
	books   book.Service
}

// NewBookHandler 创建图书处理器
func NewBookHandler(catalog *appbook.CatalogUseCase, books book.Service) *BookHandler {
	return &BookHandler{catalog: catalog, books: books}
}

// List 图书列表（只含上架图书）
// @Summary      图书列表
// @Description  按书名排序，search匹配书名或ISBN
// @Tags         图书
// @Produce      json
// @Param        page   query int    false "页码"
// @Param        limit  query int    false "每页条数"
// @Param        search query string false "关键字"
// @Success      200 {object} response.Response{data=pagination.Page[dto.BookResponse]}
// @Router       /books [get]
func (h *BookHandler) List(c *gin.Context) {
	h.list(c, false)
}

// AdminList 图书列表（含下架图书）
// @Summary      图书列表（管理员）
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        page   query int    false "页码"
// @Param        limit  query int    false "每页条数"
// @Param        search query string false "关键字"
// @Success      200 {object} response.Response{data=pagination.Page[dto.BookResponse]}
// @Router       /books/admin [get]
func (h *BookHandler) AdminList(c *gin.Context) {
	h.list(c, true)
}

func (h *BookHandler) list(c *gin.Context, includeInactive bool) {
	var q dto.BookListQuery
	if !bindQuery(c, &q) {
		return
	}

	filter := book.ListFilter{IncludeInactive: includeInactive}
	if q.Search != "" {
		filter.Search = mo.Some(q.Search)
	}
	page, err := h.catalog.List(c.Request.Context(), filter, q.Params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, pagination.Map(page, dto.NewBookResponse))
}

// Search 高级搜索
// @Summary      高级搜索
// @Description  所有条件可组合，范围条件两端包含；只返回上架图书
// @Tags         图书
// @Produce      json
// @Param        search    query string  false "书名/ISBN/描述关键字"
// @Param        category  query string  false "分类ID"
// @Param        author    query string  false "作者ID"
// @Param        publisher query string  false "出版社ID"
// @Param        minPrice  query number  false "最低价格"
// @Param        maxPrice  query number  false "最高价格"
// @Param        minRating query number  false "最低平均评分"
// @Param        language  query string  false "语言"
// @Param        minStock  query int     false "最低库存"
// @Param        maxStock  query int     false "最高库存"
// @Param        startDate query string  false "出版日期起 YYYY-MM-DD"
// @Param        endDate   query string  false "出版日期止 YYYY-MM-DD"
// @Param        sortBy    query string  false "排序字段" Enums(title, price, date, rating)
// @Param        sortOrder query string  false "排序方向" Enums(ASC, DESC)
// @Param        page      query int     false "页码"
// @Param        limit     query int     false "每页条数"
// @Success      200 {object} response.Response{data=pagination.Page[book.SearchResult]}
// @Failure      400 {object} response.Response "参数错误"
// @Router       /books/search/advanced [get]
func (h *BookHandler) Search(c *gin.Context) {
	var q dto.BookSearchQuery
	if !bindQuery(c, &q) {
		return
	}
	criteria, err := q.ToCriteria()
	if err != nil {
		response.Error(c, err)
		return
	}

	page, err := h.catalog.Search(c.Request.Context(), criteria, q.Params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page)
}

// Bestsellers 畅销书
// @Summary      畅销书
// @Description  只统计已发货/已送达/已完成订单
// @Tags         图书
// @Produce      json
// @Param        limit     query int    false "条数（默认10）"
// @Param        startDate query string false "开始日期"
// @Param        endDate   query string false "结束日期"
// @Success      200 {object} response.Response{data=[]book.Bestseller}
// @Router       /books/bestsellers [get]
func (h *BookHandler) Bestsellers(c *gin.Context) {
	var q dto.BestsellerQuery
	if !bindQuery(c, &q) {
		return
	}
	query, err := q.ToQuery()
	if err != nil {
		response.Error(c, err)
		return
	}

	list, err := h.books.Bestsellers(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

// Get 图书详情
// @Summary      图书详情
// @Tags         图书
// @Produce      json
// @Param        id path string true "图书ID"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /books/{id} [get]
func (h *BookHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	b, err := h.catalog.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewBookResponse(b))
}

// Create 创建图书
// @Summary      创建图书
// @Description  primary_author_id默认为author_ids的第一个
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateBookRequest true "图书信息"
// @Success      201 {object} response.Response{data=dto.BookResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      404 {object} response.Response "分类/出版社/作者不存在"
// @Failure      409 {object} response.Response "ISBN已存在"
// @Router       /books [post]
func (h *BookHandler) Create(c *gin.Context) {
	var req dto.CreateBookRequest
	if !bindJSON(c, &req) {
		return
	}
	b, assignment, err := req.ToEntity()
	if err != nil {
		response.Error(c, err)
		return
	}

	created, err := h.catalog.Create(c.Request.Context(), b, assignment)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.NewBookResponse(created))
}

// Update 更新图书
// @Summary      更新图书
// @Description  只更新出现的字段；author_ids出现时整体替换作者
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path string                true "图书ID"
// @Param        request body dto.UpdateBookRequest true "更新内容"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Failure      409 {object} response.Response "ISBN已存在"
// @Router       /books/{id} [put]
func (h *BookHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateBookRequest
	if !bindJSON(c, &req) {
		return
	}
	in, err := req.ToInput()
	if err != nil {
		response.Error(c, err)
		return
	}

	b, err := h.catalog.Update(c.Request.Context(), id, in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewBookResponse(b))
}

// Delete 删除图书
// @Summary      删除图书
// @Description  同时删除作者关联与购物车项
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "图书ID"
// @Success      200 {object} response.Response{data=dto.MessageResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /books/{id} [delete]
func (h *BookHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.books.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.MessageResponse{Message: "Book deleted"})
}

// Authors 图书的作者
// @Summary      图书作者列表
// @Tags         图书
// @Produce      json
// @Param        id path string true "图书ID"
// @Success      200 {object} response.Response{data=[]book.AuthorLink}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /books/{id}/authors [get]
func (h *BookHandler) Authors(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	links, err := h.books.AuthorLinks(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, links)
}

// AddAuthor 为图书添加作者
// @Summary      添加作者
// @Description  is_primary为true时取消其他主作者
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path string               true "图书ID"
// @Param        request body dto.AddAuthorRequest true "作者"
// @Success      201 {object} response.Response{data=[]book.AuthorLink}
// @Failure      400 {object} response.Response "作者已关联"
// @Failure      404 {object} response.Response "图书或作者不存在"
// @Router       /books/{id}/authors [post]
func (h *BookHandler) AddAuthor(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.AddAuthorRequest
	if !bindJSON(c, &req) {
		return
	}

	links, err := h.catalog.AddAuthor(c.Request.Context(), id, req.AuthorID, req.IsPrimary)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, links)
}

// RemoveAuthor 移除图书作者
// @Summary      移除作者
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        id       path string true "图书ID"
// @Param        authorId path string true "作者ID"
// @Success      200 {object} response.Response{data=dto.MessageResponse}
// @Failure      404 {object} response.Response "关联不存在"
// @Router       /books/{id}/authors/{authorId} [delete]
func (h *BookHandler) RemoveAuthor(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	authorID, ok := pathID(c, "authorId")
	if !ok {
		return
	}

	if err := h.books.RemoveAuthor(c.Request.Context(), id, authorID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.MessageResponse{Message: "Author removed from book"})
}
