package handler

import (
	"github.com/gin-gonic/gin"

	appreview "github.com/TheJisus28/bookstore-api/internal/application/review"
	"github.com/TheJisus28/bookstore-api/internal/domain/review"
	"github.com/TheJisus28/bookstore-api/internal/interface/http/dto"
	"github.com/TheJisus28/bookstore-api/internal/interface/http/middleware"
	"github.com/TheJisus28/bookstore-api/pkg/pagination"
	"github.com/TheJisus28/bookstore-api/pkg/response"
)

// ReviewHandler 图书评价
type ReviewHandler struct {
	reviews review.Service
	usecase *appreview.ReviewUseCase
}

// NewReviewHandler 创建评价处理器
func NewReviewHandler(reviews review.Service, usecase *appreview.ReviewUseCase) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, usecase: usecase}
}

// ListByBook 图书的评价
// @Summary      图书评价列表
// @Tags         评价
// @Produce      json
// @Param        bookId path  string true  "图书ID"
// @Param        page   query int    false "页码"
// @Param        limit  query int    false "每页条数"
// @Success      200 {object} response.Response{data=pagination.Page[dto.ReviewResponse]}
// @Router       /reviews/book/{bookId} [get]
func (h *ReviewHandler) ListByBook(c *gin.Context) {
	bookID, ok := pathID(c, "bookId")
	if !ok {
		return
	}
	p, ok := pageParams(c)
	if !ok {
		return
	}

	page, err := h.reviews.ListByBook(c.Request.Context(), bookID, p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, pagination.Map(page, dto.NewReviewViewResponse))
}

// CanReview 评价资格
// @Summary      是否可以评价
// @Tags         评价
// @Produce      json
// @Security     BearerAuth
// @Param        bookId path string true "图书ID"
// @Success      200 {object} response.Response{data=review.Eligibility}
// @Router       /reviews/can-review/{bookId} [get]
func (h *ReviewHandler) CanReview(c *gin.Context) {
	bookID, ok := pathID(c, "bookId")
	if !ok {
		return
	}

	e, err := h.usecase.Eligibility(c.Request.Context(), middleware.GetUserID(c), bookID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, e)
}

// Get 评价详情
// @Summary      评价详情
// @Tags         评价
// @Produce      json
// @Param        id path string true "评价ID"
// @Success      200 {object} response.Response{data=dto.ReviewResponse}
// @Failure      404 {object} response.Response "评价不存在"
// @Router       /reviews/{id} [get]
func (h *ReviewHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	r, err := h.reviews.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewReviewResponse(r))
}

// Create 发表评价
// @Summary      发表评价
// @Description  需要已购买（已发货/已送达/已完成），每本书只能评价一次
// @Tags         评价
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateReviewRequest true "评价"
// @Success      201 {object} response.Response{data=dto.ReviewResponse}
// @Failure      400 {object} response.Response "未购买或已评价"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /reviews [post]
func (h *ReviewHandler) Create(c *gin.Context) {
	var req dto.CreateReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	r, err := h.usecase.Create(c.Request.Context(), req.ToCommand(middleware.GetUserID(c)))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.NewReviewResponse(r))
}

// Update 修改评价（本人）
// @Summary      修改评价
// @Tags         评价
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path string                  true "评价ID"
// @Param        request body dto.UpdateReviewRequest true "更新内容"
// @Success      200 {object} response.Response{data=dto.ReviewResponse}
// @Failure      403 {object} response.Response "不是本人评价"
// @Failure      404 {object} response.Response "评价不存在"
// @Router       /reviews/{id} [put]
func (h *ReviewHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	r, err := h.reviews.Update(c.Request.Context(), id, middleware.GetUserID(c), req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewReviewResponse(r))
}

// Delete 删除评价（本人）
// @Summary      删除评价
// @Tags         评价
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "评价ID"
// @Success      200 {object} response.Response{data=dto.MessageResponse}
// @Failure      403 {object} response.Response "不是本人评价"
// @Failure      404 {object} response.Response "评价不存在"
// @Router       /reviews/{id} [delete]
func (h *ReviewHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.reviews.Delete(c.Request.Context(), id, middleware.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.MessageResponse{Message: "Review deleted"})
}
