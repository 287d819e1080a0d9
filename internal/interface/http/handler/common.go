// Package handler HTTP处理器
// 处理器只负责参数绑定、调用服务/用例、转换响应，权限由路由上的中间件统一控制
package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/TheJisus28/bookstore-api/pkg/errors"
	"github.com/TheJisus28/bookstore-api/pkg/pagination"
	"github.com/TheJisus28/bookstore-api/pkg/response"
)

// bindJSON 绑定请求体，失败时已写入400响应
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.ValidationError(c, err)
		return false
	}
	return true
}

// bindQuery 绑定查询参数，失败时已写入400响应
func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		response.ValidationError(c, err)
		return false
	}
	return true
}

// pathID 读取UUID路径参数，格式错误返回400
func pathID(c *gin.Context, name string) (string, bool) {
	id := c.Param(name)
	if _, err := uuid.Parse(id); err != nil {
		response.Error(c, apperrors.ErrInvalidParams.WithMessage("Invalid "+name))
		return "", false
	}
	return id, true
}

// pageParams 分页参数
func pageParams(c *gin.Context) (pagination.Params, bool) {
	var p pagination.Params
	if !bindQuery(c, &p) {
		return p, false
	}
	return p, true
}
