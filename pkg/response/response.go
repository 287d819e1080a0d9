package response

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	apperrors "github.com/TheJisus28/bookstore-api/pkg/errors"
)

// Response 统一响应结构
// 设计说明：
// 1. Code是业务错误码，0表示成功
// 2. Message是用户友好的提示信息
// 3. Data是业务数据，失败时省略
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// FieldError 单个字段的校验错误
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Success 成功响应（200）
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Created 创建成功响应（201）
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error 错误响应（自动处理AppError）
// 用法：
//
//	book, err := h.bookService.Get(ctx, id)
//	if err != nil {
//	    response.Error(c, err)
//	    return
//	}
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)
	status := appErr.HTTPStatus()

	// 内部错误只写日志，不返回给客户端
	if appErr.Err != nil || status >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("code", appErr.Code),
			zap.Error(err),
		)
	}

	c.AbortWithStatusJSON(status, Response{
		Code:    appErr.Code,
		Message: appErr.Message,
	})
}

// ErrorWithCode 自定义错误码和消息（HTTP状态码由错误码推导）
func ErrorWithCode(c *gin.Context, code int, message string) {
	Error(c, apperrors.New(code, message))
}

// ValidationError 参数绑定/校验失败响应（400）
// validator错误按字段返回，其余（JSON语法、未知字段、类型不匹配）合并为一条
func ValidationError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, FieldError{
				Field:   fe.Field(),
				Rule:    fe.Tag(),
				Message: fieldMessage(fe),
			})
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, Response{
			Code:    apperrors.ErrCodeInvalidParams,
			Message: "Validation failed",
			Data:    fields,
		})
		return
	}

	c.AbortWithStatusJSON(http.StatusBadRequest, Response{
		Code:    apperrors.ErrCodeBindError,
		Message: "Malformed request: " + err.Error(),
	})
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "min", "gte":
		return fe.Field() + " must be at least " + fe.Param()
	case "max", "lte":
		return fe.Field() + " must be at most " + fe.Param()
	case "oneof":
		return fe.Field() + " must be one of [" + fe.Param() + "]"
	case "email":
		return fe.Field() + " must be a valid email"
	case "uuid", "uuid4":
		return fe.Field() + " must be a valid UUID"
	default:
		return fe.Field() + " is invalid (" + fe.Tag() + ")"
	}
}

// SetupBinding 配置gin绑定行为
// 1. JSON请求体拒绝未声明字段
// 2. 校验错误的字段名使用json/form标签名
func SetupBinding() {
	binding.EnableDecoderDisallowUnknownFields = true

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			for _, tag := range []string{"json", "form", "uri"} {
				name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return field.Name
		})
	}
}
