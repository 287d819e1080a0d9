package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError 自定义应用错误
// 设计说明：
// 1. Code是业务错误码，前三位与HTTP状态码一致（40400 → 404）
// 2. Message是返回给客户端的提示信息
// 3. Err是内部错误，仅记录到日志，不返回给客户端
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatus 由错误码推导HTTP状态码
func (e *AppError) HTTPStatus() int {
	status := e.Code / 100
	if status < http.StatusBadRequest || status > 599 {
		return http.StatusInternalServerError
	}
	return status
}

// WithMessage 复制错误并替换提示信息（保留错误码）
func (e *AppError) WithMessage(message string) *AppError {
	return &AppError{Code: e.Code, Message: message, Err: e.Err}
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装系统错误（如数据库错误、网络错误）
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// Wrapf 格式化包装错误
func Wrapf(err error, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// =========================================
// 错误码定义
// =========================================
// 规范：错误码/100 即HTTP状态码
// - 400xx: 参数错误、业务规则校验失败
// - 401xx: 未认证
// - 403xx: 无权限
// - 404xx: 资源不存在
// - 409xx: 唯一键冲突
// - 500xx: 服务端错误

const (
	ErrCodeInternal       = 50000
	ErrCodeDatabaseError  = 50001
	ErrCodeRedisError     = 50002
	ErrCodeMessagingError = 50003

	ErrCodeBadRequest         = 40000
	ErrCodeInsufficientStock  = 40001
	ErrCodeInvalidOrderStatus = 40002
	ErrCodeInvalidParams      = 40010
	ErrCodeBindError          = 40011

	ErrCodeUnauthorized       = 40100
	ErrCodeInvalidToken       = 40101
	ErrCodeTokenExpired       = 40102
	ErrCodeInvalidCredentials = 40103

	ErrCodeForbidden = 40300

	ErrCodeNotFound = 40400

	ErrCodeConflict       = 40900
	ErrCodeEmailDuplicate = 40901
	ErrCodeISBNDuplicate  = 40902
	ErrCodeDuplicateEntry = 40909
)

// =========================================
// 预定义错误
// =========================================

var (
	ErrInternal      = New(ErrCodeInternal, "Internal server error")
	ErrDatabaseError = New(ErrCodeDatabaseError, "Database error")
	ErrRedisError    = New(ErrCodeRedisError, "Cache service error")

	ErrUnauthorized       = New(ErrCodeUnauthorized, "Unauthorized")
	ErrInvalidToken       = New(ErrCodeInvalidToken, "Invalid token")
	ErrTokenExpired       = New(ErrCodeTokenExpired, "Token expired")
	ErrTokenRevoked       = New(ErrCodeInvalidToken, "Token has been revoked")
	ErrInvalidCredentials = New(ErrCodeInvalidCredentials, "Invalid credentials")
	ErrForbidden          = New(ErrCodeForbidden, "Forbidden resource")

	ErrNotFound       = New(ErrCodeNotFound, "Resource not found")
	ErrDuplicateEntry = New(ErrCodeDuplicateEntry, "Resource already exists")

	ErrInvalidParams = New(ErrCodeInvalidParams, "Invalid parameters")
	ErrBindError     = New(ErrCodeBindError, "Malformed request body")
)

// =========================================
// 辅助函数
// =========================================

// IsAppError 判断是否为AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, "Internal server error")
}

// HasCode 判断错误链中是否包含指定错误码
func HasCode(err error, code int) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// BadRequest 业务规则错误的快捷构造
func BadRequest(message string) *AppError {
	return New(ErrCodeBadRequest, message)
}

// NotFound 资源不存在的快捷构造
func NotFound(message string) *AppError {
	return New(ErrCodeNotFound, message)
}

// Forbidden 无权限的快捷构造
func Forbidden(message string) *AppError {
	return New(ErrCodeForbidden, message)
}

// Conflict 唯一键冲突的快捷构造
func Conflict(message string) *AppError {
	return New(ErrCodeConflict, message)
}
