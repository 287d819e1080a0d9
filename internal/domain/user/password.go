package user

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/TheJisus28/bookstore-api/pkg/errors"
)

// PasswordCost bcrypt cost
const PasswordCost = bcrypt.DefaultCost

// HashPassword bcrypt加密（自动加盐）
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), PasswordCost)
	if err != nil {
		return "", apperrors.Wrap(err, "Failed to hash password")
	}
	return string(hash), nil
}

// CheckPassword 校验明文密码
// 不匹配返回ErrInvalidCredentials，哈希损坏等其他错误按内部错误处理
func CheckPassword(hash, plain string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	if err == nil {
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return apperrors.ErrInvalidCredentials
	}
	return apperrors.Wrap(err, "Failed to verify password")
}
