package service

import (
	"errors"
)

// ==================== 业务错误分类 ====================

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidState       = errors.New("invalid state")
	ErrConflict           = errors.New("conflict")
	ErrValidation         = errors.New("validation failed")
	ErrServiceUnavailable = errors.New("service unavailable")
)

// Error 携带对外消息的业务错误，Kind 为上面的分类之一
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Message 返回可以直接展示给调用方的错误信息
// 非业务错误（存储故障等）不暴露内部细节
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Internal server error"
}

var (
	errListingNotFound     = newError(ErrNotFound, "Listing not found")
	errListingNotAvailable = newError(ErrInvalidState, "Listing not available")
	errListingAlreadySold  = newError(ErrConflict, "Listing already sold")
	errOrderNotFound       = newError(ErrNotFound, "Order not found")
	errDatabaseUnavailable = newError(ErrServiceUnavailable, "Database not configured")
)
