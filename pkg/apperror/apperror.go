// Package apperror 定义带错误码的业务错误
//
// 每个业务错误携带稳定的错误码、HTTP 状态码以及客户端展示方式（TOAST/DIALOG），
// 由 response.Error 统一转换为响应信封。错误码是客户端兼容性的一部分，不要随意修改。
package apperror

import (
	"errors"
	"fmt"
)

// UIType 客户端展示方式
type UIType string

const (
	UITypeToast  UIType = "TOAST"
	UITypeDialog UIType = "DIALOG"
)

// Error 业务错误
type Error struct {
	Code        string
	Status      int
	Message     string
	Description string
	UIType      UIType
	cause       error
}

// New 定义一个业务错误
func New(code string, status int, uiType UIType, message string) *Error {
	return &Error{
		Code:    code,
		Status:  status,
		Message: message,
		UIType:  uiType,
	}
}

// Error 实现 error 接口
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap 支持 errors.Is / errors.As 继续向下查找
func (e *Error) Unwrap() error {
	return e.cause
}

// Is 按错误码比较，使预定义的错误变量可以直接用于 errors.Is
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithCause 返回附带底层原因的副本
func (e *Error) WithCause(err error) *Error {
	clone := *e
	clone.cause = err
	return &clone
}

// WithDescription 返回附带补充说明的副本
func (e *Error) WithDescription(description string) *Error {
	clone := *e
	clone.Description = description
	return &clone
}

// DebugMessage 调试信息，包含底层原因
func (e *Error) DebugMessage() string {
	if e.cause == nil {
		return e.Message
	}
	return e.cause.Error()
}

// As 从错误链中取出业务错误
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
