// Package fcm Firebase Cloud Messaging HTTP v1 推送
package fcm

import (
	"context"
	"errors"
	"fmt"
)

// Notification 通知内容
type Notification struct {
	Title    string `json:"title,omitempty"`
	Body     string `json:"body,omitempty"`
	ImageURL string `json:"image,omitempty"`
}

// Message 单个设备的消息
type Message struct {
	Token        string            `json:"token"`
	Notification *Notification     `json:"notification,omitempty"`
	Data         map[string]string `json:"data,omitempty"`
}

// MulticastMessage 多个设备的同一条消息
type MulticastMessage struct {
	Tokens       []string
	Notification *Notification
	Data         map[string]string
}

// SendResponse 单个设备的发送结果
type SendResponse struct {
	Token     string
	MessageID string
	Err       error
}

// Success 是否发送成功
func (r SendResponse) Success() bool {
	return r.Err == nil
}

// BatchResponse 多设备发送结果，Responses 与 Tokens 顺序一致
type BatchResponse struct {
	SuccessCount int
	FailureCount int
	Responses    []SendResponse
}

// Sender 推送发送方
type Sender interface {
	Send(ctx context.Context, message *Message) (string, error)
	SendMulticast(ctx context.Context, message *MulticastMessage) (*BatchResponse, error)
}

// FCM 错误码
const (
	CodeUnregistered     = "UNREGISTERED"
	CodeInvalidArgument  = "INVALID_ARGUMENT"
	CodeQuotaExceeded    = "QUOTA_EXCEEDED"
	CodeUnavailable      = "UNAVAILABLE"
	CodeInternal         = "INTERNAL"
	CodeSenderIDMismatch = "SENDER_ID_MISMATCH"
)

// ErrNoTokens 没有可发送的设备
var ErrNoTokens = errors.New("fcm: no tokens")

// Error FCM 接口返回的错误
type Error struct {
	StatusCode int
	Status     string // google.rpc 状态，如 NOT_FOUND
	ErrorCode  string // FcmError 错误码，如 UNREGISTERED
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("fcm: %d %s %s: %s", e.StatusCode, e.Status, e.ErrorCode, e.Message)
}

// IsInvalidToken 设备令牌已失效，应当删除
func IsInvalidToken(err error) bool {
	var fcmErr *Error
	if !errors.As(err, &fcmErr) {
		return false
	}
	switch fcmErr.ErrorCode {
	case CodeUnregistered, CodeInvalidArgument, CodeSenderIDMismatch:
		return true
	}
	return false
}
