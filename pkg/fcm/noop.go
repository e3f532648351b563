package fcm

import (
	"context"

	"go.uber.org/zap"

	"twogether/pkg/logger"
)

// NoopSender 未配置 Firebase 时使用，只记录日志
type NoopSender struct{}

var _ Sender = NoopSender{}

// Send 记录日志
func (NoopSender) Send(_ context.Context, message *Message) (string, error) {
	logger.Debug("FCM", zap.String("sender", "noop"), zap.Any("notification", message.Notification))
	return "", nil
}

// SendMulticast 记录日志，全部视为成功
func (NoopSender) SendMulticast(_ context.Context, message *MulticastMessage) (*BatchResponse, error) {
	logger.Debug("FCM", zap.String("sender", "noop"), zap.Int("tokens", len(message.Tokens)), zap.Any("notification", message.Notification))
	responses := make([]SendResponse, 0, len(message.Tokens))
	for _, token := range message.Tokens {
		responses = append(responses, SendResponse{Token: token})
	}
	return &BatchResponse{SuccessCount: len(responses), Responses: responses}, nil
}
