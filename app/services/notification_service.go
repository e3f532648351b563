package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"twogether/app/models/fcmtoken"
	"twogether/app/repositories"
	"twogether/pkg/apperror"
	"twogether/pkg/fcm"
	"twogether/pkg/logger"
	"twogether/pkg/metrics"
)

// 推送结果，用于指标
const (
	pushSent    = "sent"
	pushFailed  = "failed"
	pushInvalid = "invalid_token"
	pushSkipped = "no_token"
)

// NotificationService 推送令牌登记和推送发送
// 推送是业务操作的附带效果，发送失败只记录日志
type NotificationService struct {
	tokens     *repositories.FcmTokenRepository
	sender     fcm.Sender
	staleAfter time.Duration
	now        func() time.Time
}

// NewNotificationService staleAfter 之前刷新的令牌不再推送
func NewNotificationService(tokens *repositories.FcmTokenRepository, sender fcm.Sender, staleAfter time.Duration) *NotificationService {
	if staleAfter <= 0 {
		staleAfter = fcmtoken.DefaultStaleAfter
	}
	return &NotificationService{tokens: tokens, sender: sender, staleAfter: staleAfter, now: time.Now}
}

// WithClock 替换时钟
func (s *NotificationService) WithClock(now func() time.Time) *NotificationService {
	s.now = now
	return s
}

// RegisterToken 登记设备令牌，令牌不变也会刷新时间
func (s *NotificationService) RegisterToken(ctx context.Context, userID uint64, deviceID, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return apperror.ErrInvalidFcmToken
	}
	now := s.now().UTC()
	t := &fcmtoken.FcmToken{UserID: userID, DeviceID: deviceID, Token: token}
	t.CreatedAt = now
	t.UpdatedAt = now
	if err := s.tokens.Upsert(ctx, t); err != nil {
		return fmt.Errorf("upsert fcm token: %w", err)
	}
	return nil
}

// PurgeStale 删除失效的令牌
func (s *NotificationService) PurgeStale(ctx context.Context) (int64, error) {
	return s.tokens.DeleteStale(ctx, s.now().UTC().Add(-s.staleAfter))
}

// Notify 向用户的有效设备推送，返回成功条数
func (s *NotificationService) Notify(ctx context.Context, userIDs []uint64, notification fcm.Notification, data map[string]string) int {
	tokens, err := s.tokens.FindActive(ctx, userIDs, s.now().UTC().Add(-s.staleAfter))
	if err != nil {
		logger.Error("Notification", zap.String("action", "find active tokens"), zap.Uint64s("user_ids", userIDs), zap.Error(err))
		return 0
	}

	switch len(tokens) {
	case 0:
		metrics.RecordPush(pushSkipped, 1)
		logger.Debug("Notification", zap.String("event", "no active token"), zap.Uint64s("user_ids", userIDs))
		return 0
	case 1:
		return s.sendOne(ctx, tokens[0].Token, notification, data)
	default:
		values := make([]string, 0, len(tokens))
		for _, t := range tokens {
			values = append(values, t.Token)
		}
		return s.sendMany(ctx, values, notification, data)
	}
}

func (s *NotificationService) sendOne(ctx context.Context, token string, notification fcm.Notification, data map[string]string) int {
	_, err := s.sender.Send(ctx, &fcm.Message{Token: token, Notification: &notification, Data: data})
	if err == nil {
		metrics.RecordPush(pushSent, 1)
		return 1
	}
	s.handleFailures(ctx, []fcm.SendResponse{{Token: token, Err: err}})
	return 0
}

func (s *NotificationService) sendMany(ctx context.Context, tokens []string, notification fcm.Notification, data map[string]string) int {
	batch, err := s.sender.SendMulticast(ctx, &fcm.MulticastMessage{Tokens: tokens, Notification: &notification, Data: data})
	if err != nil {
		metrics.RecordPush(pushFailed, len(tokens))
		logger.Warn("Notification", zap.String("action", "send multicast"), zap.Int("tokens", len(tokens)), zap.Error(err))
		return 0
	}

	metrics.RecordPush(pushSent, batch.SuccessCount)
	failures := make([]fcm.SendResponse, 0, batch.FailureCount)
	for _, r := range batch.Responses {
		if !r.Success() {
			failures = append(failures, r)
		}
	}
	s.handleFailures(ctx, failures)
	return batch.SuccessCount
}

// handleFailures 删除无效令牌，其余失败只记录
func (s *NotificationService) handleFailures(ctx context.Context, failures []fcm.SendResponse) {
	invalid := make([]string, 0, len(failures))
	for _, f := range failures {
		if fcm.IsInvalidToken(f.Err) {
			invalid = append(invalid, f.Token)
			continue
		}
		metrics.RecordPush(pushFailed, 1)
		logger.Warn("Notification", zap.String("action", "send"), zap.Error(f.Err))
	}
	if len(invalid) == 0 {
		return
	}

	metrics.RecordPush(pushInvalid, len(invalid))
	deleted, err := s.tokens.DeleteTokens(ctx, invalid)
	if err != nil {
		logger.Error("Notification", zap.String("action", "delete invalid tokens"), zap.Error(err))
		return
	}
	logger.Info("Notification", zap.String("event", "invalid tokens deleted"), zap.Int64("count", deleted))
}
