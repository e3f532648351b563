package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"twogether/app/repositories"
	"twogether/pkg/logger"
)

// CleanupHandler 清理用户的一类数据，返回软删除的条数，重复执行是安全的
type CleanupHandler struct {
	Name string
	Run  func(ctx context.Context, userID uint64) (int64, error)
}

// CleanupService 成员离开情侣或注销后清理其内容
type CleanupService struct {
	handlers []CleanupHandler
}

// NewCleanupService 标签关联、日程、平衡游戏选择、内容依次清理
func NewCleanupService(
	contents *repositories.ContentRepository,
	schedules *repositories.ScheduleRepository,
	tags *repositories.TagRepository,
	games *repositories.BalanceGameRepository,
) *CleanupService {
	return &CleanupService{handlers: []CleanupHandler{
		{Name: "tag_mappings", Run: tags.DeleteMappingsByUser},
		{Name: "schedules", Run: schedules.DeleteByUser},
		{Name: "balance_choices", Run: games.DeleteChoicesByUser},
		{Name: "contents", Run: contents.DeleteByUser},
	}}
}

// Handlers 已注册的清理项
func (s *CleanupService) Handlers() []CleanupHandler {
	return s.handlers
}

// Cleanup 依次执行全部清理项，单项失败不影响其他项
func (s *CleanupService) Cleanup(ctx context.Context, userID uint64) (map[string]int64, error) {
	deleted := make(map[string]int64, len(s.handlers))
	var errs []error
	for _, h := range s.handlers {
		n, err := h.Run(ctx, userID)
		if err != nil {
			errs = append(errs, fmt.Errorf("cleanup %s: %w", h.Name, err))
			continue
		}
		deleted[h.Name] = n
	}

	logger.Info("Cleanup", zap.Uint64("user_id", userID), zap.Any("deleted", deleted), zap.Int("failed", len(errs)))
	return deleted, errors.Join(errs...)
}
