package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"twogether/app/models/schedule"
	"twogether/pkg/database"
)

// ScheduleCursor 日程列表的排序键 (start_at DESC, id DESC)
type ScheduleCursor struct {
	StartAt time.Time
	ID      uint64
}

// ScheduleRepository 日程仓库
type ScheduleRepository struct {
	db *gorm.DB
}

// NewScheduleRepository 创建仓库实例
func NewScheduleRepository(db *gorm.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// Create 创建日程，内容需已先创建
func (r *ScheduleRepository) Create(ctx context.Context, s *schedule.Schedule) error {
	return database.Conn(ctx, r.db).Omit("Content").Create(s).Error
}

// FindByID 同时加载内容
func (r *ScheduleRepository) FindByID(ctx context.Context, id uint64) (*schedule.Schedule, error) {
	var s schedule.Schedule
	err := database.Conn(ctx, r.db).Preload("Content").Where("id = ?", id).First(&s).Error
	return found(&s, err)
}

// List 按开始时间倒序，相同开始时间按 id 倒序
func (r *ScheduleRepository) List(ctx context.Context, ownerIDs []uint64, after *ScheduleCursor, limit int) ([]*schedule.Schedule, error) {
	query := database.Conn(ctx, r.db).Preload("Content").
		Where("user_id IN ?", ownerIDs)
	if after != nil {
		query = query.Where("start_at < ? OR (start_at = ? AND id < ?)", after.StartAt, after.StartAt, after.ID)
	}

	var schedules []*schedule.Schedule
	err := query.Order("start_at DESC").Order("id DESC").Limit(limit).Find(&schedules).Error
	return schedules, err
}

// FindOverlapping 与 [from, to) 有交集的日程，按开始时间升序
func (r *ScheduleRepository) FindOverlapping(ctx context.Context, ownerIDs []uint64, from, to time.Time) ([]*schedule.Schedule, error) {
	var schedules []*schedule.Schedule
	err := database.Conn(ctx, r.db).Preload("Content").
		Where("user_id IN ? AND start_at < ? AND end_at >= ?", ownerIDs, to.UTC(), from.UTC()).
		Order("start_at ASC").Order("id ASC").
		Find(&schedules).Error
	return schedules, err
}

// UpdatePeriod 保存时间段
func (r *ScheduleRepository) UpdatePeriod(ctx context.Context, s *schedule.Schedule) error {
	return database.Conn(ctx, r.db).Model(&schedule.Schedule{}).
		Where("id = ?", s.ID).
		Updates(map[string]interface{}{
			"start_at": s.StartAt,
			"end_at":   s.EndAt,
			"all_day":  s.AllDay,
		}).Error
}

// Delete 软删除
func (r *ScheduleRepository) Delete(ctx context.Context, id uint64) error {
	return database.Conn(ctx, r.db).Delete(&schedule.Schedule{}, id).Error
}

// DeleteByUser 软删除用户的全部日程
func (r *ScheduleRepository) DeleteByUser(ctx context.Context, userID uint64) (int64, error) {
	result := database.Conn(ctx, r.db).Where("user_id = ?", userID).Delete(&schedule.Schedule{})
	return result.RowsAffected, result.Error
}
