package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"twogether/app/models"
	"twogether/app/models/holiday"
	"twogether/pkg/database"
)

// HolidayRepository 节假日仓库
type HolidayRepository struct {
	db *gorm.DB
}

// NewHolidayRepository 创建仓库实例
func NewHolidayRepository(db *gorm.DB) *HolidayRepository {
	return &HolidayRepository{db: db}
}

// Upsert 按 (date, name) 写入或更新
func (r *HolidayRepository) Upsert(ctx context.Context, holidays []*holiday.Holiday) error {
	if len(holidays) == 0 {
		return nil
	}
	return database.Conn(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}, {Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"is_holiday", "updated_at"}),
	}).Create(&holidays).Error
}

// FindBetween [from, to] 闭区间内的节假日，按日期升序
func (r *HolidayRepository) FindBetween(ctx context.Context, from, to models.Date) ([]*holiday.Holiday, error) {
	holidays := make([]*holiday.Holiday, 0)
	err := database.Conn(ctx, r.db).
		Where("date >= ? AND date <= ?", from, to).
		Order("date ASC").Order("id ASC").
		Find(&holidays).Error
	return holidays, err
}
