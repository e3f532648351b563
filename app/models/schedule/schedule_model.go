// Package schedule 日程
package schedule

import (
	"time"

	"twogether/app/models"
	"twogether/app/models/content"
)

// Schedule 日程，详情保存在关联的 Content 中
type Schedule struct {
	models.BaseModel

	ContentID uint64    `gorm:"not null;uniqueIndex" json:"contentId"`
	UserID    uint64    `gorm:"not null;index" json:"userId"`
	StartAt   time.Time `gorm:"not null;index" json:"startAt"`
	EndAt     time.Time `gorm:"not null;index" json:"endAt"`
	AllDay    bool      `gorm:"not null;default:false" json:"allDay"`

	Content *content.Content `gorm:"foreignKey:ContentID" json:"content,omitempty"`

	models.CommonTimestampsField
	models.SoftDeletes
}

// TableName 表名
func (Schedule) TableName() string {
	return "schedules"
}
