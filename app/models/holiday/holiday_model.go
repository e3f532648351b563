// Package holiday 法定节假日
package holiday

import (
	"twogether/app/models"
)

// Holiday 同一天可能有多个节日
type Holiday struct {
	models.BaseModel

	Date      models.Date `gorm:"not null;uniqueIndex:uk_holiday_date_name,priority:1" json:"date"`
	Name      string      `gorm:"type:varchar(100);not null;uniqueIndex:uk_holiday_date_name,priority:2" json:"name"`
	IsHoliday bool        `gorm:"not null;default:true" json:"isHoliday"`

	models.CommonTimestampsField
}

// TableName 表名
func (Holiday) TableName() string {
	return "holidays"
}
