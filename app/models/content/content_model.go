// Package content 备忘录和日程共用的内容
package content

import (
	"twogether/app/models"
)

// Detail 内容详情，标题和描述不能同时为空
type Detail struct {
	Title       string `gorm:"type:varchar(100);not null;default:''" json:"title"`
	Description string `gorm:"type:text;not null;default:''" json:"description"`
	Completed   bool   `gorm:"not null;default:false" json:"completed"`
}

// Content 内容
type Content struct {
	models.BaseModel

	UserID      uint64      `gorm:"not null;index" json:"userId"`
	Detail      Detail      `gorm:"embedded" json:"detail"`
	Type        Type        `gorm:"type:varchar(20);not null;index" json:"type"`
	Perspective Perspective `gorm:"type:varchar(20);not null" json:"ownerType"`
	Version     uint64      `gorm:"not null;default:0" json:"version"`

	models.CommonTimestampsField
	models.SoftDeletes
}

// TableName 表名
func (Content) TableName() string {
	return "contents"
}
