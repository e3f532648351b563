// Package models 模型通用属性和方法
package models

import (
	"time"

	"gorm.io/gorm"
)

// BaseModel 模型基类
type BaseModel struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement;" json:"id,omitempty"`
}

// CommonTimestampsField 时间戳
type CommonTimestampsField struct {
	CreatedAt time.Time `gorm:"column:created_at;index;" json:"createdAt,omitempty"`
	UpdatedAt time.Time `gorm:"column:updated_at;index;" json:"updatedAt,omitempty"`
}

// SoftDeletes 软删除
type SoftDeletes struct {
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index;" json:"-"`
}

// IsDeleted 是否已被软删除
func (s SoftDeletes) IsDeleted() bool {
	return s.DeletedAt.Valid
}
