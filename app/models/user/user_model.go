// Package user 存放用户 Model 相关逻辑
package user

import (
	"twogether/app/models"
	"twogether/pkg/oauth"
)

// User 用户模型
// 平台 + 平台用户 id 唯一，注销时改写 platform_user_id 以释放这个组合
type User struct {
	models.BaseModel

	Email          *string        `gorm:"type:varchar(255);uniqueIndex" json:"email,omitempty"`
	BirthDay       *models.Date   `json:"birthDay,omitempty"`
	Platform       oauth.Platform `gorm:"type:varchar(20);not null;uniqueIndex:uk_users_platform_user,priority:1" json:"loginPlatform"`
	PlatformUserID string         `gorm:"type:varchar(255);not null;uniqueIndex:uk_users_platform_user,priority:2" json:"-"`
	Nickname       *string        `gorm:"type:varchar(40)" json:"nickname,omitempty"`
	Gender         *Gender        `gorm:"type:varchar(10)" json:"gender,omitempty"`
	Status         Status         `gorm:"type:varchar(20);not null;index" json:"status"`
	CoupleID       *uint64        `gorm:"index" json:"coupleId,omitempty"`

	models.CommonTimestampsField
	models.SoftDeletes
}

// TableName 表名
func (User) TableName() string {
	return "users"
}
