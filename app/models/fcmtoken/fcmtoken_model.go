// Package fcmtoken 设备推送令牌
package fcmtoken

import (
	"time"

	"twogether/app/models"
)

// FcmToken 每个用户每台设备一个令牌
type FcmToken struct {
	models.BaseModel

	UserID   uint64 `gorm:"not null;uniqueIndex:uk_fcm_user_device,priority:1" json:"userId"`
	DeviceID string `gorm:"type:varchar(100);not null;uniqueIndex:uk_fcm_user_device,priority:2" json:"deviceId"`
	Token    string `gorm:"type:varchar(512);not null" json:"token"`

	models.CommonTimestampsField
}

// TableName 表名
func (FcmToken) TableName() string {
	return "fcm_tokens"
}

// DefaultStaleAfter 超过一个月未刷新的令牌视为失效
const DefaultStaleAfter = 30 * 24 * time.Hour

// IsStale 是否已失效
func (t *FcmToken) IsStale(now time.Time, staleAfter time.Duration) bool {
	return now.Sub(t.UpdatedAt) > staleAfter
}
