// Package couple 情侣
package couple

import (
	"twogether/app/models"
	"twogether/app/models/user"
)

// Couple 情侣，成员通过 users.couple_id 关联，恰好 0 或 2 人
type Couple struct {
	models.BaseModel

	StartDate     *models.Date `json:"startDate,omitempty"`
	SharedMessage *string      `gorm:"type:varchar(200)" json:"sharedMessage,omitempty"`
	Status        Status       `gorm:"type:varchar(20);not null;index" json:"status"`

	// Members 由仓储层按 couple_id 加载
	Members []*user.User `gorm:"-" json:"members,omitempty"`

	models.CommonTimestampsField
	models.SoftDeletes
}

// TableName 表名
func (Couple) TableName() string {
	return "couples"
}
