// Package balancegame 每日平衡游戏
package balancegame

import (
	"twogether/app/models"
)

// BalanceGame 每天一题
type BalanceGame struct {
	models.BaseModel

	GameDate models.Date `gorm:"not null;uniqueIndex" json:"gameDate"`
	Question string      `gorm:"type:varchar(200);not null" json:"question"`

	Options []Option `gorm:"foreignKey:GameID" json:"options,omitempty"`

	models.CommonTimestampsField
	models.SoftDeletes
}

// TableName 表名
func (BalanceGame) TableName() string {
	return "balance_games"
}

// Option 选项
type Option struct {
	models.BaseModel

	GameID  uint64 `gorm:"not null;index" json:"gameId"`
	Content string `gorm:"type:varchar(100);not null" json:"content"`

	models.CommonTimestampsField
	models.SoftDeletes
}

// TableName 表名
func (Option) TableName() string {
	return "balance_game_options"
}

// UserChoiceOption 用户的选择，每个用户每题只有一个选择
type UserChoiceOption struct {
	models.BaseModel

	UserID   uint64 `gorm:"not null;uniqueIndex:uk_choice_user_game,priority:1" json:"userId"`
	GameID   uint64 `gorm:"not null;uniqueIndex:uk_choice_user_game,priority:2;index" json:"gameId"`
	OptionID uint64 `gorm:"not null" json:"optionId"`

	models.CommonTimestampsField
	models.SoftDeletes
}

// TableName 表名
func (UserChoiceOption) TableName() string {
	return "user_choice_options"
}
