package migrations

import (
	"twogether/app/models/balancegame"
	"twogether/app/models/content"
	"twogether/app/models/couple"
	"twogether/app/models/fcmtoken"
	"twogether/app/models/holiday"
	"twogether/app/models/schedule"
	"twogether/app/models/tag"
	"twogether/app/models/user"
)

// RegisterTables 返回需要迁移的表的模型列表
func RegisterTables() []interface{} {
	return []interface{}{
		&user.User{},
		&couple.Couple{},
		&content.Content{},
		&schedule.Schedule{},
		&tag.Tag{},
		&tag.TagContentMapping{},
		&balancegame.BalanceGame{},
		&balancegame.Option{},
		&balancegame.UserChoiceOption{},
		&fcmtoken.FcmToken{},
		&holiday.Holiday{},
	}
}
