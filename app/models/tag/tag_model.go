// Package tag 标签以及标签和内容的关联
package tag

import (
	"twogether/app/models"
)

// Tag 用户自己的标签，同一用户下名称唯一
type Tag struct {
	models.BaseModel

	UserID uint64 `gorm:"not null;uniqueIndex:uk_tags_user_name,priority:1" json:"userId"`
	Name   string `gorm:"type:varchar(40);not null;uniqueIndex:uk_tags_user_name,priority:2" json:"name"`

	models.CommonTimestampsField
	models.SoftDeletes
}

// TableName 表名
func (Tag) TableName() string {
	return "tags"
}

// TagContentMapping 标签和内容的多对多关联
type TagContentMapping struct {
	models.BaseModel

	TagID     uint64 `gorm:"not null;uniqueIndex:uk_tag_content,priority:1" json:"tagId"`
	ContentID uint64 `gorm:"not null;uniqueIndex:uk_tag_content,priority:2;index" json:"contentId"`

	models.CommonTimestampsField
	models.SoftDeletes
}

// TableName 表名
func (TagContentMapping) TableName() string {
	return "tag_content_mappings"
}
