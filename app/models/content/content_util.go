package content

import (
	"strings"
	"unicode/utf8"

	"twogether/pkg/apperror"
)

// Type 内容类型
type Type string

const (
	TypeMemo     Type = "MEMO"
	TypeSchedule Type = "SCHEDULE"
)

// Perspective 内容归属，相对于创建者
type Perspective string

const (
	PerspectiveMe      Perspective = "ME"      // 创建者自己
	PerspectivePartner Perspective = "PARTNER" // 创建者的另一半
	PerspectiveUs      Perspective = "US"      // 两个人
)

// MaxTitleLength 标题最大长度
const MaxTitleLength = 100

// ParsePerspective 解析归属，空值视为 ME
func ParsePerspective(s string) (Perspective, bool) {
	switch p := Perspective(strings.ToUpper(s)); p {
	case "":
		return PerspectiveMe, true
	case PerspectiveMe, PerspectivePartner, PerspectiveUs:
		return p, true
	}
	return "", false
}

// ViewedBy 从查看者的角度看到的归属，另一半查看时 ME 和 PARTNER 互换
func (p Perspective) ViewedBy(isOwner bool) Perspective {
	if isOwner {
		return p
	}
	switch p {
	case PerspectiveMe:
		return PerspectivePartner
	case PerspectivePartner:
		return PerspectiveMe
	}
	return p
}

// NewDetail 创建详情
func NewDetail(title, description string, completed bool) (Detail, error) {
	title = strings.TrimSpace(title)
	if title == "" && strings.TrimSpace(description) == "" {
		return Detail{}, apperror.ErrEmptyContent
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return Detail{}, apperror.ErrInvalidInput.WithDescription("title is too long")
	}
	return Detail{Title: title, Description: description, Completed: completed}, nil
}

// New 创建内容，归属以创建者的视角保存
func New(userID uint64, contentType Type, detail Detail, perspective Perspective) *Content {
	if perspective == "" {
		perspective = PerspectiveMe
	}
	return &Content{
		UserID:      userID,
		Detail:      detail,
		Type:        contentType,
		Perspective: perspective,
	}
}

// IsOwnedBy 是否为创建者
func (c *Content) IsOwnedBy(userID uint64) bool {
	return c.UserID == userID
}

// IsVisibleTo 创建者本人或其当前的另一半可见
func (c *Content) IsVisibleTo(userID uint64, partnerID *uint64) bool {
	if c.UserID == userID {
		return true
	}
	return partnerID != nil && *partnerID == c.UserID
}
