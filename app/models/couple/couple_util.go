package couple

import (
	"unicode/utf8"

	"twogether/app/models/user"
	"twogether/pkg/apperror"
)

// Status 情侣状态
type Status string

const (
	StatusPending  Status = "PENDING"  // 已创建，成员未加入
	StatusActive   Status = "ACTIVE"   // 两人都在
	StatusInactive Status = "INACTIVE" // 有成员离开
)

// MaxSharedMessageLength 共享留言最大长度（字符）
const MaxSharedMessageLength = 50

// MemberCount 成员固定为两人
const MemberCount = 2

// New 创建待加入成员的情侣
func New() *Couple {
	return &Couple{Status: StatusPending}
}

// AddMembers 加入两名成员，同时修改双方的情侣引用
func (c *Couple) AddMembers(a, b *user.User) error {
	if len(c.Members) >= MemberCount {
		return apperror.ErrCoupleFull
	}
	if a == nil || b == nil || a == b || (a.ID != 0 && a.ID == b.ID) {
		return apperror.ErrSameMember
	}

	a.JoinCouple(c.ID)
	b.JoinCouple(c.ID)
	c.Members = []*user.User{a, b}
	c.Status = StatusActive
	return nil
}

// HasMember 是否为成员
func (c *Couple) HasMember(userID uint64) bool {
	for _, m := range c.Members {
		if m.ID == userID {
			return true
		}
	}
	return false
}

// Partner 另一名成员
func (c *Couple) Partner(userID uint64) *user.User {
	for _, m := range c.Members {
		if m.ID != userID {
			return m
		}
	}
	return nil
}

// ValidateSharedMessage 共享留言长度
func ValidateSharedMessage(message string) error {
	if utf8.RuneCountInString(message) > MaxSharedMessageLength {
		return apperror.ErrSharedMessageTooLong
	}
	return nil
}
