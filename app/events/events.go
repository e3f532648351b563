// Package events 领域事件，均在事务提交后发布
package events

// 事件主题
const (
	TopicCoupleConnected = "couple.connected"
	TopicMemberLeft      = "couple.member_left"
	TopicMemoCreated     = "content.memo_created"
	TopicScheduleCreated = "content.schedule_created"
	TopicUserWithdrawn   = "user.withdrawn"
)

// CoupleConnected 邀请码兑换成功
type CoupleConnected struct {
	CoupleID   uint64 `json:"coupleId"`
	HostUserID uint64 `json:"hostUserId"`
	GuestID    uint64 `json:"guestId"`
}

// Topic 主题
func (CoupleConnected) Topic() string { return TopicCoupleConnected }

// MemberLeft 成员离开情侣，触发该成员内容的清理
type MemberLeft struct {
	CoupleID  uint64  `json:"coupleId"`
	UserID    uint64  `json:"userId"`
	PartnerID *uint64 `json:"partnerId,omitempty"`
}

// Topic 主题
func (MemberLeft) Topic() string { return TopicMemberLeft }

// MemoCreated 新建备忘录
type MemoCreated struct {
	ContentID uint64 `json:"contentId"`
	AuthorID  uint64 `json:"authorId"`
	PartnerID uint64 `json:"partnerId"`
	Title     string `json:"title"`
}

// Topic 主题
func (MemoCreated) Topic() string { return TopicMemoCreated }

// ScheduleCreated 新建日程
type ScheduleCreated struct {
	ScheduleID uint64 `json:"scheduleId"`
	AuthorID   uint64 `json:"authorId"`
	PartnerID  uint64 `json:"partnerId"`
	Title      string `json:"title"`
}

// Topic 主题
func (ScheduleCreated) Topic() string { return TopicScheduleCreated }

// UserWithdrawn 用户注销
type UserWithdrawn struct {
	UserID uint64 `json:"userId"`
}

// Topic 主题
func (UserWithdrawn) Topic() string { return TopicUserWithdrawn }
