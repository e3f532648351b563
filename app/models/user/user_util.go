package user

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"twogether/app/models"
	"twogether/pkg/apperror"
	"twogether/pkg/oauth"
)

// Status 用户状态 NEW -> SINGLE -> COUPLED
type Status string

const (
	StatusNew     Status = "NEW"     // 刚注册，资料未完善
	StatusSingle  Status = "SINGLE"  // 资料已完善，未连接情侣
	StatusCoupled Status = "COUPLED" // 已连接情侣
)

// Gender 性别
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

// ParseGender 解析性别
func ParseGender(s string) (Gender, bool) {
	switch g := Gender(strings.ToUpper(s)); g {
	case GenderMale, GenderFemale:
		return g, true
	}
	return "", false
}

var nicknamePattern = regexp.MustCompile(`^[가-힣a-zA-Z0-9]+$`)

// ValidateNickname 昵称 2~10 个字符，只允许韩文、英文字母和数字
func ValidateNickname(nickname string) error {
	n := utf8.RuneCountInString(nickname)
	if n < oauth.MinNicknameLength || n > oauth.MaxNicknameLength || !nicknamePattern.MatchString(nickname) {
		return apperror.ErrInvalidNickname
	}
	return nil
}

// New 根据平台身份创建新用户
func New(identity *oauth.Identity) *User {
	return &User{
		Platform:       identity.Platform,
		PlatformUserID: identity.PlatformUserID,
		Email:          identity.Email,
		Nickname:       identity.Nickname,
		Status:         StatusNew,
	}
}

// IsSingle 是否可以发起或接受情侣邀请
func (u *User) IsSingle() bool {
	return u.Status == StatusSingle
}

// IsCoupled 是否已连接情侣
func (u *User) IsCoupled() bool {
	return u.Status == StatusCoupled && u.CoupleID != nil
}

// JoinCouple 连接情侣，状态和情侣引用必须同时修改
func (u *User) JoinCouple(coupleID uint64) {
	u.Status = StatusCoupled
	u.CoupleID = &coupleID
}

// LeaveCouple 离开情侣
func (u *User) LeaveCouple() {
	u.Status = StatusSingle
	u.CoupleID = nil
}

// CompleteProfile 更新资料，第一次完善资料时 NEW -> SINGLE
func (u *User) CompleteProfile(nickname string, birthDay *models.Date, gender *Gender) error {
	if err := ValidateNickname(nickname); err != nil {
		return err
	}
	u.Nickname = &nickname
	if birthDay != nil {
		u.BirthDay = birthDay
	}
	if gender != nil {
		u.Gender = gender
	}
	if u.Status == StatusNew {
		u.Status = StatusSingle
	}
	return nil
}

// WithdrawnPlatformUserID 注销后的平台用户 id，同一个平台账号可以重新注册
func WithdrawnPlatformUserID(userID uint64, platformUserID string) string {
	return fmt.Sprintf("deleted:%d:%s", userID, platformUserID)
}
