// Package oauth 第三方社交登录：校验 OIDC ID Token 并解析出平台用户身份
package oauth

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"
)

// Platform 登录平台
type Platform string

const (
	PlatformKakao Platform = "KAKAO"
	PlatformApple Platform = "APPLE"
	PlatformTest  Platform = "TEST"
)

// ParsePlatform 解析平台名称，大小写不敏感
func ParsePlatform(s string) (Platform, bool) {
	switch p := Platform(strings.ToUpper(strings.TrimSpace(s))); p {
	case PlatformKakao, PlatformApple, PlatformTest:
		return p, true
	}
	return "", false
}

// 昵称长度限制（按字符计）
const (
	MinNicknameLength = 2
	MaxNicknameLength = 10
)

var (
	// ErrIllegalToken 签名、格式、签发方、受众或有效期校验失败
	ErrIllegalToken = errors.New("oauth: illegal id token")
	// ErrPublicKeyMismatch 令牌的 kid 不在当前公钥集合中
	ErrPublicKeyMismatch = errors.New("oauth: public key mismatch")
	// ErrProviderUnavailable 平台接口不可用或返回了无法解析的数据
	ErrProviderUnavailable = errors.New("oauth: provider unavailable")
	// ErrUnsupportedPlatform 未注册的平台
	ErrUnsupportedPlatform = errors.New("oauth: unsupported platform")
)

// Identity 平台用户身份
type Identity struct {
	Platform       Platform
	PlatformUserID string
	Email          *string
	Nickname       *string
}

// Provider 单个平台的身份解析
type Provider interface {
	Platform() Platform
	Resolve(ctx context.Context, idToken string) (*Identity, error)
	// Unlink 解除平台侧的应用授权
	Unlink(ctx context.Context, platformUserID string) error
}

// KeyRefresher 可以强制刷新公钥缓存的平台
type KeyRefresher interface {
	RefreshKeys(ctx context.Context) error
}

// NormalizeNickname 平台返回的昵称去掉首尾空白后长度不合规时视为没有
func NormalizeNickname(nickname string) *string {
	trimmed := strings.TrimSpace(nickname)
	n := utf8.RuneCountInString(trimmed)
	if n < MinNicknameLength || n > MaxNicknameLength {
		return nil
	}
	return &trimmed
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
