package oauth

import (
	"context"
	"strings"
)

// TestProvider 压测和本地联调用，ID Token 本身就是平台用户 id
// 只有在配置开启时才会注册
type TestProvider struct{}

// Platform 平台
func (TestProvider) Platform() Platform {
	return PlatformTest
}

// Resolve 直接把 idToken 当作平台用户 id
func (TestProvider) Resolve(_ context.Context, idToken string) (*Identity, error) {
	id := strings.TrimSpace(idToken)
	if id == "" {
		return nil, ErrIllegalToken
	}
	return &Identity{
		Platform:       PlatformTest,
		PlatformUserID: id,
	}, nil
}

// Unlink 无需处理
func (TestProvider) Unlink(context.Context, string) error {
	return nil
}
