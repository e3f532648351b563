package oauth

import (
	"context"

	"go.uber.org/zap"

	"twogether/pkg/logger"
)

// AppleConfig Sign in with Apple 配置
type AppleConfig struct {
	Issuer   string // https://appleid.apple.com
	JWKSURL  string // https://appleid.apple.com/auth/keys
	ClientID string // ID Token 的 aud（bundle id）
}

// AppleProvider Sign in with Apple
type AppleProvider struct {
	*Verifier
}

// NewAppleProvider 创建 Apple 解析器
func NewAppleProvider(cfg AppleConfig, keys *KeySet) *AppleProvider {
	return &AppleProvider{Verifier: NewVerifier(cfg.Issuer, cfg.ClientID, keys)}
}

// Platform 平台
func (p *AppleProvider) Platform() Platform {
	return PlatformApple
}

// Resolve 解析 ID Token，Apple 不返回昵称
func (p *AppleProvider) Resolve(ctx context.Context, idToken string) (*Identity, error) {
	claims, err := p.Verify(ctx, idToken)
	if err != nil {
		return nil, err
	}
	return &Identity{
		Platform:       PlatformApple,
		PlatformUserID: claims.Subject,
		Email:          optional(claims.Email),
	}, nil
}

// Unlink Apple 的撤销授权需要 client secret 和 refresh token，这里只记录
func (p *AppleProvider) Unlink(_ context.Context, platformUserID string) error {
	logger.Info("OAuth", zap.String("platform", string(PlatformApple)), zap.String("platformUserId", platformUserID), zap.String("action", "unlink skipped"))
	return nil
}
