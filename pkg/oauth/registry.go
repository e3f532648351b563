package oauth

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"twogether/pkg/logger"
)

// Registry 按平台分发的身份解析器
type Registry struct {
	providers map[Platform]Provider
}

// NewRegistry 创建注册表
func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{providers: make(map[Platform]Provider, len(providers))}
	for _, p := range providers {
		r.Register(p)
	}
	return r
}

// Register 注册平台，同一平台后注册的覆盖先注册的
func (r *Registry) Register(p Provider) {
	r.providers[p.Platform()] = p
}

// Provider 获取平台的解析器
func (r *Registry) Provider(platform Platform) (Provider, error) {
	p, ok := r.providers[platform]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, platform)
	}
	return p, nil
}

// Resolve 解析 ID Token
// kid 不匹配时说明平台可能轮换了公钥，强制刷新一次缓存后重试
func (r *Registry) Resolve(ctx context.Context, platform Platform, idToken string) (*Identity, error) {
	p, err := r.Provider(platform)
	if err != nil {
		return nil, err
	}

	identity, err := p.Resolve(ctx, idToken)
	if !errors.Is(err, ErrPublicKeyMismatch) {
		return identity, err
	}

	refresher, ok := p.(KeyRefresher)
	if !ok {
		return nil, err
	}
	logger.Info("OAuth", zap.String("platform", string(platform)), zap.String("action", "refresh keys after kid mismatch"))
	if refreshErr := refresher.RefreshKeys(ctx); refreshErr != nil {
		return nil, refreshErr
	}
	return p.Resolve(ctx, idToken)
}

// Unlink 解除平台授权
func (r *Registry) Unlink(ctx context.Context, platform Platform, platformUserID string) error {
	p, err := r.Provider(platform)
	if err != nil {
		return err
	}
	return p.Unlink(ctx, platformUserID)
}
