package oauth

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"twogether/pkg/logger"
)

// KakaoConfig Kakao 登录配置
type KakaoConfig struct {
	Issuer   string // https://kauth.kakao.com
	JWKSURL  string // https://kauth.kakao.com/.well-known/jwks.json
	AppKey   string // ID Token 的 aud
	AdminKey string // 解除授权使用的 Admin Key
	APIURL   string // https://kapi.kakao.com
}

// KakaoProvider Kakao OIDC
type KakaoProvider struct {
	*Verifier
	client   *resty.Client
	adminKey string
	apiURL   string
}

// NewKakaoProvider 创建 Kakao 解析器
func NewKakaoProvider(cfg KakaoConfig, keys *KeySet, client *resty.Client) *KakaoProvider {
	return &KakaoProvider{
		Verifier: NewVerifier(cfg.Issuer, cfg.AppKey, keys),
		client:   client,
		adminKey: cfg.AdminKey,
		apiURL:   cfg.APIURL,
	}
}

// Platform 平台
func (p *KakaoProvider) Platform() Platform {
	return PlatformKakao
}

// Resolve 解析 ID Token
func (p *KakaoProvider) Resolve(ctx context.Context, idToken string) (*Identity, error) {
	claims, err := p.Verify(ctx, idToken)
	if err != nil {
		return nil, err
	}
	return &Identity{
		Platform:       PlatformKakao,
		PlatformUserID: claims.Subject,
		Email:          optional(claims.Email),
		Nickname:       NormalizeNickname(claims.Nickname),
	}, nil
}

// Unlink 使用 Admin Key 解除用户与应用的连接
func (p *KakaoProvider) Unlink(ctx context.Context, platformUserID string) error {
	if p.adminKey == "" {
		logger.Warn("OAuth", zap.String("platform", string(PlatformKakao)), zap.String("reason", "admin key not configured, skip unlink"))
		return nil
	}

	resp, err := p.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "KakaoAK "+p.adminKey).
		SetFormData(map[string]string{
			"target_id_type": "user_id",
			"target_id":      platformUserID,
		}).
		Post(p.apiURL + "/v1/user/unlink")
	if err != nil {
		return fmt.Errorf("%w: kakao unlink: %v", ErrProviderUnavailable, err)
	}
	if resp.IsError() {
		return fmt.Errorf("%w: kakao unlink: status %d: %s", ErrProviderUnavailable, resp.StatusCode(), resp.String())
	}
	return nil
}
