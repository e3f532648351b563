package config

import "twogether/pkg/config"

func init() {
	config.Add("oauth", func() map[string]interface{} {
		return map[string]interface{}{

			// 请求第三方接口的超时
			"timeout": config.Env("OAUTH_TIMEOUT", "5s"),

			// 公钥缓存时间
			"key_cache_ttl": config.Env("OAUTH_KEY_CACHE_TTL", "24h"),

			// TEST 平台，仅限本地和测试环境
			"test_enabled": config.Env("OAUTH_TEST_ENABLED", false),

			"kakao": map[string]interface{}{
				"issuer":    config.Env("KAKAO_ISSUER", "https://kauth.kakao.com"),
				"jwks_url":  config.Env("KAKAO_JWKS_URL", "https://kauth.kakao.com/.well-known/jwks.json"),
				"app_key":   config.Env("KAKAO_APP_KEY", ""),
				"admin_key": config.Env("KAKAO_ADMIN_KEY", ""),
				"api_url":   config.Env("KAKAO_API_URL", "https://kapi.kakao.com"),
			},

			"apple": map[string]interface{}{
				"issuer":    config.Env("APPLE_ISSUER", "https://appleid.apple.com"),
				"jwks_url":  config.Env("APPLE_JWKS_URL", "https://appleid.apple.com/auth/keys"),
				"client_id": config.Env("APPLE_CLIENT_ID", ""),
			},
		}
	})
}
