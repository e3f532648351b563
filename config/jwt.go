package config

import "twogether/pkg/config"

func init() {
	config.Add("jwt", func() map[string]interface{} {
		return map[string]interface{}{

			// 签名密钥，生产环境必须设置
			"secret": config.Env("JWT_SECRET", ""),

			// 签发者
			"issuer": config.Env("JWT_ISSUER", "twogether"),

			// 访问令牌有效期
			"access_ttl": config.Env("JWT_ACCESS_TTL", "1h"),

			// 刷新令牌有效期
			"refresh_ttl": config.Env("JWT_REFRESH_TTL", "336h"),
		}
	})
}
