package config

import "twogether/pkg/config"

func init() {
	config.Add("couple", func() map[string]interface{} {
		return map[string]interface{}{
			// 邀请码有效期
			"invitation_ttl": config.Env("COUPLE_INVITATION_TTL", "24h"),
			// 邀请码长度
			"code_length": config.Env("COUPLE_CODE_LENGTH", 8),
		}
	})
}
