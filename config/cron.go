package config

import "twogether/pkg/config"

func init() {
	config.Add("cron", func() map[string]interface{} {
		return map[string]interface{}{
			// 是否在 serve 进程中运行定时任务
			"enabled": config.Env("CRON_ENABLED", true),

			// 每天 04:00 删除过期推送令牌
			"purge_fcm_tokens": config.Env("CRON_PURGE_FCM_TOKENS", "0 4 * * *"),

			// 每月 1 日 03:00 同步当月和下月节假日
			"sync_holidays": config.Env("CRON_SYNC_HOLIDAYS", "0 3 1 * *"),
		}
	})
}
