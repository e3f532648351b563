package config

import "twogether/pkg/config"

func init() {
	config.Add("firebase", func() map[string]interface{} {
		return map[string]interface{}{

			// 未配置项目时不发送推送
			"project_id": config.Env("FIREBASE_PROJECT_ID", ""),

			// 服务账号密钥文件
			"credentials_file": config.Env("FIREBASE_CREDENTIALS_FILE", ""),

			"timeout": config.Env("FIREBASE_TIMEOUT", "5s"),

			// 每秒最多发送条数
			"send_rate": config.Env("FIREBASE_SEND_RATE", 50),
		}
	})

	config.Add("fcm", func() map[string]interface{} {
		return map[string]interface{}{
			// 超过该时间未更新的令牌不再推送，并由定时任务删除
			"stale_after": config.Env("FCM_STALE_AFTER", "720h"),
		}
	})
}
