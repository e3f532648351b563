package config

import "twogether/pkg/config"

func init() {
	config.Add("app", func() map[string]interface{} {
		return map[string]interface{}{

			// 应用名称
			"name": config.Env("APP_NAME", "twogether"),

			// 当前环境，用以区分多环境，一般为 local, stage, production, testing
			"env": config.Env("APP_ENV", "production"),

			// 是否进入调试模式，开启后错误响应携带底层原因
			"debug": config.Env("APP_DEBUG", false),

			// 应用服务端口
			"port": config.Env("APP_PORT", "8080"),

			// 服务时区，每日题目和默认日历按此时区计算
			"timezone": config.Env("TIMEZONE", "Asia/Seoul"),

			// 优雅关闭等待时间
			"shutdown_timeout": config.Env("APP_SHUTDOWN_TIMEOUT", "10s"),
		}
	})
}
