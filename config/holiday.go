package config

import "twogether/pkg/config"

func init() {
	config.Add("holiday", func() map[string]interface{} {
		return map[string]interface{}{
			// 公共数据门户的特日信息接口
			"url":         config.Env("HOLIDAY_API_URL", ""),
			"service_key": config.Env("HOLIDAY_SERVICE_KEY", ""),
			"timeout":     config.Env("HOLIDAY_TIMEOUT", "10s"),
		}
	})
}
