// Package app 提供应用程序相关的辅助函数
package app

import (
	"time"

	"twogether/pkg/config"
)

// DateLayout 日期的统一格式（yyyy-MM-dd）
const DateLayout = "2006-01-02"

// IsLocal 判断当前是否运行在本地环境
func IsLocal() bool {
	return config.Get("app.env") == "local"
}

// IsProduction 判断当前是否运行在生产环境
func IsProduction() bool {
	return config.Get("app.env") == "production"
}

// IsTesting 判断当前是否运行在测试环境
func IsTesting() bool {
	return config.Get("app.env") == "testing"
}

// Location 返回 app.timezone 对应的时区，配置错误时退回 UTC
func Location() *time.Location {
	loc, err := time.LoadLocation(config.GetString("app.timezone", "Asia/Seoul"))
	if err != nil {
		return time.UTC
	}
	return loc
}

// TimenowInTimezone 获取当前时间（支持时区设置）
// 从配置文件读取 app.timezone 配置项来确定时区
func TimenowInTimezone() time.Time {
	return time.Now().In(Location())
}

// Today 返回服务时区下的今天，格式 yyyy-MM-dd
func Today() string {
	return TimenowInTimezone().Format(DateLayout)
}
