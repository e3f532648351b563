// Package config 站点配置信息
package config

// Initialize 触发加载本包的所有 init 函数
func Initialize() {
}
