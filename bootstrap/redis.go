package bootstrap

import (
	"fmt"

	"twogether/pkg/config"
	"twogether/pkg/logger"
	"twogether/pkg/redis"
)

// SetupRedis 初始化 Redis，连接失败直接退出
func SetupRedis() redis.Store {
	err := redis.ConnectRedis(
		fmt.Sprintf("%v:%v", config.GetString("redis.host"), config.GetString("redis.port")),
		config.GetString("redis.username"),
		config.GetString("redis.password"),
		config.GetInt("redis.database"),
	)
	if err != nil {
		logger.ErrorString("Redis", "Connect", err.Error())
		panic(err)
	}
	return redis.Redis
}
