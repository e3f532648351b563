package bootstrap

import (
	"twogether/pkg/config"
	"twogether/pkg/eventbus"
	"twogether/pkg/logger"
)

// SetupEventBus 创建并启动事件总线，订阅在 SetupServices 中完成
func SetupEventBus() *eventbus.Bus {
	bus := eventbus.New(eventbus.Config{
		WorkerCount:     config.GetInt("events.worker_count", 4),
		BufferSize:      config.GetInt("events.buffer_size", 1024),
		HandlerTimeout:  config.GetDuration("events.handler_timeout", "30s"),
		ShutdownTimeout: config.GetDuration("events.shutdown_timeout", "10s"),
	})
	logger.InfoString("EventBus", "Setup", "event bus created")
	return bus
}
