package config

import "twogether/pkg/config"

func init() {
	config.Add("events", func() map[string]interface{} {
		return map[string]interface{}{
			"worker_count":     config.Env("EVENTS_WORKER_COUNT", 4),
			"buffer_size":      config.Env("EVENTS_BUFFER_SIZE", 1024),
			"handler_timeout":  config.Env("EVENTS_HANDLER_TIMEOUT", "30s"),
			"shutdown_timeout": config.Env("EVENTS_SHUTDOWN_TIMEOUT", "10s"),
		}
	})
}
