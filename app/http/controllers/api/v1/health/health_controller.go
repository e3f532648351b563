package health

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"twogether/pkg/database"
	"twogether/pkg/logger"
	"twogether/pkg/redis"
)

// Status 单项检查结果
type Status struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// HealthController 存活检查
type HealthController struct {
	db      *sql.DB
	kv      redis.Store
	timeout time.Duration
}

// NewHealthController kv 为 nil 时跳过 Redis 检查
func NewHealthController(db *sql.DB, kv redis.Store) *HealthController {
	return &HealthController{db: db, kv: kv, timeout: 2 * time.Second}
}

// Show 检查数据库和 Redis，任一失败返回 503
func (hc *HealthController) Show(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), hc.timeout)
	defer cancel()

	checks := map[string]Status{
		"database": check(database.Ping(ctx, hc.db)),
	}
	if hc.kv != nil {
		checks["redis"] = check(hc.kv.Ping(ctx))
	}

	status := http.StatusOK
	for name, s := range checks {
		if s.Status != "up" {
			status = http.StatusServiceUnavailable
			logger.Warn("Health", zap.String("check", name), zap.String("error", s.Error))
		}
	}
	c.JSON(status, gin.H{
		"success": status == http.StatusOK,
		"data":    checks,
	})
}

func check(err error) Status {
	if err != nil {
		return Status{Status: "down", Error: err.Error()}
	}
	return Status{Status: "up"}
}
