package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"

	"twogether/pkg/metrics"
)

// Metrics 记录请求次数和耗时，路径取路由模板避免标签爆炸
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.RecordHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
