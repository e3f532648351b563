package bootstrap

import (
	"github.com/gin-gonic/gin"

	"twogether/app/http/middlewares"
	"twogether/pkg/apperror"
	"twogether/pkg/response"
	"twogether/routes"
)

// SetupRoute 路由初始化
// 1. 注册全局中间件
// 2. 注册 API 路由
// 3. 配置 404 处理器
func SetupRoute(router *gin.Engine, deps *routes.Dependencies) {
	// 注册全局中间件
	registerGlobalMiddleWare(router)

	// 具体路由定义在 routes 包中
	routes.RegisterAPIRoutes(router, deps)

	// 配置 404 路由处理器
	setup404Handler(router)
}

// registerGlobalMiddleWare 注册全局中间件
func registerGlobalMiddleWare(router *gin.Engine) {
	router.Use(
		middlewares.Logger(),   // 记录请求日志
		middlewares.Recovery(), // 在发生 panic 时恢复
		middlewares.Metrics(),  // 请求次数和耗时
	)
}

// setup404Handler 未定义的路由统一返回 COMMON002
func setup404Handler(router *gin.Engine) {
	router.NoRoute(func(c *gin.Context) {
		response.Abort(c, apperror.ErrRouteNotFound)
	})
}
