package routes

import (
	"database/sql"

	"github.com/gin-gonic/gin"

	authctl "twogether/app/http/controllers/api/v1/auth"
	"twogether/app/http/controllers/api/v1/balancegame"
	"twogether/app/http/controllers/api/v1/calendar"
	"twogether/app/http/controllers/api/v1/content"
	"twogether/app/http/controllers/api/v1/couple"
	"twogether/app/http/controllers/api/v1/firebase"
	"twogether/app/http/controllers/api/v1/health"
	"twogether/app/http/controllers/api/v1/tag"
	"twogether/app/http/controllers/api/v1/user"
	"twogether/app/http/middlewares"
	"twogether/app/services"
	"twogether/pkg/metrics"
	"twogether/pkg/redis"
)

// 路由限流配置
const (
	// 🌍 全局限流：每小时每IP 30000 请求
	GlobalRateLimit = "30000-H"
	// 🔑 登录和刷新：每分钟每IP 30 请求
	AuthRateLimit = "30-M"
	// 💌 兑换邀请码：每分钟每IP 10 请求，防止猜测
	RedeemRateLimit = "10-M"
)

// Dependencies 路由用到的服务
type Dependencies struct {
	DB            *sql.DB
	KV            redis.Store
	Auth          *services.AuthService
	Users         *services.UserService
	Couples       *services.CoupleService
	Contents      *services.ContentService
	Tags          *services.TagService
	BalanceGames  *services.BalanceGameService
	Notifications *services.NotificationService
	Calendar      *services.CalendarService
}

// RegisterAPIRoutes 注册所有 API 路由
func RegisterAPIRoutes(r *gin.Engine, deps *Dependencies) {
	hc := health.NewHealthController(deps.DB, deps.KV)
	r.GET("/health", hc.Show)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	v1 := r.Group("/v1")
	v1.Use(
		middlewares.SecurityHeaders(),
		middlewares.LimitIP(GlobalRateLimit),
		middlewares.Cors(),
	)

	authenticated := middlewares.AuthJWT(deps.Auth)

	// 🔑 登录相关路由
	authGroup := v1.Group("/auth", middlewares.RequireDeviceID())
	{
		ac := authctl.NewAuthController(deps.Auth)
		authGroup.POST("/sign-in", middlewares.LimitPerRoute(AuthRateLimit), ac.SignIn)
		authGroup.POST("/refresh", middlewares.LimitPerRoute(AuthRateLimit), ac.Refresh)
		authGroup.POST("/sign-out", authenticated, ac.SignOut)
	}

	// 以下路由都需要登录
	protected := v1.Group("", middlewares.RequireDeviceID(), authenticated)

	// 👤 用户
	usersGroup := protected.Group("/users")
	{
		uc := user.NewUsersController(deps.Users)
		usersGroup.GET("/me", uc.Me)
		usersGroup.PATCH("/me/profile", uc.UpdateProfile)
		usersGroup.DELETE("/me", uc.Withdraw)
	}

	// 💑 情侣
	couplesGroup := protected.Group("/couples")
	{
		cc := couple.NewCouplesController(deps.Couples)
		couplesGroup.POST("/invitation-code", cc.IssueInvitationCode)
		couplesGroup.POST("", middlewares.LimitPerRoute(RedeemRateLimit), cc.Redeem)
		couplesGroup.GET("/me", cc.Show)
		couplesGroup.PATCH("/me", cc.Update)
		couplesGroup.DELETE("/me", cc.Leave)
	}

	// 📝 备忘录和日程
	contentGroup := protected.Group("/content")
	{
		cc := content.NewContentsController(deps.Contents)
		contentGroup.POST("/memo", cc.StoreMemo)
		contentGroup.GET("/memo", cc.IndexMemo)
		contentGroup.GET("/memo/:id", cc.ShowMemo)
		contentGroup.PATCH("/memo/:id", cc.UpdateMemo)
		contentGroup.DELETE("/memo/:id", cc.DeleteMemo)
		contentGroup.PATCH("/:id/completion", cc.Completion)

		contentGroup.POST("/schedule", cc.StoreSchedule)
		contentGroup.GET("/schedule", cc.IndexSchedule)
		contentGroup.GET("/schedule/:id", cc.ShowSchedule)
		contentGroup.PATCH("/schedule/:id", cc.UpdateSchedule)
		contentGroup.DELETE("/schedule/:id", cc.DeleteSchedule)
	}

	// 🏷️ 标签
	tagsGroup := protected.Group("/tags")
	{
		tc := tag.NewTagsController(deps.Tags)
		tagsGroup.POST("", tc.Store)
		tagsGroup.GET("", tc.Index)
		tagsGroup.DELETE("/:id", tc.Delete)
	}

	// ⚖️ 每日二选一
	gamesGroup := protected.Group("/balance-game")
	{
		bc := balancegame.NewBalanceGamesController(deps.BalanceGames)
		gamesGroup.GET("/today", bc.Today)
		gamesGroup.GET("/history", bc.History)
		gamesGroup.POST("/:gameId", bc.Choose)
	}

	// 🔔 推送
	firebaseGroup := protected.Group("/firebase")
	{
		fc := firebase.NewFcmController(deps.Notifications)
		firebaseGroup.POST("/fcm", fc.Register)
	}

	// 📅 日历
	calendarGroup := protected.Group("/calendar")
	{
		cc := calendar.NewCalendarController(deps.Calendar)
		calendarGroup.GET("", cc.Index)
		calendarGroup.GET("/holidays", cc.Holidays)
	}
}
