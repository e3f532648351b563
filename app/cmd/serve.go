package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"twogether/bootstrap"
	"twogether/pkg/app"
	"twogether/pkg/config"
	"twogether/pkg/database"
	"twogether/pkg/logger"
	"twogether/routes"
)

// NewServeCommand 启动 HTTP 服务
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	db := bootstrap.SetupDB()
	kv := bootstrap.SetupRedis()
	bus := bootstrap.SetupEventBus()
	svcs := bootstrap.SetupServices(ctx, db, kv, bus)
	bus.Start()

	scheduler, err := bootstrap.SetupCron(svcs)
	if err != nil {
		return err
	}
	if config.GetBool("cron.enabled", true) {
		scheduler.Start()
	}

	// 生产模式减少 gin 的调试输出
	if !app.IsLocal() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	bootstrap.SetupRoute(router, &routes.Dependencies{
		DB:            database.SQLDB,
		KV:            kv,
		Auth:          svcs.Auth,
		Users:         svcs.Users,
		Couples:       svcs.Couples,
		Contents:      svcs.Contents,
		Tags:          svcs.Tags,
		BalanceGames:  svcs.BalanceGames,
		Notifications: svcs.Notifications,
		Calendar:      svcs.Calendar,
	})

	server := &http.Server{
		Addr:    ":" + config.Get("app.port", "8080"),
		Handler: router,
	}

	// 创建系统信号监听器
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Server", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// 等待中断信号或启动失败
	select {
	case <-quit:
	case err := <-serveErr:
		if err != nil {
			return err
		}
	}
	logger.InfoString("Server", "Shutdown", "shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration("app.shutdown_timeout", "10s"))
	defer cancel()

	// 先停止接收请求，再停定时任务，最后排空事件
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server", zap.Error(err))
	}
	<-scheduler.Stop().Done()
	bus.Stop()

	logger.InfoString("Server", "Shutdown", "server stopped")
	return nil
}
