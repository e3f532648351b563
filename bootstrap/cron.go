package bootstrap

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"twogether/pkg/app"
	"twogether/pkg/config"
	"twogether/pkg/logger"
)

// 单次定时任务的最长执行时间
const jobTimeout = 5 * time.Minute

// SetupCron 注册定时任务，调用方负责 Start 和 Stop
func SetupCron(s *Services) (*cron.Cron, error) {
	c := cron.New(
		cron.WithLocation(app.Location()),
		cron.WithChain(cron.Recover(cronLogger{}), cron.SkipIfStillRunning(cronLogger{})),
	)

	if _, err := c.AddFunc(config.GetString("cron.purge_fcm_tokens", "0 4 * * *"), func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		purged, err := s.Notifications.PurgeStale(ctx)
		if err != nil {
			logger.Error("Cron", zap.String("job", "purge_fcm_tokens"), zap.Error(err))
			return
		}
		logger.Info("Cron", zap.String("job", "purge_fcm_tokens"), zap.Int64("purged", purged))
	}); err != nil {
		return nil, err
	}

	if _, err := c.AddFunc(config.GetString("cron.sync_holidays", "0 3 1 * *"), func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		// 当月和下月
		now := app.TimenowInTimezone()
		for _, month := range []time.Time{now, now.AddDate(0, 1, 0)} {
			n, err := s.Calendar.SyncHolidays(ctx, month.Year(), int(month.Month()))
			if err != nil {
				logger.Error("Cron", zap.String("job", "sync_holidays"), zap.Error(err))
				continue
			}
			logger.Info("Cron", zap.String("job", "sync_holidays"), zap.String("month", month.Format("2006-01")), zap.Int("holidays", n))
		}
	}); err != nil {
		return nil, err
	}

	return c, nil
}

// cronLogger 把 cron 的日志转给 zap
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.Debug("Cron", zap.String("msg", msg), zap.Any("details", keysAndValues))
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logger.Error("Cron", zap.String("msg", msg), zap.Error(err), zap.Any("details", keysAndValues))
}
