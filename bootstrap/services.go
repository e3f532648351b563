package bootstrap

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"gorm.io/gorm"

	"twogether/app/repositories"
	"twogether/app/services"
	"twogether/pkg/app"
	"twogether/pkg/config"
	"twogether/pkg/database"
	"twogether/pkg/eventbus"
	"twogether/pkg/fcm"
	"twogether/pkg/holiday"
	"twogether/pkg/jwt"
	"twogether/pkg/logger"
	"twogether/pkg/oauth"
	"twogether/pkg/redis"
	"twogether/pkg/tokenstore"
)

// Services 组装好的业务服务
type Services struct {
	Auth          *services.AuthService
	Users         *services.UserService
	Couples       *services.CoupleService
	Contents      *services.ContentService
	Tags          *services.TagService
	BalanceGames  *services.BalanceGameService
	Notifications *services.NotificationService
	Cleanup       *services.CleanupService
	Calendar      *services.CalendarService
}

// SetupServices 创建仓库和服务，并注册事件处理
func SetupServices(ctx context.Context, db *gorm.DB, kv redis.Store, bus *eventbus.Bus) *Services {
	tx := database.NewTransactor(db)
	tokens := tokenstore.New(kv)

	users := repositories.NewUserRepository(db)
	couples := repositories.NewCoupleRepository(db)
	contents := repositories.NewContentRepository(db)
	schedules := repositories.NewScheduleRepository(db)
	tags := repositories.NewTagRepository(db)
	games := repositories.NewBalanceGameRepository(db)
	fcmTokens := repositories.NewFcmTokenRepository(db)
	holidays := repositories.NewHolidayRepository(db)

	issuer := jwt.NewIssuer(jwt.Config{
		Secret:     config.GetString("jwt.secret"),
		Issuer:     config.GetString("jwt.issuer", "twogether"),
		AccessTTL:  config.GetDuration("jwt.access_ttl", "1h"),
		RefreshTTL: config.GetDuration("jwt.refresh_ttl", "336h"),
	})
	identities := setupIdentityRegistry(kv)

	s := &Services{}
	s.Auth = services.NewAuthService(users, fcmTokens, identities, issuer, tokens)
	s.Couples = services.NewCoupleService(users, couples, tokens, tx, bus, services.CoupleConfig{
		InvitationTTL: config.GetDuration("couple.invitation_ttl", "24h"),
		CodeLength:    config.GetInt("couple.code_length", 8),
	})
	s.Users = services.NewUserService(users, fcmTokens, s.Couples, s.Auth, identities, tx, bus)
	s.Contents = services.NewContentService(users, contents, schedules, tags, tx, bus)
	s.Tags = services.NewTagService(tags, tx)
	s.BalanceGames = services.NewBalanceGameService(users, games, app.Location())
	s.Notifications = services.NewNotificationService(fcmTokens, setupSender(ctx), config.GetDuration("fcm.stale_after", "720h"))
	s.Cleanup = services.NewCleanupService(contents, schedules, tags, games)
	s.Calendar = services.NewCalendarService(s.Contents, holidays, holiday.NewClient(holiday.Config{
		BaseURL:    config.GetString("holiday.url"),
		ServiceKey: config.GetString("holiday.service_key"),
		Timeout:    config.GetDuration("holiday.timeout", "10s"),
	}), app.Location())

	services.RegisterListeners(bus, s.Notifications, s.Cleanup)
	return s
}

// setupIdentityRegistry Kakao 和 Apple 共用一个 HTTP 客户端，公钥缓存在 Redis
func setupIdentityRegistry(kv redis.Store) *oauth.Registry {
	client := resty.New().
		SetTimeout(config.GetDuration("oauth.timeout", "5s")).
		SetRetryCount(1).
		SetRetryWaitTime(200 * time.Millisecond)
	keyTTL := config.GetDuration("oauth.key_cache_ttl", "24h")

	kakao := oauth.NewKakaoProvider(oauth.KakaoConfig{
		Issuer:   config.GetString("oauth.kakao.issuer"),
		JWKSURL:  config.GetString("oauth.kakao.jwks_url"),
		AppKey:   config.GetString("oauth.kakao.app_key"),
		AdminKey: config.GetString("oauth.kakao.admin_key"),
		APIURL:   config.GetString("oauth.kakao.api_url"),
	}, oauth.NewKeySet("kakao", config.GetString("oauth.kakao.jwks_url"), client, kv, keyTTL), client)

	apple := oauth.NewAppleProvider(oauth.AppleConfig{
		Issuer:   config.GetString("oauth.apple.issuer"),
		JWKSURL:  config.GetString("oauth.apple.jwks_url"),
		ClientID: config.GetString("oauth.apple.client_id"),
	}, oauth.NewKeySet("apple", config.GetString("oauth.apple.jwks_url"), client, kv, keyTTL))

	registry := oauth.NewRegistry(kakao, apple)
	if config.GetBool("oauth.test_enabled") && !app.IsProduction() {
		registry.Register(oauth.TestProvider{})
		logger.WarnString("OAuth", "Setup", "TEST login platform is enabled")
	}
	return registry
}

// setupSender 没有配置 Firebase 时只记录日志
func setupSender(ctx context.Context) fcm.Sender {
	path := config.GetString("firebase.credentials_file")
	if path == "" {
		logger.WarnString("FCM", "Setup", "firebase credentials not configured, push disabled")
		return fcm.NoopSender{}
	}

	client, err := fcm.NewClientFromCredentialsFile(ctx, fcm.Config{
		ProjectID: config.GetString("firebase.project_id"),
		Timeout:   config.GetDuration("firebase.timeout", "5s"),
		SendRate:  config.GetFloat64("firebase.send_rate", 50),
	}, path)
	if err != nil {
		logger.ErrorString("FCM", "Setup", err.Error())
		return fcm.NoopSender{}
	}
	return client
}
