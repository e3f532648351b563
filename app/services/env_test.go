package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"twogether/app/repositories"
	"twogether/pkg/auth"
	"twogether/pkg/database"
	"twogether/pkg/database/migrations"
	"twogether/pkg/eventbus"
	"twogether/pkg/fcm"
	"twogether/pkg/jwt"
	"twogether/pkg/oauth"
	"twogether/pkg/redis"
	"twogether/pkg/testutil"
	"twogether/pkg/tokenstore"
)

var testNow = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

type testEnv struct {
	db     *gorm.DB
	clock  *testutil.Clock
	kv     *redis.MemoryStore
	tokens *tokenstore.Store
	bus    *eventbus.SyncPublisher
	tx     database.Transactor
	issuer *jwt.Issuer

	userRepo     *repositories.UserRepository
	coupleRepo   *repositories.CoupleRepository
	contentRepo  *repositories.ContentRepository
	scheduleRepo *repositories.ScheduleRepository
	tagRepo      *repositories.TagRepository
	gameRepo     *repositories.BalanceGameRepository
	fcmRepo      *repositories.FcmTokenRepository
	holidayRepo  *repositories.HolidayRepository

	auth          *AuthService
	couples       *CoupleService
	users         *UserService
	contents      *ContentService
	tags          *TagService
	games         *BalanceGameService
	notifications *NotificationService
	cleanup       *CleanupService
	calendar      *CalendarService
}

type envOption func(*envConfig)

type envConfig struct {
	sender  fcm.Sender
	fetcher HolidayFetcher
}

func withSender(sender fcm.Sender) envOption {
	return func(c *envConfig) { c.sender = sender }
}

func withFetcher(fetcher HolidayFetcher) envOption {
	return func(c *envConfig) { c.fetcher = fetcher }
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()

	cfg := envConfig{sender: fcm.NoopSender{}}
	for _, opt := range opts {
		opt(&cfg)
	}

	db := testutil.NewTestDB(t, migrations.RegisterTables()...)
	clock := testutil.NewClock(testNow)
	kv := redis.NewMemoryStore().WithClock(clock.Now)

	env := &testEnv{
		db:     db,
		clock:  clock,
		kv:     kv,
		tokens: tokenstore.New(kv),
		bus:    eventbus.NewSyncPublisher(),
		tx:     database.NewTransactor(db),
		issuer: jwt.NewIssuer(jwt.Config{
			Secret:     "test-secret",
			Issuer:     "twogether-test",
			AccessTTL:  time.Hour,
			RefreshTTL: 14 * 24 * time.Hour,
		}).WithClock(clock.Now),

		userRepo:     repositories.NewUserRepository(db),
		coupleRepo:   repositories.NewCoupleRepository(db),
		contentRepo:  repositories.NewContentRepository(db),
		scheduleRepo: repositories.NewScheduleRepository(db),
		tagRepo:      repositories.NewTagRepository(db),
		gameRepo:     repositories.NewBalanceGameRepository(db),
		fcmRepo:      repositories.NewFcmTokenRepository(db),
		holidayRepo:  repositories.NewHolidayRepository(db),
	}

	identities := oauth.NewRegistry(oauth.TestProvider{})
	env.auth = NewAuthService(env.userRepo, env.fcmRepo, identities, env.issuer, env.tokens).WithClock(clock.Now)
	env.couples = NewCoupleService(env.userRepo, env.coupleRepo, env.tokens, env.tx, env.bus, CoupleConfig{}).WithClock(clock.Now)
	env.users = NewUserService(env.userRepo, env.fcmRepo, env.couples, env.auth, identities, env.tx, env.bus)
	env.contents = NewContentService(env.userRepo, env.contentRepo, env.scheduleRepo, env.tagRepo, env.tx, env.bus)
	env.tags = NewTagService(env.tagRepo, env.tx)
	env.games = NewBalanceGameService(env.userRepo, env.gameRepo, time.UTC).WithClock(clock.Now)
	env.notifications = NewNotificationService(env.fcmRepo, cfg.sender, 0).WithClock(clock.Now)
	env.cleanup = NewCleanupService(env.contentRepo, env.scheduleRepo, env.tagRepo, env.gameRepo)
	env.calendar = NewCalendarService(env.contents, env.holidayRepo, cfg.fetcher, time.UTC)

	RegisterListeners(env.bus, env.notifications, env.cleanup)
	return env
}

// signIn 用测试平台登录，返回用户 id 和访问身份
func (e *testEnv) signIn(t *testing.T, platformUserID string) (uint64, *auth.Principal) {
	t.Helper()
	ctx := context.Background()
	deviceID := "device-" + platformUserID

	result, err := e.auth.SignIn(ctx, oauth.PlatformTest, platformUserID, deviceID)
	require.NoError(t, err)
	principal, err := e.auth.Authenticate(ctx, result.AccessToken, deviceID)
	require.NoError(t, err)
	return result.UserID, principal
}

// singleUser 登录并完善资料
func (e *testEnv) singleUser(t *testing.T, name string) uint64 {
	t.Helper()
	id, _ := e.signIn(t, name)
	_, err := e.users.UpdateProfile(context.Background(), id, ProfileUpdate{Nickname: name})
	require.NoError(t, err)
	return id
}

// couple 创建两个已连接的用户
func (e *testEnv) couple(t *testing.T) (uint64, uint64) {
	t.Helper()
	ctx := context.Background()
	host := e.singleUser(t, "host")
	guest := e.singleUser(t, "guest")

	code, err := e.couples.IssueInvitationCode(ctx, host)
	require.NoError(t, err)
	_, err = e.couples.Redeem(ctx, guest, code.Code)
	require.NoError(t, err)
	return host, guest
}

func (e *testEnv) createMemos(t *testing.T, userID uint64, n int) []uint64 {
	t.Helper()
	ids := make([]uint64, 0, n)
	for i := 0; i < n; i++ {
		view, err := e.contents.CreateMemo(context.Background(), userID, ContentInput{Title: fmt.Sprintf("memo %d", i)})
		require.NoError(t, err)
		ids = append(ids, view.ContentID)
	}
	return ids
}

func (e *testEnv) createSchedules(t *testing.T, userID uint64, n int) []uint64 {
	t.Helper()
	ids := make([]uint64, 0, n)
	for i := 0; i < n; i++ {
		start := testNow.Add(time.Duration(i) * time.Hour)
		view, err := e.contents.CreateSchedule(context.Background(), userID, ScheduleInput{
			ContentInput: ContentInput{Title: fmt.Sprintf("schedule %d", i)},
			StartAt:      start,
			EndAt:        start.Add(30 * time.Minute),
		})
		require.NoError(t, err)
		ids = append(ids, view.ScheduleID)
	}
	return ids
}
