package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"twogether/app/models"
	"twogether/app/repositories"
	"twogether/app/services"
	"twogether/pkg/database"
	"twogether/pkg/database/migrations"
	"twogether/pkg/eventbus"
	"twogether/pkg/fcm"
	"twogether/pkg/jwt"
	"twogether/pkg/oauth"
	"twogether/pkg/redis"
	"twogether/pkg/testutil"
	"twogether/pkg/tokenstore"
	"twogether/routes"
)

type apiClient struct {
	t      *testing.T
	router *gin.Engine
	games  *services.BalanceGameService
}

func newAPIClient(t *testing.T) *apiClient {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewTestDB(t, migrations.RegisterTables()...)
	kv := redis.NewMemoryStore()
	bus := eventbus.NewSyncPublisher()
	tx := database.NewTransactor(db)
	tokens := tokenstore.New(kv)

	users := repositories.NewUserRepository(db)
	couples := repositories.NewCoupleRepository(db)
	contents := repositories.NewContentRepository(db)
	schedules := repositories.NewScheduleRepository(db)
	tags := repositories.NewTagRepository(db)
	games := repositories.NewBalanceGameRepository(db)
	fcmTokens := repositories.NewFcmTokenRepository(db)

	issuer := jwt.NewIssuer(jwt.Config{Secret: "test-secret", Issuer: "twogether-test", AccessTTL: time.Hour, RefreshTTL: 24 * time.Hour})
	identities := oauth.NewRegistry(oauth.TestProvider{})

	s := &Services{}
	s.Auth = services.NewAuthService(users, fcmTokens, identities, issuer, tokens)
	s.Couples = services.NewCoupleService(users, couples, tokens, tx, bus, services.CoupleConfig{})
	s.Users = services.NewUserService(users, fcmTokens, s.Couples, s.Auth, identities, tx, bus)
	s.Contents = services.NewContentService(users, contents, schedules, tags, tx, bus)
	s.Tags = services.NewTagService(tags, tx)
	s.BalanceGames = services.NewBalanceGameService(users, games, time.UTC)
	s.Notifications = services.NewNotificationService(fcmTokens, fcm.NoopSender{}, 0)
	s.Cleanup = services.NewCleanupService(contents, schedules, tags, games)
	s.Calendar = services.NewCalendarService(s.Contents, repositories.NewHolidayRepository(db), nil, time.UTC)
	services.RegisterListeners(bus, s.Notifications, s.Cleanup)

	sqlDB, err := db.DB()
	require.NoError(t, err)

	router := gin.New()
	SetupRoute(router, &routes.Dependencies{
		DB:            sqlDB,
		KV:            kv,
		Auth:          s.Auth,
		Users:         s.Users,
		Couples:       s.Couples,
		Contents:      s.Contents,
		Tags:          s.Tags,
		BalanceGames:  s.BalanceGames,
		Notifications: s.Notifications,
		Calendar:      s.Calendar,
	})
	return &apiClient{t: t, router: router, games: s.BalanceGames}
}

// do 发送请求，device 为空时不带 Device-Id
func (a *apiClient) do(method, path, device, token, body string) (int, gjson.Result) {
	a.t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if device != "" {
		req.Header.Set("Device-Id", device)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w.Code, gjson.Parse(w.Body.String())
}

// signUp 登录并完善资料，返回访问令牌
func (a *apiClient) signUp(puid, nickname string) string {
	a.t.Helper()
	device := "device-" + puid
	status, body := a.do(http.MethodPost, "/v1/auth/sign-in", device, "", `{"loginPlatform":"TEST","idToken":"`+puid+`"}`)
	require.Equal(a.t, http.StatusOK, status, body.Raw)
	assert.Equal(a.t, "NEW", body.Get("data.status").String())
	token := body.Get("data.accessToken").String()
	require.NotEmpty(a.t, token)

	status, body = a.do(http.MethodPatch, "/v1/users/me/profile", device, token, `{"nickname":"`+nickname+`","gender":"FEMALE"}`)
	require.Equal(a.t, http.StatusOK, status, body.Raw)
	assert.Equal(a.t, "SINGLE", body.Get("data.status").String())
	return token
}

func TestUnknownRoute(t *testing.T) {
	api := newAPIClient(t)

	status, body := api.do(http.MethodGet, "/nope", "", "", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.False(t, body.Get("success").Bool())
	assert.Equal(t, "COMMON002", body.Get("error.code").String())
}

func TestHealthEndpoint(t *testing.T) {
	api := newAPIClient(t)

	status, body := api.do(http.MethodGet, "/health", "", "", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "up", body.Get("data.database.status").String())
	assert.Equal(t, "up", body.Get("data.redis.status").String())
}

func TestHeadersAreRequired(t *testing.T) {
	api := newAPIClient(t)

	status, body := api.do(http.MethodPost, "/v1/auth/sign-in", "", "", `{"loginPlatform":"TEST","idToken":"x"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "COMMON004", body.Get("error.code").String())

	status, body = api.do(http.MethodGet, "/v1/users/me", "device-1", "", "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "AUTH001", body.Get("error.code").String())
	assert.Equal(t, "DIALOG", body.Get("error.errorUiType").String())
}

func TestValidationErrorEnvelope(t *testing.T) {
	api := newAPIClient(t)

	status, body := api.do(http.MethodPost, "/v1/auth/sign-in", "device-1", "", `{"loginPlatform":"LINE","idToken":"x"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "COMMON001", body.Get("error.code").String())
	assert.Contains(t, body.Get("error.description").String(), "loginPlatform")

	status, body = api.do(http.MethodPost, "/v1/auth/sign-in", "device-1", "", `{not json`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "COMMON001", body.Get("error.code").String())
}

func TestSignOutRevokesAccessToken(t *testing.T) {
	api := newAPIClient(t)
	token := api.signUp("solo", "solo")

	status, body := api.do(http.MethodGet, "/v1/users/me", "device-solo", token, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "solo", body.Get("data.nickname").String())

	status, _ = api.do(http.MethodPost, "/v1/auth/sign-out", "device-solo", token, "")
	require.Equal(t, http.StatusOK, status)

	status, body = api.do(http.MethodGet, "/v1/users/me", "device-solo", token, "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "AUTH004", body.Get("error.code").String())
}

func TestRefreshOverHTTP(t *testing.T) {
	api := newAPIClient(t)

	_, body := api.do(http.MethodPost, "/v1/auth/sign-in", "device-r", "", `{"loginPlatform":"TEST","idToken":"r"}`)
	access := body.Get("data.accessToken").String()
	refresh := body.Get("data.refreshToken").String()

	status, body := api.do(http.MethodPost, "/v1/auth/refresh", "device-r", "", `{"accessToken":"`+access+`","refreshToken":"`+refresh+`"}`)
	require.Equal(t, http.StatusOK, status, body.Raw)
	assert.NotEqual(t, access, body.Get("data.accessToken").String())

	// 刷新令牌只能用一次
	status, body = api.do(http.MethodPost, "/v1/auth/refresh", "device-r", "", `{"accessToken":"`+access+`","refreshToken":"`+refresh+`"}`)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "AUTH007", body.Get("error.code").String())
}

func TestCoupleAndMemoFlow(t *testing.T) {
	api := newAPIClient(t)
	host := api.signUp("host", "host")
	guest := api.signUp("guest", "guest")

	status, body := api.do(http.MethodPost, "/v1/couples/invitation-code", "device-host", host, "")
	require.Equal(t, http.StatusOK, status, body.Raw)
	code := body.Get("data.invitationCode").String()
	require.Len(t, code, 8)

	status, body = api.do(http.MethodPost, "/v1/couples", "device-guest", guest, `{"invitationCode":"`+code+`"}`)
	require.Equal(t, http.StatusCreated, status, body.Raw)
	assert.Positive(t, body.Get("data.coupleId").Int())

	status, body = api.do(http.MethodGet, "/v1/couples/me", "device-host", host, "")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body.Get("data.members").Array(), 2)

	status, body = api.do(http.MethodPost, "/v1/content/memo", "device-host", host, `{"title":"dinner","ownerType":"ME","tags":["food"]}`)
	require.Equal(t, http.StatusCreated, status, body.Raw)
	memoID := body.Get("data.contentId").String()

	// 另一半看到的归属是 PARTNER
	status, body = api.do(http.MethodGet, "/v1/content/memo?pageSize=5", "device-guest", guest, "")
	require.Equal(t, http.StatusOK, status, body.Raw)
	items := body.Get("data.items").Array()
	require.Len(t, items, 1)
	assert.Equal(t, "dinner", items[0].Get("title").String())
	assert.Equal(t, "PARTNER", items[0].Get("ownerType").String())
	assert.False(t, items[0].Get("isMine").Bool())
	assert.False(t, body.Get("data.hasNext").Bool())
	version := items[0].Get("version").String()

	status, body = api.do(http.MethodPatch, "/v1/content/"+memoID+"/completion", "device-guest", guest, `{"completed":true,"version":`+version+`}`)
	require.Equal(t, http.StatusOK, status, body.Raw)
	assert.True(t, body.Get("data.completed").Bool())

	// 旧版本号冲突
	status, body = api.do(http.MethodPatch, "/v1/content/"+memoID+"/completion", "device-host", host, `{"completed":false,"version":`+version+`}`)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "CONTENT004", body.Get("error.code").String())

	status, body = api.do(http.MethodDelete, "/v1/content/memo/"+memoID, "device-guest", guest, "")
	assert.Equal(t, http.StatusForbidden, status, body.Raw)
}

func TestScheduleAndCalendarOverHTTP(t *testing.T) {
	api := newAPIClient(t)
	token := api.signUp("planner", "planner")

	status, body := api.do(http.MethodPost, "/v1/content/schedule", "device-planner", token,
		`{"title":"trip","startAt":"2026-03-02T09:00:00+09:00","endAt":"2026-03-02T18:00:00+09:00"}`)
	require.Equal(t, http.StatusCreated, status, body.Raw)
	assert.Equal(t, "2026-03-02T00:00:00Z", body.Get("data.startAt").String())

	status, body = api.do(http.MethodPost, "/v1/content/schedule", "device-planner", token,
		`{"title":"broken","startAt":"2026-03-02T18:00:00Z","endAt":"2026-03-02T09:00:00Z"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "SCHEDULE002", body.Get("error.code").String())

	status, body = api.do(http.MethodGet, "/v1/calendar?startDate=2026-03-02&endDate=2026-03-02&userTimeZone=Asia/Seoul", "device-planner", token, "")
	require.Equal(t, http.StatusOK, status, body.Raw)
	assert.Len(t, body.Get("data.schedules").Array(), 1)

	status, body = api.do(http.MethodGet, "/v1/calendar?startDate=03-02&endDate=2026-03-02", "device-planner", token, "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "COMMON001", body.Get("error.code").String())

	status, body = api.do(http.MethodGet, "/v1/calendar/holidays?year=2026&month=3", "device-planner", token, "")
	require.Equal(t, http.StatusOK, status, body.Raw)
	assert.True(t, body.Get("data").IsArray())
	assert.Empty(t, body.Get("data").Array())
}

func TestTagsAndBalanceGameOverHTTP(t *testing.T) {
	api := newAPIClient(t)
	token := api.signUp("player", "player")

	status, body := api.do(http.MethodPost, "/v1/tags", "device-player", token, `{"name":"travel"}`)
	require.Equal(t, http.StatusCreated, status, body.Raw)
	tagID := body.Get("data.tagId").String()

	status, body = api.do(http.MethodGet, "/v1/tags", "device-player", token, "")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body.Get("data").Array(), 1)

	status, _ = api.do(http.MethodDelete, "/v1/tags/"+tagID, "device-player", token, "")
	assert.Equal(t, http.StatusOK, status)

	status, body = api.do(http.MethodGet, "/v1/balance-game/today", "device-player", token, "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "BALANCE001", body.Get("error.code").String())

	game, err := api.games.Create(context.Background(), models.DateOf(time.Now().UTC()), "beach or mountain?", []string{"beach", "mountain"})
	require.NoError(t, err)
	optionID := strconv.FormatUint(game.Options[1].ID, 10)

	status, body = api.do(http.MethodPost, "/v1/balance-game/"+strconv.FormatUint(game.GameID, 10), "device-player", token, `{"optionId":`+optionID+`}`)
	require.Equal(t, http.StatusOK, status, body.Raw)
	assert.Equal(t, optionID, body.Get("data.myChoice").String())

	status, body = api.do(http.MethodPost, "/v1/balance-game/"+strconv.FormatUint(game.GameID, 10), "device-player", token, `{"optionId":0}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "COMMON001", body.Get("error.code").String())

	status, body = api.do(http.MethodPost, "/v1/firebase/fcm", "device-player", token, `{"token":"fcm-token"}`)
	assert.Equal(t, http.StatusOK, status, body.Raw)
}
