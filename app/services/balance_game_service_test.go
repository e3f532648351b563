package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"twogether/app/models"
	"twogether/app/models/balancegame"
	"twogether/pkg/apperror"
)

func createGame(t *testing.T, env *testEnv, date models.Date) *balancegame.GameView {
	t.Helper()
	game, err := env.games.Create(context.Background(), date, "beach or mountain?", []string{"beach", "mountain"})
	require.NoError(t, err)
	return game
}

func TestCreateBalanceGameNeedsTwoOptions(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.games.Create(context.Background(), models.DateOf(testNow), "only one?", []string{"yes"})
	assert.ErrorIs(t, err, apperror.ErrNotEnoughOptions)
}

func TestTodayBalanceGame(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	host, guest := env.couple(t)

	_, err := env.games.Today(ctx, host)
	assert.ErrorIs(t, err, apperror.ErrBalanceGameNotFound)

	game := createGame(t, env, models.DateOf(testNow))
	require.Len(t, game.Options, 2)
	beach, mountain := game.Options[0].ID, game.Options[1].ID

	state, err := env.games.Choose(ctx, host, game.GameID, beach)
	require.NoError(t, err)
	require.NotNil(t, state.MyChoice)
	assert.Equal(t, beach, *state.MyChoice)
	assert.Nil(t, state.PartnerChoice)

	// 重新选择覆盖原来的选择
	_, err = env.games.Choose(ctx, host, game.GameID, mountain)
	require.NoError(t, err)

	seen, err := env.games.Today(ctx, guest)
	require.NoError(t, err)
	assert.Nil(t, seen.MyChoice)
	require.NotNil(t, seen.PartnerChoice)
	assert.Equal(t, mountain, *seen.PartnerChoice)
}

func TestChooseValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	player := env.singleUser(t, "player")
	game := createGame(t, env, models.DateOf(testNow))

	_, err := env.games.Choose(ctx, player, game.GameID, 9999)
	assert.ErrorIs(t, err, apperror.ErrBalanceOptionNotFound)

	_, err = env.games.Choose(ctx, player, 9999, game.Options[0].ID)
	assert.ErrorIs(t, err, apperror.ErrBalanceGameNotFound)

	env.clock.Advance(24 * time.Hour)
	_, err = env.games.Choose(ctx, player, game.GameID, game.Options[0].ID)
	assert.ErrorIs(t, err, apperror.ErrStaleBalanceGame)
}

func TestBalanceGameHistory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	player := env.singleUser(t, "player")

	for day := 0; day < 7; day++ {
		game := createGame(t, env, models.DateOf(env.clock.Now()))
		_, err := env.games.Choose(ctx, player, game.GameID, game.Options[day%2].ID)
		require.NoError(t, err)
		env.clock.Advance(24 * time.Hour)
	}
	// 没有回答的题目不出现在历史中
	createGame(t, env, models.DateOf(env.clock.Now()))

	first, err := env.games.History(ctx, player, "", 5)
	require.NoError(t, err)
	require.Len(t, first.Items, 5)
	assert.True(t, first.HasNext)
	assert.Equal(t, "2026-03-08", first.Items[0].Date.String())

	second, err := env.games.History(ctx, player, *first.NextCursor, 5)
	require.NoError(t, err)
	require.Len(t, second.Items, 2)
	assert.False(t, second.HasNext)
	assert.Equal(t, "2026-03-02", second.Items[1].Date.String())

	for _, item := range append(first.Items, second.Items...) {
		assert.NotNil(t, item.MyChoice)
	}
}
