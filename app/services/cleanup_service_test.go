package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"twogether/app/models"
)

func TestCleanupRemovesUserData(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.singleUser(t, "author")
	other := env.singleUser(t, "other")

	env.createSchedules(t, author, 20)
	env.createMemos(t, author, 18)
	for i := 0; i < 2; i++ {
		_, err := env.contents.CreateMemo(ctx, author, ContentInput{Title: "tagged", Tags: []string{"trip"}})
		require.NoError(t, err)
	}
	env.createMemos(t, other, 10)

	game := createGame(t, env, models.DateOf(testNow))
	_, err := env.games.Choose(ctx, author, game.GameID, game.Options[0].ID)
	require.NoError(t, err)

	deleted, err := env.cleanup.Cleanup(ctx, author)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{
		"tag_mappings":    2,
		"schedules":       20,
		"balance_choices": 1,
		"contents":        40,
	}, deleted)

	otherCount, err := env.contentRepo.Count(ctx, other)
	require.NoError(t, err)
	assert.EqualValues(t, 10, otherCount)

	// 重复执行没有副作用
	again, err := env.cleanup.Cleanup(ctx, author)
	require.NoError(t, err)
	for name, n := range again {
		assert.Zero(t, n, name)
	}
}

func TestCleanupContinuesAfterFailure(t *testing.T) {
	calls := 0
	s := &CleanupService{handlers: []CleanupHandler{
		{Name: "broken", Run: func(context.Context, uint64) (int64, error) {
			calls++
			return 0, errors.New("boom")
		}},
		{Name: "fine", Run: func(context.Context, uint64) (int64, error) {
			calls++
			return 3, nil
		}},
	}}

	deleted, err := s.Cleanup(context.Background(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cleanup broken")
	assert.Equal(t, 2, calls)
	assert.Equal(t, map[string]int64{"fine": 3}, deleted)
}
