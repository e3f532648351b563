package balancegame

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"twogether/app/models"
	"twogether/pkg/apperror"
)

func option(id uint64, deleted bool) Option {
	o := Option{BaseModel: models.BaseModel{ID: id}, Content: "option"}
	if deleted {
		o.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}
	return o
}

func TestNewGameViewNeedsTwoLiveOptions(t *testing.T) {
	cases := [][]Option{
		nil,
		{option(1, false)},
		{option(1, false), option(2, true)},
		{option(1, true), option(2, true), option(3, false)},
	}
	for _, options := range cases {
		_, err := NewGameView(&BalanceGame{Question: "q", Options: options})
		assert.ErrorIs(t, err, apperror.ErrNotEnoughOptions)
	}
}

func TestNewGameViewSortsOptions(t *testing.T) {
	game := &BalanceGame{
		BaseModel: models.BaseModel{ID: 7},
		GameDate:  models.NewDate(2024, 5, 1),
		Question:  "mountain or sea?",
		Options:   []Option{option(9, false), option(3, false), option(5, true), option(4, false)},
	}
	view, err := NewGameView(game)
	require.NoError(t, err)
	require.Len(t, view.Options, 3)
	assert.Equal(t, []uint64{3, 4, 9}, []uint64{view.Options[0].ID, view.Options[1].ID, view.Options[2].ID})
	assert.True(t, view.HasOption(9))
	assert.False(t, view.HasOption(5))
	assert.Equal(t, "2024-05-01", view.Date.String())
}
