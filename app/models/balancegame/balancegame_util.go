package balancegame

import (
	"sort"

	"twogether/app/models"
	"twogether/pkg/apperror"
)

// MinOptions 至少两个选项
const MinOptions = 2

// OptionView 选项
type OptionView struct {
	ID      uint64 `json:"optionId"`
	Content string `json:"content"`
}

// GameView 对外展示的题目，选项按 id 升序
type GameView struct {
	GameID   uint64       `json:"gameId"`
	Date     models.Date  `json:"date"`
	Question string       `json:"question"`
	Options  []OptionView `json:"options"`
}

// NewGameView 有效选项不足两个时返回 ErrNotEnoughOptions
func NewGameView(game *BalanceGame) (*GameView, error) {
	options := make([]OptionView, 0, len(game.Options))
	for _, o := range game.Options {
		if o.IsDeleted() {
			continue
		}
		options = append(options, OptionView{ID: o.ID, Content: o.Content})
	}
	if len(options) < MinOptions {
		return nil, apperror.ErrNotEnoughOptions
	}
	sort.Slice(options, func(i, j int) bool { return options[i].ID < options[j].ID })

	return &GameView{
		GameID:   game.ID,
		Date:     game.GameDate,
		Question: game.Question,
		Options:  options,
	}, nil
}

// HasOption 选项是否属于这道题
func (v *GameView) HasOption(optionID uint64) bool {
	for _, o := range v.Options {
		if o.ID == optionID {
			return true
		}
	}
	return false
}
