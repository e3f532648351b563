package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"twogether/app/models"
	"twogether/app/models/balancegame"
	"twogether/app/repositories"
	"twogether/pkg/apperror"
	"twogether/pkg/cursor"
)

// GameState 题目以及双方的选择
type GameState struct {
	*balancegame.GameView
	MyChoice      *uint64 `json:"myChoice"`
	PartnerChoice *uint64 `json:"partnerChoice"`
}

// BalanceGameService 每日平衡游戏
type BalanceGameService struct {
	users *repositories.UserRepository
	games *repositories.BalanceGameRepository
	now   func() time.Time
	loc   *time.Location
}

// NewBalanceGameService loc 决定“今天”的日期
func NewBalanceGameService(users *repositories.UserRepository, games *repositories.BalanceGameRepository, loc *time.Location) *BalanceGameService {
	if loc == nil {
		loc = time.UTC
	}
	return &BalanceGameService{users: users, games: games, now: time.Now, loc: loc}
}

// WithClock 替换时钟
func (s *BalanceGameService) WithClock(now func() time.Time) *BalanceGameService {
	s.now = now
	return s
}

func (s *BalanceGameService) today() models.Date {
	return models.DateOf(s.now().In(s.loc))
}

// Today 今天的题目
func (s *BalanceGameService) Today(ctx context.Context, userID uint64) (*GameState, error) {
	u, err := requireUser(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}
	game, err := s.games.FindByDate(ctx, s.today())
	if err != nil {
		return nil, fmt.Errorf("find today's game: %w", err)
	}
	if game == nil {
		return nil, apperror.ErrBalanceGameNotFound
	}
	partnerID, err := partnerOf(ctx, s.users, u)
	if err != nil {
		return nil, err
	}
	states, err := s.states(ctx, userID, partnerID, []*balancegame.BalanceGame{game})
	if err != nil {
		return nil, err
	}
	return states[0], nil
}

// Choose 只能回答今天的题目，重复提交时覆盖原来的选择
func (s *BalanceGameService) Choose(ctx context.Context, userID, gameID, optionID uint64) (*GameState, error) {
	u, err := requireUser(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}
	game, err := s.games.FindByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("find game: %w", err)
	}
	if game == nil {
		return nil, apperror.ErrBalanceGameNotFound
	}
	if game.GameDate.String() != s.today().String() {
		return nil, apperror.ErrStaleBalanceGame
	}
	view, err := balancegame.NewGameView(game)
	if err != nil {
		return nil, err
	}
	if !view.HasOption(optionID) {
		return nil, apperror.ErrBalanceOptionNotFound
	}

	if _, err := s.games.SaveChoice(ctx, userID, gameID, optionID); err != nil {
		return nil, fmt.Errorf("save choice: %w", err)
	}

	partnerID, err := partnerOf(ctx, s.users, u)
	if err != nil {
		return nil, err
	}
	states, err := s.states(ctx, userID, partnerID, []*balancegame.BalanceGame{game})
	if err != nil {
		return nil, err
	}
	return states[0], nil
}

// History 答过的题目，按日期倒序的游标分页，游标为题目日期
func (s *BalanceGameService) History(ctx context.Context, userID uint64, after string, size int) (*cursor.Page[*GameState], error) {
	u, err := requireUser(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}

	var before *models.Date
	if after != "" {
		parts, err := cursor.Decode(after, 1)
		if err != nil {
			return nil, apperror.ErrInvalidCursor
		}
		date, err := models.ParseDate(parts[0])
		if err != nil {
			return nil, apperror.ErrInvalidCursor
		}
		before = &date
	}
	if size, err = pageSize(size); err != nil {
		return nil, err
	}

	ids, err := s.games.ListAnsweredGameIDs(ctx, userID, before, size+1)
	if err != nil {
		return nil, fmt.Errorf("list answered games: %w", err)
	}
	games, err := s.games.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load games: %w", err)
	}
	sort.Slice(games, func(i, j int) bool { return games[j].GameDate.Before(games[i].GameDate) })

	page := cursor.Paginate(games, size, func(g *balancegame.BalanceGame) []string {
		return []string{g.GameDate.String()}
	})

	partnerID, err := partnerOf(ctx, s.users, u)
	if err != nil {
		return nil, err
	}
	states, err := s.states(ctx, userID, partnerID, page.Items)
	if err != nil {
		return nil, err
	}
	return &cursor.Page[*GameState]{Items: states, NextCursor: page.NextCursor, HasNext: page.HasNext}, nil
}

func (s *BalanceGameService) states(ctx context.Context, userID uint64, partnerID *uint64, games []*balancegame.BalanceGame) ([]*GameState, error) {
	states := make([]*GameState, 0, len(games))
	for _, game := range games {
		view, err := balancegame.NewGameView(game)
		if err != nil {
			return nil, err
		}
		choices, err := s.games.FindChoices(ctx, game.ID, visibleOwners(userID, partnerID))
		if err != nil {
			return nil, fmt.Errorf("find choices: %w", err)
		}

		state := &GameState{GameView: view}
		for _, choice := range choices {
			optionID := choice.OptionID
			if choice.UserID == userID {
				state.MyChoice = &optionID
			} else {
				state.PartnerChoice = &optionID
			}
		}
		states = append(states, state)
	}
	return states, nil
}

// Create 出题，至少两个选项
func (s *BalanceGameService) Create(ctx context.Context, date models.Date, question string, options []string) (*balancegame.GameView, error) {
	game := &balancegame.BalanceGame{GameDate: date, Question: question}
	for _, o := range options {
		game.Options = append(game.Options, balancegame.Option{Content: o})
	}
	if len(game.Options) < balancegame.MinOptions {
		return nil, apperror.ErrNotEnoughOptions
	}
	if err := s.games.Create(ctx, game); err != nil {
		return nil, fmt.Errorf("create balance game: %w", err)
	}
	return balancegame.NewGameView(game)
}
