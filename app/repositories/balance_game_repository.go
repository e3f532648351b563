package repositories

import (
	"context"

	"gorm.io/gorm"

	"twogether/app/models"
	"twogether/app/models/balancegame"
	"twogether/pkg/database"
)

// BalanceGameRepository 平衡游戏仓库
type BalanceGameRepository struct {
	db *gorm.DB
}

// NewBalanceGameRepository 创建仓库实例
func NewBalanceGameRepository(db *gorm.DB) *BalanceGameRepository {
	return &BalanceGameRepository{db: db}
}

// Create 创建题目和选项
func (r *BalanceGameRepository) Create(ctx context.Context, game *balancegame.BalanceGame) error {
	return database.Conn(ctx, r.db).Create(game).Error
}

// FindByDate 某天的题目，同时加载未删除的选项
func (r *BalanceGameRepository) FindByDate(ctx context.Context, date models.Date) (*balancegame.BalanceGame, error) {
	var game balancegame.BalanceGame
	err := database.Conn(ctx, r.db).Preload("Options").
		Where("game_date = ?", date).
		First(&game).Error
	return found(&game, err)
}

// FindByID 同时加载未删除的选项
func (r *BalanceGameRepository) FindByID(ctx context.Context, id uint64) (*balancegame.BalanceGame, error) {
	var game balancegame.BalanceGame
	err := database.Conn(ctx, r.db).Preload("Options").
		Where("id = ?", id).
		First(&game).Error
	return found(&game, err)
}

// FindByIDs 批量加载
func (r *BalanceGameRepository) FindByIDs(ctx context.Context, ids []uint64) ([]*balancegame.BalanceGame, error) {
	var games []*balancegame.BalanceGame
	if len(ids) == 0 {
		return games, nil
	}
	err := database.Conn(ctx, r.db).Preload("Options").
		Where("id IN ?", ids).
		Find(&games).Error
	return games, err
}

// SaveChoice 每个用户每题只保留一个选择，已删除的选择会被恢复
func (r *BalanceGameRepository) SaveChoice(ctx context.Context, userID, gameID, optionID uint64) (*balancegame.UserChoiceOption, error) {
	conn := database.Conn(ctx, r.db)

	choice, err := r.findChoiceUnscoped(ctx, userID, gameID)
	if err != nil {
		return nil, err
	}
	if choice == nil {
		choice = &balancegame.UserChoiceOption{UserID: userID, GameID: gameID, OptionID: optionID}
		err = conn.Create(choice).Error
		if err == nil {
			return choice, nil
		}
		if !database.IsDuplicateKey(err) {
			return nil, err
		}
		// 并发提交时对方已写入，改为更新
		if choice, err = r.findChoiceUnscoped(ctx, userID, gameID); err != nil || choice == nil {
			return nil, err
		}
	}

	err = conn.Unscoped().Model(&balancegame.UserChoiceOption{}).
		Where("id = ?", choice.ID).
		Updates(map[string]interface{}{
			"option_id":  optionID,
			"deleted_at": nil,
		}).Error
	if err != nil {
		return nil, err
	}
	choice.OptionID = optionID
	choice.DeletedAt = gorm.DeletedAt{}
	return choice, nil
}

func (r *BalanceGameRepository) findChoiceUnscoped(ctx context.Context, userID, gameID uint64) (*balancegame.UserChoiceOption, error) {
	var choice balancegame.UserChoiceOption
	err := database.Conn(ctx, r.db).Unscoped().
		Where("user_id = ? AND game_id = ?", userID, gameID).
		First(&choice).Error
	return found(&choice, err)
}

// FindChoices 某题中指定用户的选择
func (r *BalanceGameRepository) FindChoices(ctx context.Context, gameID uint64, userIDs []uint64) ([]*balancegame.UserChoiceOption, error) {
	var choices []*balancegame.UserChoiceOption
	err := database.Conn(ctx, r.db).
		Where("game_id = ? AND user_id IN ?", gameID, userIDs).
		Find(&choices).Error
	return choices, err
}

// ListAnsweredGameIDs 用户答过的题目，按日期倒序，before 为空时从最近开始
func (r *BalanceGameRepository) ListAnsweredGameIDs(ctx context.Context, userID uint64, before *models.Date, limit int) ([]uint64, error) {
	query := database.Conn(ctx, r.db).
		Table("balance_games").
		Select("balance_games.id").
		Joins("JOIN user_choice_options ON user_choice_options.game_id = balance_games.id AND user_choice_options.deleted_at IS NULL").
		Where("user_choice_options.user_id = ? AND balance_games.deleted_at IS NULL", userID)
	if before != nil {
		query = query.Where("balance_games.game_date < ?", *before)
	}

	var ids []uint64
	err := query.Order("balance_games.game_date DESC").Limit(limit).Pluck("balance_games.id", &ids).Error
	return ids, err
}

// DeleteChoicesByUser 软删除用户的全部选择
func (r *BalanceGameRepository) DeleteChoicesByUser(ctx context.Context, userID uint64) (int64, error) {
	result := database.Conn(ctx, r.db).Where("user_id = ?", userID).Delete(&balancegame.UserChoiceOption{})
	return result.RowsAffected, result.Error
}
