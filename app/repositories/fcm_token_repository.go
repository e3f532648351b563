package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"twogether/app/models/fcmtoken"
	"twogether/pkg/database"
)

// FcmTokenRepository 推送令牌仓库
type FcmTokenRepository struct {
	db *gorm.DB
}

// NewFcmTokenRepository 创建仓库实例
func NewFcmTokenRepository(db *gorm.DB) *FcmTokenRepository {
	return &FcmTokenRepository{db: db}
}

// Upsert 同一用户同一设备只保留一个令牌，令牌相同也会刷新 updated_at
func (r *FcmTokenRepository) Upsert(ctx context.Context, t *fcmtoken.FcmToken) error {
	return database.Conn(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "device_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"token", "updated_at"}),
	}).Create(t).Error
}

// FindByUserDevice 不存在时返回 nil, nil
func (r *FcmTokenRepository) FindByUserDevice(ctx context.Context, userID uint64, deviceID string) (*fcmtoken.FcmToken, error) {
	var t fcmtoken.FcmToken
	err := database.Conn(ctx, r.db).
		Where("user_id = ? AND device_id = ?", userID, deviceID).
		First(&t).Error
	return found(&t, err)
}

// FindActive updatedSince 之后刷新过的令牌
func (r *FcmTokenRepository) FindActive(ctx context.Context, userIDs []uint64, updatedSince time.Time) ([]*fcmtoken.FcmToken, error) {
	var tokens []*fcmtoken.FcmToken
	if len(userIDs) == 0 {
		return tokens, nil
	}
	err := database.Conn(ctx, r.db).
		Where("user_id IN ? AND updated_at >= ?", userIDs, updatedSince).
		Order("id ASC").
		Find(&tokens).Error
	return tokens, err
}

// DeleteByUserDevice 退出登录时删除设备令牌
func (r *FcmTokenRepository) DeleteByUserDevice(ctx context.Context, userID uint64, deviceID string) error {
	return database.Conn(ctx, r.db).
		Where("user_id = ? AND device_id = ?", userID, deviceID).
		Delete(&fcmtoken.FcmToken{}).Error
}

// DeleteByUser 删除用户全部设备令牌
func (r *FcmTokenRepository) DeleteByUser(ctx context.Context, userID uint64) error {
	return database.Conn(ctx, r.db).Where("user_id = ?", userID).Delete(&fcmtoken.FcmToken{}).Error
}

// DeleteTokens 删除推送服务判定为无效的令牌
func (r *FcmTokenRepository) DeleteTokens(ctx context.Context, tokens []string) (int64, error) {
	if len(tokens) == 0 {
		return 0, nil
	}
	result := database.Conn(ctx, r.db).Where("token IN ?", tokens).Delete(&fcmtoken.FcmToken{})
	return result.RowsAffected, result.Error
}

// DeleteStale 删除 before 之前未刷新的令牌
func (r *FcmTokenRepository) DeleteStale(ctx context.Context, before time.Time) (int64, error) {
	result := database.Conn(ctx, r.db).Where("updated_at < ?", before).Delete(&fcmtoken.FcmToken{})
	return result.RowsAffected, result.Error
}
