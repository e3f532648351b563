package repositories

import (
	"context"

	"gorm.io/gorm"

	"twogether/app/models/content"
	"twogether/pkg/database"
)

// ContentRepository 内容仓库
type ContentRepository struct {
	db *gorm.DB
}

// NewContentRepository 创建仓库实例
func NewContentRepository(db *gorm.DB) *ContentRepository {
	return &ContentRepository{db: db}
}

// Create 创建内容
func (r *ContentRepository) Create(ctx context.Context, c *content.Content) error {
	return database.Conn(ctx, r.db).Create(c).Error
}

// FindByID 不存在或已删除时返回 nil, nil
func (r *ContentRepository) FindByID(ctx context.Context, id uint64) (*content.Content, error) {
	var c content.Content
	err := database.Conn(ctx, r.db).Where("id = ?", id).First(&c).Error
	return found(&c, err)
}

// ListMemos 按 id 倒序，beforeID 为 0 时从头开始，多取的一条由调用方用于判断下一页
func (r *ContentRepository) ListMemos(ctx context.Context, ownerIDs []uint64, beforeID uint64, limit int) ([]*content.Content, error) {
	query := database.Conn(ctx, r.db).
		Where("type = ? AND user_id IN ?", content.TypeMemo, ownerIDs)
	if beforeID > 0 {
		query = query.Where("id < ?", beforeID)
	}

	var contents []*content.Content
	err := query.Order("id DESC").Limit(limit).Find(&contents).Error
	return contents, err
}

// UpdateWithVersion 版本号一致时更新并递增版本号，返回是否更新成功
func (r *ContentRepository) UpdateWithVersion(ctx context.Context, c *content.Content, expectedVersion uint64) (bool, error) {
	result := database.Conn(ctx, r.db).Model(&content.Content{}).
		Where("id = ? AND version = ?", c.ID, expectedVersion).
		Updates(map[string]interface{}{
			"title":       c.Detail.Title,
			"description": c.Detail.Description,
			"completed":   c.Detail.Completed,
			"perspective": c.Perspective,
			"version":     gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, nil
	}
	c.Version = expectedVersion + 1
	return true, nil
}

// Delete 软删除
func (r *ContentRepository) Delete(ctx context.Context, id uint64) error {
	return database.Conn(ctx, r.db).Delete(&content.Content{}, id).Error
}

// DeleteByUser 软删除用户的全部内容，返回删除条数
func (r *ContentRepository) DeleteByUser(ctx context.Context, userID uint64) (int64, error) {
	result := database.Conn(ctx, r.db).Where("user_id = ?", userID).Delete(&content.Content{})
	return result.RowsAffected, result.Error
}

// Count 未删除的内容数量
func (r *ContentRepository) Count(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	err := database.Conn(ctx, r.db).Model(&content.Content{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
