package repositories

import (
	"context"

	"gorm.io/gorm"

	"twogether/app/models/content"
	"twogether/app/models/tag"
	"twogether/pkg/database"
)

// TagRepository 标签仓库
type TagRepository struct {
	db *gorm.DB
}

// NewTagRepository 创建仓库实例
func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{db: db}
}

// FindOrCreate 同名标签已删除时恢复，并发创建时以先写入的为准
func (r *TagRepository) FindOrCreate(ctx context.Context, userID uint64, name string) (*tag.Tag, error) {
	existing, err := r.findUnscoped(ctx, userID, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.IsDeleted() {
			if err := r.restore(ctx, &tag.Tag{}, existing.ID); err != nil {
				return nil, err
			}
			existing.DeletedAt = gorm.DeletedAt{}
		}
		return existing, nil
	}

	t := &tag.Tag{UserID: userID, Name: name}
	if err := database.Conn(ctx, r.db).Create(t).Error; err != nil {
		if !database.IsDuplicateKey(err) {
			return nil, err
		}
		again, findErr := r.findUnscoped(ctx, userID, name)
		if findErr != nil || again == nil {
			return nil, err
		}
		return again, nil
	}
	return t, nil
}

func (r *TagRepository) findUnscoped(ctx context.Context, userID uint64, name string) (*tag.Tag, error) {
	var t tag.Tag
	err := database.Conn(ctx, r.db).Unscoped().
		Where("user_id = ? AND name = ?", userID, name).
		First(&t).Error
	return found(&t, err)
}

func (r *TagRepository) restore(ctx context.Context, model interface{}, id uint64) error {
	return database.Conn(ctx, r.db).Unscoped().Model(model).
		Where("id = ?", id).
		Update("deleted_at", nil).Error
}

// FindByID 不存在时返回 nil, nil
func (r *TagRepository) FindByID(ctx context.Context, id uint64) (*tag.Tag, error) {
	var t tag.Tag
	err := database.Conn(ctx, r.db).Where("id = ?", id).First(&t).Error
	return found(&t, err)
}

// ListByUser 用户的标签，按名称排序
func (r *TagRepository) ListByUser(ctx context.Context, userID uint64) ([]*tag.Tag, error) {
	var tags []*tag.Tag
	err := database.Conn(ctx, r.db).
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&tags).Error
	return tags, err
}

// Delete 软删除标签和它的关联
func (r *TagRepository) Delete(ctx context.Context, id uint64) error {
	conn := database.Conn(ctx, r.db)
	if err := conn.Where("tag_id = ?", id).Delete(&tag.TagContentMapping{}).Error; err != nil {
		return err
	}
	return conn.Delete(&tag.Tag{}, id).Error
}

// ReplaceContentTags 内容的标签替换为 tagIDs，多余的关联软删除，已删除的关联恢复
func (r *TagRepository) ReplaceContentTags(ctx context.Context, contentID uint64, tagIDs []uint64) error {
	conn := database.Conn(ctx, r.db)

	stale := conn.Where("content_id = ?", contentID)
	if len(tagIDs) > 0 {
		stale = stale.Where("tag_id NOT IN ?", tagIDs)
	}
	if err := stale.Delete(&tag.TagContentMapping{}).Error; err != nil {
		return err
	}

	for _, tagID := range tagIDs {
		var mapping tag.TagContentMapping
		err := conn.Unscoped().
			Where("tag_id = ? AND content_id = ?", tagID, contentID).
			First(&mapping).Error
		switch {
		case err == nil:
			if mapping.IsDeleted() {
				if err := r.restore(ctx, &tag.TagContentMapping{}, mapping.ID); err != nil {
					return err
				}
			}
		case database.IsNotFound(err):
			err = conn.Create(&tag.TagContentMapping{TagID: tagID, ContentID: contentID}).Error
			if err != nil && !database.IsDuplicateKey(err) {
				return err
			}
		default:
			return err
		}
	}
	return nil
}

// TagsByContentIDs 内容 id -> 标签列表
func (r *TagRepository) TagsByContentIDs(ctx context.Context, contentIDs []uint64) (map[uint64][]*tag.Tag, error) {
	result := make(map[uint64][]*tag.Tag, len(contentIDs))
	if len(contentIDs) == 0 {
		return result, nil
	}

	var rows []struct {
		tag.Tag
		ContentID uint64
	}
	err := database.Conn(ctx, r.db).
		Table("tags").
		Select("tags.*, tag_content_mappings.content_id AS content_id").
		Joins("JOIN tag_content_mappings ON tag_content_mappings.tag_id = tags.id AND tag_content_mappings.deleted_at IS NULL").
		Where("tag_content_mappings.content_id IN ? AND tags.deleted_at IS NULL", contentIDs).
		Order("tags.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for i := range rows {
		t := rows[i].Tag
		result[rows[i].ContentID] = append(result[rows[i].ContentID], &t)
	}
	return result, nil
}

// DeleteMappingsByUser 软删除用户内容上的全部标签关联
func (r *TagRepository) DeleteMappingsByUser(ctx context.Context, userID uint64) (int64, error) {
	conn := database.Conn(ctx, r.db)
	owned := conn.Unscoped().Model(&content.Content{}).Select("id").Where("user_id = ?", userID)
	result := conn.Where("content_id IN (?)", owned).Delete(&tag.TagContentMapping{})
	return result.RowsAffected, result.Error
}
