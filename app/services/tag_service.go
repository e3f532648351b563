package services

import (
	"context"
	"fmt"

	"twogether/app/models/tag"
	"twogether/app/repositories"
	"twogether/pkg/apperror"
	"twogether/pkg/database"
)

// TagService 标签
type TagService struct {
	tags *repositories.TagRepository
	tx   database.Transactor
}

// NewTagService 创建服务
func NewTagService(tags *repositories.TagRepository, tx database.Transactor) *TagService {
	return &TagService{tags: tags, tx: tx}
}

// Create 同名标签已存在时直接返回
func (s *TagService) Create(ctx context.Context, userID uint64, name string) (*TagView, error) {
	name, err := tag.NormalizeName(name)
	if err != nil {
		return nil, err
	}
	t, err := s.tags.FindOrCreate(ctx, userID, name)
	if err != nil {
		return nil, fmt.Errorf("create tag: %w", err)
	}
	return &TagView{TagID: t.ID, Name: t.Name}, nil
}

// List 用户的全部标签
func (s *TagService) List(ctx context.Context, userID uint64) ([]TagView, error) {
	tags, err := s.tags.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	views := make([]TagView, 0, len(tags))
	for _, t := range tags {
		views = append(views, TagView{TagID: t.ID, Name: t.Name})
	}
	return views, nil
}

// Delete 删除标签及其关联，只能删除自己的标签
func (s *TagService) Delete(ctx context.Context, userID, tagID uint64) error {
	return s.tx.Transaction(ctx, func(ctx context.Context) error {
		t, err := s.tags.FindByID(ctx, tagID)
		if err != nil {
			return fmt.Errorf("find tag: %w", err)
		}
		if t == nil || t.UserID != userID {
			return apperror.ErrTagNotFound
		}
		return s.tags.Delete(ctx, tagID)
	})
}
