package repositories

import (
	"context"

	"gorm.io/gorm"

	"twogether/app/models/couple"
	"twogether/app/models/user"
	"twogether/pkg/database"
)

// CoupleRepository 情侣仓库
type CoupleRepository struct {
	db *gorm.DB
}

// NewCoupleRepository 创建仓库实例
func NewCoupleRepository(db *gorm.DB) *CoupleRepository {
	return &CoupleRepository{db: db}
}

// Create 创建情侣
func (r *CoupleRepository) Create(ctx context.Context, c *couple.Couple) error {
	return database.Conn(ctx, r.db).Create(c).Error
}

// FindByID 同时加载成员，不存在时返回 nil, nil
func (r *CoupleRepository) FindByID(ctx context.Context, id uint64) (*couple.Couple, error) {
	var c couple.Couple
	conn := database.Conn(ctx, r.db)
	if err := conn.Where("id = ?", id).First(&c).Error; err != nil {
		return found(&c, err)
	}

	var members []*user.User
	if err := conn.Where("couple_id = ?", id).Order("id ASC").Find(&members).Error; err != nil {
		return nil, err
	}
	c.Members = members
	return &c, nil
}

// Update 保存开始日期、共享留言和状态
func (r *CoupleRepository) Update(ctx context.Context, c *couple.Couple) error {
	return database.Conn(ctx, r.db).Model(c).
		Select("start_date", "shared_message", "status").
		Updates(c).Error
}

// CountMembers 当前成员数量
func (r *CoupleRepository) CountMembers(ctx context.Context, id uint64) (int64, error) {
	var count int64
	err := database.Conn(ctx, r.db).Model(&user.User{}).
		Where("couple_id = ?", id).
		Count(&count).Error
	return count, err
}

// Delete 软删除
func (r *CoupleRepository) Delete(ctx context.Context, id uint64) error {
	return database.Conn(ctx, r.db).Delete(&couple.Couple{}, id).Error
}
