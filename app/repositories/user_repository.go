// Package repositories 数据访问层，查询统一通过 database.Conn 以便参与外层事务
package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"twogether/app/models/user"
	"twogether/pkg/database"
	"twogether/pkg/oauth"
)

// UserRepository 用户仓库
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建仓库实例
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create 创建用户，唯一约束冲突原样返回由调用方处理
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	return database.Conn(ctx, r.db).Create(u).Error
}

// FindByID 不存在时返回 nil, nil
func (r *UserRepository) FindByID(ctx context.Context, id uint64) (*user.User, error) {
	var u user.User
	err := database.Conn(ctx, r.db).Where("id = ?", id).First(&u).Error
	return found(&u, err)
}

// FindByPlatform 按平台身份查找
func (r *UserRepository) FindByPlatform(ctx context.Context, platform oauth.Platform, platformUserID string) (*user.User, error) {
	var u user.User
	err := database.Conn(ctx, r.db).
		Where("platform = ? AND platform_user_id = ?", platform, platformUserID).
		First(&u).Error
	return found(&u, err)
}

// FindByCoupleID 情侣的成员，按 id 升序
func (r *UserRepository) FindByCoupleID(ctx context.Context, coupleID uint64) ([]*user.User, error) {
	var users []*user.User
	err := database.Conn(ctx, r.db).
		Where("couple_id = ?", coupleID).
		Order("id ASC").
		Find(&users).Error
	return users, err
}

// Count 用户总数（不含已注销）
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := database.Conn(ctx, r.db).Model(&user.User{}).Count(&count).Error
	return count, err
}

// UpdateProfile 保存资料字段和状态
func (r *UserRepository) UpdateProfile(ctx context.Context, u *user.User) error {
	return database.Conn(ctx, r.db).Model(u).
		Select("nickname", "birth_day", "gender", "status").
		Updates(u).Error
}

// JoinCouple 只有 SINGLE 用户才会被更新，返回是否更新成功
func (r *UserRepository) JoinCouple(ctx context.Context, userID, coupleID uint64) (bool, error) {
	result := database.Conn(ctx, r.db).Model(&user.User{}).
		Where("id = ? AND status = ? AND couple_id IS NULL", userID, user.StatusSingle).
		Updates(map[string]interface{}{
			"status":    user.StatusCoupled,
			"couple_id": coupleID,
		})
	return result.RowsAffected == 1, result.Error
}

// LeaveCouple 只有仍在该情侣中的用户才会被更新
func (r *UserRepository) LeaveCouple(ctx context.Context, userID, coupleID uint64) (bool, error) {
	result := database.Conn(ctx, r.db).Model(&user.User{}).
		Where("id = ? AND couple_id = ? AND status = ?", userID, coupleID, user.StatusCoupled).
		Updates(map[string]interface{}{
			"status":    user.StatusSingle,
			"couple_id": gorm.Expr("NULL"),
		})
	return result.RowsAffected == 1, result.Error
}

// Withdraw 释放平台身份和邮箱后软删除
func (r *UserRepository) Withdraw(ctx context.Context, u *user.User) error {
	conn := database.Conn(ctx, r.db)
	err := conn.Model(&user.User{}).
		Where("id = ?", u.ID).
		Updates(map[string]interface{}{
			"platform_user_id": user.WithdrawnPlatformUserID(u.ID, u.PlatformUserID),
			"email":            gorm.Expr("NULL"),
		}).Error
	if err != nil {
		return err
	}
	return conn.Delete(&user.User{}, u.ID).Error
}

// found 把 gorm.ErrRecordNotFound 转换为 nil, nil
func found[T any](v *T, err error) (*T, error) {
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return v, nil
}
