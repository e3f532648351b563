package services

import (
	"context"
	"fmt"

	"twogether/app/models/user"
	"twogether/app/repositories"
	"twogether/pkg/apperror"
)

// requireUser 用户不存在时返回 ErrUserNotFound
func requireUser(ctx context.Context, users *repositories.UserRepository, userID uint64) (*user.User, error) {
	u, err := users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if u == nil {
		return nil, apperror.ErrUserNotFound
	}
	return u, nil
}

// partnerOf 当前的另一半，未连接时返回 nil
func partnerOf(ctx context.Context, users *repositories.UserRepository, u *user.User) (*uint64, error) {
	if !u.IsCoupled() {
		return nil, nil
	}
	members, err := users.FindByCoupleID(ctx, *u.CoupleID)
	if err != nil {
		return nil, fmt.Errorf("find couple members: %w", err)
	}
	for _, m := range members {
		if m.ID != u.ID {
			id := m.ID
			return &id, nil
		}
	}
	return nil, nil
}

// visibleOwners 用户本人和当前另一半
func visibleOwners(userID uint64, partnerID *uint64) []uint64 {
	if partnerID == nil {
		return []uint64{userID}
	}
	return []uint64{userID, *partnerID}
}
