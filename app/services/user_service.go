package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"twogether/app/events"
	"twogether/app/models"
	"twogether/app/models/user"
	"twogether/app/repositories"
	"twogether/pkg/auth"
	"twogether/pkg/database"
	"twogether/pkg/eventbus"
	"twogether/pkg/logger"
	"twogether/pkg/oauth"
)

// Profile 用户资料
type Profile struct {
	UserID        uint64         `json:"userId"`
	Email         *string        `json:"email,omitempty"`
	Nickname      *string        `json:"nickname,omitempty"`
	BirthDay      *models.Date   `json:"birthDay,omitempty"`
	Gender        *user.Gender   `json:"gender,omitempty"`
	LoginPlatform oauth.Platform `json:"loginPlatform"`
	Status        user.Status    `json:"status"`
	CoupleID      *uint64        `json:"coupleId,omitempty"`
	PartnerID     *uint64        `json:"partnerId,omitempty"`
}

// ProfileUpdate 资料修改
type ProfileUpdate struct {
	Nickname string
	BirthDay *models.Date
	Gender   *user.Gender
}

// UserService 用户资料和注销
type UserService struct {
	users      *repositories.UserRepository
	fcmTokens  *repositories.FcmTokenRepository
	couples    *CoupleService
	auths      *AuthService
	identities IdentityResolver
	tx         database.Transactor
	publisher  eventbus.Publisher
}

// NewUserService 创建服务
func NewUserService(
	users *repositories.UserRepository,
	fcmTokens *repositories.FcmTokenRepository,
	couples *CoupleService,
	auths *AuthService,
	identities IdentityResolver,
	tx database.Transactor,
	publisher eventbus.Publisher,
) *UserService {
	return &UserService{
		users:      users,
		fcmTokens:  fcmTokens,
		couples:    couples,
		auths:      auths,
		identities: identities,
		tx:         tx,
		publisher:  publisher,
	}
}

// Me 当前用户
func (s *UserService) Me(ctx context.Context, userID uint64) (*Profile, error) {
	u, err := requireUser(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}
	partnerID, err := partnerOf(ctx, s.users, u)
	if err != nil {
		return nil, err
	}
	return profileOf(u, partnerID), nil
}

// UpdateProfile 第一次完善资料后状态由 NEW 变为 SINGLE
func (s *UserService) UpdateProfile(ctx context.Context, userID uint64, update ProfileUpdate) (*Profile, error) {
	u, err := requireUser(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}
	if err := u.CompleteProfile(update.Nickname, update.BirthDay, update.Gender); err != nil {
		return nil, err
	}
	if err := s.users.UpdateProfile(ctx, u); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return s.Me(ctx, userID)
}

// Withdraw 注销：离开情侣、解除平台授权、作废令牌后软删除
func (s *UserService) Withdraw(ctx context.Context, principal *auth.Principal) error {
	u, err := requireUser(ctx, s.users, principal.UserID)
	if err != nil {
		return err
	}

	if u.IsCoupled() {
		if err := s.couples.Leave(ctx, u.ID); err != nil {
			return err
		}
	}

	if err := s.identities.Unlink(ctx, u.Platform, u.PlatformUserID); err != nil {
		logger.Warn("User", zap.String("action", "unlink platform"), zap.Uint64("user_id", u.ID), zap.Error(err))
	}

	if err := s.auths.SignOut(ctx, principal); err != nil {
		return err
	}

	err = s.tx.Transaction(ctx, func(ctx context.Context) error {
		if err := s.fcmTokens.DeleteByUser(ctx, u.ID); err != nil {
			return fmt.Errorf("delete fcm tokens: %w", err)
		}
		return s.users.Withdraw(ctx, u)
	})
	if err != nil {
		return fmt.Errorf("withdraw user: %w", err)
	}

	logger.Info("User", zap.String("event", "user withdrawn"), zap.Uint64("user_id", u.ID))
	s.publisher.Publish(events.UserWithdrawn{UserID: u.ID})
	return nil
}

func profileOf(u *user.User, partnerID *uint64) *Profile {
	return &Profile{
		UserID:        u.ID,
		Email:         u.Email,
		Nickname:      u.Nickname,
		BirthDay:      u.BirthDay,
		Gender:        u.Gender,
		LoginPlatform: u.Platform,
		Status:        u.Status,
		CoupleID:      u.CoupleID,
		PartnerID:     partnerID,
	}
}
