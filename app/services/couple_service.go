package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"twogether/app/events"
	"twogether/app/models"
	"twogether/app/models/couple"
	"twogether/app/models/user"
	"twogether/app/repositories"
	"twogether/pkg/apperror"
	"twogether/pkg/database"
	"twogether/pkg/eventbus"
	"twogether/pkg/logger"
	"twogether/pkg/tokenstore"
)

// 邀请码去掉了容易混淆的 0/O、1/I
const invitationAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// maxIssueAttempts 邀请码碰撞时的重试次数
const maxIssueAttempts = 3

// CoupleConfig 情侣配置
type CoupleConfig struct {
	InvitationTTL time.Duration
	CodeLength    int
}

// InvitationCode 邀请码
type InvitationCode struct {
	Code      string    `json:"invitationCode"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// CoupleMember 成员信息
type CoupleMember struct {
	UserID   uint64       `json:"userId"`
	Nickname *string      `json:"nickname,omitempty"`
	BirthDay *models.Date `json:"birthDay,omitempty"`
	Gender   *user.Gender `json:"gender,omitempty"`
}

// CoupleInfo 情侣信息
type CoupleInfo struct {
	CoupleID      uint64         `json:"coupleId"`
	StartDate     *models.Date   `json:"startDate,omitempty"`
	SharedMessage *string        `json:"sharedMessage,omitempty"`
	Status        couple.Status  `json:"status"`
	Members       []CoupleMember `json:"members"`
}

// CoupleUpdate 可修改的字段，nil 表示不修改
type CoupleUpdate struct {
	StartDate     *models.Date
	SharedMessage *string
}

// CoupleService 邀请码、连接和离开
type CoupleService struct {
	users     *repositories.UserRepository
	couples   *repositories.CoupleRepository
	tokens    *tokenstore.Store
	tx        database.Transactor
	publisher eventbus.Publisher
	config    CoupleConfig
	now       func() time.Time
	codes     func(length int) (string, error)
}

// NewCoupleService 创建服务
func NewCoupleService(
	users *repositories.UserRepository,
	couples *repositories.CoupleRepository,
	tokens *tokenstore.Store,
	tx database.Transactor,
	publisher eventbus.Publisher,
	config CoupleConfig,
) *CoupleService {
	if config.InvitationTTL <= 0 {
		config.InvitationTTL = 24 * time.Hour
	}
	if config.CodeLength <= 0 {
		config.CodeLength = 8
	}
	return &CoupleService{
		users:     users,
		couples:   couples,
		tokens:    tokens,
		tx:        tx,
		publisher: publisher,
		config:    config,
		now:       time.Now,
		codes:     randomCode,
	}
}

// WithClock 替换时钟
func (s *CoupleService) WithClock(now func() time.Time) *CoupleService {
	s.now = now
	return s
}

// WithCodeGenerator 替换邀请码生成器
func (s *CoupleService) WithCodeGenerator(fn func(length int) (string, error)) *CoupleService {
	s.codes = fn
	return s
}

// IssueInvitationCode 发起人已有有效邀请码时直接返回，否则生成新的
func (s *CoupleService) IssueInvitationCode(ctx context.Context, userID uint64) (*InvitationCode, error) {
	u, err := requireUser(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}
	if !u.IsSingle() {
		return nil, apperror.ErrInvalidUserStatus
	}

	if live, err := s.liveCode(ctx, userID); err != nil || live != nil {
		return live, err
	}

	for attempt := 1; attempt <= maxIssueAttempts; attempt++ {
		code, err := s.codes(s.config.CodeLength)
		if err != nil {
			return nil, fmt.Errorf("generate invitation code: %w", err)
		}

		reserved, err := s.tokens.ReserveInvitationCode(ctx, code, userID, s.config.InvitationTTL)
		if err != nil {
			return nil, fmt.Errorf("reserve invitation code: %w", err)
		}
		if !reserved {
			logger.Debug("Couple", zap.String("event", "invitation code collision"), zap.Int("attempt", attempt))
			continue
		}

		bound, err := s.tokens.BindInvitationCode(ctx, userID, code, s.config.InvitationTTL)
		if err != nil || !bound {
			if releaseErr := s.tokens.ReleaseInvitationCode(ctx, code); releaseErr != nil {
				logger.Warn("Couple", zap.String("action", "release invitation code"), zap.Error(releaseErr))
			}
		}
		if err != nil {
			return nil, fmt.Errorf("bind invitation code: %w", err)
		}
		if !bound {
			// 并发请求已经为发起人生成了邀请码
			if live, err := s.liveCode(ctx, userID); err != nil || live != nil {
				return live, err
			}
			continue
		}

		return &InvitationCode{Code: code, ExpiresAt: s.now().Add(s.config.InvitationTTL)}, nil
	}
	return nil, apperror.ErrInvitationConflict
}

func (s *CoupleService) liveCode(ctx context.Context, userID uint64) (*InvitationCode, error) {
	code, ttl, err := s.tokens.FindInvitationCode(ctx, userID)
	if errors.Is(err, tokenstore.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find invitation code: %w", err)
	}
	return &InvitationCode{Code: code, ExpiresAt: s.now().Add(ttl)}, nil
}

// Redeem 兑换邀请码，创建情侣、双方状态变更和邀请码删除在同一个事务中完成
func (s *CoupleService) Redeem(ctx context.Context, guestID uint64, code string) (*couple.Couple, error) {
	hostID, err := s.tokens.FindInvitationHost(ctx, code)
	if errors.Is(err, tokenstore.ErrNotFound) {
		return nil, apperror.ErrInvitationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find invitation host: %w", err)
	}
	if hostID == guestID {
		return nil, apperror.ErrSelfInvitation
	}

	var created *couple.Couple
	err = s.tx.Transaction(ctx, func(ctx context.Context) error {
		guest, err := requireUser(ctx, s.users, guestID)
		if err != nil {
			return err
		}
		if !guest.IsSingle() {
			return apperror.ErrRequesterNotSingle
		}
		host, err := s.users.FindByID(ctx, hostID)
		if err != nil {
			return fmt.Errorf("find host: %w", err)
		}
		if host == nil || !host.IsSingle() {
			return apperror.ErrPartnerNotSingle
		}

		c := couple.New()
		if err := s.couples.Create(ctx, c); err != nil {
			return fmt.Errorf("create couple: %w", err)
		}
		if err := c.AddMembers(host, guest); err != nil {
			return err
		}
		if err := s.couples.Update(ctx, c); err != nil {
			return fmt.Errorf("activate couple: %w", err)
		}

		// 条件更新，并发兑换时只有一个事务能让双方都变为 COUPLED
		if ok, err := s.users.JoinCouple(ctx, host.ID, c.ID); err != nil || !ok {
			return joinError(err, apperror.ErrPartnerNotSingle)
		}
		if ok, err := s.users.JoinCouple(ctx, guest.ID, c.ID); err != nil || !ok {
			return joinError(err, apperror.ErrRequesterNotSingle)
		}

		created = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 提交后再作废邀请码，双方已是 COUPLED，残留的邀请码无法再兑换
	if err := s.tokens.DeleteInvitation(ctx, code, hostID); err != nil {
		logger.Warn("Couple", zap.String("action", "delete invitation"), zap.Uint64("host_id", hostID), zap.Error(err))
	}

	logger.Info("Couple", zap.String("event", "couple connected"), zap.Uint64("couple_id", created.ID),
		zap.Uint64("host_id", hostID), zap.Uint64("guest_id", guestID))
	s.publisher.Publish(events.CoupleConnected{CoupleID: created.ID, HostUserID: hostID, GuestID: guestID})
	return created, nil
}

func joinError(err error, stateErr *apperror.Error) error {
	if err != nil {
		return fmt.Errorf("join couple: %w", err)
	}
	return stateErr
}

// Leave 离开情侣，最后一名成员离开时软删除情侣
func (s *CoupleService) Leave(ctx context.Context, userID uint64) error {
	u, err := requireUser(ctx, s.users, userID)
	if err != nil {
		return err
	}
	if !u.IsCoupled() {
		return apperror.ErrNotCoupleMember
	}
	coupleID := *u.CoupleID

	var partnerID *uint64
	err = s.tx.Transaction(ctx, func(ctx context.Context) error {
		c, err := s.couples.FindByID(ctx, coupleID)
		if err != nil {
			return fmt.Errorf("find couple: %w", err)
		}
		if c == nil {
			return apperror.ErrCoupleNotFound
		}
		if !c.HasMember(userID) {
			return apperror.ErrNotCoupleMember
		}
		if p := c.Partner(userID); p != nil {
			id := p.ID
			partnerID = &id
		}

		ok, err := s.users.LeaveCouple(ctx, userID, coupleID)
		if err != nil {
			return fmt.Errorf("leave couple: %w", err)
		}
		if !ok {
			return apperror.ErrNotCoupleMember
		}

		remaining, err := s.couples.CountMembers(ctx, coupleID)
		if err != nil {
			return fmt.Errorf("count couple members: %w", err)
		}
		if remaining == 0 {
			return s.couples.Delete(ctx, coupleID)
		}
		c.Status = couple.StatusInactive
		return s.couples.Update(ctx, c)
	})
	if err != nil {
		return err
	}

	logger.Info("Couple", zap.String("event", "member left"), zap.Uint64("couple_id", coupleID), zap.Uint64("user_id", userID))
	s.publisher.Publish(events.MemberLeft{CoupleID: coupleID, UserID: userID, PartnerID: partnerID})
	return nil
}

// Info 当前用户的情侣信息
func (s *CoupleService) Info(ctx context.Context, userID uint64) (*CoupleInfo, error) {
	c, err := s.currentCouple(ctx, userID)
	if err != nil {
		return nil, err
	}
	return coupleInfo(c), nil
}

// Update 修改开始日期和共享留言
func (s *CoupleService) Update(ctx context.Context, userID uint64, update CoupleUpdate) (*CoupleInfo, error) {
	c, err := s.currentCouple(ctx, userID)
	if err != nil {
		return nil, err
	}
	if update.SharedMessage != nil {
		if err := couple.ValidateSharedMessage(*update.SharedMessage); err != nil {
			return nil, err
		}
		c.SharedMessage = update.SharedMessage
	}
	if update.StartDate != nil {
		c.StartDate = update.StartDate
	}
	if err := s.couples.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("update couple: %w", err)
	}
	return coupleInfo(c), nil
}

func (s *CoupleService) currentCouple(ctx context.Context, userID uint64) (*couple.Couple, error) {
	u, err := requireUser(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}
	if !u.IsCoupled() {
		return nil, apperror.ErrCoupleNotFound
	}
	c, err := s.couples.FindByID(ctx, *u.CoupleID)
	if err != nil {
		return nil, fmt.Errorf("find couple: %w", err)
	}
	if c == nil {
		return nil, apperror.ErrCoupleNotFound
	}
	if !c.HasMember(userID) {
		return nil, apperror.ErrNotCoupleMember
	}
	return c, nil
}

func coupleInfo(c *couple.Couple) *CoupleInfo {
	info := &CoupleInfo{
		CoupleID:      c.ID,
		StartDate:     c.StartDate,
		SharedMessage: c.SharedMessage,
		Status:        c.Status,
		Members:       make([]CoupleMember, 0, len(c.Members)),
	}
	for _, m := range c.Members {
		info.Members = append(info.Members, CoupleMember{
			UserID:   m.ID,
			Nickname: m.Nickname,
			BirthDay: m.BirthDay,
			Gender:   m.Gender,
		})
	}
	return info
}

// randomCode 生成大写字母和数字组成的邀请码
func randomCode(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	// 字母表长度为 32，取低 5 位没有偏差
	for i, b := range buf {
		buf[i] = invitationAlphabet[int(b)%len(invitationAlphabet)]
	}
	return string(buf), nil
}
