package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"twogether/app/events"
	"twogether/app/models"
	"twogether/app/models/couple"
	"twogether/app/models/schedule"
	"twogether/app/models/user"
	"twogether/pkg/apperror"
	"twogether/pkg/database"
	"twogether/pkg/tokenstore"
)

func TestIssueInvitationCodeIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	host := env.singleUser(t, "host")

	first, err := env.couples.IssueInvitationCode(ctx, host)
	require.NoError(t, err)
	assert.Len(t, first.Code, 8)
	assert.Equal(t, testNow.Add(24*time.Hour), first.ExpiresAt)

	env.clock.Advance(time.Hour)
	second, err := env.couples.IssueInvitationCode(ctx, host)
	require.NoError(t, err)
	assert.Equal(t, first.Code, second.Code)
	assert.Equal(t, first.ExpiresAt, second.ExpiresAt)
}

func TestIssueInvitationCodeRequiresSingleUser(t *testing.T) {
	env := newTestEnv(t)
	id, _ := env.signIn(t, "newbie")

	_, err := env.couples.IssueInvitationCode(context.Background(), id)
	assert.ErrorIs(t, err, apperror.ErrInvalidUserStatus)
}

func TestIssueInvitationCodeGivesUpOnCollisions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.couples.WithCodeGenerator(func(int) (string, error) { return "SAMECODE", nil })

	first := env.singleUser(t, "first")
	second := env.singleUser(t, "second")

	_, err := env.couples.IssueInvitationCode(ctx, first)
	require.NoError(t, err)
	_, err = env.couples.IssueInvitationCode(ctx, second)
	assert.ErrorIs(t, err, apperror.ErrInvitationConflict)

	// 碰撞时不能覆盖别人的邀请码
	host, err := env.tokens.FindInvitationHost(ctx, "SAMECODE")
	require.NoError(t, err)
	assert.Equal(t, first, host)
}

func TestRedeemConnectsCouple(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	host := env.singleUser(t, "host")
	guest := env.singleUser(t, "guest")

	code, err := env.couples.IssueInvitationCode(ctx, host)
	require.NoError(t, err)

	c, err := env.couples.Redeem(ctx, guest, code.Code)
	require.NoError(t, err)
	assert.Equal(t, couple.StatusActive, c.Status)

	for _, id := range []uint64{host, guest} {
		u, err := env.userRepo.FindByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, user.StatusCoupled, u.Status)
		require.NotNil(t, u.CoupleID)
		assert.Equal(t, c.ID, *u.CoupleID)
	}

	info, err := env.couples.Info(ctx, guest)
	require.NoError(t, err)
	assert.Len(t, info.Members, 2)

	// 邀请码两个方向都已删除
	_, err = env.tokens.FindInvitationHost(ctx, code.Code)
	assert.ErrorIs(t, err, tokenstore.ErrNotFound)
	_, _, err = env.tokens.FindInvitationCode(ctx, host)
	assert.ErrorIs(t, err, tokenstore.ErrNotFound)

	_, err = env.couples.Redeem(ctx, guest, code.Code)
	assert.ErrorIs(t, err, apperror.ErrInvitationNotFound)

	require.Len(t, env.bus.Events, 1)
	connected, ok := env.bus.Events[0].(events.CoupleConnected)
	require.True(t, ok)
	assert.Equal(t, host, connected.HostUserID)
	assert.Equal(t, guest, connected.GuestID)
}

// commitFailure 业务逻辑执行完后让事务回滚，模拟提交失败
type commitFailure struct {
	database.Transactor
}

var errCommitFailed = errors.New("commit failed")

func (f commitFailure) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return f.Transactor.Transaction(ctx, func(ctx context.Context) error {
		if err := fn(ctx); err != nil {
			return err
		}
		return errCommitFailed
	})
}

func TestRedeemKeepsCodeWhenCommitFails(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	host := env.singleUser(t, "host")
	guest := env.singleUser(t, "guest")

	code, err := env.couples.IssueInvitationCode(ctx, host)
	require.NoError(t, err)

	failing := NewCoupleService(env.userRepo, env.coupleRepo, env.tokens, commitFailure{env.tx}, env.bus, CoupleConfig{}).WithClock(env.clock.Now)
	_, err = failing.Redeem(ctx, guest, code.Code)
	require.ErrorIs(t, err, errCommitFailed)
	assert.Empty(t, env.bus.Events)

	// 回滚后双方仍是单身，邀请码仍然有效
	for _, id := range []uint64{host, guest} {
		u, err := env.userRepo.FindByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, user.StatusSingle, u.Status)
		assert.Nil(t, u.CoupleID)
	}
	owner, err := env.tokens.FindInvitationHost(ctx, code.Code)
	require.NoError(t, err)
	assert.Equal(t, host, owner)

	c, err := env.couples.Redeem(ctx, guest, code.Code)
	require.NoError(t, err)
	assert.Equal(t, couple.StatusActive, c.Status)
	_, err = env.tokens.FindInvitationHost(ctx, code.Code)
	assert.ErrorIs(t, err, tokenstore.ErrNotFound)
}

func TestRedeemOwnCode(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	host := env.singleUser(t, "host")

	code, err := env.couples.IssueInvitationCode(ctx, host)
	require.NoError(t, err)

	_, err = env.couples.Redeem(ctx, host, code.Code)
	assert.ErrorIs(t, err, apperror.ErrSelfInvitation)
}

func TestRedeemExpiredCode(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	host := env.singleUser(t, "host")
	guest := env.singleUser(t, "guest")

	code, err := env.couples.IssueInvitationCode(ctx, host)
	require.NoError(t, err)

	env.clock.Advance(25 * time.Hour)
	_, err = env.couples.Redeem(ctx, guest, code.Code)
	assert.ErrorIs(t, err, apperror.ErrInvitationNotFound)
}

func TestRedeemRequiresBothSingle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, guest := env.couple(t)

	solo := env.singleUser(t, "solo")
	other := env.singleUser(t, "other")
	fourth := env.singleUser(t, "fourth")

	soloCode, err := env.couples.IssueInvitationCode(ctx, solo)
	require.NoError(t, err)

	_, err = env.couples.Redeem(ctx, guest, soloCode.Code)
	assert.ErrorIs(t, err, apperror.ErrRequesterNotSingle)

	// solo 通过别人的邀请码连接后，自己的邀请码不能再被兑换
	otherCode, err := env.couples.IssueInvitationCode(ctx, other)
	require.NoError(t, err)
	_, err = env.couples.Redeem(ctx, solo, otherCode.Code)
	require.NoError(t, err)

	_, err = env.couples.Redeem(ctx, fourth, soloCode.Code)
	assert.ErrorIs(t, err, apperror.ErrPartnerNotSingle)

	u, err := env.userRepo.FindByID(ctx, fourth)
	require.NoError(t, err)
	assert.Equal(t, user.StatusSingle, u.Status)
}

func TestLeaveCouple(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	host, guest := env.couple(t)

	hostUser, err := env.userRepo.FindByID(ctx, host)
	require.NoError(t, err)
	coupleID := *hostUser.CoupleID

	require.NoError(t, env.couples.Leave(ctx, host))

	hostUser, err = env.userRepo.FindByID(ctx, host)
	require.NoError(t, err)
	assert.Equal(t, user.StatusSingle, hostUser.Status)
	assert.Nil(t, hostUser.CoupleID)

	info, err := env.couples.Info(ctx, guest)
	require.NoError(t, err)
	assert.Equal(t, couple.StatusInactive, info.Status)
	assert.Len(t, info.Members, 1)

	_, err = env.couples.Info(ctx, host)
	assert.ErrorIs(t, err, apperror.ErrCoupleNotFound)

	require.NoError(t, env.couples.Leave(ctx, guest))
	c, err := env.coupleRepo.FindByID(ctx, coupleID)
	require.NoError(t, err)
	assert.Nil(t, c)

	err = env.couples.Leave(ctx, guest)
	assert.ErrorIs(t, err, apperror.ErrNotCoupleMember)

	// 离开后可以重新发起邀请
	_, err = env.couples.IssueInvitationCode(ctx, host)
	assert.NoError(t, err)
}

func TestLeaveCleansUpLeaverContent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	host, guest := env.couple(t)

	env.createSchedules(t, host, 20)
	env.createMemos(t, host, 20)
	env.createMemos(t, guest, 10)

	require.NoError(t, env.couples.Leave(ctx, host))
	assert.Contains(t, env.bus.Topics(), events.TopicMemberLeft)

	hostCount, err := env.contentRepo.Count(ctx, host)
	require.NoError(t, err)
	assert.Zero(t, hostCount)

	guestCount, err := env.contentRepo.Count(ctx, guest)
	require.NoError(t, err)
	assert.EqualValues(t, 10, guestCount)

	// 软删除，数据仍然保留
	var deletedSchedules int64
	require.NoError(t, env.db.Unscoped().Model(&schedule.Schedule{}).
		Where("user_id = ? AND deleted_at IS NOT NULL", host).
		Count(&deletedSchedules).Error)
	assert.EqualValues(t, 20, deletedSchedules)

	page, err := env.contents.ListMemos(ctx, guest, "", MaxPageSize)
	require.NoError(t, err)
	assert.Len(t, page.Items, 10)
	for _, item := range page.Items {
		assert.True(t, item.IsMine)
	}
}

func TestUpdateCouple(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	host, guest := env.couple(t)

	start := models.NewDate(2024, time.May, 5)
	message := "together"
	info, err := env.couples.Update(ctx, host, CoupleUpdate{StartDate: &start, SharedMessage: &message})
	require.NoError(t, err)
	require.NotNil(t, info.StartDate)
	assert.Equal(t, "2024-05-05", info.StartDate.String())

	info, err = env.couples.Info(ctx, guest)
	require.NoError(t, err)
	require.NotNil(t, info.SharedMessage)
	assert.Equal(t, message, *info.SharedMessage)
	assert.Equal(t, "2024-05-05", info.StartDate.String())

	tooLong := strings.Repeat("x", couple.MaxSharedMessageLength+1)
	_, err = env.couples.Update(ctx, guest, CoupleUpdate{SharedMessage: &tooLong})
	assert.ErrorIs(t, err, apperror.ErrSharedMessageTooLong)
}
