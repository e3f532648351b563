package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"twogether/app/events"
	"twogether/app/models/couple"
	"twogether/app/models/user"
	"twogether/pkg/apperror"
	"twogether/pkg/oauth"
)

func TestUpdateProfileCompletesRegistration(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id, _ := env.signIn(t, "newbie")

	_, err := env.users.UpdateProfile(ctx, id, ProfileUpdate{Nickname: "a"})
	assert.ErrorIs(t, err, apperror.ErrInvalidNickname)
	_, err = env.users.UpdateProfile(ctx, id, ProfileUpdate{Nickname: "no spaces"})
	assert.ErrorIs(t, err, apperror.ErrInvalidNickname)

	gender := user.GenderFemale
	profile, err := env.users.UpdateProfile(ctx, id, ProfileUpdate{Nickname: "민지", Gender: &gender})
	require.NoError(t, err)
	assert.Equal(t, user.StatusSingle, profile.Status)
	assert.Equal(t, oauth.PlatformTest, profile.LoginPlatform)
	require.NotNil(t, profile.Nickname)
	assert.Equal(t, "민지", *profile.Nickname)
	require.NotNil(t, profile.Gender)
	assert.Equal(t, user.GenderFemale, *profile.Gender)
}

func TestMeShowsPartner(t *testing.T) {
	env := newTestEnv(t)
	host, guest := env.couple(t)

	me, err := env.users.Me(context.Background(), host)
	require.NoError(t, err)
	assert.Equal(t, user.StatusCoupled, me.Status)
	require.NotNil(t, me.PartnerID)
	assert.Equal(t, guest, *me.PartnerID)

	_, err = env.users.Me(context.Background(), 9999)
	assert.ErrorIs(t, err, apperror.ErrUserNotFound)
}

func TestWithdrawCoupledUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	host, guest := env.couple(t)
	env.createMemos(t, host, 3)

	signIn, err := env.auth.SignIn(ctx, oauth.PlatformTest, "host", "phone")
	require.NoError(t, err)
	require.Equal(t, host, signIn.UserID)
	principal, err := env.auth.Authenticate(ctx, signIn.AccessToken, "phone")
	require.NoError(t, err)
	require.NoError(t, env.notifications.RegisterToken(ctx, host, "phone", "host-token"))

	require.NoError(t, env.users.Withdraw(ctx, principal))

	gone, err := env.userRepo.FindByID(ctx, host)
	require.NoError(t, err)
	assert.Nil(t, gone)

	_, err = env.auth.Authenticate(ctx, signIn.AccessToken, "phone")
	assert.ErrorIs(t, err, apperror.ErrLoggedOutToken)

	count, err := env.contentRepo.Count(ctx, host)
	require.NoError(t, err)
	assert.Zero(t, count)

	info, err := env.couples.Info(ctx, guest)
	require.NoError(t, err)
	assert.Equal(t, couple.StatusInactive, info.Status)

	topics := env.bus.Topics()
	assert.Contains(t, topics, events.TopicMemberLeft)
	assert.Equal(t, events.TopicUserWithdrawn, topics[len(topics)-1])

	// 同一个平台账号可以重新注册
	again, err := env.auth.SignIn(ctx, oauth.PlatformTest, "host", "phone")
	require.NoError(t, err)
	assert.NotEqual(t, host, again.UserID)
	assert.Equal(t, user.StatusNew, again.Status)
}

func TestWithdrawSingleUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id, principal := env.signIn(t, "solo")

	require.NoError(t, env.users.Withdraw(ctx, principal))
	assert.NotContains(t, env.bus.Topics(), events.TopicMemberLeft)

	err := env.users.Withdraw(ctx, principal)
	assert.ErrorIs(t, err, apperror.ErrUserNotFound)

	gone, err := env.userRepo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, gone)
}
