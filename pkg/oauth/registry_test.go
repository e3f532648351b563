package oauth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"twogether/pkg/oauth"
	"twogether/pkg/oauth/mocks"
)

type refreshingProvider struct {
	*mocks.MockProvider
	*mocks.MockKeyRefresher
}

func TestRegistryUnsupportedPlatform(t *testing.T) {
	registry := oauth.NewRegistry()
	_, err := registry.Resolve(context.Background(), oauth.PlatformKakao, "token")
	assert.ErrorIs(t, err, oauth.ErrUnsupportedPlatform)
}

func TestRegistryRetriesOnceAfterKeyMismatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := mocks.NewMockProvider(ctrl)
	refresher := mocks.NewMockKeyRefresher(ctrl)
	ctx := context.Background()
	identity := &oauth.Identity{Platform: oauth.PlatformKakao, PlatformUserID: "123"}

	provider.EXPECT().Platform().Return(oauth.PlatformKakao).AnyTimes()
	gomock.InOrder(
		provider.EXPECT().Resolve(ctx, "token").Return(nil, oauth.ErrPublicKeyMismatch),
		refresher.EXPECT().RefreshKeys(ctx).Return(nil),
		provider.EXPECT().Resolve(ctx, "token").Return(identity, nil),
	)

	registry := oauth.NewRegistry(refreshingProvider{provider, refresher})
	got, err := registry.Resolve(ctx, oauth.PlatformKakao, "token")
	require.NoError(t, err)
	assert.Equal(t, "123", got.PlatformUserID)
}

func TestRegistryDoesNotRetryOtherErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := mocks.NewMockProvider(ctrl)
	provider.EXPECT().Platform().Return(oauth.PlatformApple).AnyTimes()
	provider.EXPECT().Resolve(gomock.Any(), "bad").Return(nil, oauth.ErrIllegalToken).Times(1)

	registry := oauth.NewRegistry(provider)
	_, err := registry.Resolve(context.Background(), oauth.PlatformApple, "bad")
	assert.ErrorIs(t, err, oauth.ErrIllegalToken)
}

func TestRegistryRefreshFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := mocks.NewMockProvider(ctrl)
	refresher := mocks.NewMockKeyRefresher(ctrl)
	provider.EXPECT().Platform().Return(oauth.PlatformKakao).AnyTimes()
	provider.EXPECT().Resolve(gomock.Any(), "token").Return(nil, oauth.ErrPublicKeyMismatch).Times(1)
	refresher.EXPECT().RefreshKeys(gomock.Any()).Return(oauth.ErrProviderUnavailable)

	registry := oauth.NewRegistry(refreshingProvider{provider, refresher})
	_, err := registry.Resolve(context.Background(), oauth.PlatformKakao, "token")
	assert.True(t, errors.Is(err, oauth.ErrProviderUnavailable))
}

func TestTestProvider(t *testing.T) {
	registry := oauth.NewRegistry(oauth.TestProvider{})
	identity, err := registry.Resolve(context.Background(), oauth.PlatformTest, " user-1 ")
	require.NoError(t, err)
	assert.Equal(t, "user-1", identity.PlatformUserID)

	_, err = registry.Resolve(context.Background(), oauth.PlatformTest, "")
	assert.ErrorIs(t, err, oauth.ErrIllegalToken)
}

func TestParsePlatform(t *testing.T) {
	p, ok := oauth.ParsePlatform("kakao")
	assert.True(t, ok)
	assert.Equal(t, oauth.PlatformKakao, p)

	_, ok = oauth.ParsePlatform("google")
	assert.False(t, ok)
}

func TestNormalizeNickname(t *testing.T) {
	assert.Nil(t, oauth.NormalizeNickname("a"))
	assert.Nil(t, oauth.NormalizeNickname("   "))
	assert.Nil(t, oauth.NormalizeNickname("열한글자닉네임입니다요"))
	require.NotNil(t, oauth.NormalizeNickname("  두리  "))
	assert.Equal(t, "두리", *oauth.NormalizeNickname("  두리  "))
}
