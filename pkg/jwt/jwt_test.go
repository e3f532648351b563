package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIssuer(now *time.Time) *Issuer {
	return NewIssuer(Config{
		Secret:     "test-secret",
		Issuer:     "twogether",
		AccessTTL:  time.Hour,
		RefreshTTL: 24 * time.Hour,
	}).WithClock(func() time.Time { return *now })
}

func TestIssueAndParse(t *testing.T) {
	now := time.Now()
	issuer := newTestIssuer(&now)

	pair, err := issuer.IssuePair(42, "device-1")
	require.NoError(t, err)

	access, err := issuer.ParseAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), access.UserID)
	assert.Equal(t, "twogether", access.Issuer)
	assert.NotEmpty(t, access.ID)

	refresh, err := issuer.ParseRefresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), refresh.UserID)
	assert.Equal(t, "device-1", refresh.DeviceID)

	// 两种令牌不能互换
	_, err = issuer.ParseAccess(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenInvalid)
	_, err = issuer.ParseRefresh(pair.AccessToken)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestExpiredAccessToken(t *testing.T) {
	now := time.Now()
	issuer := newTestIssuer(&now)
	pair, err := issuer.IssuePair(1, "d")
	require.NoError(t, err)

	now = now.Add(2 * time.Hour)
	_, err = issuer.ParseAccess(pair.AccessToken)
	assert.ErrorIs(t, err, ErrTokenExpired)

	claims, err := issuer.ParseAccessAllowExpired(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), claims.UserID)
}

func TestWrongSecretRejected(t *testing.T) {
	now := time.Now()
	pair, err := newTestIssuer(&now).IssuePair(1, "d")
	require.NoError(t, err)

	other := NewIssuer(Config{Secret: "other", Issuer: "twogether"})
	_, err = other.ParseAccess(pair.AccessToken)
	assert.ErrorIs(t, err, ErrTokenInvalid)
	_, err = other.ParseAccessAllowExpired(pair.AccessToken)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = other.ParseAccess("not-a-token")
	assert.ErrorIs(t, err, ErrTokenMalformed)
}
