package oauth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// IDTokenClaims 各平台 ID Token 中用到的字段
type IDTokenClaims struct {
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
	jwt.RegisteredClaims
}

// Verifier 校验 OIDC ID Token 的签名、签发方、受众和有效期
type Verifier struct {
	issuer   string
	audience string
	keys     *KeySet
	now      func() time.Time
}

// NewVerifier 创建校验器
func NewVerifier(issuer, audience string, keys *KeySet) *Verifier {
	return &Verifier{
		issuer:   issuer,
		audience: audience,
		keys:     keys,
		now:      time.Now,
	}
}

// Verify 校验并返回载荷
func (v *Verifier) Verify(ctx context.Context, idToken string) (*IDTokenClaims, error) {
	claims := &IDTokenClaims{}
	_, err := jwt.ParseWithClaims(idToken, claims, func(token *jwt.Token) (interface{}, error) {
		kid, _ := token.Header["kid"].(string)
		if kid == "" {
			return nil, ErrIllegalToken
		}
		return v.keys.Key(ctx, kid)
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(v.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil {
		switch {
		case errors.Is(err, ErrPublicKeyMismatch):
			return nil, ErrPublicKeyMismatch
		case errors.Is(err, ErrProviderUnavailable):
			return nil, err
		default:
			return nil, fmt.Errorf("%w: %v", ErrIllegalToken, err)
		}
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrIllegalToken)
	}
	return claims, nil
}

// RefreshKeys 强制刷新公钥
func (v *Verifier) RefreshKeys(ctx context.Context) error {
	return v.keys.Refresh(ctx)
}
