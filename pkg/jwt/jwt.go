// Package jwt 签发和解析服务自身的访问令牌与刷新令牌
package jwt

import (
	"errors"
	"fmt"
	"time"

	jwtpkg "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// 令牌类型
const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

var (
	ErrTokenExpired   = errors.New("令牌已过期")
	ErrTokenMalformed = errors.New("请求令牌格式有误")
	ErrTokenInvalid   = errors.New("请求令牌无效")
)

// Claims 令牌载荷
type Claims struct {
	UserID    uint64 `json:"uid"`
	DeviceID  string `json:"did,omitempty"`
	TokenType string `json:"typ"`
	jwtpkg.RegisteredClaims
}

// TokenPair 一次签发的令牌对
type TokenPair struct {
	AccessToken      string    `json:"accessToken"`
	RefreshToken     string    `json:"refreshToken"`
	AccessExpiresAt  time.Time `json:"accessTokenExpiresAt"`
	RefreshExpiresAt time.Time `json:"refreshTokenExpiresAt"`
}

// Config 签发配置
type Config struct {
	Secret     string
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Issuer 令牌签发器，HS256 对称签名
type Issuer struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewIssuer 创建签发器
func NewIssuer(cfg Config) *Issuer {
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = time.Hour
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = 14 * 24 * time.Hour
	}
	return &Issuer{
		secret:     []byte(cfg.Secret),
		issuer:     cfg.Issuer,
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		now:        time.Now,
	}
}

// WithClock 替换时钟
func (i *Issuer) WithClock(now func() time.Time) *Issuer {
	i.now = now
	return i
}

// RefreshTTL 刷新令牌有效期
func (i *Issuer) RefreshTTL() time.Duration {
	return i.refreshTTL
}

// IssuePair 签发访问令牌和刷新令牌
func (i *Issuer) IssuePair(userID uint64, deviceID string) (*TokenPair, error) {
	now := i.now()
	accessExpiresAt := now.Add(i.accessTTL)
	refreshExpiresAt := now.Add(i.refreshTTL)

	access, err := i.sign(Claims{
		UserID:    userID,
		TokenType: TypeAccess,
		RegisteredClaims: jwtpkg.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    i.issuer,
			IssuedAt:  jwtpkg.NewNumericDate(now),
			ExpiresAt: jwtpkg.NewNumericDate(accessExpiresAt),
		},
	})
	if err != nil {
		return nil, err
	}

	refresh, err := i.sign(Claims{
		UserID:    userID,
		DeviceID:  deviceID,
		TokenType: TypeRefresh,
		RegisteredClaims: jwtpkg.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    i.issuer,
			IssuedAt:  jwtpkg.NewNumericDate(now),
			ExpiresAt: jwtpkg.NewNumericDate(refreshExpiresAt),
		},
	})
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:      access,
		RefreshToken:     refresh,
		AccessExpiresAt:  accessExpiresAt,
		RefreshExpiresAt: refreshExpiresAt,
	}, nil
}

// ParseAccess 解析并校验访问令牌
func (i *Issuer) ParseAccess(token string) (*Claims, error) {
	return i.parse(token, TypeAccess, true)
}

// ParseAccessAllowExpired 解析访问令牌，签名必须正确但允许已过期，用于刷新令牌
func (i *Issuer) ParseAccessAllowExpired(token string) (*Claims, error) {
	return i.parse(token, TypeAccess, false)
}

// ParseRefresh 解析并校验刷新令牌
func (i *Issuer) ParseRefresh(token string) (*Claims, error) {
	return i.parse(token, TypeRefresh, true)
}

func (i *Issuer) sign(claims Claims) (string, error) {
	token, err := jwtpkg.NewWithClaims(jwtpkg.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

func (i *Issuer) parse(tokenString, tokenType string, validateExpiry bool) (*Claims, error) {
	opts := []jwtpkg.ParserOption{
		jwtpkg.WithValidMethods([]string{jwtpkg.SigningMethodHS256.Alg()}),
		jwtpkg.WithTimeFunc(i.now),
	}
	if validateExpiry {
		opts = append(opts, jwtpkg.WithIssuer(i.issuer), jwtpkg.WithExpirationRequired())
	} else {
		opts = append(opts, jwtpkg.WithoutClaimsValidation())
	}

	claims := &Claims{}
	token, err := jwtpkg.ParseWithClaims(tokenString, claims, func(*jwtpkg.Token) (interface{}, error) {
		return i.secret, nil
	}, opts...)
	if err != nil {
		switch {
		case errors.Is(err, jwtpkg.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwtpkg.ErrTokenMalformed):
			return nil, ErrTokenMalformed
		default:
			return nil, ErrTokenInvalid
		}
	}
	if !token.Valid || claims.TokenType != tokenType || claims.UserID == 0 {
		return nil, ErrTokenInvalid
	}
	if !validateExpiry && claims.Issuer != i.issuer {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
