// Package services 业务逻辑，控制器只负责参数校验和响应
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"twogether/app/models"
	"twogether/app/models/user"
	"twogether/app/repositories"
	"twogether/pkg/apperror"
	"twogether/pkg/auth"
	"twogether/pkg/database"
	"twogether/pkg/jwt"
	"twogether/pkg/logger"
	"twogether/pkg/oauth"
	"twogether/pkg/tokenstore"
)

// IdentityResolver 社交平台身份解析，oauth.Registry 实现了该接口
type IdentityResolver interface {
	Resolve(ctx context.Context, platform oauth.Platform, idToken string) (*oauth.Identity, error)
	Unlink(ctx context.Context, platform oauth.Platform, platformUserID string) error
}

// SignInResult 登录结果
type SignInResult struct {
	*jwt.TokenPair
	UserID   uint64       `json:"userId"`
	Status   user.Status  `json:"status"`
	Nickname *string      `json:"nickname,omitempty"`
	BirthDay *models.Date `json:"birthDay,omitempty"`
	CoupleID *uint64      `json:"coupleId,omitempty"`
}

// AuthService 登录、刷新令牌和退出登录
type AuthService struct {
	users      *repositories.UserRepository
	fcmTokens  *repositories.FcmTokenRepository
	identities IdentityResolver
	issuer     *jwt.Issuer
	tokens     *tokenstore.Store
	now        func() time.Time
}

// NewAuthService 创建服务
func NewAuthService(
	users *repositories.UserRepository,
	fcmTokens *repositories.FcmTokenRepository,
	identities IdentityResolver,
	issuer *jwt.Issuer,
	tokens *tokenstore.Store,
) *AuthService {
	return &AuthService{
		users:      users,
		fcmTokens:  fcmTokens,
		identities: identities,
		issuer:     issuer,
		tokens:     tokens,
		now:        time.Now,
	}
}

// WithClock 替换时钟
func (s *AuthService) WithClock(now func() time.Time) *AuthService {
	s.now = now
	return s
}

// SignIn 首次登录时注册，并发的首次登录只会产生一个用户
func (s *AuthService) SignIn(ctx context.Context, platform oauth.Platform, idToken, deviceID string) (*SignInResult, error) {
	identity, err := s.identities.Resolve(ctx, platform, idToken)
	if err != nil {
		return nil, identityError(err)
	}

	u, err := s.findOrCreate(ctx, identity)
	if err != nil {
		return nil, err
	}

	pair, err := s.issue(ctx, u.ID, deviceID)
	if err != nil {
		return nil, err
	}

	return &SignInResult{
		TokenPair: pair,
		UserID:    u.ID,
		Status:    u.Status,
		Nickname:  u.Nickname,
		BirthDay:  u.BirthDay,
		CoupleID:  u.CoupleID,
	}, nil
}

func (s *AuthService) findOrCreate(ctx context.Context, identity *oauth.Identity) (*user.User, error) {
	u, err := s.users.FindByPlatform(ctx, identity.Platform, identity.PlatformUserID)
	if err != nil {
		return nil, fmt.Errorf("find user by platform: %w", err)
	}
	if u != nil {
		return u, nil
	}

	u = user.New(identity)
	createErr := s.users.Create(ctx, u)
	if createErr == nil {
		logger.Info("Auth", zap.String("event", "user registered"), zap.Uint64("user_id", u.ID), zap.String("platform", string(identity.Platform)))
		return u, nil
	}
	if !database.IsDuplicateKey(createErr) {
		return nil, fmt.Errorf("create user: %w", createErr)
	}

	// 并发请求已经注册了同一个身份
	existing, err := s.users.FindByPlatform(ctx, identity.Platform, identity.PlatformUserID)
	if err != nil || existing == nil {
		return nil, fmt.Errorf("create user: %w", createErr)
	}
	return existing, nil
}

// issue 签发令牌对并覆盖设备原有的刷新令牌
func (s *AuthService) issue(ctx context.Context, userID uint64, deviceID string) (*jwt.TokenPair, error) {
	pair, err := s.issuer.IssuePair(userID, deviceID)
	if err != nil {
		return nil, err
	}
	if err := s.tokens.SaveRefreshToken(ctx, userID, deviceID, pair.RefreshToken, s.issuer.RefreshTTL()); err != nil {
		return nil, fmt.Errorf("save refresh token: %w", err)
	}
	return pair, nil
}

// Refresh 访问令牌可以已过期但签名必须正确，刷新令牌必须与设备当前保存的一致
func (s *AuthService) Refresh(ctx context.Context, accessToken, refreshToken, deviceID string) (*jwt.TokenPair, error) {
	access, err := s.issuer.ParseAccessAllowExpired(accessToken)
	if err != nil {
		return nil, TokenError(err)
	}
	refresh, err := s.issuer.ParseRefresh(refreshToken)
	if err != nil {
		return nil, TokenError(err)
	}
	if refresh.UserID != access.UserID || refresh.DeviceID != deviceID {
		return nil, apperror.ErrRefreshTokenMismatch
	}

	stored, err := s.tokens.GetRefreshToken(ctx, refresh.UserID, deviceID)
	if errors.Is(err, tokenstore.ErrNotFound) || (err == nil && stored != refreshToken) {
		return nil, apperror.ErrRefreshTokenMismatch
	}
	if err != nil {
		return nil, fmt.Errorf("get refresh token: %w", err)
	}

	u, err := s.users.FindByID(ctx, refresh.UserID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if u == nil {
		return nil, apperror.ErrUserNotFound
	}

	// 旧的访问令牌如果还没过期，一并作废
	if access.ExpiresAt != nil {
		if err := s.tokens.Blacklist(ctx, access.ID, access.ExpiresAt.Sub(s.now())); err != nil {
			logger.Warn("Auth", zap.String("action", "blacklist rotated access token"), zap.Error(err))
		}
	}
	return s.issue(ctx, u.ID, deviceID)
}

// SignOut 注销访问令牌，删除设备的刷新令牌和推送令牌
func (s *AuthService) SignOut(ctx context.Context, principal *auth.Principal) error {
	if err := s.tokens.Blacklist(ctx, principal.TokenID, principal.ExpiresAt.Sub(s.now())); err != nil {
		return fmt.Errorf("blacklist access token: %w", err)
	}
	if err := s.tokens.DeleteRefreshToken(ctx, principal.UserID, principal.DeviceID); err != nil {
		return fmt.Errorf("delete refresh token: %w", err)
	}
	if err := s.fcmTokens.DeleteByUserDevice(ctx, principal.UserID, principal.DeviceID); err != nil {
		return fmt.Errorf("delete fcm token: %w", err)
	}
	return nil
}

// Authenticate 校验访问令牌，已注销的令牌同样拒绝
func (s *AuthService) Authenticate(ctx context.Context, accessToken, deviceID string) (*auth.Principal, error) {
	claims, err := s.issuer.ParseAccess(accessToken)
	if err != nil {
		return nil, TokenError(err)
	}

	blacklisted, err := s.tokens.IsBlacklisted(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("check token blacklist: %w", err)
	}
	if blacklisted {
		return nil, apperror.ErrLoggedOutToken
	}

	p := &auth.Principal{
		UserID:   claims.UserID,
		DeviceID: deviceID,
		TokenID:  claims.ID,
	}
	if claims.ExpiresAt != nil {
		p.ExpiresAt = claims.ExpiresAt.Time
	}
	return p, nil
}

// TokenError 服务令牌的解析错误转换为业务错误
func TokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return apperror.ErrExpiredToken
	case errors.Is(err, jwt.ErrTokenMalformed), errors.Is(err, jwt.ErrTokenInvalid):
		return apperror.ErrIllegalToken.WithCause(err)
	}
	return err
}

// identityError 社交平台的解析错误转换为业务错误
func identityError(err error) error {
	switch {
	case errors.Is(err, oauth.ErrPublicKeyMismatch):
		return apperror.ErrPublicKeyMismatch.WithCause(err)
	case errors.Is(err, oauth.ErrIllegalToken):
		return apperror.ErrIllegalToken.WithCause(err)
	case errors.Is(err, oauth.ErrUnsupportedPlatform):
		return apperror.ErrUnsupportedPlatform.WithCause(err)
	case errors.Is(err, oauth.ErrProviderUnavailable), errors.Is(err, context.DeadlineExceeded):
		return apperror.ErrIdentityProvider.WithCause(err)
	}
	return err
}
