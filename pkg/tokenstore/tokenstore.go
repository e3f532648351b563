// Package tokenstore 管理存放在 Redis 中的短期凭据：刷新令牌、令牌黑名单、情侣邀请码
package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"twogether/pkg/redis"
)

// 键格式
const (
	refreshKeyFormat        = "token:refresh:%d:%s"
	blacklistKeyFormat      = "token:blacklist:%s"
	invitationCodeKeyFormat = "couple:invitation:code:%s"
	invitationUserKeyFormat = "couple:invitation:user:%d"
)

// ErrNotFound 键不存在或已过期
var ErrNotFound = errors.New("tokenstore: not found")

// Store 令牌存储
type Store struct {
	kv redis.Store
}

// New 创建令牌存储
func New(kv redis.Store) *Store {
	return &Store{kv: kv}
}

// RefreshKey 刷新令牌的键
func RefreshKey(userID uint64, deviceID string) string {
	return fmt.Sprintf(refreshKeyFormat, userID, deviceID)
}

// BlacklistKey 黑名单的键
func BlacklistKey(tokenID string) string {
	return fmt.Sprintf(blacklistKeyFormat, tokenID)
}

// InvitationCodeKey 邀请码 -> 发起人
func InvitationCodeKey(code string) string {
	return fmt.Sprintf(invitationCodeKeyFormat, code)
}

// InvitationUserKey 发起人 -> 邀请码
func InvitationUserKey(userID uint64) string {
	return fmt.Sprintf(invitationUserKeyFormat, userID)
}

// SaveRefreshToken 保存设备的刷新令牌，覆盖旧值
func (s *Store) SaveRefreshToken(ctx context.Context, userID uint64, deviceID, token string, ttl time.Duration) error {
	return s.kv.Set(ctx, RefreshKey(userID, deviceID), token, ttl)
}

// GetRefreshToken 读取设备的刷新令牌
func (s *Store) GetRefreshToken(ctx context.Context, userID uint64, deviceID string) (string, error) {
	return s.get(ctx, RefreshKey(userID, deviceID))
}

// DeleteRefreshToken 删除设备的刷新令牌
func (s *Store) DeleteRefreshToken(ctx context.Context, userID uint64, deviceID string) error {
	return s.kv.Del(ctx, RefreshKey(userID, deviceID))
}

// Blacklist 把访问令牌加入黑名单直到其自然过期
func (s *Store) Blacklist(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return s.kv.Set(ctx, BlacklistKey(tokenID), "1", ttl)
}

// IsBlacklisted 访问令牌是否已注销
func (s *Store) IsBlacklisted(ctx context.Context, tokenID string) (bool, error) {
	_, err := s.get(ctx, BlacklistKey(tokenID))
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ReserveInvitationCode 以 set-if-absent 占用邀请码，返回是否占用成功
func (s *Store) ReserveInvitationCode(ctx context.Context, code string, hostUserID uint64, ttl time.Duration) (bool, error) {
	return s.kv.SetNX(ctx, InvitationCodeKey(code), strconv.FormatUint(hostUserID, 10), ttl)
}

// BindInvitationCode 以 set-if-absent 记录发起人当前的邀请码，返回是否写入成功
func (s *Store) BindInvitationCode(ctx context.Context, hostUserID uint64, code string, ttl time.Duration) (bool, error) {
	return s.kv.SetNX(ctx, InvitationUserKey(hostUserID), code, ttl)
}

// ReleaseInvitationCode 只释放邀请码这一半，用于绑定失败时回滚
func (s *Store) ReleaseInvitationCode(ctx context.Context, code string) error {
	return s.kv.Del(ctx, InvitationCodeKey(code))
}

// FindInvitationHost 邀请码对应的发起人
func (s *Store) FindInvitationHost(ctx context.Context, code string) (uint64, error) {
	value, err := s.get(ctx, InvitationCodeKey(code))
	if err != nil {
		return 0, err
	}
	hostUserID, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("tokenstore: malformed invitation host %q: %w", value, err)
	}
	return hostUserID, nil
}

// FindInvitationCode 发起人当前有效的邀请码及剩余时间
func (s *Store) FindInvitationCode(ctx context.Context, hostUserID uint64) (string, time.Duration, error) {
	key := InvitationUserKey(hostUserID)
	code, err := s.get(ctx, key)
	if err != nil {
		return "", 0, err
	}
	ttl, err := s.kv.TTL(ctx, key)
	if errors.Is(err, redis.ErrNil) {
		return "", 0, ErrNotFound
	}
	if err != nil {
		return "", 0, err
	}
	return code, ttl, nil
}

// DeleteInvitation 删除邀请码的两个方向
func (s *Store) DeleteInvitation(ctx context.Context, code string, hostUserID uint64) error {
	return s.kv.Del(ctx, InvitationCodeKey(code), InvitationUserKey(hostUserID))
}

func (s *Store) get(ctx context.Context, key string) (string, error) {
	value, err := s.kv.Get(ctx, key)
	if errors.Is(err, redis.ErrNil) {
		return "", ErrNotFound
	}
	return value, err
}
