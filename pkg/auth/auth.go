// Package auth 请求范围内的登录身份
//
// 身份随 context.Context 显式传递，不使用全局状态。
package auth

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

type principalKey struct{}

// ginPrincipalKey gin.Context 中保存身份的键
const ginPrincipalKey = "auth.principal"

// Principal 当前登录用户
type Principal struct {
	UserID    uint64
	DeviceID  string
	TokenID   string
	ExpiresAt time.Time
}

// WithPrincipal 把身份放入 context
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext 从 context 中取出身份
func FromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok && p != nil
}

// SetPrincipal 同时写入 gin.Context 和 request context
func SetPrincipal(c *gin.Context, p *Principal) {
	c.Set(ginPrincipalKey, p)
	c.Request = c.Request.WithContext(WithPrincipal(c.Request.Context(), p))
}

// CurrentPrincipal 控制器中获取当前身份
func CurrentPrincipal(c *gin.Context) (*Principal, bool) {
	if v, ok := c.Get(ginPrincipalKey); ok {
		if p, ok := v.(*Principal); ok {
			return p, true
		}
	}
	return FromContext(c.Request.Context())
}

// CurrentUserID 当前用户 id，未登录时为 0
func CurrentUserID(c *gin.Context) uint64 {
	if p, ok := CurrentPrincipal(c); ok {
		return p.UserID
	}
	return 0
}

// DeviceIDHeader 客户端设备标识的请求头
const DeviceIDHeader = "Device-Id"

// DeviceID 请求头中的设备标识
func DeviceID(c *gin.Context) string {
	return strings.TrimSpace(c.GetHeader(DeviceIDHeader))
}
