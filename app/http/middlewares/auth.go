package middlewares

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"twogether/pkg/apperror"
	"twogether/pkg/auth"
	"twogether/pkg/response"
)

// Authenticator 校验访问令牌
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken, deviceID string) (*auth.Principal, error)
}

// AuthJWT 解析 Bearer 令牌，通过后把身份放入上下文
func AuthJWT(authenticator Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			response.Abort(c, apperror.ErrMissingToken)
			return
		}

		principal, err := authenticator.Authenticate(c.Request.Context(), strings.TrimSpace(token), auth.DeviceID(c))
		if err != nil {
			response.Error(c, err)
			return
		}

		auth.SetPrincipal(c, principal)
		c.Next()
	}
}

// RequireDeviceID 要求携带 Device-Id 请求头
func RequireDeviceID() gin.HandlerFunc {
	return func(c *gin.Context) {
		if auth.DeviceID(c) == "" {
			response.Abort(c, apperror.ErrMissingDeviceID)
			return
		}
		c.Next()
	}
}
