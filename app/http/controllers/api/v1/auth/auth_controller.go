package auth

import (
	"github.com/gin-gonic/gin"

	"twogether/app/requests"
	"twogether/app/services"
	"twogether/pkg/apperror"
	"twogether/pkg/auth"
	"twogether/pkg/response"
)

// AuthController 登录、刷新和退出
type AuthController struct {
	authService *services.AuthService
}

// NewAuthController 创建控制器
func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// SignIn 社交登录，首次登录自动注册
func (ac *AuthController) SignIn(c *gin.Context) {
	request, err := requests.ValidateSignIn(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := ac.authService.SignIn(c.Request.Context(), request.Platform(), request.IDToken, auth.DeviceID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Data(c, result)
}

// Refresh 轮换令牌对
func (ac *AuthController) Refresh(c *gin.Context) {
	request, err := requests.ValidateRefresh(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	pair, err := ac.authService.Refresh(c.Request.Context(), request.AccessToken, request.RefreshToken, auth.DeviceID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Data(c, pair)
}

// SignOut 退出当前设备
func (ac *AuthController) SignOut(c *gin.Context) {
	principal, ok := auth.CurrentPrincipal(c)
	if !ok {
		response.Error(c, apperror.ErrMissingToken)
		return
	}

	if err := ac.authService.SignOut(c.Request.Context(), principal); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c)
}
