package requests

import (
	"github.com/gin-gonic/gin"
	"github.com/thedevsaddam/govalidator"

	"twogether/pkg/oauth"
)

// SignInRequest 社交登录
type SignInRequest struct {
	LoginPlatform string `json:"loginPlatform"`
	IDToken       string `json:"idToken"`
}

// Platform 已校验过的登录平台
func (r *SignInRequest) Platform() oauth.Platform {
	platform, _ := oauth.ParsePlatform(r.LoginPlatform)
	return platform
}

// ValidateSignIn 校验登录请求
func ValidateSignIn(c *gin.Context) (*SignInRequest, error) {
	rules := govalidator.MapData{
		"loginPlatform": []string{"required", "in:KAKAO,APPLE,TEST"},
		"idToken":       []string{"required"},
	}
	messages := govalidator.MapData{
		"loginPlatform": []string{
			"required:loginPlatform is required",
			"in:loginPlatform must be one of KAKAO, APPLE, TEST",
		},
		"idToken": []string{
			"required:idToken is required",
		},
	}
	return ValidateRequest[SignInRequest](c, rules, messages)
}

// RefreshRequest 刷新令牌
type RefreshRequest struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// ValidateRefresh 校验刷新令牌请求
func ValidateRefresh(c *gin.Context) (*RefreshRequest, error) {
	rules := govalidator.MapData{
		"accessToken":  []string{"required"},
		"refreshToken": []string{"required"},
	}
	messages := govalidator.MapData{
		"accessToken":  []string{"required:accessToken is required"},
		"refreshToken": []string{"required:refreshToken is required"},
	}
	return ValidateRequest[RefreshRequest](c, rules, messages)
}
