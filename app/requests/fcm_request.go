package requests

import (
	"github.com/gin-gonic/gin"
	"github.com/thedevsaddam/govalidator"
)

// FcmTokenRequest 登记推送令牌
type FcmTokenRequest struct {
	Token string `json:"token"`
}

// ValidateFcmToken 校验推送令牌
func ValidateFcmToken(c *gin.Context) (*FcmTokenRequest, error) {
	rules := govalidator.MapData{
		"token": []string{"required", "max:4096"},
	}
	messages := govalidator.MapData{
		"token": []string{
			"required:token is required",
			"max:token is too long",
		},
	}
	return ValidateRequest[FcmTokenRequest](c, rules, messages)
}
