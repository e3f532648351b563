package firebase

import (
	"github.com/gin-gonic/gin"

	"twogether/app/requests"
	"twogether/app/services"
	"twogether/pkg/apperror"
	"twogether/pkg/auth"
	"twogether/pkg/response"
)

// FcmController 推送令牌
type FcmController struct {
	notificationService *services.NotificationService
}

// NewFcmController 创建控制器
func NewFcmController(notificationService *services.NotificationService) *FcmController {
	return &FcmController{notificationService: notificationService}
}

// Register 登记当前设备的推送令牌
func (fc *FcmController) Register(c *gin.Context) {
	principal, ok := auth.CurrentPrincipal(c)
	if !ok {
		response.Error(c, apperror.ErrMissingToken)
		return
	}
	request, err := requests.ValidateFcmToken(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := fc.notificationService.RegisterToken(c.Request.Context(), principal.UserID, principal.DeviceID, request.Token); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c)
}
