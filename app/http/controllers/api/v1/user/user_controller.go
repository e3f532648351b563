package user

import (
	"github.com/gin-gonic/gin"

	"twogether/app/requests"
	"twogether/app/services"
	"twogether/pkg/apperror"
	"twogether/pkg/auth"
	"twogether/pkg/response"
)

// UsersController 当前用户
type UsersController struct {
	userService *services.UserService
}

// NewUsersController 创建控制器
func NewUsersController(userService *services.UserService) *UsersController {
	return &UsersController{userService: userService}
}

// Me 当前用户资料
func (uc *UsersController) Me(c *gin.Context) {
	profile, err := uc.userService.Me(c.Request.Context(), auth.CurrentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Data(c, profile)
}

// UpdateProfile 完善或修改资料
func (uc *UsersController) UpdateProfile(c *gin.Context) {
	request, err := requests.ValidateProfile(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	profile, err := uc.userService.UpdateProfile(c.Request.Context(), auth.CurrentUserID(c), services.ProfileUpdate{
		Nickname: request.Nickname,
		BirthDay: request.BirthDate(),
		Gender:   request.GenderValue(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Data(c, profile)
}

// Withdraw 注销账号
func (uc *UsersController) Withdraw(c *gin.Context) {
	principal, ok := auth.CurrentPrincipal(c)
	if !ok {
		response.Error(c, apperror.ErrMissingToken)
		return
	}

	if err := uc.userService.Withdraw(c.Request.Context(), principal); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c)
}
