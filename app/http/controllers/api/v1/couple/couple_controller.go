package couple

import (
	"github.com/gin-gonic/gin"

	"twogether/app/requests"
	"twogether/app/services"
	"twogether/pkg/auth"
	"twogether/pkg/response"
)

// CouplesController 邀请码和情侣信息
type CouplesController struct {
	coupleService *services.CoupleService
}

// NewCouplesController 创建控制器
func NewCouplesController(coupleService *services.CoupleService) *CouplesController {
	return &CouplesController{coupleService: coupleService}
}

// IssueInvitationCode 签发或返回未过期的邀请码
func (cc *CouplesController) IssueInvitationCode(c *gin.Context) {
	code, err := cc.coupleService.IssueInvitationCode(c.Request.Context(), auth.CurrentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Data(c, code)
}

// Redeem 兑换邀请码建立情侣关系
func (cc *CouplesController) Redeem(c *gin.Context) {
	request, err := requests.ValidateRedeem(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	created, err := cc.coupleService.Redeem(c.Request.Context(), auth.CurrentUserID(c), request.InvitationCode)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"coupleId": created.ID})
}

// Show 情侣信息
func (cc *CouplesController) Show(c *gin.Context) {
	info, err := cc.coupleService.Info(c.Request.Context(), auth.CurrentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Data(c, info)
}

// Update 修改开始日期或共享留言
func (cc *CouplesController) Update(c *gin.Context) {
	request, err := requests.ValidateCoupleUpdate(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	info, err := cc.coupleService.Update(c.Request.Context(), auth.CurrentUserID(c), services.CoupleUpdate{
		StartDate:     request.Start(),
		SharedMessage: request.SharedMessage,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Data(c, info)
}

// Leave 离开情侣关系
func (cc *CouplesController) Leave(c *gin.Context) {
	if err := cc.coupleService.Leave(c.Request.Context(), auth.CurrentUserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c)
}
