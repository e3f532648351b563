package requests

import (
	"github.com/gin-gonic/gin"
	"github.com/thedevsaddam/govalidator"

	"twogether/app/models"
)

// RedeemRequest 兑换邀请码
type RedeemRequest struct {
	InvitationCode string `json:"invitationCode"`
}

// ValidateRedeem 校验邀请码
func ValidateRedeem(c *gin.Context) (*RedeemRequest, error) {
	rules := govalidator.MapData{
		"invitationCode": []string{"required", "alpha_num", "between:4,16"},
	}
	messages := govalidator.MapData{
		"invitationCode": []string{
			"required:invitationCode is required",
			"alpha_num:invitationCode must be letters and digits",
			"between:invitationCode must be 4 to 16 characters",
		},
	}
	return ValidateRequest[RedeemRequest](c, rules, messages)
}

// CoupleUpdateRequest 修改情侣信息，缺省字段不修改
type CoupleUpdateRequest struct {
	StartDate     *string `json:"startDate"`
	SharedMessage *string `json:"sharedMessage"`
}

// Start 开始日期，未提交时为 nil
func (r *CoupleUpdateRequest) Start() *models.Date {
	if r.StartDate == nil {
		return nil
	}
	date, err := models.ParseDate(*r.StartDate)
	if err != nil {
		return nil
	}
	return &date
}

// ValidateCoupleUpdate 共享留言长度由情侣模型检查
func ValidateCoupleUpdate(c *gin.Context) (*CoupleUpdateRequest, error) {
	req, err := BindJSON[CoupleUpdateRequest](c)
	if err != nil {
		return nil, err
	}
	if req.StartDate == nil && req.SharedMessage == nil {
		return nil, invalid("startDate", "startDate or sharedMessage is required")
	}
	if req.StartDate != nil && req.Start() == nil {
		return nil, invalid("startDate", "startDate must be yyyy-MM-dd")
	}
	return req, nil
}
