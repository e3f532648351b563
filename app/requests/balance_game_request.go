package requests

import (
	"github.com/gin-gonic/gin"
)

// ChoiceRequest 选择选项
type ChoiceRequest struct {
	OptionID uint64 `json:"optionId"`
}

// ValidateChoice 选项 id 必须为正整数
func ValidateChoice(c *gin.Context) (*ChoiceRequest, error) {
	req, err := BindJSON[ChoiceRequest](c)
	if err != nil {
		return nil, err
	}
	if req.OptionID == 0 {
		return nil, invalid("optionId", "optionId is required")
	}
	return req, nil
}
