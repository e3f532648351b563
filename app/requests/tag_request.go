package requests

import (
	"github.com/gin-gonic/gin"
	"github.com/thedevsaddam/govalidator"
)

// TagRequest 创建标签
type TagRequest struct {
	Name string `json:"name"`
}

// ValidateTag 校验标签名，首尾空白由服务层去除
func ValidateTag(c *gin.Context) (*TagRequest, error) {
	rules := govalidator.MapData{
		"name": []string{"required", "max:20"},
	}
	messages := govalidator.MapData{
		"name": []string{
			"required:name is required",
			"max:name must be at most 20 characters",
		},
	}
	return ValidateRequest[TagRequest](c, rules, messages)
}
