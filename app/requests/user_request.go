package requests

import (
	"github.com/gin-gonic/gin"
	"github.com/thedevsaddam/govalidator"

	"twogether/app/models"
	"twogether/app/models/user"
)

// ProfileRequest 完善或修改资料
type ProfileRequest struct {
	Nickname string `json:"nickname"`
	BirthDay string `json:"birthDay"`
	Gender   string `json:"gender"`
}

// BirthDate 生日，未填写时为 nil
func (r *ProfileRequest) BirthDate() *models.Date {
	if r.BirthDay == "" {
		return nil
	}
	date, err := models.ParseDate(r.BirthDay)
	if err != nil {
		return nil
	}
	return &date
}

// GenderValue 性别，未填写时为 nil
func (r *ProfileRequest) GenderValue() *user.Gender {
	gender, ok := user.ParseGender(r.Gender)
	if !ok {
		return nil
	}
	return &gender
}

// ValidateProfile 校验资料，昵称字符集由用户模型检查
func ValidateProfile(c *gin.Context) (*ProfileRequest, error) {
	rules := govalidator.MapData{
		"nickname": []string{"required", "between:2,10"},
		"birthDay": []string{"date"},
		"gender":   []string{"in:MALE,FEMALE,male,female"},
	}
	messages := govalidator.MapData{
		"nickname": []string{
			"required:nickname is required",
			"between:nickname must be 2 to 10 characters",
		},
		"birthDay": []string{"date:birthDay must be yyyy-MM-dd"},
		"gender":   []string{"in:gender must be MALE or FEMALE"},
	}

	req, err := ValidateRequest[ProfileRequest](c, rules, messages)
	if err != nil {
		return nil, err
	}

	if req.BirthDay != "" && req.BirthDate() == nil {
		return nil, invalid("birthDay", "birthDay must be yyyy-MM-dd")
	}
	if req.Gender != "" && req.GenderValue() == nil {
		return nil, invalid("gender", "gender must be MALE or FEMALE")
	}
	return req, nil
}
