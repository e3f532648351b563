package requests

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/thedevsaddam/govalidator"

	"twogether/app/models"
)

// CalendarQuery 日历查询参数
type CalendarQuery struct {
	StartDate    models.Date
	EndDate      models.Date
	UserTimeZone string
}

// ValidateCalendarQuery 日期格式为 yyyy-MM-dd，区间和时区由服务层检查
func ValidateCalendarQuery(c *gin.Context) (*CalendarQuery, error) {
	rules := govalidator.MapData{
		"startDate": []string{"required", "date"},
		"endDate":   []string{"required", "date"},
	}
	messages := govalidator.MapData{
		"startDate": []string{
			"required:startDate is required",
			"date:startDate must be yyyy-MM-dd",
		},
		"endDate": []string{
			"required:endDate is required",
			"date:endDate must be yyyy-MM-dd",
		},
	}
	if err := ValidateQuery(c, rules, messages); err != nil {
		return nil, err
	}

	start, err := models.ParseDate(c.Query("startDate"))
	if err != nil {
		return nil, invalid("startDate", "startDate must be yyyy-MM-dd")
	}
	end, err := models.ParseDate(c.Query("endDate"))
	if err != nil {
		return nil, invalid("endDate", "endDate must be yyyy-MM-dd")
	}
	return &CalendarQuery{StartDate: start, EndDate: end, UserTimeZone: c.Query("userTimeZone")}, nil
}

// HolidayQuery 节假日查询参数
type HolidayQuery struct {
	Year  int
	Month int
}

// ValidateHolidayQuery 年份和月份
func ValidateHolidayQuery(c *gin.Context) (*HolidayQuery, error) {
	rules := govalidator.MapData{
		"year":  []string{"required", "numeric_between:1900,2100"},
		"month": []string{"required", "numeric_between:1,12"},
	}
	messages := govalidator.MapData{
		"year": []string{
			"required:year is required",
			"numeric_between:year must be between 1900 and 2100",
		},
		"month": []string{
			"required:month is required",
			"numeric_between:month must be between 1 and 12",
		},
	}
	if err := ValidateQuery(c, rules, messages); err != nil {
		return nil, err
	}

	year, _ := strconv.Atoi(c.Query("year"))
	month, _ := strconv.Atoi(c.Query("month"))
	return &HolidayQuery{Year: year, Month: month}, nil
}
