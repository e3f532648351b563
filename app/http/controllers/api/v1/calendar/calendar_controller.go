package calendar

import (
	"github.com/gin-gonic/gin"

	"twogether/app/requests"
	"twogether/app/services"
	"twogether/pkg/auth"
	"twogether/pkg/response"
)

// CalendarController 日历和节假日
type CalendarController struct {
	calendarService *services.CalendarService
}

// NewCalendarController 创建控制器
func NewCalendarController(calendarService *services.CalendarService) *CalendarController {
	return &CalendarController{calendarService: calendarService}
}

// Index 区间内的日程和节假日
func (cc *CalendarController) Index(c *gin.Context) {
	query, err := requests.ValidateCalendarQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	view, err := cc.calendarService.Calendar(c.Request.Context(), auth.CurrentUserID(c), services.CalendarQuery{
		StartDate: query.StartDate,
		EndDate:   query.EndDate,
		TimeZone:  query.UserTimeZone,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Data(c, view)
}

// Holidays 某月的节假日
func (cc *CalendarController) Holidays(c *gin.Context) {
	query, err := requests.ValidateHolidayQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	holidays, err := cc.calendarService.Holidays(c.Request.Context(), query.Year, query.Month)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Data(c, holidays)
}
