package content

import (
	"github.com/gin-gonic/gin"

	"twogether/app/requests"
	"twogether/app/services"
	"twogether/pkg/auth"
	"twogether/pkg/response"
)

// ContentsController 备忘录和日程
type ContentsController struct {
	contentService *services.ContentService
}

// NewContentsController 创建控制器
func NewContentsController(contentService *services.ContentService) *ContentsController {
	return &ContentsController{contentService: contentService}
}

func contentInput(request *requests.ContentRequest) services.ContentInput {
	return services.ContentInput{
		Title:       request.Title,
		Description: request.Description,
		Completed:   request.Completed,
		OwnerType:   request.Perspective(),
		Tags:        request.Tags,
	}
}

func scheduleInput(request *requests.ScheduleRequest) services.ScheduleInput {
	// 时间已在校验阶段解析过
	startAt, endAt, _ := request.Period()
	return services.ScheduleInput{
		ContentInput: contentInput(&request.ContentRequest),
		StartAt:      startAt,
		EndAt:        endAt,
		AllDay:       request.AllDay,
	}
}

// StoreMemo 创建备忘录
func (cc *ContentsController) StoreMemo(c *gin.Context) {
	request, err := requests.ValidateContent(c, false)
	if err != nil {
		response.Error(c, err)
		return
	}

	memo, err := cc.contentService.CreateMemo(c.Request.Context(), auth.CurrentUserID(c), contentInput(request))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, memo)
}

// IndexMemo 备忘录游标分页
func (cc *ContentsController) IndexMemo(c *gin.Context) {
	query, err := requests.ValidatePageQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	page, err := cc.contentService.ListMemos(c.Request.Context(), auth.CurrentUserID(c), query.Cursor, query.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Data(c, page)
}

// ShowMemo 单条备忘录
func (cc *ContentsController) ShowMemo(c *gin.Context) {
	id, err := requests.PathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	memo, err := cc.contentService.GetMemo(c.Request.Context(), auth.CurrentUserID(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Data(c, memo)
}

// UpdateMemo 修改备忘录，需要携带版本号
func (cc *ContentsController) UpdateMemo(c *gin.Context) {
	id, err := requests.PathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	request, err := requests.ValidateContent(c, true)
	if err != nil {
		response.Error(c, err)
		return
	}

	memo, err := cc.contentService.UpdateMemo(c.Request.Context(), auth.CurrentUserID(c), id, *request.Version, contentInput(request))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Data(c, memo)
}

// DeleteMemo 删除备忘录
func (cc *ContentsController) DeleteMemo(c *gin.Context) {
	id, err := requests.PathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := cc.contentService.DeleteMemo(c.Request.Context(), auth.CurrentUserID(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c)
}

// Completion 切换完成状态
func (cc *ContentsController) Completion(c *gin.Context) {
	id, err := requests.PathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	request, err := requests.ValidateCompletion(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	memo, err := cc.contentService.SetCompletion(c.Request.Context(), auth.CurrentUserID(c), id, *request.Version, *request.Completed)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Data(c, memo)
}

// StoreSchedule 创建日程
func (cc *ContentsController) StoreSchedule(c *gin.Context) {
	request, err := requests.ValidateSchedule(c, false)
	if err != nil {
		response.Error(c, err)
		return
	}

	schedule, err := cc.contentService.CreateSchedule(c.Request.Context(), auth.CurrentUserID(c), scheduleInput(request))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, schedule)
}

// IndexSchedule 日程游标分页
func (cc *ContentsController) IndexSchedule(c *gin.Context) {
	query, err := requests.ValidatePageQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	page, err := cc.contentService.ListSchedules(c.Request.Context(), auth.CurrentUserID(c), query.Cursor, query.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Data(c, page)
}

// ShowSchedule 单条日程
func (cc *ContentsController) ShowSchedule(c *gin.Context) {
	id, err := requests.PathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	schedule, err := cc.contentService.GetSchedule(c.Request.Context(), auth.CurrentUserID(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Data(c, schedule)
}

// UpdateSchedule 修改日程
func (cc *ContentsController) UpdateSchedule(c *gin.Context) {
	id, err := requests.PathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	request, err := requests.ValidateSchedule(c, true)
	if err != nil {
		response.Error(c, err)
		return
	}

	schedule, err := cc.contentService.UpdateSchedule(c.Request.Context(), auth.CurrentUserID(c), id, *request.Version, scheduleInput(request))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Data(c, schedule)
}

// DeleteSchedule 删除日程
func (cc *ContentsController) DeleteSchedule(c *gin.Context) {
	id, err := requests.PathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := cc.contentService.DeleteSchedule(c.Request.Context(), auth.CurrentUserID(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c)
}
