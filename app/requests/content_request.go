package requests

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/thedevsaddam/govalidator"

	"twogether/app/models/content"
	"twogether/pkg/cursor"
)

// ContentRequest 备忘录的创建和修改
type ContentRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Completed   bool     `json:"completed"`
	OwnerType   string   `json:"ownerType"`
	Tags        []string `json:"tags"`
	Version     *uint64  `json:"version"`
}

// Perspective 已校验过的归属
func (r *ContentRequest) Perspective() content.Perspective {
	if r.OwnerType == "" {
		return ""
	}
	p, _ := content.ParsePerspective(r.OwnerType)
	return p
}

// contentFields 需要规则校验的字段
type contentFields struct {
	Title     string `json:"title"`
	OwnerType string `json:"ownerType"`
}

func validateContentFields(r *ContentRequest) error {
	rules := govalidator.MapData{
		"title":     []string{"max:100"},
		"ownerType": []string{"in:ME,PARTNER,US"},
	}
	messages := govalidator.MapData{
		"title":     []string{"max:title must be at most 100 characters"},
		"ownerType": []string{"in:ownerType must be one of ME, PARTNER, US"},
	}
	return ValidateStruct(&contentFields{Title: r.Title, OwnerType: r.OwnerType}, rules, messages)
}

// ValidateContent 校验备忘录，修改时必须带 version
func ValidateContent(c *gin.Context, requireVersion bool) (*ContentRequest, error) {
	req, err := BindJSON[ContentRequest](c)
	if err != nil {
		return nil, err
	}
	if err := validateContentFields(req); err != nil {
		return nil, err
	}
	if requireVersion && req.Version == nil {
		return nil, invalid("version", "version is required")
	}
	return req, nil
}

// ScheduleRequest 日程的创建和修改，时间为 RFC3339
type ScheduleRequest struct {
	ContentRequest
	StartAt string `json:"startAt"`
	EndAt   string `json:"endAt"`
	AllDay  bool   `json:"allDay"`
}

// Period 开始和结束时间
func (r *ScheduleRequest) Period() (time.Time, time.Time, error) {
	startAt, err := time.Parse(time.RFC3339Nano, r.StartAt)
	if err != nil {
		return time.Time{}, time.Time{}, invalid("startAt", "startAt must be an RFC3339 timestamp")
	}
	endAt, err := time.Parse(time.RFC3339Nano, r.EndAt)
	if err != nil {
		return time.Time{}, time.Time{}, invalid("endAt", "endAt must be an RFC3339 timestamp")
	}
	return startAt, endAt, nil
}

// ValidateSchedule 校验日程，结束时间不早于开始时间由日程模型检查
func ValidateSchedule(c *gin.Context, requireVersion bool) (*ScheduleRequest, error) {
	req, err := BindJSON[ScheduleRequest](c)
	if err != nil {
		return nil, err
	}

	if err := validateContentFields(&req.ContentRequest); err != nil {
		return nil, err
	}
	if requireVersion && req.Version == nil {
		return nil, invalid("version", "version is required")
	}

	if _, _, err := req.Period(); err != nil {
		return nil, err
	}
	return req, nil
}

// CompletionRequest 修改完成状态
type CompletionRequest struct {
	Completed *bool   `json:"completed"`
	Version   *uint64 `json:"version"`
}

// ValidateCompletion 两个字段都必填
func ValidateCompletion(c *gin.Context) (*CompletionRequest, error) {
	req, err := BindJSON[CompletionRequest](c)
	if err != nil {
		return nil, err
	}
	if req.Completed == nil {
		return nil, invalid("completed", "completed is required")
	}
	if req.Version == nil {
		return nil, invalid("version", "version is required")
	}
	return req, nil
}

// PageQuery 游标分页参数
type PageQuery struct {
	Cursor   string
	PageSize int
}

// ValidatePageQuery 兼容旧客户端的 lastId 参数，pageSize 未传时由服务层取默认值
func ValidatePageQuery(c *gin.Context) (*PageQuery, error) {
	rules := govalidator.MapData{
		"pageSize": []string{"numeric_between:5,20"},
		"lastId":   []string{"numeric"},
	}
	messages := govalidator.MapData{
		"pageSize": []string{"numeric_between:pageSize must be between 5 and 20"},
		"lastId":   []string{"numeric:lastId must be a positive integer"},
	}
	if err := ValidateQuery(c, rules, messages); err != nil {
		return nil, err
	}

	q := &PageQuery{Cursor: c.Query("cursor")}
	if size := c.Query("pageSize"); size != "" {
		n, err := strconv.Atoi(size)
		if err != nil || n < 5 || n > 20 {
			return nil, invalid("pageSize", "pageSize must be between 5 and 20")
		}
		q.PageSize = n
	}
	if lastID := c.Query("lastId"); lastID != "" {
		id, err := strconv.ParseUint(lastID, 10, 64)
		if err != nil || id == 0 {
			return nil, invalid("lastId", "lastId must be a positive integer")
		}
		if q.Cursor == "" {
			q.Cursor = cursor.EncodeID(id)
		}
	}
	return q, nil
}

// PathID 路径中的正整数 id
func PathID(c *gin.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, invalid(name, name+" must be a positive integer")
	}
	return id, nil
}
