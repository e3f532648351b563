package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"twogether/app/events"
	"twogether/app/models/content"
	"twogether/app/models/schedule"
	"twogether/app/models/tag"
	"twogether/app/repositories"
	"twogether/pkg/apperror"
	"twogether/pkg/cursor"
	"twogether/pkg/database"
	"twogether/pkg/eventbus"
)

// 分页大小
const (
	MinPageSize     = 5
	MaxPageSize     = 20
	DefaultPageSize = 10
)

// TagView 标签
type TagView struct {
	TagID uint64 `json:"tagId"`
	Name  string `json:"name"`
}

// ContentView 从查看者角度展示的内容
type ContentView struct {
	ContentID   uint64              `json:"contentId"`
	AuthorID    uint64              `json:"authorId"`
	IsMine      bool                `json:"isMine"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Completed   bool                `json:"completed"`
	OwnerType   content.Perspective `json:"ownerType"`
	Version     uint64              `json:"version"`
	Tags        []TagView           `json:"tags"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

// ScheduleView 日程
type ScheduleView struct {
	ScheduleID uint64    `json:"scheduleId"`
	StartAt    time.Time `json:"startAt"`
	EndAt      time.Time `json:"endAt"`
	AllDay     bool      `json:"allDay"`
	ContentView
}

// ContentInput 创建或修改内容，OwnerType 以操作者的视角给出
type ContentInput struct {
	Title       string
	Description string
	Completed   bool
	OwnerType   content.Perspective
	// Tags 为 nil 时不修改标签，空切片表示清空
	Tags []string
}

// ScheduleInput 创建或修改日程
type ScheduleInput struct {
	ContentInput
	StartAt time.Time
	EndAt   time.Time
	AllDay  bool
}

// ContentService 备忘录和日程
type ContentService struct {
	users     *repositories.UserRepository
	contents  *repositories.ContentRepository
	schedules *repositories.ScheduleRepository
	tags      *repositories.TagRepository
	tx        database.Transactor
	publisher eventbus.Publisher
}

// NewContentService 创建服务
func NewContentService(
	users *repositories.UserRepository,
	contents *repositories.ContentRepository,
	schedules *repositories.ScheduleRepository,
	tags *repositories.TagRepository,
	tx database.Transactor,
	publisher eventbus.Publisher,
) *ContentService {
	return &ContentService{
		users:     users,
		contents:  contents,
		schedules: schedules,
		tags:      tags,
		tx:        tx,
		publisher: publisher,
	}
}

// viewer 操作者和其另一半
type viewer struct {
	userID    uint64
	partnerID *uint64
}

func (v viewer) owners() []uint64 {
	return visibleOwners(v.userID, v.partnerID)
}

func (s *ContentService) viewer(ctx context.Context, userID uint64) (viewer, error) {
	u, err := requireUser(ctx, s.users, userID)
	if err != nil {
		return viewer{}, err
	}
	partnerID, err := partnerOf(ctx, s.users, u)
	if err != nil {
		return viewer{}, err
	}
	return viewer{userID: userID, partnerID: partnerID}, nil
}

// CreateMemo 创建备忘录，有另一半时通知对方
func (s *ContentService) CreateMemo(ctx context.Context, userID uint64, in ContentInput) (*ContentView, error) {
	v, err := s.viewer(ctx, userID)
	if err != nil {
		return nil, err
	}
	detail, err := content.NewDetail(in.Title, in.Description, in.Completed)
	if err != nil {
		return nil, err
	}
	tagNames, err := normalizeTags(in.Tags)
	if err != nil {
		return nil, err
	}

	c := content.New(userID, content.TypeMemo, detail, in.OwnerType)
	err = s.tx.Transaction(ctx, func(ctx context.Context) error {
		if err := s.contents.Create(ctx, c); err != nil {
			return fmt.Errorf("create memo: %w", err)
		}
		return s.replaceTags(ctx, userID, c.ID, tagNames)
	})
	if err != nil {
		return nil, err
	}

	if v.partnerID != nil {
		s.publisher.Publish(events.MemoCreated{ContentID: c.ID, AuthorID: userID, PartnerID: *v.partnerID, Title: c.Detail.Title})
	}
	return s.contentView(ctx, v, c)
}

// GetMemo 单条备忘录
func (s *ContentService) GetMemo(ctx context.Context, userID, contentID uint64) (*ContentView, error) {
	v, err := s.viewer(ctx, userID)
	if err != nil {
		return nil, err
	}
	c, err := s.visibleContent(ctx, v, contentID, content.TypeMemo)
	if err != nil {
		return nil, err
	}
	return s.contentView(ctx, v, c)
}

// ListMemos 按 id 倒序的游标分页
func (s *ContentService) ListMemos(ctx context.Context, userID uint64, after string, size int) (*cursor.Page[*ContentView], error) {
	v, err := s.viewer(ctx, userID)
	if err != nil {
		return nil, err
	}

	var beforeID uint64
	if after != "" {
		if beforeID, err = cursor.DecodeID(after); err != nil {
			return nil, apperror.ErrInvalidCursor
		}
	}
	if size, err = pageSize(size); err != nil {
		return nil, err
	}

	rows, err := s.contents.ListMemos(ctx, v.owners(), beforeID, size+1)
	if err != nil {
		return nil, fmt.Errorf("list memos: %w", err)
	}
	page := cursor.Paginate(rows, size, func(c *content.Content) []string {
		return []string{strconv.FormatUint(c.ID, 10)}
	})

	views, err := s.contentViews(ctx, v, page.Items)
	if err != nil {
		return nil, err
	}
	return &cursor.Page[*ContentView]{Items: views, NextCursor: page.NextCursor, HasNext: page.HasNext}, nil
}

// UpdateMemo 修改备忘录，版本号不一致时返回 ErrVersionConflict
func (s *ContentService) UpdateMemo(ctx context.Context, userID, contentID, version uint64, in ContentInput) (*ContentView, error) {
	v, err := s.viewer(ctx, userID)
	if err != nil {
		return nil, err
	}
	var updated *content.Content
	err = s.tx.Transaction(ctx, func(ctx context.Context) error {
		c, err := s.visibleContent(ctx, v, contentID, content.TypeMemo)
		if err != nil {
			return err
		}
		if err := s.updateContent(ctx, v, c, version, in); err != nil {
			return err
		}
		updated = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.contentView(ctx, v, updated)
}

// SetCompletion 修改完成状态，备忘录和日程通用
func (s *ContentService) SetCompletion(ctx context.Context, userID, contentID, version uint64, completed bool) (*ContentView, error) {
	v, err := s.viewer(ctx, userID)
	if err != nil {
		return nil, err
	}
	c, err := s.visibleContent(ctx, v, contentID, "")
	if err != nil {
		return nil, err
	}
	c.Detail.Completed = completed
	if err := s.saveVersioned(ctx, c, version); err != nil {
		return nil, err
	}
	return s.contentView(ctx, v, c)
}

// DeleteMemo 只有创建者可以删除
func (s *ContentService) DeleteMemo(ctx context.Context, userID, contentID uint64) error {
	v, err := s.viewer(ctx, userID)
	if err != nil {
		return err
	}
	return s.tx.Transaction(ctx, func(ctx context.Context) error {
		c, err := s.visibleContent(ctx, v, contentID, content.TypeMemo)
		if err != nil {
			return err
		}
		if !c.IsOwnedBy(userID) {
			return apperror.ErrContentForbidden
		}
		if err := s.tags.ReplaceContentTags(ctx, c.ID, nil); err != nil {
			return fmt.Errorf("delete memo tags: %w", err)
		}
		return s.contents.Delete(ctx, c.ID)
	})
}

// CreateSchedule 创建日程，有另一半时通知对方
func (s *ContentService) CreateSchedule(ctx context.Context, userID uint64, in ScheduleInput) (*ScheduleView, error) {
	v, err := s.viewer(ctx, userID)
	if err != nil {
		return nil, err
	}
	detail, err := content.NewDetail(in.Title, in.Description, in.Completed)
	if err != nil {
		return nil, err
	}
	period, err := schedule.NewPeriod(in.StartAt, in.EndAt, in.AllDay)
	if err != nil {
		return nil, err
	}
	tagNames, err := normalizeTags(in.Tags)
	if err != nil {
		return nil, err
	}

	c := content.New(userID, content.TypeSchedule, detail, in.OwnerType)
	sch := &schedule.Schedule{UserID: userID}
	sch.Apply(period)
	err = s.tx.Transaction(ctx, func(ctx context.Context) error {
		if err := s.contents.Create(ctx, c); err != nil {
			return fmt.Errorf("create schedule content: %w", err)
		}
		sch.ContentID = c.ID
		if err := s.schedules.Create(ctx, sch); err != nil {
			return fmt.Errorf("create schedule: %w", err)
		}
		return s.replaceTags(ctx, userID, c.ID, tagNames)
	})
	if err != nil {
		return nil, err
	}
	sch.Content = c

	if v.partnerID != nil {
		s.publisher.Publish(events.ScheduleCreated{ScheduleID: sch.ID, AuthorID: userID, PartnerID: *v.partnerID, Title: c.Detail.Title})
	}
	return s.scheduleView(ctx, v, sch)
}

// GetSchedule 单个日程
func (s *ContentService) GetSchedule(ctx context.Context, userID, scheduleID uint64) (*ScheduleView, error) {
	v, err := s.viewer(ctx, userID)
	if err != nil {
		return nil, err
	}
	sch, err := s.visibleSchedule(ctx, v, scheduleID)
	if err != nil {
		return nil, err
	}
	return s.scheduleView(ctx, v, sch)
}

// ListSchedules 按开始时间倒序的游标分页，游标为 开始时间毫秒|id
func (s *ContentService) ListSchedules(ctx context.Context, userID uint64, after string, size int) (*cursor.Page[*ScheduleView], error) {
	v, err := s.viewer(ctx, userID)
	if err != nil {
		return nil, err
	}

	var position *repositories.ScheduleCursor
	if after != "" {
		if position, err = decodeScheduleCursor(after); err != nil {
			return nil, err
		}
	}
	if size, err = pageSize(size); err != nil {
		return nil, err
	}

	rows, err := s.schedules.List(ctx, v.owners(), position, size+1)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	page := cursor.Paginate(rows, size, func(sch *schedule.Schedule) []string {
		return []string{strconv.FormatInt(sch.StartAt.UnixMilli(), 10), strconv.FormatUint(sch.ID, 10)}
	})

	views, err := s.scheduleViews(ctx, v, page.Items)
	if err != nil {
		return nil, err
	}
	return &cursor.Page[*ScheduleView]{Items: views, NextCursor: page.NextCursor, HasNext: page.HasNext}, nil
}

// UpdateSchedule 修改日程，版本号取自内容
func (s *ContentService) UpdateSchedule(ctx context.Context, userID, scheduleID, version uint64, in ScheduleInput) (*ScheduleView, error) {
	v, err := s.viewer(ctx, userID)
	if err != nil {
		return nil, err
	}
	period, err := schedule.NewPeriod(in.StartAt, in.EndAt, in.AllDay)
	if err != nil {
		return nil, err
	}

	var updated *schedule.Schedule
	err = s.tx.Transaction(ctx, func(ctx context.Context) error {
		sch, err := s.visibleSchedule(ctx, v, scheduleID)
		if err != nil {
			return err
		}
		if err := s.updateContent(ctx, v, sch.Content, version, in.ContentInput); err != nil {
			return err
		}
		sch.Apply(period)
		if err := s.schedules.UpdatePeriod(ctx, sch); err != nil {
			return fmt.Errorf("update schedule: %w", err)
		}
		updated = sch
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.scheduleView(ctx, v, updated)
}

// DeleteSchedule 只有创建者可以删除，日程和内容一起软删除
func (s *ContentService) DeleteSchedule(ctx context.Context, userID, scheduleID uint64) error {
	v, err := s.viewer(ctx, userID)
	if err != nil {
		return err
	}
	return s.tx.Transaction(ctx, func(ctx context.Context) error {
		sch, err := s.visibleSchedule(ctx, v, scheduleID)
		if err != nil {
			return err
		}
		if sch.UserID != userID {
			return apperror.ErrContentForbidden
		}
		if err := s.schedules.Delete(ctx, sch.ID); err != nil {
			return fmt.Errorf("delete schedule: %w", err)
		}
		if err := s.tags.ReplaceContentTags(ctx, sch.ContentID, nil); err != nil {
			return fmt.Errorf("delete schedule tags: %w", err)
		}
		return s.contents.Delete(ctx, sch.ContentID)
	})
}

// updateContent 操作者视角的归属转换为创建者视角后按版本号保存
func (s *ContentService) updateContent(ctx context.Context, v viewer, c *content.Content, version uint64, in ContentInput) error {
	detail, err := content.NewDetail(in.Title, in.Description, in.Completed)
	if err != nil {
		return err
	}
	tagNames, err := normalizeTags(in.Tags)
	if err != nil {
		return err
	}

	c.Detail = detail
	if in.OwnerType != "" {
		c.Perspective = in.OwnerType.ViewedBy(c.IsOwnedBy(v.userID))
	}
	if err := s.saveVersioned(ctx, c, version); err != nil {
		return err
	}
	if tagNames != nil {
		return s.replaceTags(ctx, v.userID, c.ID, tagNames)
	}
	return nil
}

func (s *ContentService) saveVersioned(ctx context.Context, c *content.Content, version uint64) error {
	ok, err := s.contents.UpdateWithVersion(ctx, c, version)
	if err != nil {
		return fmt.Errorf("update content: %w", err)
	}
	if !ok {
		return apperror.ErrVersionConflict
	}
	return nil
}

func (s *ContentService) replaceTags(ctx context.Context, userID, contentID uint64, names []string) error {
	if names == nil {
		return nil
	}
	ids := make([]uint64, 0, len(names))
	for _, name := range names {
		t, err := s.tags.FindOrCreate(ctx, userID, name)
		if err != nil {
			return fmt.Errorf("find or create tag: %w", err)
		}
		ids = append(ids, t.ID)
	}
	if err := s.tags.ReplaceContentTags(ctx, contentID, ids); err != nil {
		return fmt.Errorf("replace content tags: %w", err)
	}
	return nil
}

// visibleContent contentType 为空时不限制类型
func (s *ContentService) visibleContent(ctx context.Context, v viewer, contentID uint64, contentType content.Type) (*content.Content, error) {
	c, err := s.contents.FindByID(ctx, contentID)
	if err != nil {
		return nil, fmt.Errorf("find content: %w", err)
	}
	if c == nil || (contentType != "" && c.Type != contentType) {
		return nil, apperror.ErrContentNotFound
	}
	if !c.IsVisibleTo(v.userID, v.partnerID) {
		return nil, apperror.ErrContentForbidden
	}
	return c, nil
}

func (s *ContentService) visibleSchedule(ctx context.Context, v viewer, scheduleID uint64) (*schedule.Schedule, error) {
	sch, err := s.schedules.FindByID(ctx, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("find schedule: %w", err)
	}
	if sch == nil || sch.Content == nil {
		return nil, apperror.ErrScheduleNotFound
	}
	if !sch.Content.IsVisibleTo(v.userID, v.partnerID) {
		return nil, apperror.ErrContentForbidden
	}
	return sch, nil
}

func (s *ContentService) contentView(ctx context.Context, v viewer, c *content.Content) (*ContentView, error) {
	views, err := s.contentViews(ctx, v, []*content.Content{c})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

func (s *ContentService) contentViews(ctx context.Context, v viewer, contents []*content.Content) ([]*ContentView, error) {
	ids := make([]uint64, 0, len(contents))
	for _, c := range contents {
		ids = append(ids, c.ID)
	}
	tagsByContent, err := s.tags.TagsByContentIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load content tags: %w", err)
	}

	views := make([]*ContentView, 0, len(contents))
	for _, c := range contents {
		views = append(views, newContentView(v, c, tagsByContent[c.ID]))
	}
	return views, nil
}

func (s *ContentService) scheduleView(ctx context.Context, v viewer, sch *schedule.Schedule) (*ScheduleView, error) {
	views, err := s.scheduleViews(ctx, v, []*schedule.Schedule{sch})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

func (s *ContentService) scheduleViews(ctx context.Context, v viewer, schedules []*schedule.Schedule) ([]*ScheduleView, error) {
	contents := make([]*content.Content, 0, len(schedules))
	for _, sch := range schedules {
		contents = append(contents, sch.Content)
	}
	contentViews, err := s.contentViews(ctx, v, contents)
	if err != nil {
		return nil, err
	}

	views := make([]*ScheduleView, 0, len(schedules))
	for i, sch := range schedules {
		views = append(views, &ScheduleView{
			ScheduleID:  sch.ID,
			StartAt:     sch.StartAt,
			EndAt:       sch.EndAt,
			AllDay:      sch.AllDay,
			ContentView: *contentViews[i],
		})
	}
	return views, nil
}

func newContentView(v viewer, c *content.Content, tags []*tag.Tag) *ContentView {
	isMine := c.IsOwnedBy(v.userID)
	tagViews := make([]TagView, 0, len(tags))
	for _, t := range tags {
		tagViews = append(tagViews, TagView{TagID: t.ID, Name: t.Name})
	}
	return &ContentView{
		ContentID:   c.ID,
		AuthorID:    c.UserID,
		IsMine:      isMine,
		Title:       c.Detail.Title,
		Description: c.Detail.Description,
		Completed:   c.Detail.Completed,
		OwnerType:   c.Perspective.ViewedBy(isMine),
		Version:     c.Version,
		Tags:        tagViews,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func decodeScheduleCursor(after string) (*repositories.ScheduleCursor, error) {
	parts, err := cursor.Decode(after, 2)
	if err != nil {
		return nil, apperror.ErrInvalidCursor
	}
	millis, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return nil, apperror.ErrInvalidCursor
	}
	id, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return nil, apperror.ErrInvalidCursor
	}
	return &repositories.ScheduleCursor{StartAt: time.UnixMilli(millis).UTC(), ID: id}, nil
}

func normalizeTags(names []string) ([]string, error) {
	if names == nil {
		return nil, nil
	}
	return tag.NormalizeNames(names)
}

// pageSize 0 表示未传，使用默认值；其余必须在 [MinPageSize, MaxPageSize] 内
func pageSize(size int) (int, error) {
	switch {
	case size == 0:
		return DefaultPageSize, nil
	case size < MinPageSize || size > MaxPageSize:
		return 0, apperror.ErrInvalidInput.WithDescription(
			fmt.Sprintf("pageSize: pageSize must be between %d and %d", MinPageSize, MaxPageSize))
	}
	return size, nil
}

// SchedulesBetween 用户和另一半与 [from, to) 有交集的日程，按开始时间升序
func (s *ContentService) SchedulesBetween(ctx context.Context, userID uint64, from, to time.Time) ([]*ScheduleView, error) {
	v, err := s.viewer(ctx, userID)
	if err != nil {
		return nil, err
	}
	rows, err := s.schedules.FindOverlapping(ctx, v.owners(), from, to)
	if err != nil {
		return nil, fmt.Errorf("find schedules between: %w", err)
	}
	return s.scheduleViews(ctx, v, rows)
}
