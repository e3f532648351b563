package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"twogether/app/models"
	"twogether/app/models/holiday"
	"twogether/app/repositories"
	"twogether/pkg/apperror"
	holidayapi "twogether/pkg/holiday"
	"twogether/pkg/logger"
)

// MaxCalendarDays 一次最多查询的天数
const MaxCalendarDays = 366

// HolidayFetcher 节假日数据源
type HolidayFetcher interface {
	Fetch(ctx context.Context, year, month int) ([]holidayapi.Holiday, error)
}

// HolidayView 节假日
type HolidayView struct {
	Date      models.Date `json:"date"`
	Name      string      `json:"name"`
	IsHoliday bool        `json:"isHoliday"`
}

// CalendarView 日历
type CalendarView struct {
	StartDate models.Date     `json:"startDate"`
	EndDate   models.Date     `json:"endDate"`
	TimeZone  string          `json:"userTimeZone"`
	Schedules []*ScheduleView `json:"schedules"`
	Holidays  []HolidayView   `json:"holidays"`
}

// CalendarQuery 日期为闭区间，按 TimeZone 解释
type CalendarQuery struct {
	StartDate models.Date
	EndDate   models.Date
	TimeZone  string
}

// CalendarService 日历和节假日
type CalendarService struct {
	contents   *ContentService
	holidays   *repositories.HolidayRepository
	fetcher    HolidayFetcher
	defaultLoc *time.Location
}

// NewCalendarService 未指定时区时使用 defaultLoc
func NewCalendarService(contents *ContentService, holidays *repositories.HolidayRepository, fetcher HolidayFetcher, defaultLoc *time.Location) *CalendarService {
	if defaultLoc == nil {
		defaultLoc = time.UTC
	}
	return &CalendarService{contents: contents, holidays: holidays, fetcher: fetcher, defaultLoc: defaultLoc}
}

// Calendar 区间内用户和另一半的日程以及节假日
func (s *CalendarService) Calendar(ctx context.Context, userID uint64, q CalendarQuery) (*CalendarView, error) {
	loc := s.defaultLoc
	if q.TimeZone != "" {
		var err error
		if loc, err = time.LoadLocation(q.TimeZone); err != nil {
			return nil, apperror.ErrInvalidTimeZone.WithCause(err)
		}
	}
	if q.EndDate.Before(q.StartDate) || q.EndDate.Sub(q.StartDate.Time) > (MaxCalendarDays-1)*24*time.Hour {
		return nil, apperror.ErrInvalidDateRange
	}

	from := time.Date(q.StartDate.Year(), q.StartDate.Month(), q.StartDate.Day(), 0, 0, 0, 0, loc)
	to := time.Date(q.EndDate.Year(), q.EndDate.Month(), q.EndDate.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 1)

	schedules, err := s.contents.SchedulesBetween(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	holidays, err := s.between(ctx, q.StartDate, q.EndDate)
	if err != nil {
		return nil, err
	}

	return &CalendarView{
		StartDate: q.StartDate,
		EndDate:   q.EndDate,
		TimeZone:  loc.String(),
		Schedules: schedules,
		Holidays:  holidays,
	}, nil
}

// Holidays 某月的节假日，没有时返回空列表
func (s *CalendarService) Holidays(ctx context.Context, year, month int) ([]HolidayView, error) {
	if month < 1 || month > 12 {
		return nil, apperror.ErrInvalidInput.WithDescription("month must be between 1 and 12")
	}
	first := models.NewDate(year, time.Month(month), 1)
	last := models.DateOf(first.AddDate(0, 1, -1))
	return s.between(ctx, first, last)
}

func (s *CalendarService) between(ctx context.Context, from, to models.Date) ([]HolidayView, error) {
	rows, err := s.holidays.FindBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("find holidays: %w", err)
	}
	views := make([]HolidayView, 0, len(rows))
	for _, h := range rows {
		views = append(views, HolidayView{Date: h.Date, Name: h.Name, IsHoliday: h.IsHoliday})
	}
	return views, nil
}

// SyncHolidays 从公共接口拉取某月节假日并按 (date, name) 写入
func (s *CalendarService) SyncHolidays(ctx context.Context, year, month int) (int, error) {
	if month < 1 || month > 12 {
		return 0, apperror.ErrInvalidInput.WithDescription("month must be between 1 and 12")
	}
	fetched, err := s.fetcher.Fetch(ctx, year, month)
	if err != nil {
		if errors.Is(err, holidayapi.ErrUnavailable) {
			return 0, apperror.ErrHolidayProvider.WithCause(err)
		}
		return 0, err
	}

	rows := make([]*holiday.Holiday, 0, len(fetched))
	for _, h := range fetched {
		rows = append(rows, &holiday.Holiday{Date: models.DateOf(h.Date), Name: h.Name, IsHoliday: h.IsHoliday})
	}
	if err := s.holidays.Upsert(ctx, rows); err != nil {
		return 0, fmt.Errorf("upsert holidays: %w", err)
	}

	logger.Info("Calendar", zap.String("event", "holidays synced"), zap.Int("year", year), zap.Int("month", month), zap.Int("count", len(rows)))
	return len(rows), nil
}
