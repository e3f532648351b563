package schedule

import (
	"time"

	"twogether/pkg/apperror"
)

// Period 日程时间段，统一保存为 UTC 毫秒精度
type Period struct {
	StartAt time.Time
	EndAt   time.Time
	AllDay  bool
}

// NewPeriod 结束时间不能早于开始时间
func NewPeriod(startAt, endAt time.Time, allDay bool) (Period, error) {
	startAt = normalize(startAt)
	endAt = normalize(endAt)
	if endAt.Before(startAt) {
		return Period{}, apperror.ErrInvalidScheduleRange
	}
	return Period{StartAt: startAt, EndAt: endAt, AllDay: allDay}, nil
}

func normalize(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

// Apply 更新时间段
func (s *Schedule) Apply(p Period) {
	s.StartAt = p.StartAt
	s.EndAt = p.EndAt
	s.AllDay = p.AllDay
}

// Overlaps 是否与 [from, to) 有交集
func (s *Schedule) Overlaps(from, to time.Time) bool {
	return s.StartAt.Before(to) && !s.EndAt.Before(from)
}
