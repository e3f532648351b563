package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"twogether/pkg/app"
)

// Date 不带时间和时区的日期，数据库和 JSON 中都是 yyyy-MM-dd
type Date struct {
	time.Time
}

// NewDate 创建日期
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf 取时间在其自身时区下的日期
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate 解析 yyyy-MM-dd
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(app.DateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

// String yyyy-MM-dd
func (d Date) String() string {
	return d.Format(app.DateLayout)
}

// AddDays 加减天数
func (d Date) AddDays(n int) Date {
	return Date{Time: d.Time.AddDate(0, 0, n)}
}

// Before 是否早于另一个日期
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

// GormDataType gorm 列类型
func (Date) GormDataType() string {
	return "date"
}

// Value 实现 driver.Valuer 接口
func (d Date) Value() (driver.Value, error) {
	return d.String(), nil
}

// Scan 实现 sql.Scanner 接口
func (d *Date) Scan(value interface{}) error {
	switch v := value.(type) {
	case time.Time:
		*d = DateOf(v)
		return nil
	case string:
		return d.parse(v)
	case []byte:
		return d.parse(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Date", value)
	}
}

func (d *Date) parse(s string) error {
	if len(s) > len(app.DateLayout) {
		s = s[:len(app.DateLayout)]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalJSON 输出 yyyy-MM-dd
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON 解析 yyyy-MM-dd
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
