package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// DateLayout 日期在 JSON、表单和数据库中的统一格式
	DateLayout = "2006-01-02"
	// ClockLayout 一天中的时刻，统一保存为 HH:MM
	ClockLayout = "15:04"
)

var (
	ErrInvalidDate  = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidClock = errors.New("invalid time, expected HH:MM")
)

// Date 表示不带时区和时刻的日历日期
type Date struct {
	time.Time
}

// NewDate 构造一个 UTC 零点的日期
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf 取 t 在其自身时区下的日历日期
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate 解析 YYYY-MM-DD 格式的日期
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return DateOf(t), nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

func (d Date) key() int {
	return d.Year()*10000 + int(d.Month())*100 + d.Day()
}

// Before 只比较日历日期
func (d Date) Before(o Date) bool { return d.key() < o.key() }

// After 只比较日历日期
func (d Date) After(o Date) bool { return d.key() > o.key() }

// Equal 只比较日历日期
func (d Date) Equal(o Date) bool { return d.key() == o.key() }

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return ErrInvalidDate
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value 实现 driver.Valuer，以 YYYY-MM-DD 文本写入
func (d Date) Value() (driver.Value, error) {
	return d.Format(DateLayout), nil
}

// Scan 实现 sql.Scanner。SQLite 驱动会把 date 列解析成 time.Time，PostgreSQL 也返回 time.Time
func (d *Date) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = DateOf(v)
		return nil
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Date", value)
	}
}

func (d *Date) scanString(s string) error {
	if len(s) >= len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Clock 表示一天中的时刻，规范化为 HH:MM，零填充后可按字典序比较
type Clock string

// ParseClock 接受 HH:MM 或 HH:MM:SS，返回规范化的 HH:MM
func ParseClock(s string) (Clock, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{ClockLayout, "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return Clock(t.Format(ClockLayout)), nil
		}
	}
	return "", ErrInvalidClock
}

// Valid 判断是否为规范化的 HH:MM
func (c Clock) Valid() bool {
	_, err := time.Parse(ClockLayout, string(c))
	return err == nil && len(c) == len(ClockLayout)
}

// Before 仅对规范化后的值有意义
func (c Clock) Before(o Clock) bool { return c < o }

func (c Clock) String() string { return string(c) }
