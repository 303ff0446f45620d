package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

const (
	dateLayout    = "2006-01-02"
	clockLayout   = "15:04:05"
	clockLayoutHM = "15:04"
)

// Date is a calendar day without a time zone, stored in DATE columns.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate returns the given day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// DateOf takes the calendar day of t in its own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses an ISO-8601 day (YYYY-MM-DD). A trailing time part,
// as some drivers return for DATE columns, is ignored.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, "T "); i > 0 {
		s = s[:i]
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q", s)
	}
	return DateOf(t), nil
}

func (d Date) IsZero() bool { return d == Date{} }

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Compare returns -1, 0 or +1.
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return cmpInt(d.Year, o.Year)
	case d.Month != o.Month:
		return cmpInt(int(d.Month), int(o.Month))
	default:
		return cmpInt(d.Day, o.Day)
	}
}

func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}

func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = DateOf(v)
		return nil
	case []byte:
		return d.parseInto(string(v))
	case string:
		return d.parseInto(v)
	}
	return fmt.Errorf("models: cannot scan %T into Date", src)
}

func (d *Date) parseInto(s string) error {
	v, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

func (d Date) MarshalText() ([]byte, error) {
	if d.IsZero() {
		return []byte{}, nil
	}
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*d = Date{}
		return nil
	}
	return d.parseInto(string(b))
}

// Clock is a time of day, stored in TIME columns.
type Clock struct {
	Hour   int
	Minute int
	Second int
}

// NewClock returns the given time of day.
func NewClock(hour, minute, second int) Clock {
	return Clock{Hour: hour, Minute: minute, Second: second}
}

// ClockOf takes the wall clock of t in its own location.
func ClockOf(t time.Time) Clock {
	h, m, s := t.Clock()
	return Clock{Hour: h, Minute: m, Second: s}
}

// ParseClock accepts HH:MM and HH:MM:SS with optional fractional seconds.
// A leading date part ("0000-01-01T19:30:00") is skipped.
func ParseClock(s string) (Clock, error) {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, "T "); i > 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(s, "Z")
	if i := strings.IndexByte(s, '.'); i > 0 {
		s = s[:i]
	}
	layout := clockLayout
	if strings.Count(s, ":") == 1 {
		layout = clockLayoutHM
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return Clock{}, fmt.Errorf("invalid time %q", s)
	}
	return ClockOf(t), nil
}

// IsZero reports whether c is midnight; the form treats it as unset.
func (c Clock) IsZero() bool { return c == Clock{} }

// String renders HH:MM, or HH:MM:SS when seconds are set.
func (c Clock) String() string {
	if c.Second == 0 {
		return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
	}
	return fmt.Sprintf("%02d:%02d:%02d", c.Hour, c.Minute, c.Second)
}

func (c Clock) Compare(o Clock) int {
	return cmpInt(c.seconds(), o.seconds())
}

func (c Clock) seconds() int { return c.Hour*3600 + c.Minute*60 + c.Second }

func (c Clock) Value() (driver.Value, error) {
	return fmt.Sprintf("%02d:%02d:%02d", c.Hour, c.Minute, c.Second), nil
}

func (c *Clock) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*c = Clock{}
		return nil
	case time.Time:
		*c = ClockOf(v)
		return nil
	case []byte:
		return c.parseInto(string(v))
	case string:
		return c.parseInto(v)
	}
	return fmt.Errorf("models: cannot scan %T into Clock", src)
}

func (c *Clock) parseInto(s string) error {
	v, err := ParseClock(s)
	if err != nil {
		return err
	}
	*c = v
	return nil
}

func (c Clock) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *Clock) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*c = Clock{}
		return nil
	}
	return c.parseInto(string(b))
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
