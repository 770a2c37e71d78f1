package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

const DateLayout = "2006-01-02"

var epoch = civil.Date{Year: 1970, Month: time.January, Day: 1}

// Date is a calendar day without a time of day. Comparisons go through the
// day ordinal (days since 1970-01-01) so they never depend on a time zone.
// The zero value is the absent date.
type Date struct {
	value civil.Date
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{value: civil.DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))}
}

// DateOf returns the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	if t.IsZero() {
		return Date{}
	}
	return Date{value: civil.DateOf(t)}
}

// Today returns the current local calendar day.
func Today() Date {
	return DateOf(time.Now())
}

// TodayIn returns the current calendar day in loc.
func TodayIn(loc *time.Location) Date {
	if loc == nil {
		return Today()
	}
	return DateOf(time.Now().In(loc))
}

// ParseDate parses a YYYY-MM-DD string. An ISO timestamp ("2025-06-01T10:00:00Z"
// or "2025-06-01 10:00") is cut to its date part. An empty string yields the
// absent date.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	if len(s) > len(DateLayout) {
		if sep := s[len(DateLayout)]; sep != 'T' && sep != ' ' {
			return Date{}, fmt.Errorf("invalid date %q", s)
		}
		s = s[:len(DateLayout)]
	}
	d, err := civil.ParseDate(s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{value: d}, nil
}

func (d Date) IsZero() bool {
	return d.value.IsZero()
}

// Time returns midnight UTC of the day, or the zero time for an absent date.
func (d Date) Time() time.Time {
	if d.IsZero() {
		return time.Time{}
	}
	return d.value.In(time.UTC)
}

func (d Date) Year() int {
	return d.value.Year
}

func (d Date) Month() time.Month {
	return d.value.Month
}

func (d Date) Day() int {
	return d.value.Day
}

func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// Ordinal returns the number of days since 1970-01-01.
func (d Date) Ordinal() int {
	return d.value.DaysSince(epoch)
}

func (d Date) AddDays(n int) Date {
	if d.IsZero() {
		return d
	}
	return Date{value: d.value.AddDays(n)}
}

// Compare returns -1, 0 or 1. An absent date sorts before every set date.
func (d Date) Compare(o Date) int {
	switch {
	case d.IsZero() || o.IsZero():
		switch {
		case d.IsZero() == o.IsZero():
			return 0
		case d.IsZero():
			return -1
		default:
			return 1
		}
	case d.Ordinal() < o.Ordinal():
		return -1
	case d.Ordinal() > o.Ordinal():
		return 1
	default:
		return 0
	}
}

func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }
func (d Date) After(o Date) bool  { return d.Compare(o) > 0 }

// DaysUntil returns the number of days from d to o; negative when o is earlier.
func (d Date) DaysUntil(o Date) int {
	return o.Ordinal() - d.Ordinal()
}

// String returns the zero-padded YYYY-MM-DD form, or "" for an absent date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.value.String()
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*d = Date{}
		return nil
	}
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
