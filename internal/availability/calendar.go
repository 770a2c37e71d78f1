package availability

import (
	"time"

	"github.com/Domenick1991/carrental/internal/domain"
)

type CalendarDay struct {
	Date  domain.Date `json:"date"`
	Class DayClass    `json:"class"`
	Today bool        `json:"today"`
	Past  bool        `json:"past"`
}

type CalendarMonth struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	// Leading is the number of empty cells before the 1st in a Sunday-first grid.
	Leading int           `json:"leading"`
	Days    []CalendarDay `json:"days"`
}

// Month classifies every day of the month for rendering.
func Month(year int, month time.Month, blocked []BlockedDate, selStart, selEnd, today domain.Date) CalendarMonth {
	first := domain.NewDate(year, month, 1)
	last := domain.NewDate(year, month+1, 1).AddDays(-1)

	cal := CalendarMonth{
		Year:    first.Year(),
		Month:   first.Month(),
		Leading: int(first.Weekday()),
		Days:    make([]CalendarDay, 0, first.DaysUntil(last)+1),
	}
	for d := first; !d.After(last); d = d.AddDays(1) {
		cal.Days = append(cal.Days, CalendarDay{
			Date:  d,
			Class: ClassifyDay(d, blocked, selStart, selEnd),
			Today: d == today,
			Past:  d.Before(today),
		})
	}
	return cal
}
