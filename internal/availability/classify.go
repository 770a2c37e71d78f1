package availability

import "github.com/Domenick1991/carrental/internal/domain"

type DayClass string

const (
	DaySelected           DayClass = "selected"
	DayBlockedMaintenance DayClass = "blocked-maintenance"
	DayBlockedBooked      DayClass = "blocked-booked"
	DayAvailable          DayClass = "available"
)

// ClassifyDay returns the render hint for day. The current selection wins
// over blocking, and a start without an end still highlights the start.
func ClassifyDay(day domain.Date, blocked []BlockedDate, selStart, selEnd domain.Date) DayClass {
	if !selStart.IsZero() && !selEnd.IsZero() && !day.Before(selStart) && !day.After(selEnd) {
		return DaySelected
	}
	if !selStart.IsZero() && day == selStart {
		return DaySelected
	}
	if entry, ok := IsBlocked(day, blocked); ok {
		if entry.Status == domain.BookingStatusMaintenance {
			return DayBlockedMaintenance
		}
		return DayBlockedBooked
	}
	return DayAvailable
}
