package availability

import (
	"errors"

	"github.com/Domenick1991/carrental/internal/domain"
)

var (
	ErrDatesNotSelected = errors.New("dates not selected")
	ErrPastDate         = errors.New("cannot book past dates")
	ErrEndBeforeStart   = errors.New("end date must be after start date")
	ErrOverlap          = errors.New("overlap detected, selected range includes blocked dates")
)

// Validation is the outcome of checking a proposed range. A failed
// validation is an ordinary result, not an error return.
type Validation struct {
	Valid bool
	Err   error
	// Conflict is the first blocked day found when Err is ErrOverlap.
	Conflict *BlockedDate
}

func (v Validation) Message() string {
	if v.Err == nil {
		return ""
	}
	return v.Err.Error()
}

func invalid(err error) Validation {
	return Validation{Err: err}
}

// ValidateRange checks [start, end] against blocked using the local current day.
func ValidateRange(start, end domain.Date, blocked []BlockedDate) Validation {
	return ValidateRangeAt(domain.Today(), start, end, blocked)
}

// ValidateRangeAt checks, in order: both dates present, start not before
// today, end not before start, and no blocked day inside the range. The
// first failing rule decides the result.
func ValidateRangeAt(today, start, end domain.Date, blocked []BlockedDate) Validation {
	if start.IsZero() || end.IsZero() {
		return invalid(ErrDatesNotSelected)
	}
	if start.Before(today) {
		return invalid(ErrPastDate)
	}
	if end.Before(start) {
		return invalid(ErrEndBeforeStart)
	}
	for d := start; !d.After(end); d = d.AddDays(1) {
		if entry, ok := IsBlocked(d, blocked); ok {
			return Validation{Err: ErrOverlap, Conflict: &entry}
		}
	}
	return Validation{Valid: true}
}
