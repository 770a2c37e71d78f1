package availability

import "github.com/Domenick1991/carrental/internal/domain"

// Selection is the range a user builds by picking a start day and then an
// end day on the calendar.
type Selection struct {
	Start domain.Date `json:"start"`
	End   domain.Date `json:"end"`
}

func (s Selection) Complete() bool {
	return !s.Start.IsZero() && !s.End.IsZero()
}

// Pick applies one click. With no start, or with a finished range, day
// becomes a new start after validating it as a single-day range. Otherwise
// day is validated as the end of [Start, day]. A rejected pick returns the
// selection unchanged with the failed validation.
func (s Selection) Pick(day domain.Date, blocked []BlockedDate, today domain.Date) (Selection, Validation) {
	if s.Start.IsZero() || s.Complete() {
		v := ValidateRangeAt(today, day, day, blocked)
		if !v.Valid {
			return s, v
		}
		return Selection{Start: day}, v
	}

	v := ValidateRangeAt(today, s.Start, day, blocked)
	if !v.Valid {
		return s, v
	}
	return Selection{Start: s.Start, End: day}, v
}
