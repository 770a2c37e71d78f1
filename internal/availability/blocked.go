// Package availability decides which days a vehicle is free, validates
// proposed rental ranges and derives the presentational booking status.
// Every function is pure: it reads the bookings it is given and nothing else.
package availability

import "github.com/Domenick1991/carrental/internal/domain"

// BlockedDate is one calendar day occupied by a blocking booking.
type BlockedDate struct {
	Date      domain.Date          `json:"date"`
	Status    domain.BookingStatus `json:"status"`
	BookingID string               `json:"booking_id"`
}

// ComputeBlockedDates expands every Active or Maintenance booking of the
// vehicle into one entry per day, both endpoints included. Entries follow the
// order of bookings, then each range forward.
func ComputeBlockedDates(vehicleID string, bookings []domain.Booking) []BlockedDate {
	if vehicleID == "" || len(bookings) == 0 {
		return nil
	}

	var blocked []BlockedDate
	for _, b := range bookings {
		if b.VehicleID != vehicleID || !b.Status.Blocking() {
			continue
		}
		// Inverted or half-empty ranges occupy nothing.
		if b.StartDate.IsZero() || b.EndDate.IsZero() || b.EndDate.Before(b.StartDate) {
			continue
		}
		for d := b.StartDate; !d.After(b.EndDate); d = d.AddDays(1) {
			blocked = append(blocked, BlockedDate{Date: d, Status: b.Status, BookingID: b.ID})
		}
	}
	return blocked
}

// IsBlocked returns the first entry for day.
func IsBlocked(day domain.Date, blocked []BlockedDate) (BlockedDate, bool) {
	if day.IsZero() {
		return BlockedDate{}, false
	}
	for _, entry := range blocked {
		if entry.Date == day {
			return entry, true
		}
	}
	return BlockedDate{}, false
}

// IsBlockedString is IsBlocked for a YYYY-MM-DD string. A string that does
// not parse never matches.
func IsBlockedString(day string, blocked []BlockedDate) (BlockedDate, bool) {
	d, err := domain.ParseDate(day)
	if err != nil {
		return BlockedDate{}, false
	}
	return IsBlocked(d, blocked)
}

// Without drops the entries owned by bookingID. Editing a booking validates
// its new range against everyone else's days.
func Without(blocked []BlockedDate, bookingID string) []BlockedDate {
	if bookingID == "" {
		return blocked
	}
	out := make([]BlockedDate, 0, len(blocked))
	for _, entry := range blocked {
		if entry.BookingID != bookingID {
			out = append(out, entry)
		}
	}
	return out
}
