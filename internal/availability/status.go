package availability

import "github.com/Domenick1991/carrental/internal/domain"

// DeriveStatus computes the status shown for b on today. Cancelled bookings
// keep their status; every other booking is Upcoming, Active or Completed
// depending on where today falls. The stored status is never changed.
func DeriveStatus(b domain.Booking, today domain.Date) domain.BookingStatus {
	if b.Status == domain.BookingStatusCancelled {
		return domain.BookingStatusCancelled
	}
	switch {
	case today.Before(b.StartDate):
		return domain.BookingStatusUpcoming
	case today.After(b.EndDate):
		return domain.BookingStatusCompleted
	default:
		return domain.BookingStatusActive
	}
}
