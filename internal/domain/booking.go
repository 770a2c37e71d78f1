package domain

import "time"

type BookingStatus string

const (
	BookingStatusActive      BookingStatus = "Active"
	BookingStatusMaintenance BookingStatus = "Maintenance"
	BookingStatusUpcoming    BookingStatus = "Upcoming"
	BookingStatusCompleted   BookingStatus = "Completed"
	BookingStatusCancelled   BookingStatus = "Cancelled"
)

// Blocking reports whether a booking stored with this status occupies its dates.
func (s BookingStatus) Blocking() bool {
	return s == BookingStatusActive || s == BookingStatusMaintenance
}

type Booking struct {
	ID         string        `json:"id"`
	VehicleID  string        `json:"vehicle_id"`
	ClientID   string        `json:"client_id,omitempty"`
	Customer   string        `json:"customer"`
	Email      string        `json:"email"`
	Phone      string        `json:"phone"`
	StartDate  Date          `json:"start_date"`
	EndDate    Date          `json:"end_date"`
	StartingKm int           `json:"starting_km"`
	EndingKm   *int          `json:"ending_km,omitempty"`
	TotalCost  float64       `json:"total_cost"`
	Status     BookingStatus `json:"status"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// Days returns the inclusive number of rental days, or 0 when a date is missing.
func (b Booking) Days() int {
	return RentalDays(b.StartDate, b.EndDate)
}

// RentalDays counts both endpoints. The order of the arguments does not matter.
func RentalDays(start, end Date) int {
	if start.IsZero() || end.IsZero() {
		return 0
	}
	n := start.DaysUntil(end)
	if n < 0 {
		n = -n
	}
	return n + 1
}
