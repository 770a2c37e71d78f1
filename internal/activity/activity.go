// Package activity builds the back-office "recent activity" feed and picks
// the bookings that start or end on a given day.
package activity

import (
	"sort"
	"time"

	"github.com/Domenick1991/carrental/internal/domain"
)

type Kind string

const (
	KindBookingNew   Kind = "booking_new"
	KindBookingStart Kind = "booking_start"
	KindBookingEnd   Kind = "booking_end"
	KindClientNew    Kind = "client_new"
	KindVehicleNew   Kind = "vehicle_new"
)

const (
	bookingWindow = 7 * 24 * time.Hour
	clientWindow  = 30 * 24 * time.Hour
	unknownCar    = "Unknown Vehicle"
	anonymous     = "Client"
)

type Item struct {
	ID      string    `json:"id"`
	Kind    Kind      `json:"kind"`
	At      time.Time `json:"at"`
	Subject string    `json:"subject"`
	Detail  string    `json:"detail,omitempty"`
	RefID   string    `json:"ref_id"`
}

// Feed lists bookings created in the last 7 days, bookings starting or
// ending today, clients added in the last 30 days and every vehicle,
// newest first. Today is taken from now in its own location.
func Feed(now time.Time, bookings []domain.Booking, vehicles []domain.Vehicle, clients []domain.Client) []Item {
	names := make(map[string]string, len(vehicles))
	for _, v := range vehicles {
		names[v.ID] = v.Name()
	}
	vehicleName := func(id string) string {
		if name, ok := names[id]; ok {
			return name
		}
		return unknownCar
	}

	today := domain.DateOf(now)
	starting, ending := DueOn(bookings, today)

	items := make([]Item, 0, len(bookings)+len(vehicles)+len(clients))
	for _, b := range bookings {
		if b.CreatedAt.After(now.Add(-bookingWindow)) {
			items = append(items, bookingItem(KindBookingNew, b, b.CreatedAt, vehicleName(b.VehicleID)))
		}
	}
	for _, b := range starting {
		items = append(items, bookingItem(KindBookingStart, b, now, vehicleName(b.VehicleID)))
	}
	for _, b := range ending {
		items = append(items, bookingItem(KindBookingEnd, b, now, vehicleName(b.VehicleID)))
	}
	for _, c := range clients {
		if c.CreatedAt.After(now.Add(-clientWindow)) {
			items = append(items, Item{
				ID:      "client-new-" + c.ID,
				Kind:    KindClientNew,
				At:      c.CreatedAt,
				Subject: c.FullName(),
				RefID:   c.ID,
			})
		}
	}
	for _, v := range vehicles {
		items = append(items, Item{
			ID:      "vehicle-new-" + v.ID,
			Kind:    KindVehicleNew,
			At:      v.CreatedAt,
			Subject: v.Name(),
			RefID:   v.ID,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].At.After(items[j].At)
	})
	return items
}

// DueOn splits out the non-cancelled bookings whose start or end date is day.
// A single-day booking appears in both slices.
func DueOn(bookings []domain.Booking, day domain.Date) (starting, ending []domain.Booking) {
	for _, b := range bookings {
		if b.Status == domain.BookingStatusCancelled {
			continue
		}
		if b.StartDate == day {
			starting = append(starting, b)
		}
		if b.EndDate == day {
			ending = append(ending, b)
		}
	}
	return starting, ending
}

func bookingItem(kind Kind, b domain.Booking, at time.Time, vehicle string) Item {
	customer := b.Customer
	if customer == "" {
		customer = anonymous
	}
	var prefix string
	switch kind {
	case KindBookingStart:
		prefix = "booking-start-"
	case KindBookingEnd:
		prefix = "booking-end-"
	default:
		prefix = "booking-new-"
	}
	return Item{
		ID:      prefix + b.ID,
		Kind:    kind,
		At:      at,
		Subject: customer,
		Detail:  vehicle,
		RefID:   b.ID,
	}
}
