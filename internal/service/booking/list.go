package booking

import (
	"bytes"
	"context"
	"strings"

	"github.com/Domenick1991/carrental/internal/availability"
	"github.com/Domenick1991/carrental/internal/domain"
	"github.com/Domenick1991/carrental/internal/export"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// BookingView is a booking as shown in lists: the stored record plus the
// status derived for today.
type BookingView struct {
	domain.Booking
	DisplayStatus domain.BookingStatus `json:"display_status"`
	Days          int                  `json:"days"`
}

func newView(b domain.Booking, today domain.Date) BookingView {
	return BookingView{
		Booking:       b,
		DisplayStatus: availability.DeriveStatus(b, today),
		Days:          b.Days(),
	}
}

// ListFilter selects bookings by derived status and by a search term that
// matches the customer, email, booking id or vehicle plate. Page is 1-based.
type ListFilter struct {
	Status   domain.BookingStatus
	Search   string
	Page     int
	PageSize int
}

type BookingPage struct {
	Items    []BookingView `json:"items"`
	Total    int           `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
	Pages    int           `json:"pages"`
}

func (s *BookingService) ListBookings(ctx context.Context, filter ListFilter) (*BookingPage, error) {
	var vehicles map[string]domain.Vehicle
	if filter.Search != "" {
		var err error
		if vehicles, err = s.vehicleIndex(ctx); err != nil {
			return nil, err
		}
	}

	matched, err := s.filterViews(ctx, filter, vehicles)
	if err != nil {
		return nil, err
	}
	return paginate(matched, filter.Page, filter.PageSize), nil
}

// ExportHistory renders every booking matching the filter, ignoring
// pagination, as an xlsx workbook.
func (s *BookingService) ExportHistory(ctx context.Context, filter ListFilter) (*bytes.Buffer, error) {
	vehicles, err := s.vehicleIndex(ctx)
	if err != nil {
		return nil, err
	}
	matched, err := s.filterViews(ctx, filter, vehicles)
	if err != nil {
		return nil, err
	}

	rows := make([]export.HistoryRow, 0, len(matched))
	for _, view := range matched {
		row := export.HistoryRow{Booking: view.Booking, Status: view.DisplayStatus}
		if v, ok := vehicles[view.VehicleID]; ok {
			row.Vehicle = v.Name()
			row.Plate = v.Plate
		}
		rows = append(rows, row)
	}
	return export.BookingHistory(rows, s.currency)
}

func (s *BookingService) vehicleIndex(ctx context.Context) (map[string]domain.Vehicle, error) {
	vehicles, err := s.vehicles.List(ctx)
	if err != nil {
		return nil, err
	}
	index := make(map[string]domain.Vehicle, len(vehicles))
	for _, v := range vehicles {
		index[v.ID] = v
	}
	return index, nil
}

func (s *BookingService) filterViews(ctx context.Context, filter ListFilter, vehicles map[string]domain.Vehicle) ([]BookingView, error) {
	bookings, err := s.bookings.List(ctx)
	if err != nil {
		return nil, err
	}

	today := s.today()
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	matched := make([]BookingView, 0, len(bookings))
	for _, b := range bookings {
		view := newView(b, today)
		if filter.Status != "" && view.DisplayStatus != filter.Status {
			continue
		}
		if search != "" && !matches(search, b.Customer, b.Email, b.ID, vehicles[b.VehicleID].Plate) {
			continue
		}
		matched = append(matched, view)
	}
	return matched, nil
}

func matches(search string, fields ...string) bool {
	for _, f := range fields {
		if f != "" && strings.Contains(strings.ToLower(f), search) {
			return true
		}
	}
	return false
}

func paginate(items []BookingView, page, size int) *BookingPage {
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	pages := (len(items) + size - 1) / size
	if page < 1 {
		page = 1
	}

	result := &BookingPage{
		Items:    []BookingView{},
		Total:    len(items),
		Page:     page,
		PageSize: size,
		Pages:    pages,
	}
	if page > pages {
		return result
	}

	from := (page - 1) * size
	result.Items = items[from : from+min(size, len(items)-from)]
	return result
}
