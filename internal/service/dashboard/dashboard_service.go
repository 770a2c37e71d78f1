package dashboard

import (
	"context"
	"time"

	"github.com/Domenick1991/carrental/internal/activity"
	"github.com/Domenick1991/carrental/internal/availability"
	"github.com/Domenick1991/carrental/internal/domain"
	"github.com/Domenick1991/carrental/internal/repository"
)

type DashboardUseCase interface {
	Stats(ctx context.Context) (*Stats, error)
	Activity(ctx context.Context, limit int) ([]activity.Item, error)
}

type Stats struct {
	TotalFleet          int     `json:"total_fleet"`
	AvailableVehicles   int     `json:"available_vehicles"`
	MaintenanceVehicles int     `json:"maintenance_vehicles"`
	ActiveRentals       int     `json:"active_rentals"`
	UpcomingRentals     int     `json:"upcoming_rentals"`
	TotalRevenue        float64 `json:"total_revenue"`
	MonthlyRevenue      float64 `json:"monthly_revenue"`
	TotalExpenses       float64 `json:"total_expenses"`
}

type DashboardService struct {
	bookings repository.BookingRepository
	vehicles repository.VehicleRepository
	clients  repository.ClientRepository
	expenses repository.ExpenseRepository
	loc      *time.Location
	now      func() time.Time
}

type DashboardServiceOption func(*DashboardService)

func WithLocation(loc *time.Location) DashboardServiceOption {
	return func(s *DashboardService) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func WithClock(now func() time.Time) DashboardServiceOption {
	return func(s *DashboardService) {
		s.now = now
	}
}

func NewDashboardService(
	bookings repository.BookingRepository,
	vehicles repository.VehicleRepository,
	clients repository.ClientRepository,
	expenses repository.ExpenseRepository,
	opts ...DashboardServiceOption,
) *DashboardService {
	service := &DashboardService{
		bookings: bookings,
		vehicles: vehicles,
		clients:  clients,
		expenses: expenses,
		loc:      time.Local,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Stats summarizes the fleet and the books. Cancelled bookings earn no
// revenue; monthly revenue counts bookings created in the current month.
func (s *DashboardService) Stats(ctx context.Context) (*Stats, error) {
	vehicles, err := s.vehicles.List(ctx)
	if err != nil {
		return nil, err
	}
	bookings, err := s.bookings.List(ctx)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenses.List(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now().In(s.loc)
	today := domain.DateOf(now)
	stats := &Stats{TotalFleet: len(vehicles)}

	for _, v := range vehicles {
		switch v.Status {
		case domain.VehicleStatusAvailable:
			stats.AvailableVehicles++
		case domain.VehicleStatusMaintenance:
			stats.MaintenanceVehicles++
		}
	}

	for _, b := range bookings {
		if b.Status == domain.BookingStatusCancelled {
			continue
		}
		switch availability.DeriveStatus(b, today) {
		case domain.BookingStatusActive:
			stats.ActiveRentals++
		case domain.BookingStatusUpcoming:
			stats.UpcomingRentals++
		}
		stats.TotalRevenue += b.TotalCost
		created := b.CreatedAt.In(s.loc)
		if created.Year() == now.Year() && created.Month() == now.Month() {
			stats.MonthlyRevenue += b.TotalCost
		}
	}

	for _, e := range expenses {
		stats.TotalExpenses += e.Amount
	}
	return stats, nil
}

// Activity returns the recent activity feed, newest first. A positive
// limit caps the number of items.
func (s *DashboardService) Activity(ctx context.Context, limit int) ([]activity.Item, error) {
	bookings, err := s.bookings.List(ctx)
	if err != nil {
		return nil, err
	}
	vehicles, err := s.vehicles.List(ctx)
	if err != nil {
		return nil, err
	}
	clients, err := s.clients.List(ctx, "")
	if err != nil {
		return nil, err
	}

	items := activity.Feed(s.now().In(s.loc), bookings, vehicles, clients)
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

var _ DashboardUseCase = (*DashboardService)(nil)
