package fleet

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/Domenick1991/carrental/internal/domain"
	"github.com/Domenick1991/carrental/internal/repository"
	"github.com/google/uuid"
)

var (
	ErrBrandRequired   = errors.New("brand is required")
	ErrModelRequired   = errors.New("model is required")
	ErrPlateRequired   = errors.New("plate is required")
	ErrInvalidPrice    = errors.New("price per day must be positive")
	ErrNegativeMileage = errors.New("mileage cannot be negative")
	ErrInvalidStatus   = errors.New("unknown vehicle status")
)

const allCategories = "all"

type FleetUseCase interface {
	List(ctx context.Context) ([]domain.Vehicle, error)
	Catalog(ctx context.Context, filter CatalogFilter) ([]domain.Vehicle, error)
	Categories(ctx context.Context) ([]string, error)
	GetByID(ctx context.Context, id string) (*domain.Vehicle, error)
	Create(ctx context.Context, input VehicleInput) (*domain.Vehicle, error)
	Update(ctx context.Context, id string, input VehicleInput) (*domain.Vehicle, error)
	Delete(ctx context.Context, id string) error
	SetMaintenance(ctx context.Context, id string) (*domain.Vehicle, error)
	SetAvailable(ctx context.Context, id string) (*domain.Vehicle, error)
	ToggleStatus(ctx context.Context, id string) (*domain.Vehicle, error)
}

type FleetCache interface {
	GetVehicles(ctx context.Context) ([]domain.Vehicle, error)
	SetVehicles(ctx context.Context, vehicles []domain.Vehicle) error
	InvalidateVehicles(ctx context.Context) error
}

type FleetService struct {
	repo  repository.VehicleRepository
	cache FleetCache
	loc   *time.Location
	now   func() time.Time
}

type VehicleInput struct {
	Brand        string               `json:"brand"`
	Model        string               `json:"model"`
	Year         int                  `json:"year"`
	Plate        string               `json:"plate"`
	PricePerDay  float64              `json:"price_per_day"`
	Category     string               `json:"category"`
	Seats        int                  `json:"seats"`
	Transmission string               `json:"transmission"`
	Fuel         string               `json:"fuel"`
	Image        string               `json:"image"`
	Mileage      int                  `json:"mileage"`
	Status       domain.VehicleStatus `json:"status"`
}

// CatalogFilter narrows the public catalog. Empty fields and "all" match
// everything; MaxPrice <= 0 disables the price bound.
type CatalogFilter struct {
	Search       string
	Category     string
	Transmission string
	MaxPrice     float64
}

type FleetServiceOption func(*FleetService)

func WithLocation(loc *time.Location) FleetServiceOption {
	return func(s *FleetService) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func WithClock(now func() time.Time) FleetServiceOption {
	return func(s *FleetService) {
		s.now = now
	}
}

func NewFleetService(repo repository.VehicleRepository, cache FleetCache, opts ...FleetServiceOption) *FleetService {
	service := &FleetService{repo: repo, cache: cache, loc: time.Local, now: time.Now}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *FleetService) List(ctx context.Context) ([]domain.Vehicle, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetVehicles(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	vehicles, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetVehicles(ctx, vehicles)
	}
	return vehicles, nil
}

func (s *FleetService) Catalog(ctx context.Context, filter CatalogFilter) ([]domain.Vehicle, error) {
	vehicles, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	result := make([]domain.Vehicle, 0, len(vehicles))
	for _, v := range vehicles {
		if search != "" && !strings.Contains(strings.ToLower(v.Name()), search) {
			continue
		}
		if !matchesOption(filter.Category, v.Category) || !matchesOption(filter.Transmission, v.Transmission) {
			continue
		}
		if filter.MaxPrice > 0 && v.PricePerDay > filter.MaxPrice {
			continue
		}
		result = append(result, v)
	}
	return result, nil
}

// Categories lists the distinct vehicle categories, sorted.
func (s *FleetService) Categories(ctx context.Context) ([]string, error) {
	vehicles, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	categories := make([]string, 0)
	for _, v := range vehicles {
		if v.Category == "" {
			continue
		}
		if _, ok := seen[v.Category]; ok {
			continue
		}
		seen[v.Category] = struct{}{}
		categories = append(categories, v.Category)
	}
	sort.Strings(categories)
	return categories, nil
}

func (s *FleetService) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *FleetService) Create(ctx context.Context, input VehicleInput) (*domain.Vehicle, error) {
	if err := checkInput(input); err != nil {
		return nil, err
	}

	vehicle := &domain.Vehicle{ID: uuid.NewString()}
	apply(vehicle, input)
	if vehicle.Status == "" {
		vehicle.Status = domain.VehicleStatusAvailable
	}

	if err := s.repo.Create(ctx, vehicle); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return vehicle, nil
}

func (s *FleetService) Update(ctx context.Context, id string, input VehicleInput) (*domain.Vehicle, error) {
	if err := checkInput(input); err != nil {
		return nil, err
	}

	vehicle, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	apply(vehicle, input)

	if err := s.repo.Update(ctx, vehicle); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return vehicle, nil
}

func (s *FleetService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// SetMaintenance takes the vehicle out of service and stamps today's date
// as its last maintenance.
func (s *FleetService) SetMaintenance(ctx context.Context, id string) (*domain.Vehicle, error) {
	today := domain.DateOf(s.now().In(s.loc))
	return s.setStatus(ctx, id, domain.VehicleStatusMaintenance, today)
}

func (s *FleetService) SetAvailable(ctx context.Context, id string) (*domain.Vehicle, error) {
	return s.setStatus(ctx, id, domain.VehicleStatusAvailable, domain.Date{})
}

func (s *FleetService) ToggleStatus(ctx context.Context, id string) (*domain.Vehicle, error) {
	vehicle, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.setStatus(ctx, id, vehicle.Status.Next(), domain.Date{})
}

func (s *FleetService) setStatus(ctx context.Context, id string, status domain.VehicleStatus, lastMaintenance domain.Date) (*domain.Vehicle, error) {
	vehicle, err := s.repo.UpdateStatus(ctx, id, status, lastMaintenance)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return vehicle, nil
}

func (s *FleetService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateVehicles(ctx); err != nil {
		log.Printf("invalidate vehicles cache: %v", err)
	}
}

func matchesOption(want, got string) bool {
	return want == "" || strings.EqualFold(want, allCategories) || want == got
}

func checkInput(input VehicleInput) error {
	switch {
	case strings.TrimSpace(input.Brand) == "":
		return ErrBrandRequired
	case strings.TrimSpace(input.Model) == "":
		return ErrModelRequired
	case strings.TrimSpace(input.Plate) == "":
		return ErrPlateRequired
	case input.PricePerDay <= 0:
		return ErrInvalidPrice
	case input.Mileage < 0:
		return ErrNegativeMileage
	}
	switch input.Status {
	case "", domain.VehicleStatusAvailable, domain.VehicleStatusRented, domain.VehicleStatusMaintenance:
		return nil
	}
	return ErrInvalidStatus
}

func apply(v *domain.Vehicle, input VehicleInput) {
	v.Brand = strings.TrimSpace(input.Brand)
	v.Model = strings.TrimSpace(input.Model)
	v.Year = input.Year
	v.Plate = strings.TrimSpace(input.Plate)
	v.PricePerDay = input.PricePerDay
	v.Category = input.Category
	v.Seats = input.Seats
	v.Transmission = input.Transmission
	v.Fuel = input.Fuel
	v.Image = input.Image
	v.Mileage = input.Mileage
	if input.Status != "" {
		v.Status = input.Status
	}
}

var _ FleetUseCase = (*FleetService)(nil)
