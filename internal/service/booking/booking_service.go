package booking

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/Domenick1991/carrental/internal/availability"
	"github.com/Domenick1991/carrental/internal/domain"
	"github.com/Domenick1991/carrental/internal/kafka"
	"github.com/Domenick1991/carrental/internal/repository"
	"github.com/google/uuid"
)

var (
	ErrVehicleRequired      = errors.New("vehicle is required")
	ErrCustomerRequired     = errors.New("customer is required")
	ErrInvalidStatus        = errors.New("booking status must be Active or Maintenance")
	ErrVehicleInMaintenance = errors.New("vehicle is in maintenance")
	ErrVehicleLocked        = errors.New("vehicle is being booked, try again")
	ErrBookingCancelled     = errors.New("booking is cancelled")
	ErrNegativeKm           = errors.New("kilometers cannot be negative")
	ErrEndingKmRequired     = errors.New("ending km is required for completed bookings")
	ErrEndingKmBelowStart   = errors.New("ending km cannot be less than starting km")
)

type BookingUseCase interface {
	CreateBooking(ctx context.Context, input BookingInput) (*domain.Booking, error)
	UpdateBooking(ctx context.Context, id string, input BookingInput) (*domain.Booking, error)
	CancelBooking(ctx context.Context, id string) (*domain.Booking, error)
	GetBooking(ctx context.Context, id string) (*BookingView, error)
	ListBookings(ctx context.Context, filter ListFilter) (*BookingPage, error)
	BlockedDates(ctx context.Context, vehicleID, excludeBookingID string) ([]availability.BlockedDate, error)
	ValidateRange(ctx context.Context, vehicleID, excludeBookingID string, start, end domain.Date) (availability.Validation, error)
	Calendar(ctx context.Context, vehicleID, excludeBookingID string, year int, month time.Month, sel availability.Selection) (*availability.CalendarMonth, error)
	PickDate(ctx context.Context, vehicleID, excludeBookingID string, sel availability.Selection, day domain.Date) (availability.Selection, availability.Validation, error)
	ExportHistory(ctx context.Context, filter ListFilter) (*bytes.Buffer, error)
}

type Cache interface {
	AcquireVehicleLock(ctx context.Context, vehicleID string, ttl time.Duration) (string, bool, error)
	ReleaseVehicleLock(ctx context.Context, vehicleID, token string) error
	InvalidateVehicles(ctx context.Context) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	bookings           repository.BookingRepository
	vehicles           repository.VehicleRepository
	cache              Cache
	producer           Producer
	eventsTopic        string
	notificationsTopic string
	lockTTL            time.Duration
	loc                *time.Location
	now                func() time.Time
	currency           string
}

// BookingInput carries the editable fields of a booking. Nil kilometer
// fields mean "not provided".
type BookingInput struct {
	VehicleID  string               `json:"vehicle_id"`
	ClientID   string               `json:"client_id"`
	Customer   string               `json:"customer"`
	Email      string               `json:"email"`
	Phone      string               `json:"phone"`
	StartDate  domain.Date          `json:"start_date"`
	EndDate    domain.Date          `json:"end_date"`
	StartingKm *int                 `json:"starting_km"`
	EndingKm   *int                 `json:"ending_km"`
	Status     domain.BookingStatus `json:"status"`
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

// WithLocation sets the zone in which "today" is taken.
func WithLocation(loc *time.Location) BookingServiceOption {
	return func(s *BookingService) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func WithCurrency(currency string) BookingServiceOption {
	return func(s *BookingService) {
		s.currency = currency
	}
}

func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	vehicles repository.VehicleRepository,
	cache Cache,
	producer Producer,
	eventsTopic string,
	lockTTL time.Duration,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:    bookings,
		vehicles:    vehicles,
		cache:       cache,
		producer:    producer,
		eventsTopic: eventsTopic,
		lockTTL:     lockTTL,
		loc:         time.Local,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *BookingService) today() domain.Date {
	now := time.Now
	if s.now != nil {
		now = s.now
	}
	loc := s.loc
	if loc == nil {
		loc = time.Local
	}
	return domain.DateOf(now().In(loc))
}

func (s *BookingService) CreateBooking(ctx context.Context, input BookingInput) (*domain.Booking, error) {
	if err := checkInput(input); err != nil {
		return nil, err
	}
	status := input.Status
	if status == "" {
		status = domain.BookingStatusActive
	}

	vehicle, err := s.vehicles.GetByID(ctx, input.VehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle.Status == domain.VehicleStatusMaintenance && status != domain.BookingStatusMaintenance {
		return nil, ErrVehicleInMaintenance
	}

	startingKm := vehicle.Mileage
	if input.StartingKm != nil {
		startingKm = *input.StartingKm
	}
	if err := checkKm(startingKm, input.EndingKm); err != nil {
		return nil, err
	}

	release, err := s.lockVehicle(ctx, vehicle.ID)
	if err != nil {
		return nil, err
	}
	defer release()

	blocked, err := s.BlockedDates(ctx, vehicle.ID, "")
	if err != nil {
		return nil, err
	}
	if v := availability.ValidateRangeAt(s.today(), input.StartDate, input.EndDate, blocked); !v.Valid {
		return nil, v.Err
	}

	booking := &domain.Booking{
		ID:         uuid.NewString(),
		VehicleID:  vehicle.ID,
		ClientID:   input.ClientID,
		Customer:   strings.TrimSpace(input.Customer),
		Email:      strings.TrimSpace(input.Email),
		Phone:      strings.TrimSpace(input.Phone),
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		StartingKm: startingKm,
		EndingKm:   input.EndingKm,
		TotalCost:  totalCost(input.StartDate, input.EndDate, vehicle.PricePerDay),
		Status:     status,
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}
	s.invalidateCatalog(ctx)

	if err := s.publish(ctx, kafka.EventBookingCreated, booking); err != nil {
		log.Printf("WARNING: failed to publish %s for booking %s: %v", kafka.EventBookingCreated, booking.ID, err)
	}
	return booking, nil
}

// UpdateBooking re-validates the new range against every other booking of
// the vehicle. An ongoing booking may keep its past start date; moving the
// start is subject to the past-date rule like a new booking.
func (s *BookingService) UpdateBooking(ctx context.Context, id string, input BookingInput) (*domain.Booking, error) {
	if err := checkInput(input); err != nil {
		return nil, err
	}

	current, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status == domain.BookingStatusCancelled {
		return nil, ErrBookingCancelled
	}

	vehicle, err := s.vehicles.GetByID(ctx, input.VehicleID)
	if err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = current.Status
	}
	moved := vehicle.ID != current.VehicleID
	if moved && vehicle.Status == domain.VehicleStatusMaintenance && status != domain.BookingStatusMaintenance {
		return nil, ErrVehicleInMaintenance
	}
	startingKm := current.StartingKm
	if input.StartingKm != nil {
		startingKm = *input.StartingKm
	}
	if err := checkKm(startingKm, input.EndingKm); err != nil {
		return nil, err
	}

	today := s.today()
	if today.After(input.EndDate) && input.EndingKm == nil {
		return nil, ErrEndingKmRequired
	}

	release, err := s.lockVehicle(ctx, vehicle.ID)
	if err != nil {
		return nil, err
	}
	defer release()

	blocked, err := s.BlockedDates(ctx, vehicle.ID, current.ID)
	if err != nil {
		return nil, err
	}
	reference := today
	if input.StartDate == current.StartDate && input.StartDate.Before(today) {
		reference = input.StartDate
	}
	if v := availability.ValidateRangeAt(reference, input.StartDate, input.EndDate, blocked); !v.Valid {
		return nil, v.Err
	}

	updated := *current
	updated.VehicleID = vehicle.ID
	updated.ClientID = input.ClientID
	updated.Customer = strings.TrimSpace(input.Customer)
	updated.Email = strings.TrimSpace(input.Email)
	updated.Phone = strings.TrimSpace(input.Phone)
	updated.StartDate = input.StartDate
	updated.EndDate = input.EndDate
	updated.StartingKm = startingKm
	updated.EndingKm = input.EndingKm
	updated.TotalCost = totalCost(input.StartDate, input.EndDate, vehicle.PricePerDay)
	updated.Status = status

	if err := s.bookings.Update(ctx, &updated); err != nil {
		return nil, err
	}
	if moved {
		s.moveRental(ctx, current.VehicleID, &updated)
	}

	if err := s.publish(ctx, kafka.EventBookingUpdated, &updated); err != nil {
		log.Printf("WARNING: failed to publish %s for booking %s: %v", kafka.EventBookingUpdated, updated.ID, err)
	}
	return &updated, nil
}

// CancelBooking frees the booking's dates and makes the vehicle available
// again. Cancelling twice is a no-op.
func (s *BookingService) CancelBooking(ctx context.Context, id string) (*domain.Booking, error) {
	current, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status == domain.BookingStatusCancelled {
		return current, nil
	}

	updated, err := s.bookings.UpdateStatus(ctx, id, domain.BookingStatusCancelled)
	if err != nil {
		return nil, err
	}
	if _, err := s.vehicles.UpdateStatus(ctx, updated.VehicleID, domain.VehicleStatusAvailable, domain.Date{}); err != nil {
		log.Printf("WARNING: failed to release vehicle %s: %v", updated.VehicleID, err)
	}
	s.invalidateCatalog(ctx)

	if err := s.publish(ctx, kafka.EventBookingCancelled, updated); err != nil {
		log.Printf("WARNING: failed to publish %s for booking %s: %v", kafka.EventBookingCancelled, updated.ID, err)
	}
	return updated, nil
}

func (s *BookingService) GetBooking(ctx context.Context, id string) (*BookingView, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := newView(*b, s.today())
	return &view, nil
}

// BlockedDates returns the days taken on the vehicle, leaving out the
// booking being edited when excludeBookingID is set.
func (s *BookingService) BlockedDates(ctx context.Context, vehicleID, excludeBookingID string) ([]availability.BlockedDate, error) {
	if vehicleID == "" {
		return nil, nil
	}
	bookings, err := s.bookings.ListByVehicle(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	return availability.Without(availability.ComputeBlockedDates(vehicleID, bookings), excludeBookingID), nil
}

// ValidateRange reports validation failures in the returned Validation;
// the error is only for store failures.
func (s *BookingService) ValidateRange(ctx context.Context, vehicleID, excludeBookingID string, start, end domain.Date) (availability.Validation, error) {
	blocked, err := s.BlockedDates(ctx, vehicleID, excludeBookingID)
	if err != nil {
		return availability.Validation{}, err
	}
	return availability.ValidateRangeAt(s.today(), start, end, blocked), nil
}

// Calendar lays out one month of the vehicle's availability. A zero year
// selects the current month.
func (s *BookingService) Calendar(ctx context.Context, vehicleID, excludeBookingID string, year int, month time.Month, sel availability.Selection) (*availability.CalendarMonth, error) {
	blocked, err := s.BlockedDates(ctx, vehicleID, excludeBookingID)
	if err != nil {
		return nil, err
	}
	today := s.today()
	if year == 0 {
		year, month = today.Year(), today.Month()
	}
	cal := availability.Month(year, month, blocked, sel.Start, sel.End, today)
	return &cal, nil
}

// PickDate applies one calendar click to sel against the vehicle's blocked days.
func (s *BookingService) PickDate(ctx context.Context, vehicleID, excludeBookingID string, sel availability.Selection, day domain.Date) (availability.Selection, availability.Validation, error) {
	blocked, err := s.BlockedDates(ctx, vehicleID, excludeBookingID)
	if err != nil {
		return sel, availability.Validation{}, err
	}
	next, v := sel.Pick(day, blocked, s.today())
	return next, v, nil
}

func (s *BookingService) lockVehicle(ctx context.Context, vehicleID string) (func(), error) {
	if s.cache == nil {
		return func() {}, nil
	}
	token, ok, err := s.cache.AcquireVehicleLock(ctx, vehicleID, s.lockTTL)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrVehicleLocked
	}
	return func() {
		if err := s.cache.ReleaseVehicleLock(ctx, vehicleID, token); err != nil {
			log.Printf("release vehicle lock %s: %v", vehicleID, err)
		}
	}, nil
}

// moveRental frees the vehicle a booking left and marks the new one rented
// when the booking is active.
func (s *BookingService) moveRental(ctx context.Context, previousVehicleID string, b *domain.Booking) {
	if _, err := s.vehicles.UpdateStatus(ctx, previousVehicleID, domain.VehicleStatusAvailable, domain.Date{}); err != nil {
		log.Printf("WARNING: failed to release vehicle %s: %v", previousVehicleID, err)
	}
	if b.Status == domain.BookingStatusActive {
		if _, err := s.vehicles.UpdateStatus(ctx, b.VehicleID, domain.VehicleStatusRented, domain.Date{}); err != nil {
			log.Printf("WARNING: failed to rent vehicle %s: %v", b.VehicleID, err)
		}
	}
	s.invalidateCatalog(ctx)
}

func (s *BookingService) invalidateCatalog(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateVehicles(ctx); err != nil {
		log.Printf("invalidate vehicles cache: %v", err)
	}
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) error {
	if s.producer == nil || s.eventsTopic == "" {
		return nil
	}
	event := kafka.NewBookingEvent(eventType, booking)
	if err := s.producer.Publish(ctx, s.eventsTopic, booking.ID, event); err != nil {
		return err
	}
	if s.notificationsTopic != "" {
		return s.producer.Publish(ctx, s.notificationsTopic, booking.ID, event)
	}
	return nil
}

func checkInput(input BookingInput) error {
	if strings.TrimSpace(input.VehicleID) == "" {
		return ErrVehicleRequired
	}
	if strings.TrimSpace(input.Customer) == "" {
		return ErrCustomerRequired
	}
	if input.Status != "" && !input.Status.Blocking() {
		return ErrInvalidStatus
	}
	if input.StartDate.IsZero() || input.EndDate.IsZero() {
		return availability.ErrDatesNotSelected
	}
	return nil
}

func checkKm(startingKm int, endingKm *int) error {
	if startingKm < 0 || (endingKm != nil && *endingKm < 0) {
		return ErrNegativeKm
	}
	if endingKm != nil && *endingKm < startingKm {
		return ErrEndingKmBelowStart
	}
	return nil
}

func totalCost(start, end domain.Date, pricePerDay float64) float64 {
	return float64(domain.RentalDays(start, end)) * pricePerDay
}

var _ BookingUseCase = (*BookingService)(nil)
