package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/carrental/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BookingRepository is the booking store. Create and Update refuse a range
// that overlaps another Active or Maintenance booking of the same vehicle.
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	Update(ctx context.Context, booking *domain.Booking) error
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) (*domain.Booking, error)
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	List(ctx context.Context) ([]domain.Booking, error)
	ListByVehicle(ctx context.Context, vehicleID string) ([]domain.Booking, error)
	ListTouchingDay(ctx context.Context, day domain.Date) ([]domain.Booking, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

const bookingColumns = `id, vehicle_id, client_id, customer, email, phone, start_date, end_date, starting_km, ending_km, total_cost, status, created_at, updated_at`

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var (
		b          domain.Booking
		clientID   *string
		start, end pgtype.Date
	)
	if err := row.Scan(&b.ID, &b.VehicleID, &clientID, &b.Customer, &b.Email, &b.Phone, &start, &end, &b.StartingKm, &b.EndingKm, &b.TotalCost, &b.Status, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	b.ClientID = deref(clientID)
	b.StartDate = fromPGDate(start)
	b.EndDate = fromPGDate(end)
	return &b, nil
}

func collectBookings(rows pgx.Rows) ([]domain.Booking, error) {
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

// guardOverlap locks the vehicle row for the rest of tx and fails when
// another blocking booking shares a day with [start, end].
func guardOverlap(ctx context.Context, tx pgx.Tx, booking *domain.Booking) error {
	var vehicleID string
	if err := tx.QueryRow(ctx, `SELECT id FROM vehicles WHERE id=$1 FOR UPDATE`, booking.VehicleID).Scan(&vehicleID); err != nil {
		return notFound(err)
	}
	if !booking.Status.Blocking() {
		return nil
	}

	var conflict string
	err := tx.QueryRow(ctx, `SELECT id FROM bookings
		WHERE vehicle_id=$1 AND id<>$2 AND status IN ($3, $4) AND start_date <= $6 AND end_date >= $5
		LIMIT 1`,
		booking.VehicleID, booking.ID, domain.BookingStatusActive, domain.BookingStatusMaintenance,
		toPGDate(booking.StartDate), toPGDate(booking.EndDate)).Scan(&conflict)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return nil
	case err != nil:
		return err
	default:
		return ErrBookingOverlap
	}
}

func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := guardOverlap(ctx, tx, booking); err != nil {
		return err
	}

	if err := tx.QueryRow(ctx, `INSERT INTO bookings (id, vehicle_id, client_id, customer, email, phone, start_date, end_date, starting_km, ending_km, total_cost, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at`,
		booking.ID, booking.VehicleID, nullable(booking.ClientID), booking.Customer, booking.Email, booking.Phone,
		toPGDate(booking.StartDate), toPGDate(booking.EndDate), booking.StartingKm, booking.EndingKm, booking.TotalCost, booking.Status).
		Scan(&booking.CreatedAt, &booking.UpdatedAt); err != nil {
		return err
	}

	if booking.Status == domain.BookingStatusActive {
		if _, err := tx.Exec(ctx, `UPDATE vehicles SET status=$1, updated_at=now() WHERE id=$2`, domain.VehicleStatusRented, booking.VehicleID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PGBookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := guardOverlap(ctx, tx, booking); err != nil {
		return err
	}

	if err := tx.QueryRow(ctx, `UPDATE bookings SET vehicle_id=$2, client_id=$3, customer=$4, email=$5, phone=$6, start_date=$7, end_date=$8,
		starting_km=$9, ending_km=$10, total_cost=$11, status=$12, updated_at=now()
		WHERE id=$1
		RETURNING created_at, updated_at`,
		booking.ID, booking.VehicleID, nullable(booking.ClientID), booking.Customer, booking.Email, booking.Phone,
		toPGDate(booking.StartDate), toPGDate(booking.EndDate), booking.StartingKm, booking.EndingKm, booking.TotalCost, booking.Status).
		Scan(&booking.CreatedAt, &booking.UpdatedAt); err != nil {
		return notFound(err)
	}

	return tx.Commit(ctx)
}

func (r *PGBookingRepository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `UPDATE bookings SET status=$1, updated_at=now() WHERE id=$2 RETURNING `+bookingColumns, status, id)
	b, err := scanBooking(row)
	if err != nil {
		return nil, notFound(err)
	}
	return b, nil
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	b, err := scanBooking(r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=$1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return b, nil
}

func (r *PGBookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	return collectBookings(rows)
}

func (r *PGBookingRepository) ListByVehicle(ctx context.Context, vehicleID string) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE vehicle_id=$1 ORDER BY start_date`, vehicleID)
	if err != nil {
		return nil, err
	}
	return collectBookings(rows)
}

// ListTouchingDay returns the non-cancelled bookings that start or end on day.
func (r *PGBookingRepository) ListTouchingDay(ctx context.Context, day domain.Date) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings
		WHERE status<>$1 AND (start_date=$2 OR end_date=$2)
		ORDER BY start_date`, domain.BookingStatusCancelled, toPGDate(day))
	if err != nil {
		return nil, err
	}
	return collectBookings(rows)
}

var _ BookingRepository = (*PGBookingRepository)(nil)
