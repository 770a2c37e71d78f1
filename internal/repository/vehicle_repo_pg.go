package repository

import (
	"context"

	"github.com/Domenick1991/carrental/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type VehicleRepository interface {
	List(ctx context.Context) ([]domain.Vehicle, error)
	GetByID(ctx context.Context, id string) (*domain.Vehicle, error)
	Create(ctx context.Context, vehicle *domain.Vehicle) error
	Update(ctx context.Context, vehicle *domain.Vehicle) error
	UpdateStatus(ctx context.Context, id string, status domain.VehicleStatus, lastMaintenance domain.Date) (*domain.Vehicle, error)
	Delete(ctx context.Context, id string) error
}

type PGVehicleRepository struct {
	db *pgxpool.Pool
}

func NewVehicleRepository(db *pgxpool.Pool) VehicleRepository {
	return &PGVehicleRepository{db: db}
}

const vehicleColumns = `id, brand, model, year, plate, price_per_day, category, seats, transmission, fuel, image, mileage, status, last_maintenance, created_at, updated_at`

func scanVehicle(row pgx.Row) (*domain.Vehicle, error) {
	var (
		v    domain.Vehicle
		last pgtype.Date
	)
	if err := row.Scan(&v.ID, &v.Brand, &v.Model, &v.Year, &v.Plate, &v.PricePerDay, &v.Category, &v.Seats, &v.Transmission, &v.Fuel, &v.Image, &v.Mileage, &v.Status, &last, &v.CreatedAt, &v.UpdatedAt); err != nil {
		return nil, err
	}
	v.LastMaintenance = fromPGDate(last)
	return &v, nil
}

func (r *PGVehicleRepository) List(ctx context.Context) ([]domain.Vehicle, error) {
	rows, err := r.db.Query(ctx, `SELECT `+vehicleColumns+` FROM vehicles ORDER BY brand, model`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	vehicles := make([]domain.Vehicle, 0)
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, *v)
	}
	return vehicles, rows.Err()
}

func (r *PGVehicleRepository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	v, err := scanVehicle(r.db.QueryRow(ctx, `SELECT `+vehicleColumns+` FROM vehicles WHERE id=$1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return v, nil
}

func (r *PGVehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	return r.db.QueryRow(ctx, `INSERT INTO vehicles (id, brand, model, year, plate, price_per_day, category, seats, transmission, fuel, image, mileage, status, last_maintenance)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING created_at, updated_at`,
		v.ID, v.Brand, v.Model, v.Year, v.Plate, v.PricePerDay, v.Category, v.Seats, v.Transmission, v.Fuel, v.Image, v.Mileage, v.Status, toPGDate(v.LastMaintenance)).
		Scan(&v.CreatedAt, &v.UpdatedAt)
}

func (r *PGVehicleRepository) Update(ctx context.Context, v *domain.Vehicle) error {
	err := r.db.QueryRow(ctx, `UPDATE vehicles SET brand=$2, model=$3, year=$4, plate=$5, price_per_day=$6, category=$7, seats=$8,
		transmission=$9, fuel=$10, image=$11, mileage=$12, status=$13, last_maintenance=$14, updated_at=now()
		WHERE id=$1
		RETURNING created_at, updated_at`,
		v.ID, v.Brand, v.Model, v.Year, v.Plate, v.PricePerDay, v.Category, v.Seats, v.Transmission, v.Fuel, v.Image, v.Mileage, v.Status, toPGDate(v.LastMaintenance)).
		Scan(&v.CreatedAt, &v.UpdatedAt)
	return notFound(err)
}

// UpdateStatus sets the status and, when lastMaintenance is set, the last
// maintenance day.
func (r *PGVehicleRepository) UpdateStatus(ctx context.Context, id string, status domain.VehicleStatus, lastMaintenance domain.Date) (*domain.Vehicle, error) {
	row := r.db.QueryRow(ctx, `UPDATE vehicles SET status=$1, last_maintenance=COALESCE($2, last_maintenance), updated_at=now()
		WHERE id=$3 RETURNING `+vehicleColumns, status, toPGDate(lastMaintenance), id)
	v, err := scanVehicle(row)
	if err != nil {
		return nil, notFound(err)
	}
	return v, nil
}

func (r *PGVehicleRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM vehicles WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

var _ VehicleRepository = (*PGVehicleRepository)(nil)
