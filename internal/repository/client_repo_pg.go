package repository

import (
	"context"

	"github.com/Domenick1991/carrental/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ClientRepository interface {
	List(ctx context.Context, search string) ([]domain.Client, error)
	GetByID(ctx context.Context, id string) (*domain.Client, error)
	Create(ctx context.Context, client *domain.Client) error
	Update(ctx context.Context, client *domain.Client) error
	Delete(ctx context.Context, id string) error
}

type PGClientRepository struct {
	db *pgxpool.Pool
}

func NewClientRepository(db *pgxpool.Pool) ClientRepository {
	return &PGClientRepository{db: db}
}

const clientColumns = `id, first_name, last_name, email, phone, address, license_number, created_at`

func scanClient(row pgx.Row) (*domain.Client, error) {
	var c domain.Client
	if err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.Address, &c.LicenseNumber, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns clients whose name, email or phone contains search, newest first.
func (r *PGClientRepository) List(ctx context.Context, search string) ([]domain.Client, error) {
	rows, err := r.db.Query(ctx, `SELECT `+clientColumns+` FROM clients
		WHERE $1 = '' OR (first_name || ' ' || last_name || ' ' || email || ' ' || phone) ILIKE '%' || $1 || '%'
		ORDER BY created_at DESC`, search)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clients := make([]domain.Client, 0)
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, *c)
	}
	return clients, rows.Err()
}

func (r *PGClientRepository) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	c, err := scanClient(r.db.QueryRow(ctx, `SELECT `+clientColumns+` FROM clients WHERE id=$1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return c, nil
}

func (r *PGClientRepository) Create(ctx context.Context, c *domain.Client) error {
	return r.db.QueryRow(ctx, `INSERT INTO clients (id, first_name, last_name, email, phone, address, license_number)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING created_at`,
		c.ID, c.FirstName, c.LastName, c.Email, c.Phone, c.Address, c.LicenseNumber).Scan(&c.CreatedAt)
}

func (r *PGClientRepository) Update(ctx context.Context, c *domain.Client) error {
	err := r.db.QueryRow(ctx, `UPDATE clients SET first_name=$2, last_name=$3, email=$4, phone=$5, address=$6, license_number=$7
		WHERE id=$1 RETURNING created_at`,
		c.ID, c.FirstName, c.LastName, c.Email, c.Phone, c.Address, c.LicenseNumber).Scan(&c.CreatedAt)
	return notFound(err)
}

func (r *PGClientRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM clients WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

var _ ClientRepository = (*PGClientRepository)(nil)
