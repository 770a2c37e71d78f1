package repository

import (
	"context"

	"github.com/Domenick1991/carrental/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ExpenseRepository interface {
	List(ctx context.Context) ([]domain.Expense, error)
	GetByID(ctx context.Context, id string) (*domain.Expense, error)
	Create(ctx context.Context, expense *domain.Expense) error
	Update(ctx context.Context, expense *domain.Expense) error
	Delete(ctx context.Context, id string) error
}

type PGExpenseRepository struct {
	db *pgxpool.Pool
}

func NewExpenseRepository(db *pgxpool.Pool) ExpenseRepository {
	return &PGExpenseRepository{db: db}
}

const expenseColumns = `id, vehicle_id, category, amount, description, date, created_at`

func scanExpense(row pgx.Row) (*domain.Expense, error) {
	var (
		e         domain.Expense
		vehicleID *string
		date      pgtype.Date
	)
	if err := row.Scan(&e.ID, &vehicleID, &e.Category, &e.Amount, &e.Description, &date, &e.CreatedAt); err != nil {
		return nil, err
	}
	e.VehicleID = deref(vehicleID)
	e.Date = fromPGDate(date)
	return &e, nil
}

func (r *PGExpenseRepository) List(ctx context.Context) ([]domain.Expense, error) {
	rows, err := r.db.Query(ctx, `SELECT `+expenseColumns+` FROM expenses ORDER BY date DESC, created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses := make([]domain.Expense, 0)
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, *e)
	}
	return expenses, rows.Err()
}

func (r *PGExpenseRepository) GetByID(ctx context.Context, id string) (*domain.Expense, error) {
	e, err := scanExpense(r.db.QueryRow(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE id=$1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return e, nil
}

func (r *PGExpenseRepository) Create(ctx context.Context, e *domain.Expense) error {
	return r.db.QueryRow(ctx, `INSERT INTO expenses (id, vehicle_id, category, amount, description, date)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING created_at`,
		e.ID, nullable(e.VehicleID), e.Category, e.Amount, e.Description, toPGDate(e.Date)).Scan(&e.CreatedAt)
}

func (r *PGExpenseRepository) Update(ctx context.Context, e *domain.Expense) error {
	err := r.db.QueryRow(ctx, `UPDATE expenses SET vehicle_id=$2, category=$3, amount=$4, description=$5, date=$6
		WHERE id=$1 RETURNING created_at`,
		e.ID, nullable(e.VehicleID), e.Category, e.Amount, e.Description, toPGDate(e.Date)).Scan(&e.CreatedAt)
	return notFound(err)
}

func (r *PGExpenseRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM expenses WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

var _ ExpenseRepository = (*PGExpenseRepository)(nil)
