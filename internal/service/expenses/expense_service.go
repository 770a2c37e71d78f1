package expenses

import (
	"context"
	"errors"
	"strings"

	"github.com/Domenick1991/carrental/internal/domain"
	"github.com/Domenick1991/carrental/internal/repository"
	"github.com/google/uuid"
)

var (
	ErrVehicleRequired = errors.New("vehicle is required")
	ErrInvalidCategory = errors.New("unknown expense category")
	ErrInvalidAmount   = errors.New("amount must be positive")
	ErrDateRequired    = errors.New("expense date is required")
)

type ExpenseUseCase interface {
	List(ctx context.Context, filter ExpenseFilter) ([]domain.Expense, error)
	GetByID(ctx context.Context, id string) (*domain.Expense, error)
	Create(ctx context.Context, input ExpenseInput) (*domain.Expense, error)
	Update(ctx context.Context, id string, input ExpenseInput) (*domain.Expense, error)
	Delete(ctx context.Context, id string) error
	Totals(ctx context.Context, filter ExpenseFilter) (*Totals, error)
}

type ExpenseService struct {
	repo repository.ExpenseRepository
}

type ExpenseInput struct {
	VehicleID   string                 `json:"vehicle_id"`
	Category    domain.ExpenseCategory `json:"category"`
	Amount      float64                `json:"amount"`
	Description string                 `json:"description"`
	Date        domain.Date            `json:"date"`
}

type ExpenseFilter struct {
	VehicleID string
	Category  domain.ExpenseCategory
}

type Totals struct {
	Total      float64                            `json:"total"`
	Count      int                                `json:"count"`
	ByCategory map[domain.ExpenseCategory]float64 `json:"by_category"`
	ByVehicle  map[string]float64                 `json:"by_vehicle"`
}

func NewExpenseService(repo repository.ExpenseRepository) *ExpenseService {
	return &ExpenseService{repo: repo}
}

func (s *ExpenseService) List(ctx context.Context, filter ExpenseFilter) ([]domain.Expense, error) {
	expenses, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]domain.Expense, 0, len(expenses))
	for _, e := range expenses {
		if filter.VehicleID != "" && e.VehicleID != filter.VehicleID {
			continue
		}
		if filter.Category != "" && e.Category != filter.Category {
			continue
		}
		result = append(result, e)
	}
	return result, nil
}

func (s *ExpenseService) GetByID(ctx context.Context, id string) (*domain.Expense, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ExpenseService) Create(ctx context.Context, input ExpenseInput) (*domain.Expense, error) {
	if err := checkInput(input); err != nil {
		return nil, err
	}
	expense := &domain.Expense{ID: uuid.NewString()}
	apply(expense, input)

	if err := s.repo.Create(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *ExpenseService) Update(ctx context.Context, id string, input ExpenseInput) (*domain.Expense, error) {
	if err := checkInput(input); err != nil {
		return nil, err
	}
	expense := &domain.Expense{ID: id}
	apply(expense, input)

	if err := s.repo.Update(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *ExpenseService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *ExpenseService) Totals(ctx context.Context, filter ExpenseFilter) (*Totals, error) {
	expenses, err := s.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return Summarize(expenses), nil
}

// Summarize adds up expenses overall, per category and per vehicle.
func Summarize(expenses []domain.Expense) *Totals {
	totals := &Totals{
		ByCategory: make(map[domain.ExpenseCategory]float64),
		ByVehicle:  make(map[string]float64),
	}
	for _, e := range expenses {
		totals.Total += e.Amount
		totals.Count++
		totals.ByCategory[e.Category] += e.Amount
		if e.VehicleID != "" {
			totals.ByVehicle[e.VehicleID] += e.Amount
		}
	}
	return totals
}

func checkInput(input ExpenseInput) error {
	switch {
	case strings.TrimSpace(input.VehicleID) == "":
		return ErrVehicleRequired
	case !input.Category.Valid():
		return ErrInvalidCategory
	case input.Amount <= 0:
		return ErrInvalidAmount
	case input.Date.IsZero():
		return ErrDateRequired
	}
	return nil
}

func apply(e *domain.Expense, input ExpenseInput) {
	e.VehicleID = strings.TrimSpace(input.VehicleID)
	e.Category = input.Category
	e.Amount = input.Amount
	e.Description = strings.TrimSpace(input.Description)
	e.Date = input.Date
}

var _ ExpenseUseCase = (*ExpenseService)(nil)
