package domain

import "time"

type ExpenseCategory string

const (
	ExpenseCategoryMaintenance ExpenseCategory = "Maintenance"
	ExpenseCategoryCarWash     ExpenseCategory = "Car Wash"
	ExpenseCategoryOther       ExpenseCategory = "Other"
)

func (c ExpenseCategory) Valid() bool {
	switch c {
	case ExpenseCategoryMaintenance, ExpenseCategoryCarWash, ExpenseCategoryOther:
		return true
	}
	return false
}

type Expense struct {
	ID          string          `json:"id"`
	VehicleID   string          `json:"vehicle_id"`
	Category    ExpenseCategory `json:"category"`
	Amount      float64         `json:"amount"`
	Description string          `json:"description"`
	Date        Date            `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
}
