package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pkoziol/ReceiptLedger/internal/finance/errors"
)

type MonthlyBudget struct {
	ID              uuid.UUID
	UserID          string // user UUID
	Year            int
	Month           int
	Budget          decimal.Decimal
	CategoryBudgets []CategoryBudget
}

type CategoryBudget struct {
	ID           uuid.UUID
	CategoryID   uuid.UUID
	CategoryName string
	Budget       decimal.Decimal
}

func (b *MonthlyBudget) Validate() error {
	if b.Month < 1 || b.Month > 12 {
		return errors.NewValidationError("Month must be between 1 and 12")
	}
	if b.Budget.IsNegative() {
		return errors.NewValidationError("Budget must not be negative")
	}
	for _, cb := range b.CategoryBudgets {
		if cb.Budget.IsNegative() {
			return errors.NewValidationError("Category budget must not be negative")
		}
	}
	return nil
}

type BudgetRepository interface {
	Save(budget MonthlyBudget) error
	FindByID(budgetID uuid.UUID) (*MonthlyBudget, error)
	FindByUserAndMonth(userID string, year, month int) (*MonthlyBudget, error)
	Update(budget MonthlyBudget) error
}
