package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pkoziol/ReceiptLedger/internal/finance/errors"
)

type ExpenseRepository interface {
	Save(expense Expense) error
	FindByID(expenseID uuid.UUID) (*Expense, error)
	FindForPeriod(userID string, start, end time.Time) ([]Expense, error)
	Search(userID string, start, end time.Time, categoryID *uuid.UUID, limit, offset int) ([]Expense, int, error)
	Update(expense Expense) error
	Delete(expenseID uuid.UUID) error
}

type Expense struct {
	ID              uuid.UUID
	UserID          string // user UUID
	Description     string
	TransactionDate time.Time
	TotalAmount     decimal.Decimal
	ItemCount       int
	Items           []ExpenseItem
}

type ExpenseItem struct {
	ID           uuid.UUID
	ProductName  string
	Quantity     int
	Price        decimal.Decimal
	CategoryID   uuid.UUID
	CategoryName string
}

func (i *ExpenseItem) Validate() error {
	if i.ProductName == "" {
		return errors.NewValidationError("Product name is required")
	}
	if i.Quantity <= 0 {
		return errors.NewValidationError("Quantity must be greater than zero")
	}
	if i.Price.IsNegative() {
		return errors.NewValidationError("Price must not be negative")
	}
	return nil
}

// Total is the item's contribution to the expense total.
func (i *ExpenseItem) Total() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

func (e *Expense) Validate() error {
	if len(e.Description) > 200 {
		return errors.NewValidationError("Description must be of length less than 200")
	}
	if e.TransactionDate.IsZero() {
		return errors.NewValidationError("Transaction date is required")
	}
	for _, item := range e.Items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// RecalculateTotals re-derives TotalAmount and ItemCount from the current
// item set. Callers must persist both together with any item change.
func (e *Expense) RecalculateTotals() {
	total := decimal.Zero
	for _, item := range e.Items {
		total = total.Add(item.Total())
	}
	e.TotalAmount = total
	e.ItemCount = len(e.Items)
}
