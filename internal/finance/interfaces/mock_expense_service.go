package interfaces

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/pkoziol/ReceiptLedger/internal/finance/application"
	"github.com/pkoziol/ReceiptLedger/internal/finance/domain"
)

type MockExpenseService struct {
	page       *application.ExpensePage
	expense    *domain.Expense
	err        error
	shouldFail bool

	lastFilter application.SearchFilter
}

func (m *MockExpenseService) SearchExpenses(userID string, filter application.SearchFilter) (*application.ExpensePage, error) {
	m.lastFilter = filter
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	if m.shouldFail {
		return nil, errors.New("service error")
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.page, nil
}

func (m *MockExpenseService) SearchExpenseDetails(userID string, expenseID uuid.UUID, categoryID *uuid.UUID) (*domain.Expense, error) {
	if m.shouldFail {
		return nil, errors.New("service error")
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.expense, nil
}

func (m *MockExpenseService) CreateExpense(expense *domain.Expense) error {
	if m.shouldFail {
		return errors.New("service error")
	}
	if m.err != nil {
		return m.err
	}
	expense.ID = uuid.New()
	expense.RecalculateTotals()
	return nil
}

func (m *MockExpenseService) UpdateExpense(userID string, expenseID uuid.UUID, description string, transactionDate time.Time, items []domain.ExpenseItem) (*domain.Expense, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.expense, nil
}

func (m *MockExpenseService) DeleteExpense(userID string, expenseID uuid.UUID) error {
	return m.err
}

func (m *MockExpenseService) UpdateExpenseItem(userID string, expenseID uuid.UUID, item domain.ExpenseItem) (*domain.Expense, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.expense, nil
}

func (m *MockExpenseService) DeleteExpenseItem(userID string, expenseID, itemID uuid.UUID) (*domain.Expense, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.expense, nil
}
