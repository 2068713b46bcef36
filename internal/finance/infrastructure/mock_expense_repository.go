package infrastructure

import (
	"database/sql"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/pkoziol/ReceiptLedger/internal/finance/domain"
)

type MockExpenseRepository struct {
	Expenses []domain.Expense
}

func (m *MockExpenseRepository) Save(expense domain.Expense) error {
	m.Expenses = append(m.Expenses, expense)
	return nil
}

func (m *MockExpenseRepository) FindByID(expenseID uuid.UUID) (*domain.Expense, error) {
	for i := range m.Expenses {
		if m.Expenses[i].ID == expenseID {
			expense := m.Expenses[i]
			return &expense, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *MockExpenseRepository) FindForPeriod(userID string, start, end time.Time) ([]domain.Expense, error) {
	var filtered []domain.Expense
	for _, expense := range m.Expenses {
		if expense.UserID != userID {
			continue
		}
		if !expense.TransactionDate.Before(start) && expense.TransactionDate.Before(end) {
			filtered = append(filtered, expense)
		}
	}
	return filtered, nil
}

func (m *MockExpenseRepository) Search(userID string, start, end time.Time, categoryID *uuid.UUID, limit, offset int) ([]domain.Expense, int, error) {
	matching, err := m.FindForPeriod(userID, start, end)
	if err != nil {
		return nil, 0, err
	}
	if categoryID != nil {
		var filtered []domain.Expense
		for _, expense := range matching {
			for _, item := range expense.Items {
				if item.CategoryID == *categoryID {
					filtered = append(filtered, expense)
					break
				}
			}
		}
		matching = filtered
	}
	sort.Slice(matching, func(i, j int) bool {
		return matching[i].TransactionDate.After(matching[j].TransactionDate)
	})

	total := len(matching)
	if offset >= total {
		return nil, total, nil
	}
	endIdx := offset + limit
	if endIdx > total {
		endIdx = total
	}
	return matching[offset:endIdx], total, nil
}

func (m *MockExpenseRepository) Update(expense domain.Expense) error {
	for i := range m.Expenses {
		if m.Expenses[i].ID == expense.ID {
			m.Expenses[i] = expense
			return nil
		}
	}
	return sql.ErrNoRows
}

func (m *MockExpenseRepository) Delete(expenseID uuid.UUID) error {
	for i := range m.Expenses {
		if m.Expenses[i].ID == expenseID {
			m.Expenses = append(m.Expenses[:i], m.Expenses[i+1:]...)
			return nil
		}
	}
	return nil
}
