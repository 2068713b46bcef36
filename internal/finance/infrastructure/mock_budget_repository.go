package infrastructure

import (
	"database/sql"

	"github.com/google/uuid"

	"github.com/pkoziol/ReceiptLedger/internal/finance/domain"
)

type MockBudgetRepository struct {
	Budgets []domain.MonthlyBudget
}

func (m *MockBudgetRepository) Save(budget domain.MonthlyBudget) error {
	for _, existing := range m.Budgets {
		if existing.UserID == budget.UserID && existing.Year == budget.Year && existing.Month == budget.Month {
			return domain.ErrDuplicate
		}
	}
	m.Budgets = append(m.Budgets, budget)
	return nil
}

func (m *MockBudgetRepository) FindByID(budgetID uuid.UUID) (*domain.MonthlyBudget, error) {
	for i := range m.Budgets {
		if m.Budgets[i].ID == budgetID {
			budget := m.Budgets[i]
			return &budget, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *MockBudgetRepository) FindByUserAndMonth(userID string, year, month int) (*domain.MonthlyBudget, error) {
	for i := range m.Budgets {
		if m.Budgets[i].UserID == userID && m.Budgets[i].Year == year && m.Budgets[i].Month == month {
			budget := m.Budgets[i]
			return &budget, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *MockBudgetRepository) Update(budget domain.MonthlyBudget) error {
	for i := range m.Budgets {
		if m.Budgets[i].ID == budget.ID {
			m.Budgets[i] = budget
			return nil
		}
	}
	return sql.ErrNoRows
}
