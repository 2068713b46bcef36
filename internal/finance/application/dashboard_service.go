package application

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pkoziol/ReceiptLedger/internal/finance/domain"
	financeErrors "github.com/pkoziol/ReceiptLedger/internal/finance/errors"
)

const trendLength = 6

type DashboardService struct {
	expenseRepo domain.ExpenseRepository
	budgetRepo  domain.BudgetRepository
	now         func() time.Time
}

func NewDashboardService(expenseRepo domain.ExpenseRepository, budgetRepo domain.BudgetRepository) *DashboardService {
	return &DashboardService{expenseRepo: expenseRepo, budgetRepo: budgetRepo, now: time.Now}
}

type KPI struct {
	Budget        decimal.Decimal
	TotalExpenses decimal.Decimal
}

type TrendEntry struct {
	Year        int
	Month       int
	TotalAmount decimal.Decimal
}

type CategorySummary struct {
	CategoryID   uuid.UUID
	CategoryName string
	TotalSpent   decimal.Decimal
	Budget       decimal.Decimal
}

type DashboardData struct {
	KPI               KPI
	Trend             []TrendEntry
	CategorySummaries []CategorySummary
}

type MonthlySpending struct {
	Month         int
	TotalSpending decimal.Decimal
	Budget        decimal.Decimal
}

// GetDashboardData aggregates the requested month: total spend against the
// monthly budget, a six-month spending trend (requested month first, then
// the five preceding months), and per-category spend paired with that
// category's planned budget. A missing budget reads as zero, never as an
// error, and future months are allowed since budgets can be planned ahead.
func (s *DashboardService) GetDashboardData(userID string, year, month int) (*DashboardData, error) {
	if month < 1 || month > 12 {
		return nil, financeErrors.NewValidationError("Month must be between 1 and 12")
	}

	start, end := monthRange(year, month)
	expenses, err := s.expenseRepo.FindForPeriod(userID, start, end)
	if err != nil {
		return nil, err
	}

	budget, err := s.findBudgetOrZero(userID, year, month)
	if err != nil {
		return nil, err
	}

	data := &DashboardData{
		KPI: KPI{
			Budget:        budget.Budget,
			TotalExpenses: sumExpenses(expenses),
		},
	}

	trend, err := s.buildTrend(userID, year, month, expenses)
	if err != nil {
		return nil, err
	}
	data.Trend = trend
	data.CategorySummaries = buildCategorySummaries(expenses, budget)

	return data, nil
}

// GetYearlySpendingSummary returns one entry per calendar month of the
// given year. Unlike the dashboard, future years are rejected.
func (s *DashboardService) GetYearlySpendingSummary(userID string, year int) ([]MonthlySpending, error) {
	if year > s.now().UTC().Year() {
		return nil, financeErrors.NewValidationError("Year cannot be in the future")
	}

	summary := make([]MonthlySpending, 0, 12)
	for month := 1; month <= 12; month++ {
		start, end := monthRange(year, month)
		expenses, err := s.expenseRepo.FindForPeriod(userID, start, end)
		if err != nil {
			return nil, err
		}
		budget, err := s.findBudgetOrZero(userID, year, month)
		if err != nil {
			return nil, err
		}
		summary = append(summary, MonthlySpending{
			Month:         month,
			TotalSpending: sumExpenses(expenses),
			Budget:        budget.Budget,
		})
	}
	return summary, nil
}

// buildTrend walks backwards from the target month. The target month reuses
// the already fetched expenses; each earlier point gets its own query.
func (s *DashboardService) buildTrend(userID string, year, month int, current []domain.Expense) ([]TrendEntry, error) {
	trend := make([]TrendEntry, 0, trendLength)
	trend = append(trend, TrendEntry{Year: year, Month: month, TotalAmount: sumExpenses(current)})

	cursor := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	for i := 1; i < trendLength; i++ {
		cursor = cursor.AddDate(0, -1, 0)
		start, end := monthRange(cursor.Year(), int(cursor.Month()))
		expenses, err := s.expenseRepo.FindForPeriod(userID, start, end)
		if err != nil {
			return nil, err
		}
		trend = append(trend, TrendEntry{
			Year:        cursor.Year(),
			Month:       int(cursor.Month()),
			TotalAmount: sumExpenses(expenses),
		})
	}
	return trend, nil
}

// buildCategorySummaries groups item spend by category. Categories with
// zero spend are omitted even when they carry a planned budget.
func buildCategorySummaries(expenses []domain.Expense, budget *domain.MonthlyBudget) []CategorySummary {
	budgets := make(map[uuid.UUID]decimal.Decimal)
	for _, cb := range budget.CategoryBudgets {
		budgets[cb.CategoryID] = cb.Budget
	}

	totals := make(map[uuid.UUID]*CategorySummary)
	var order []uuid.UUID
	for _, expense := range expenses {
		for _, item := range expense.Items {
			summary, ok := totals[item.CategoryID]
			if !ok {
				summary = &CategorySummary{
					CategoryID:   item.CategoryID,
					CategoryName: item.CategoryName,
					TotalSpent:   decimal.Zero,
					Budget:       decimal.Zero,
				}
				if b, ok := budgets[item.CategoryID]; ok {
					summary.Budget = b
				}
				totals[item.CategoryID] = summary
				order = append(order, item.CategoryID)
			}
			summary.TotalSpent = summary.TotalSpent.Add(item.Total())
		}
	}

	summaries := make([]CategorySummary, 0, len(order))
	for _, id := range order {
		summaries = append(summaries, *totals[id])
	}
	return summaries
}

func (s *DashboardService) findBudgetOrZero(userID string, year, month int) (*domain.MonthlyBudget, error) {
	budget, err := s.budgetRepo.FindByUserAndMonth(userID, year, month)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &domain.MonthlyBudget{Budget: decimal.Zero}, nil
		}
		return nil, err
	}
	return budget, nil
}

func sumExpenses(expenses []domain.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, expense := range expenses {
		total = total.Add(expense.TotalAmount)
	}
	return total
}
