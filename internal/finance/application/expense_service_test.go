package application

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/pkoziol/ReceiptLedger/internal/finance/domain"
	financeErrors "github.com/pkoziol/ReceiptLedger/internal/finance/errors"
	"github.com/pkoziol/ReceiptLedger/internal/finance/infrastructure"
)

func newExpenseService(repo *infrastructure.MockExpenseRepository) *ExpenseService {
	return NewExpenseService(repo, &MockCategoryService{AllExist: true})
}

func TestCreateExpense_RecalculatesTotals(t *testing.T) {
	repo := &infrastructure.MockExpenseRepository{}
	service := newExpenseService(repo)

	expense := domain.Expense{
		UserID:          testUserID,
		Description:     "Weekly shopping",
		TransactionDate: time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
		Items: []domain.ExpenseItem{
			{ProductName: "Milk", Quantity: 2, Price: dec("3.50"), CategoryID: uuid.New()},
			{ProductName: "Bread", Quantity: 1, Price: dec("5.40"), CategoryID: uuid.New()},
		},
	}
	err := service.CreateExpense(&expense)
	assert.NoError(t, err)

	assert.True(t, expense.TotalAmount.Equal(dec("12.40")))
	assert.Equal(t, 2, expense.ItemCount)
	assert.NotEqual(t, uuid.Nil, expense.ID)
	assert.Len(t, repo.Expenses, 1)
}

func TestCreateExpense_UnknownCategory(t *testing.T) {
	repo := &infrastructure.MockExpenseRepository{}
	service := NewExpenseService(repo, &MockCategoryService{})

	expense := domain.Expense{
		UserID:          testUserID,
		TransactionDate: time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
		Items: []domain.ExpenseItem{
			{ProductName: "Milk", Quantity: 1, Price: dec("3.50"), CategoryID: uuid.New()},
		},
	}
	err := service.CreateExpense(&expense)
	assert.True(t, financeErrors.IsNotFoundError(err))
	assert.Empty(t, repo.Expenses)
}

func TestCreateExpense_InvalidQuantity(t *testing.T) {
	service := newExpenseService(&infrastructure.MockExpenseRepository{})

	expense := domain.Expense{
		UserID:          testUserID,
		TransactionDate: time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
		Items: []domain.ExpenseItem{
			{ProductName: "Milk", Quantity: 0, Price: dec("3.50"), CategoryID: uuid.New()},
		},
	}
	err := service.CreateExpense(&expense)
	assert.True(t, financeErrors.IsValidationError(err))
}

func TestDeleteExpenseItem_RecalculatesTotals(t *testing.T) {
	itemToDelete := uuid.New()
	expense := domain.Expense{
		ID:              uuid.New(),
		UserID:          testUserID,
		TransactionDate: time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
		Items: []domain.ExpenseItem{
			{ID: itemToDelete, ProductName: "Milk", Quantity: 2, Price: dec("3.50"), CategoryID: uuid.New()},
			{ID: uuid.New(), ProductName: "Bread", Quantity: 1, Price: dec("5.40"), CategoryID: uuid.New()},
		},
	}
	expense.RecalculateTotals()
	repo := &infrastructure.MockExpenseRepository{Expenses: []domain.Expense{expense}}
	service := newExpenseService(repo)

	updated, err := service.DeleteExpenseItem(testUserID, expense.ID, itemToDelete)
	assert.NoError(t, err)
	assert.True(t, updated.TotalAmount.Equal(dec("5.40")))
	assert.Equal(t, 1, updated.ItemCount)
}

func TestDeleteExpenseItem_LastItemLeavesZeroTotals(t *testing.T) {
	itemID := uuid.New()
	expense := domain.Expense{
		ID:              uuid.New(),
		UserID:          testUserID,
		TransactionDate: time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
		Items: []domain.ExpenseItem{
			{ID: itemID, ProductName: "Milk", Quantity: 2, Price: dec("3.50"), CategoryID: uuid.New()},
		},
	}
	expense.RecalculateTotals()
	repo := &infrastructure.MockExpenseRepository{Expenses: []domain.Expense{expense}}
	service := newExpenseService(repo)

	updated, err := service.DeleteExpenseItem(testUserID, expense.ID, itemID)
	assert.NoError(t, err)
	assert.True(t, updated.TotalAmount.IsZero())
	assert.Equal(t, 0, updated.ItemCount)
	assert.Empty(t, updated.Items)
}

func TestUpdateExpenseItem_RecalculatesTotals(t *testing.T) {
	itemID := uuid.New()
	categoryID := uuid.New()
	expense := domain.Expense{
		ID:              uuid.New(),
		UserID:          testUserID,
		TransactionDate: time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
		Items: []domain.ExpenseItem{
			{ID: itemID, ProductName: "Milk", Quantity: 2, Price: dec("3.50"), CategoryID: categoryID},
		},
	}
	expense.RecalculateTotals()
	repo := &infrastructure.MockExpenseRepository{Expenses: []domain.Expense{expense}}
	service := newExpenseService(repo)

	updated, err := service.UpdateExpenseItem(testUserID, expense.ID, domain.ExpenseItem{
		ID: itemID, ProductName: "Milk", Quantity: 5, Price: dec("3.00"), CategoryID: categoryID,
	})
	assert.NoError(t, err)
	assert.True(t, updated.TotalAmount.Equal(dec("15.00")))
	assert.Equal(t, 1, updated.ItemCount)
}

func TestExpenseOwnership_DistinguishesNotFoundAndAccessDenied(t *testing.T) {
	foreign := domain.Expense{
		ID:              uuid.New(),
		UserID:          "someone-else",
		TransactionDate: time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
	}
	repo := &infrastructure.MockExpenseRepository{Expenses: []domain.Expense{foreign}}
	service := newExpenseService(repo)

	_, err := service.SearchExpenseDetails(testUserID, uuid.New(), nil)
	assert.True(t, financeErrors.IsNotFoundError(err))

	_, err = service.SearchExpenseDetails(testUserID, foreign.ID, nil)
	assert.True(t, financeErrors.IsAccessDeniedError(err))

	err = service.DeleteExpense(testUserID, foreign.ID)
	assert.True(t, financeErrors.IsAccessDeniedError(err))
}

func TestSearchExpenseDetails_CategoryFilterKeepsTotals(t *testing.T) {
	groceries := uuid.New()
	transport := uuid.New()
	expense := domain.Expense{
		ID:              uuid.New(),
		UserID:          testUserID,
		TransactionDate: time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
		Items: []domain.ExpenseItem{
			{ID: uuid.New(), ProductName: "Milk", Quantity: 2, Price: dec("3.50"), CategoryID: groceries},
			{ID: uuid.New(), ProductName: "Bus ticket", Quantity: 1, Price: dec("4.40"), CategoryID: transport},
		},
	}
	expense.RecalculateTotals()
	repo := &infrastructure.MockExpenseRepository{Expenses: []domain.Expense{expense}}
	service := newExpenseService(repo)

	details, err := service.SearchExpenseDetails(testUserID, expense.ID, &groceries)
	assert.NoError(t, err)
	assert.Len(t, details.Items, 1)
	assert.Equal(t, "Milk", details.Items[0].ProductName)
	// the filter is display-only: stored totals stay untouched
	assert.True(t, details.TotalAmount.Equal(dec("11.40")))
	assert.Equal(t, 2, details.ItemCount)
}

func TestSearchExpenses_Pagination(t *testing.T) {
	repo := &infrastructure.MockExpenseRepository{}
	for day := 1; day <= 25; day++ {
		repo.Expenses = append(repo.Expenses, expenseOn(
			time.Date(2025, 3, day, 12, 0, 0, 0, time.UTC),
			domain.ExpenseItem{ID: uuid.New(), ProductName: "Item", Quantity: 1, Price: dec("1.00"), CategoryID: uuid.New()},
		))
	}
	service := newExpenseService(repo)

	page, err := service.SearchExpenses(testUserID, SearchFilter{Year: 2025, Month: 3})
	assert.NoError(t, err)
	assert.Equal(t, 20, page.Size, "size defaults to 20")
	assert.Equal(t, 25, page.TotalElements)
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Expenses, 20)
	// newest first
	assert.Equal(t, 25, page.Expenses[0].TransactionDate.Day())

	second, err := service.SearchExpenses(testUserID, SearchFilter{Year: 2025, Month: 3, Page: 1})
	assert.NoError(t, err)
	assert.Len(t, second.Expenses, 5)
}

func TestSearchExpenses_FilterValidation(t *testing.T) {
	service := newExpenseService(&infrastructure.MockExpenseRepository{})

	_, err := service.SearchExpenses(testUserID, SearchFilter{Year: 2025, Month: 13})
	assert.True(t, financeErrors.IsValidationError(err))

	_, err = service.SearchExpenses(testUserID, SearchFilter{Year: 2025, Month: 3, Size: 101})
	assert.True(t, financeErrors.IsValidationError(err))

	_, err = service.SearchExpenses(testUserID, SearchFilter{Year: 2025, Month: 3, Page: -1})
	assert.True(t, financeErrors.IsValidationError(err))
}

func TestSearchExpenses_HistoricalYear(t *testing.T) {
	old := expenseOn(time.Date(1995, 6, 15, 0, 0, 0, 0, time.UTC),
		domain.ExpenseItem{ID: uuid.New(), ProductName: "Newspaper", Quantity: 1, Price: dec("1.20"), CategoryID: uuid.New()},
	)
	repo := &infrastructure.MockExpenseRepository{Expenses: []domain.Expense{old}}
	service := newExpenseService(repo)

	page, err := service.SearchExpenses(testUserID, SearchFilter{Year: 1995, Month: 6})
	assert.NoError(t, err)
	assert.Equal(t, 1, page.TotalElements)
}

func TestSearchExpenses_CategoryMatchesAnyItem(t *testing.T) {
	groceries := uuid.New()
	transport := uuid.New()
	mixed := expenseOn(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		domain.ExpenseItem{ID: uuid.New(), ProductName: "Milk", Quantity: 1, Price: dec("3.50"), CategoryID: groceries},
		domain.ExpenseItem{ID: uuid.New(), ProductName: "Ticket", Quantity: 1, Price: dec("4.40"), CategoryID: transport},
	)
	transportOnly := expenseOn(time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC),
		domain.ExpenseItem{ID: uuid.New(), ProductName: "Fuel", Quantity: 1, Price: dec("200.00"), CategoryID: transport},
	)
	repo := &infrastructure.MockExpenseRepository{Expenses: []domain.Expense{mixed, transportOnly}}
	service := newExpenseService(repo)

	page, err := service.SearchExpenses(testUserID, SearchFilter{Year: 2025, Month: 3, CategoryID: &groceries})
	assert.NoError(t, err)
	assert.Equal(t, 1, page.TotalElements)
	assert.Equal(t, mixed.ID, page.Expenses[0].ID)
}
