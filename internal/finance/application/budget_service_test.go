package application

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/pkoziol/ReceiptLedger/internal/finance/domain"
	financeErrors "github.com/pkoziol/ReceiptLedger/internal/finance/errors"
	"github.com/pkoziol/ReceiptLedger/internal/finance/infrastructure"
)

func TestCreateBudget_DuplicateMonth(t *testing.T) {
	repo := &infrastructure.MockBudgetRepository{}
	service := NewBudgetService(repo, &MockCategoryService{AllExist: true})

	first := domain.MonthlyBudget{UserID: testUserID, Year: 2025, Month: 3, Budget: dec("1500")}
	assert.NoError(t, service.CreateBudget(&first))

	second := domain.MonthlyBudget{UserID: testUserID, Year: 2025, Month: 3, Budget: dec("2000")}
	err := service.CreateBudget(&second)
	assert.True(t, financeErrors.IsAlreadyExistsError(err))
	assert.Len(t, repo.Budgets, 1)
}

func TestCreateBudget_UnknownCategory(t *testing.T) {
	service := NewBudgetService(&infrastructure.MockBudgetRepository{}, &MockCategoryService{})

	budget := domain.MonthlyBudget{
		UserID: testUserID, Year: 2025, Month: 3, Budget: dec("1500"),
		CategoryBudgets: []domain.CategoryBudget{
			{CategoryID: uuid.New(), Budget: dec("500")},
		},
	}
	err := service.CreateBudget(&budget)
	assert.True(t, financeErrors.IsNotFoundError(err))
}

func TestCreateBudget_HistoricalMonth(t *testing.T) {
	repo := &infrastructure.MockBudgetRepository{}
	service := NewBudgetService(repo, &MockCategoryService{AllExist: true})

	budget := domain.MonthlyBudget{UserID: testUserID, Year: 1999, Month: 12, Budget: dec("800")}
	assert.NoError(t, service.CreateBudget(&budget))
	assert.Len(t, repo.Budgets, 1)
}

func TestGetMonthlyBudget_NotFound(t *testing.T) {
	service := NewBudgetService(&infrastructure.MockBudgetRepository{}, &MockCategoryService{AllExist: true})

	_, err := service.GetMonthlyBudget(testUserID, 2025, 3)
	assert.True(t, financeErrors.IsNotFoundError(err))
}

func TestUpdateBudget_MonthImmutable(t *testing.T) {
	repo := &infrastructure.MockBudgetRepository{}
	service := NewBudgetService(repo, &MockCategoryService{AllExist: true})

	budget := domain.MonthlyBudget{UserID: testUserID, Year: 2025, Month: 3, Budget: dec("1500")}
	assert.NoError(t, service.CreateBudget(&budget))

	_, err := service.UpdateBudget(testUserID, budget.ID, domain.MonthlyBudget{Year: 2025, Month: 4, Budget: dec("1600")})
	assert.True(t, financeErrors.IsValidationError(err))
}

func TestUpdateBudget_ReplacesCategoryBudgets(t *testing.T) {
	repo := &infrastructure.MockBudgetRepository{}
	service := NewBudgetService(repo, &MockCategoryService{AllExist: true})

	budget := domain.MonthlyBudget{
		UserID: testUserID, Year: 2025, Month: 3, Budget: dec("1500"),
		CategoryBudgets: []domain.CategoryBudget{
			{CategoryID: uuid.New(), Budget: dec("500")},
		},
	}
	assert.NoError(t, service.CreateBudget(&budget))

	newCategory := uuid.New()
	updated, err := service.UpdateBudget(testUserID, budget.ID, domain.MonthlyBudget{
		Year: 2025, Month: 3, Budget: dec("1800"),
		CategoryBudgets: []domain.CategoryBudget{
			{CategoryID: newCategory, Budget: dec("300")},
			{CategoryID: uuid.New(), Budget: dec("200")},
		},
	})
	assert.NoError(t, err)
	assert.True(t, updated.Budget.Equal(dec("1800")))
	assert.Len(t, updated.CategoryBudgets, 2)
	assert.Equal(t, 2025, updated.Year)
	assert.Equal(t, 3, updated.Month)
}

func TestUpdateBudget_AccessDenied(t *testing.T) {
	repo := &infrastructure.MockBudgetRepository{
		Budgets: []domain.MonthlyBudget{
			{ID: uuid.New(), UserID: "someone-else", Year: 2025, Month: 3, Budget: dec("1000")},
		},
	}
	service := NewBudgetService(repo, &MockCategoryService{AllExist: true})

	_, err := service.UpdateBudget(testUserID, repo.Budgets[0].ID, domain.MonthlyBudget{Year: 2025, Month: 3, Budget: dec("1")})
	assert.True(t, financeErrors.IsAccessDeniedError(err))
}
