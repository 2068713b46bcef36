package application

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/pkoziol/ReceiptLedger/internal/finance/domain"
	financeErrors "github.com/pkoziol/ReceiptLedger/internal/finance/errors"
)

type BudgetService struct {
	repo            domain.BudgetRepository
	categoryService CategoryServiceInterface
}

func NewBudgetService(repo domain.BudgetRepository, categoryService CategoryServiceInterface) *BudgetService {
	return &BudgetService{repo: repo, categoryService: categoryService}
}

func (s *BudgetService) GetMonthlyBudget(userID string, year, month int) (*domain.MonthlyBudget, error) {
	if month < 1 || month > 12 {
		return nil, financeErrors.NewValidationError("Month must be between 1 and 12")
	}
	budget, err := s.repo.FindByUserAndMonth(userID, year, month)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, financeErrors.NewNotFoundError("budget", fmt.Sprintf("%d-%02d", year, month))
		}
		return nil, err
	}
	return budget, nil
}

func (s *BudgetService) CreateBudget(budget *domain.MonthlyBudget) error {
	budget.ID = uuid.New()
	for i := range budget.CategoryBudgets {
		budget.CategoryBudgets[i].ID = uuid.New()
	}
	if err := budget.Validate(); err != nil {
		return err
	}
	if err := s.checkBudgetCategories(budget.UserID, budget.CategoryBudgets); err != nil {
		return err
	}

	if err := s.repo.Save(*budget); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return financeErrors.NewAlreadyExistsError("budget", fmt.Sprintf("%d-%02d", budget.Year, budget.Month))
		}
		return err
	}
	log.Infof("created budget %s for user %s (%d-%02d)", budget.ID, budget.UserID, budget.Year, budget.Month)
	return nil
}

// UpdateBudget replaces the amount and the category budget set. The budget's
// year and month are immutable once created.
func (s *BudgetService) UpdateBudget(userID string, budgetID uuid.UUID, updated domain.MonthlyBudget) (*domain.MonthlyBudget, error) {
	budget, err := s.getOwned(userID, budgetID)
	if err != nil {
		return nil, err
	}
	if updated.Year != budget.Year || updated.Month != budget.Month {
		return nil, financeErrors.NewValidationError("Year and month of an existing budget cannot be changed")
	}

	for i := range updated.CategoryBudgets {
		updated.CategoryBudgets[i].ID = uuid.New()
	}
	budget.Budget = updated.Budget
	budget.CategoryBudgets = updated.CategoryBudgets
	if err := budget.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkBudgetCategories(userID, budget.CategoryBudgets); err != nil {
		return nil, err
	}

	if err := s.repo.Update(*budget); err != nil {
		return nil, err
	}
	return budget, nil
}

func (s *BudgetService) checkBudgetCategories(userID string, categoryBudgets []domain.CategoryBudget) error {
	for _, cb := range categoryBudgets {
		exists, err := s.categoryService.DoesCategoryExist(cb.CategoryID, userID)
		if err != nil {
			return err
		}
		if !exists {
			return financeErrors.NewNotFoundError("category", cb.CategoryID.String())
		}
	}
	return nil
}

func (s *BudgetService) getOwned(userID string, budgetID uuid.UUID) (*domain.MonthlyBudget, error) {
	budget, err := s.repo.FindByID(budgetID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, financeErrors.NewNotFoundError("budget", budgetID.String())
		}
		return nil, err
	}
	if budget.UserID != userID {
		return nil, financeErrors.NewAccessDeniedError("budget belongs to another user")
	}
	return budget, nil
}
