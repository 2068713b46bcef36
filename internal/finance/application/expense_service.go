package application

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/pkoziol/ReceiptLedger/internal/finance/domain"
	financeErrors "github.com/pkoziol/ReceiptLedger/internal/finance/errors"
)

type CategoryServiceInterface interface {
	DoesCategoryExist(categoryID uuid.UUID, userID string) (bool, error)
	GetUserCategories(userID string) ([]domain.Category, error)
}

type ExpenseService struct {
	repo            domain.ExpenseRepository
	categoryService CategoryServiceInterface
}

func NewExpenseService(repo domain.ExpenseRepository, categoryService CategoryServiceInterface) *ExpenseService {
	return &ExpenseService{repo: repo, categoryService: categoryService}
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type SearchFilter struct {
	Year       int
	Month      int
	CategoryID *uuid.UUID
	Page       int
	Size       int
}

func (f *SearchFilter) Validate() error {
	if f.Month < 1 || f.Month > 12 {
		return financeErrors.NewValidationError("Month must be between 1 and 12")
	}
	if f.Page < 0 {
		return financeErrors.NewValidationError("Page must not be negative")
	}
	if f.Size < 0 || f.Size > maxPageSize {
		return financeErrors.NewValidationError("Size must be between 1 and 100")
	}
	if f.Size == 0 {
		f.Size = defaultPageSize
	}
	return nil
}

type ExpensePage struct {
	Expenses      []domain.Expense
	Page          int
	Size          int
	TotalElements int
	TotalPages    int
}

// monthRange returns the UTC half-open interval [start of month, start of
// the next month).
func monthRange(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

func (s *ExpenseService) SearchExpenses(userID string, filter SearchFilter) (*ExpensePage, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	start, end := monthRange(filter.Year, filter.Month)
	expenses, total, err := s.repo.Search(userID, start, end, filter.CategoryID, filter.Size, filter.Page*filter.Size)
	if err != nil {
		return nil, err
	}
	if expenses == nil {
		expenses = []domain.Expense{}
	}

	totalPages := total / filter.Size
	if total%filter.Size != 0 {
		totalPages++
	}
	return &ExpensePage{
		Expenses:      expenses,
		Page:          filter.Page,
		Size:          filter.Size,
		TotalElements: total,
		TotalPages:    totalPages,
	}, nil
}

// SearchExpenseDetails returns a single expense with its items. The optional
// category filter narrows the returned item list only; the stored totals and
// item count are reported unchanged.
func (s *ExpenseService) SearchExpenseDetails(userID string, expenseID uuid.UUID, categoryID *uuid.UUID) (*domain.Expense, error) {
	expense, err := s.getOwned(userID, expenseID)
	if err != nil {
		return nil, err
	}

	if categoryID != nil {
		var filtered []domain.ExpenseItem
		for _, item := range expense.Items {
			if item.CategoryID == *categoryID {
				filtered = append(filtered, item)
			}
		}
		expense.Items = filtered
	}
	return expense, nil
}

func (s *ExpenseService) CreateExpense(expense *domain.Expense) error {
	expense.ID = uuid.New()
	for i := range expense.Items {
		expense.Items[i].ID = uuid.New()
	}
	expense.RecalculateTotals()
	if err := expense.Validate(); err != nil {
		return err
	}
	if err := s.checkItemCategories(expense.UserID, expense.Items); err != nil {
		return err
	}

	if err := s.repo.Save(*expense); err != nil {
		return err
	}
	log.Infof("created expense %s for user %s (%d items)", expense.ID, expense.UserID, expense.ItemCount)
	return nil
}

// UpdateExpense replaces the description, date and the whole item set.
func (s *ExpenseService) UpdateExpense(userID string, expenseID uuid.UUID, description string, transactionDate time.Time, items []domain.ExpenseItem) (*domain.Expense, error) {
	expense, err := s.getOwned(userID, expenseID)
	if err != nil {
		return nil, err
	}

	for i := range items {
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
	}
	expense.Description = description
	expense.TransactionDate = transactionDate
	expense.Items = items
	expense.RecalculateTotals()
	if err := expense.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkItemCategories(userID, items); err != nil {
		return nil, err
	}

	if err := s.repo.Update(*expense); err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *ExpenseService) DeleteExpense(userID string, expenseID uuid.UUID) error {
	if _, err := s.getOwned(userID, expenseID); err != nil {
		return err
	}
	if err := s.repo.Delete(expenseID); err != nil {
		return err
	}
	log.Infof("deleted expense %s for user %s", expenseID, userID)
	return nil
}

func (s *ExpenseService) UpdateExpenseItem(userID string, expenseID uuid.UUID, item domain.ExpenseItem) (*domain.Expense, error) {
	expense, err := s.getOwned(userID, expenseID)
	if err != nil {
		return nil, err
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkItemCategories(userID, []domain.ExpenseItem{item}); err != nil {
		return nil, err
	}

	found := false
	for i := range expense.Items {
		if expense.Items[i].ID == item.ID {
			expense.Items[i] = item
			found = true
			break
		}
	}
	if !found {
		return nil, financeErrors.NewNotFoundError("expense item", item.ID.String())
	}

	expense.RecalculateTotals()
	if err := s.repo.Update(*expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// DeleteExpenseItem removes one item and re-derives the stored totals.
// Deleting the last item leaves an empty expense with zero totals.
func (s *ExpenseService) DeleteExpenseItem(userID string, expenseID, itemID uuid.UUID) (*domain.Expense, error) {
	expense, err := s.getOwned(userID, expenseID)
	if err != nil {
		return nil, err
	}

	found := false
	remaining := expense.Items[:0]
	for _, item := range expense.Items {
		if item.ID == itemID {
			found = true
			continue
		}
		remaining = append(remaining, item)
	}
	if !found {
		return nil, financeErrors.NewNotFoundError("expense item", itemID.String())
	}
	expense.Items = remaining

	expense.RecalculateTotals()
	if err := s.repo.Update(*expense); err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *ExpenseService) checkItemCategories(userID string, items []domain.ExpenseItem) error {
	checked := make(map[uuid.UUID]bool)
	for _, item := range items {
		if checked[item.CategoryID] {
			continue
		}
		exists, err := s.categoryService.DoesCategoryExist(item.CategoryID, userID)
		if err != nil {
			return err
		}
		if !exists {
			return financeErrors.NewNotFoundError("category", item.CategoryID.String())
		}
		checked[item.CategoryID] = true
	}
	return nil
}

func (s *ExpenseService) getOwned(userID string, expenseID uuid.UUID) (*domain.Expense, error) {
	expense, err := s.repo.FindByID(expenseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, financeErrors.NewNotFoundError("expense", expenseID.String())
		}
		return nil, err
	}
	if expense.UserID != userID {
		return nil, financeErrors.NewAccessDeniedError("expense belongs to another user")
	}
	return expense, nil
}
