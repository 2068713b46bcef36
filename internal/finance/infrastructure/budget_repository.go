package infrastructure

import (
	"database/sql"

	"github.com/google/uuid"

	"github.com/pkoziol/ReceiptLedger/internal/finance/domain"
)

type BudgetRepository struct {
	db *sql.DB
}

func NewBudgetRepository(db *sql.DB) *BudgetRepository {
	return &BudgetRepository{db: db}
}

func (r *BudgetRepository) Save(budget domain.MonthlyBudget) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO monthly_budgets (id, user_id, year, month, budget)
		 VALUES ($1, $2, $3, $4, $5)`,
		budget.ID, budget.UserID, budget.Year, budget.Month, budget.Budget,
	)
	if err != nil {
		return translateError(err)
	}
	if err := insertCategoryBudgets(tx, budget.ID, budget.CategoryBudgets); err != nil {
		return translateError(err)
	}
	return tx.Commit()
}

// Update replaces the budget amount and the full category budget set.
// Year and month are deliberately not part of the UPDATE.
func (r *BudgetRepository) Update(budget domain.MonthlyBudget) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`UPDATE monthly_budgets SET budget = $1 WHERE id = $2`,
		budget.Budget, budget.ID,
	)
	if err != nil {
		return translateError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	if _, err := tx.Exec(`DELETE FROM category_budgets WHERE monthly_budget_id = $1`, budget.ID); err != nil {
		return err
	}
	if err := insertCategoryBudgets(tx, budget.ID, budget.CategoryBudgets); err != nil {
		return translateError(err)
	}
	return tx.Commit()
}

func insertCategoryBudgets(tx *sql.Tx, budgetID uuid.UUID, categoryBudgets []domain.CategoryBudget) error {
	for _, cb := range categoryBudgets {
		_, err := tx.Exec(
			`INSERT INTO category_budgets (id, monthly_budget_id, category_id, budget)
			 VALUES ($1, $2, $3, $4)`,
			cb.ID, budgetID, cb.CategoryID, cb.Budget,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *BudgetRepository) FindByID(budgetID uuid.UUID) (*domain.MonthlyBudget, error) {
	var budget domain.MonthlyBudget
	err := r.db.QueryRow(
		`SELECT id, user_id, year, month, budget FROM monthly_budgets WHERE id = $1`, budgetID,
	).Scan(&budget.ID, &budget.UserID, &budget.Year, &budget.Month, &budget.Budget)
	if err != nil {
		return nil, err
	}

	categoryBudgets, err := r.findCategoryBudgets(budget.ID)
	if err != nil {
		return nil, err
	}
	budget.CategoryBudgets = categoryBudgets
	return &budget, nil
}

func (r *BudgetRepository) FindByUserAndMonth(userID string, year, month int) (*domain.MonthlyBudget, error) {
	var budget domain.MonthlyBudget
	err := r.db.QueryRow(
		`SELECT id, user_id, year, month, budget
		 FROM monthly_budgets WHERE user_id = $1 AND year = $2 AND month = $3`,
		userID, year, month,
	).Scan(&budget.ID, &budget.UserID, &budget.Year, &budget.Month, &budget.Budget)
	if err != nil {
		return nil, err
	}

	categoryBudgets, err := r.findCategoryBudgets(budget.ID)
	if err != nil {
		return nil, err
	}
	budget.CategoryBudgets = categoryBudgets
	return &budget, nil
}

func (r *BudgetRepository) findCategoryBudgets(budgetID uuid.UUID) ([]domain.CategoryBudget, error) {
	rows, err := r.db.Query(
		`SELECT cb.id, cb.category_id, c.name, cb.budget
		 FROM category_budgets cb
		 JOIN categories c ON c.id = cb.category_id
		 WHERE cb.monthly_budget_id = $1
		 ORDER BY c.name`, budgetID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categoryBudgets []domain.CategoryBudget
	for rows.Next() {
		var cb domain.CategoryBudget
		if err := rows.Scan(&cb.ID, &cb.CategoryID, &cb.CategoryName, &cb.Budget); err != nil {
			return nil, err
		}
		categoryBudgets = append(categoryBudgets, cb)
	}
	return categoryBudgets, rows.Err()
}
