package infrastructure

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pkoziol/ReceiptLedger/internal/finance/domain"
)

type ExpenseRepository struct {
	db *sql.DB
}

func NewExpenseRepository(db *sql.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

func (r *ExpenseRepository) Save(expense domain.Expense) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO expenses (id, user_id, description, transaction_date, total_amount, item_count)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		expense.ID, expense.UserID, expense.Description, expense.TransactionDate,
		expense.TotalAmount, expense.ItemCount,
	)
	if err != nil {
		return translateError(err)
	}
	if err := insertItems(tx, expense.ID, expense.Items); err != nil {
		return translateError(err)
	}
	return tx.Commit()
}

// Update replaces the expense row and its full item set atomically. Totals
// on the expense row are expected to already match the item set.
func (r *ExpenseRepository) Update(expense domain.Expense) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`UPDATE expenses SET description = $1, transaction_date = $2, total_amount = $3, item_count = $4
		 WHERE id = $5`,
		expense.Description, expense.TransactionDate, expense.TotalAmount, expense.ItemCount, expense.ID,
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

	if _, err := tx.Exec(`DELETE FROM expense_items WHERE expense_id = $1`, expense.ID); err != nil {
		return err
	}
	if err := insertItems(tx, expense.ID, expense.Items); err != nil {
		return translateError(err)
	}
	return tx.Commit()
}

func insertItems(tx *sql.Tx, expenseID uuid.UUID, items []domain.ExpenseItem) error {
	for _, item := range items {
		_, err := tx.Exec(
			`INSERT INTO expense_items (id, expense_id, category_id, product_name, quantity, price)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			item.ID, expenseID, item.CategoryID, item.ProductName, item.Quantity, item.Price,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *ExpenseRepository) FindByID(expenseID uuid.UUID) (*domain.Expense, error) {
	var expense domain.Expense
	err := r.db.QueryRow(
		`SELECT id, user_id, description, transaction_date, total_amount, item_count
		 FROM expenses WHERE id = $1`, expenseID,
	).Scan(&expense.ID, &expense.UserID, &expense.Description, &expense.TransactionDate,
		&expense.TotalAmount, &expense.ItemCount)
	if err != nil {
		return nil, err
	}

	items, err := r.findItems(expenseID)
	if err != nil {
		return nil, err
	}
	expense.Items = items
	return &expense, nil
}

func (r *ExpenseRepository) findItems(expenseID uuid.UUID) ([]domain.ExpenseItem, error) {
	rows, err := r.db.Query(
		`SELECT i.id, i.product_name, i.quantity, i.price, i.category_id, c.name
		 FROM expense_items i
		 JOIN categories c ON c.id = i.category_id
		 WHERE i.expense_id = $1
		 ORDER BY i.product_name`, expenseID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.ExpenseItem
	for rows.Next() {
		var item domain.ExpenseItem
		if err := rows.Scan(&item.ID, &item.ProductName, &item.Quantity, &item.Price,
			&item.CategoryID, &item.CategoryName); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// FindForPeriod returns the user's expenses with items for [start, end).
func (r *ExpenseRepository) FindForPeriod(userID string, start, end time.Time) ([]domain.Expense, error) {
	rows, err := r.db.Query(
		`SELECT id, user_id, description, transaction_date, total_amount, item_count
		 FROM expenses
		 WHERE user_id = $1 AND transaction_date >= $2 AND transaction_date < $3
		 ORDER BY transaction_date DESC`, userID, start, end,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []domain.Expense
	for rows.Next() {
		var expense domain.Expense
		if err := rows.Scan(&expense.ID, &expense.UserID, &expense.Description,
			&expense.TransactionDate, &expense.TotalAmount, &expense.ItemCount); err != nil {
			return nil, err
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range expenses {
		items, err := r.findItems(expenses[i].ID)
		if err != nil {
			return nil, err
		}
		expenses[i].Items = items
	}
	return expenses, nil
}

// Search returns one page of expense summaries (no items) plus the total
// number of matching expenses. A category matches when any item is in it.
func (r *ExpenseRepository) Search(userID string, start, end time.Time, categoryID *uuid.UUID, limit, offset int) ([]domain.Expense, int, error) {
	where := `user_id = $1 AND transaction_date >= $2 AND transaction_date < $3`
	args := []interface{}{userID, start, end}
	if categoryID != nil {
		args = append(args, *categoryID)
		where += fmt.Sprintf(
			` AND EXISTS (SELECT 1 FROM expense_items i WHERE i.expense_id = expenses.id AND i.category_id = $%d)`,
			len(args),
		)
	}

	var total int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM expenses WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	rows, err := r.db.Query(
		`SELECT id, user_id, description, transaction_date, total_amount, item_count
		 FROM expenses WHERE `+where+
			fmt.Sprintf(` ORDER BY transaction_date DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args)),
		args...,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var expenses []domain.Expense
	for rows.Next() {
		var expense domain.Expense
		if err := rows.Scan(&expense.ID, &expense.UserID, &expense.Description,
			&expense.TransactionDate, &expense.TotalAmount, &expense.ItemCount); err != nil {
			return nil, 0, err
		}
		expenses = append(expenses, expense)
	}
	return expenses, total, rows.Err()
}

func (r *ExpenseRepository) Delete(expenseID uuid.UUID) error {
	// expense_items rows go with the expense via ON DELETE CASCADE
	_, err := r.db.Exec(`DELETE FROM expenses WHERE id = $1`, expenseID)
	return err
}
