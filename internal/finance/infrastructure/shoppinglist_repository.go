package infrastructure

import (
	"database/sql"

	"github.com/google/uuid"

	"github.com/pkoziol/ReceiptLedger/internal/finance/domain"
)

type ShoppingListRepository struct {
	db *sql.DB
}

func NewShoppingListRepository(db *sql.DB) *ShoppingListRepository {
	return &ShoppingListRepository{db: db}
}

func (r *ShoppingListRepository) Save(list domain.ShoppingList) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO shopping_lists (id, user_id, name, item_count, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		list.ID, list.UserID, list.Name, list.ItemCount, list.CreatedAt,
	)
	if err != nil {
		return translateError(err)
	}
	if err := insertListItems(tx, list.ID, list.Items); err != nil {
		return translateError(err)
	}
	return tx.Commit()
}

func (r *ShoppingListRepository) Update(list domain.ShoppingList) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`UPDATE shopping_lists SET name = $1, item_count = $2 WHERE id = $3`,
		list.Name, list.ItemCount, list.ID,
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

	if _, err := tx.Exec(`DELETE FROM shopping_list_items WHERE shopping_list_id = $1`, list.ID); err != nil {
		return err
	}
	if err := insertListItems(tx, list.ID, list.Items); err != nil {
		return translateError(err)
	}
	return tx.Commit()
}

func insertListItems(tx *sql.Tx, listID uuid.UUID, items []domain.ShoppingListItem) error {
	for _, item := range items {
		_, err := tx.Exec(
			`INSERT INTO shopping_list_items (id, shopping_list_id, product_name, quantity, unit, is_purchased)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			item.ID, listID, item.ProductName, item.Quantity, item.Unit, item.IsPurchased,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *ShoppingListRepository) FindByID(listID uuid.UUID) (*domain.ShoppingList, error) {
	var list domain.ShoppingList
	err := r.db.QueryRow(
		`SELECT id, user_id, name, item_count, created_at FROM shopping_lists WHERE id = $1`, listID,
	).Scan(&list.ID, &list.UserID, &list.Name, &list.ItemCount, &list.CreatedAt)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(
		`SELECT id, product_name, quantity, unit, is_purchased
		 FROM shopping_list_items WHERE shopping_list_id = $1
		 ORDER BY product_name`, listID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.ShoppingListItem
		if err := rows.Scan(&item.ID, &item.ProductName, &item.Quantity, &item.Unit, &item.IsPurchased); err != nil {
			return nil, err
		}
		list.Items = append(list.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &list, nil
}

func (r *ShoppingListRepository) FindByUser(userID string) ([]domain.ShoppingList, error) {
	rows, err := r.db.Query(
		`SELECT id, user_id, name, item_count, created_at
		 FROM shopping_lists WHERE user_id = $1
		 ORDER BY created_at DESC`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lists []domain.ShoppingList
	for rows.Next() {
		var list domain.ShoppingList
		if err := rows.Scan(&list.ID, &list.UserID, &list.Name, &list.ItemCount, &list.CreatedAt); err != nil {
			return nil, err
		}
		lists = append(lists, list)
	}
	return lists, rows.Err()
}

func (r *ShoppingListRepository) Delete(listID uuid.UUID) error {
	// shopping_list_items rows go with the list via ON DELETE CASCADE
	_, err := r.db.Exec(`DELETE FROM shopping_lists WHERE id = $1`, listID)
	return err
}
