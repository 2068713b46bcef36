package infrastructure

import (
	"database/sql"

	"github.com/google/uuid"

	"github.com/pkoziol/ReceiptLedger/internal/finance/domain"
)

type CategoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Save(category domain.Category) error {
	_, err := r.db.Exec(
		`INSERT INTO categories (id, user_id, name, description, deleted)
		 VALUES ($1, $2, $3, $4, $5)`,
		category.ID, category.UserID, category.Name, category.Description, category.Deleted,
	)
	return translateError(err)
}

// SaveAll inserts the given categories in one transaction. Used to seed the
// predefined set for a new user.
func (r *CategoryRepository) SaveAll(categories []domain.Category) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, category := range categories {
		_, err := tx.Exec(
			`INSERT INTO categories (id, user_id, name, description, deleted)
			 VALUES ($1, $2, $3, $4, $5)`,
			category.ID, category.UserID, category.Name, category.Description, category.Deleted,
		)
		if err != nil {
			return translateError(err)
		}
	}
	return tx.Commit()
}

func (r *CategoryRepository) FindByID(categoryID uuid.UUID) (*domain.Category, error) {
	var category domain.Category
	err := r.db.QueryRow(
		`SELECT id, user_id, name, description, deleted FROM categories WHERE id = $1`, categoryID,
	).Scan(&category.ID, &category.UserID, &category.Name, &category.Description, &category.Deleted)
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepository) FindActiveByUser(userID string) ([]domain.Category, error) {
	rows, err := r.db.Query(
		`SELECT id, user_id, name, description, deleted
		 FROM categories WHERE user_id = $1 AND deleted = false
		 ORDER BY name`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(&category.ID, &category.UserID, &category.Name,
			&category.Description, &category.Deleted); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func (r *CategoryRepository) Update(category domain.Category) error {
	res, err := r.db.Exec(
		`UPDATE categories SET name = $1, description = $2 WHERE id = $3`,
		category.Name, category.Description, category.ID,
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
	return nil
}

func (r *CategoryRepository) MarkDeleted(categoryID uuid.UUID) error {
	res, err := r.db.Exec(`UPDATE categories SET deleted = true WHERE id = $1`, categoryID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *CategoryRepository) DoesCategoryExistByID(categoryID uuid.UUID, userID string) (bool, error) {
	var exists bool
	query := "SELECT EXISTS(SELECT 1 FROM categories WHERE id = $1 AND user_id = $2 AND deleted = false)"
	err := r.db.QueryRow(query, categoryID, userID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}
