package domain

import (
	"errors"

	"github.com/google/uuid"

	financeErrors "github.com/pkoziol/ReceiptLedger/internal/finance/errors"
)

// ErrDuplicate is returned by repositories when an insert or update hits a
// uniqueness constraint. Services translate it into an AlreadyExists error.
var ErrDuplicate = errors.New("duplicate entry")

// PredefinedCategories are created for every new user at registration.
var PredefinedCategories = []string{
	"Groceries",
	"Alcohol and stimulants",
	"Household and chemistry",
	"Cosmetics",
	"Entertainment",
	"Taxes and fees",
	"Transport",
	"Other",
}

type Category struct {
	ID          uuid.UUID
	UserID      string // user UUID
	Name        string
	Description string
	Deleted     bool
}

func (c *Category) Validate() error {
	if c.Name == "" {
		return financeErrors.NewValidationError("Category name is required")
	}
	if len(c.Name) > 100 {
		return financeErrors.NewValidationError("Category name must be of length less than 100")
	}
	return nil
}

type CategoryRepository interface {
	Save(category Category) error
	SaveAll(categories []Category) error
	FindByID(categoryID uuid.UUID) (*Category, error)
	FindActiveByUser(userID string) ([]Category, error)
	Update(category Category) error
	MarkDeleted(categoryID uuid.UUID) error
	DoesCategoryExistByID(categoryID uuid.UUID, userID string) (bool, error)
}
