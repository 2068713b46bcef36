package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pkoziol/ReceiptLedger/internal/finance/errors"
)

type ShoppingList struct {
	ID        uuid.UUID
	UserID    string // user UUID
	Name      string
	ItemCount int
	CreatedAt time.Time
	Items     []ShoppingListItem
}

type ShoppingListItem struct {
	ID          uuid.UUID
	ProductName string
	Quantity    decimal.Decimal
	Unit        string
	IsPurchased bool
}

func (i *ShoppingListItem) Validate() error {
	if i.ProductName == "" {
		return errors.NewValidationError("Product name is required")
	}
	if !i.Quantity.IsPositive() {
		return errors.NewValidationError("Quantity must be greater than zero")
	}
	return nil
}

func (l *ShoppingList) Validate() error {
	if l.Name == "" {
		return errors.NewValidationError("List name is required")
	}
	if len(l.Name) > 100 {
		return errors.NewValidationError("List name must be of length less than 100")
	}
	for _, item := range l.Items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (l *ShoppingList) RecalculateItemCount() {
	l.ItemCount = len(l.Items)
}

type ShoppingListRepository interface {
	Save(list ShoppingList) error
	FindByID(listID uuid.UUID) (*ShoppingList, error)
	FindByUser(userID string) ([]ShoppingList, error)
	Update(list ShoppingList) error
	Delete(listID uuid.UUID) error
}
