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

type ShoppingListService struct {
	repo domain.ShoppingListRepository
}

func NewShoppingListService(repo domain.ShoppingListRepository) *ShoppingListService {
	return &ShoppingListService{repo: repo}
}

func (s *ShoppingListService) GetUserLists(userID string) ([]domain.ShoppingList, error) {
	lists, err := s.repo.FindByUser(userID)
	if err != nil {
		return nil, err
	}
	if lists == nil {
		return []domain.ShoppingList{}, nil
	}
	return lists, nil
}

func (s *ShoppingListService) GetList(userID string, listID uuid.UUID) (*domain.ShoppingList, error) {
	return s.getOwned(userID, listID)
}

func (s *ShoppingListService) CreateList(list *domain.ShoppingList) error {
	list.ID = uuid.New()
	list.CreatedAt = time.Now().UTC()
	for i := range list.Items {
		list.Items[i].ID = uuid.New()
	}
	list.RecalculateItemCount()
	if err := list.Validate(); err != nil {
		return err
	}

	if err := s.repo.Save(*list); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return financeErrors.NewAlreadyExistsError("shopping list", list.Name)
		}
		return err
	}
	log.Infof("created shopping list %s for user %s", list.ID, list.UserID)
	return nil
}

// UpdateList replaces the list name and its full item set; the item count
// is re-derived from the new set.
func (s *ShoppingListService) UpdateList(userID string, listID uuid.UUID, name string, items []domain.ShoppingListItem) (*domain.ShoppingList, error) {
	list, err := s.getOwned(userID, listID)
	if err != nil {
		return nil, err
	}

	for i := range items {
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
	}
	list.Name = name
	list.Items = items
	list.RecalculateItemCount()
	if err := list.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(*list); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, financeErrors.NewAlreadyExistsError("shopping list", name)
		}
		return nil, err
	}
	return list, nil
}

func (s *ShoppingListService) DeleteList(userID string, listID uuid.UUID) error {
	if _, err := s.getOwned(userID, listID); err != nil {
		return err
	}
	return s.repo.Delete(listID)
}

// TogglePurchased flips the purchased flag on one item.
func (s *ShoppingListService) TogglePurchased(userID string, listID, itemID uuid.UUID) (*domain.ShoppingList, error) {
	list, err := s.getOwned(userID, listID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range list.Items {
		if list.Items[i].ID == itemID {
			list.Items[i].IsPurchased = !list.Items[i].IsPurchased
			found = true
			break
		}
	}
	if !found {
		return nil, financeErrors.NewNotFoundError("shopping list item", itemID.String())
	}

	if err := s.repo.Update(*list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *ShoppingListService) getOwned(userID string, listID uuid.UUID) (*domain.ShoppingList, error) {
	list, err := s.repo.FindByID(listID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, financeErrors.NewNotFoundError("shopping list", listID.String())
		}
		return nil, err
	}
	if list.UserID != userID {
		return nil, financeErrors.NewAccessDeniedError("shopping list belongs to another user")
	}
	return list, nil
}
