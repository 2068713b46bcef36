package application

import (
	"database/sql"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/pkoziol/ReceiptLedger/internal/finance/domain"
	financeErrors "github.com/pkoziol/ReceiptLedger/internal/finance/errors"
)

type mockShoppingListRepository struct {
	lists []domain.ShoppingList
}

func (m *mockShoppingListRepository) Save(list domain.ShoppingList) error {
	for _, existing := range m.lists {
		if existing.UserID == list.UserID && existing.Name == list.Name {
			return domain.ErrDuplicate
		}
	}
	m.lists = append(m.lists, list)
	return nil
}

func (m *mockShoppingListRepository) FindByID(listID uuid.UUID) (*domain.ShoppingList, error) {
	for i := range m.lists {
		if m.lists[i].ID == listID {
			list := m.lists[i]
			return &list, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockShoppingListRepository) FindByUser(userID string) ([]domain.ShoppingList, error) {
	var owned []domain.ShoppingList
	for _, list := range m.lists {
		if list.UserID == userID {
			owned = append(owned, list)
		}
	}
	sort.Slice(owned, func(i, j int) bool { return owned[i].CreatedAt.After(owned[j].CreatedAt) })
	return owned, nil
}

func (m *mockShoppingListRepository) Update(list domain.ShoppingList) error {
	for i := range m.lists {
		if m.lists[i].ID == list.ID {
			m.lists[i] = list
			return nil
		}
	}
	return sql.ErrNoRows
}

func (m *mockShoppingListRepository) Delete(listID uuid.UUID) error {
	for i := range m.lists {
		if m.lists[i].ID == listID {
			m.lists = append(m.lists[:i], m.lists[i+1:]...)
			return nil
		}
	}
	return nil
}

func TestCreateList_CountsItems(t *testing.T) {
	repo := &mockShoppingListRepository{}
	service := NewShoppingListService(repo)

	list := domain.ShoppingList{
		UserID: testUserID,
		Name:   "Weekend shopping",
		Items: []domain.ShoppingListItem{
			{ProductName: "Milk", Quantity: dec("2"), Unit: "l"},
			{ProductName: "Flour", Quantity: dec("1.5"), Unit: "kg"},
		},
	}
	err := service.CreateList(&list)
	assert.NoError(t, err)
	assert.Equal(t, 2, list.ItemCount)
	assert.False(t, list.CreatedAt.IsZero())
}

func TestCreateList_DuplicateName(t *testing.T) {
	repo := &mockShoppingListRepository{}
	service := NewShoppingListService(repo)

	first := domain.ShoppingList{UserID: testUserID, Name: "Groceries"}
	assert.NoError(t, service.CreateList(&first))

	second := domain.ShoppingList{UserID: testUserID, Name: "Groceries"}
	err := service.CreateList(&second)
	assert.True(t, financeErrors.IsAlreadyExistsError(err))
}

func TestUpdateList_RecountsItems(t *testing.T) {
	repo := &mockShoppingListRepository{}
	service := NewShoppingListService(repo)

	list := domain.ShoppingList{
		UserID: testUserID,
		Name:   "Groceries",
		Items: []domain.ShoppingListItem{
			{ProductName: "Milk", Quantity: dec("2"), Unit: "l"},
		},
	}
	assert.NoError(t, service.CreateList(&list))

	updated, err := service.UpdateList(testUserID, list.ID, "Groceries", []domain.ShoppingListItem{
		{ProductName: "Milk", Quantity: dec("2"), Unit: "l"},
		{ProductName: "Eggs", Quantity: dec("10"), Unit: "pcs"},
		{ProductName: "Butter", Quantity: dec("1"), Unit: "pcs"},
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, updated.ItemCount)
}

func TestTogglePurchased(t *testing.T) {
	repo := &mockShoppingListRepository{}
	service := NewShoppingListService(repo)

	list := domain.ShoppingList{
		UserID: testUserID,
		Name:   "Groceries",
		Items: []domain.ShoppingListItem{
			{ProductName: "Milk", Quantity: dec("2"), Unit: "l"},
		},
	}
	assert.NoError(t, service.CreateList(&list))
	itemID := list.Items[0].ID

	updated, err := service.TogglePurchased(testUserID, list.ID, itemID)
	assert.NoError(t, err)
	assert.True(t, updated.Items[0].IsPurchased)

	updated, err = service.TogglePurchased(testUserID, list.ID, itemID)
	assert.NoError(t, err)
	assert.False(t, updated.Items[0].IsPurchased)

	_, err = service.TogglePurchased(testUserID, list.ID, uuid.New())
	assert.True(t, financeErrors.IsNotFoundError(err))
}

func TestGetList_AccessDenied(t *testing.T) {
	repo := &mockShoppingListRepository{
		lists: []domain.ShoppingList{
			{ID: uuid.New(), UserID: "someone-else", Name: "Private"},
		},
	}
	service := NewShoppingListService(repo)

	_, err := service.GetList(testUserID, repo.lists[0].ID)
	assert.True(t, financeErrors.IsAccessDeniedError(err))
}
