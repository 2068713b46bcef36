package application

import (
	"github.com/google/uuid"

	"github.com/pkoziol/ReceiptLedger/internal/finance/domain"
)

type MockCategoryService struct {
	Categories []domain.Category
	AllExist   bool
}

func (m *MockCategoryService) DoesCategoryExist(categoryID uuid.UUID, userID string) (bool, error) {
	if m.AllExist {
		return true, nil
	}
	for _, category := range m.Categories {
		if category.ID == categoryID && category.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockCategoryService) GetUserCategories(userID string) ([]domain.Category, error) {
	var owned []domain.Category
	for _, category := range m.Categories {
		if category.UserID == userID {
			owned = append(owned, category)
		}
	}
	return owned, nil
}
