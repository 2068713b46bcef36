package interfaces

import (
	"errors"

	"github.com/google/uuid"

	"github.com/pkoziol/ReceiptLedger/internal/finance/domain"
)

type MockCategoryService struct {
	categories []domain.Category
	err        error
	shouldFail bool
}

func (m *MockCategoryService) GetUserCategories(userID string) ([]domain.Category, error) {
	if m.shouldFail {
		return nil, errors.New("service error")
	}
	return m.categories, nil
}

func (m *MockCategoryService) CreateCategory(category *domain.Category) error {
	if m.err != nil {
		return m.err
	}
	category.ID = uuid.New()
	return nil
}

func (m *MockCategoryService) UpdateCategory(userID string, categoryID uuid.UUID, name, description string) (*domain.Category, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Category{ID: categoryID, UserID: userID, Name: name, Description: description}, nil
}

func (m *MockCategoryService) DeleteCategory(userID string, categoryID uuid.UUID) error {
	return m.err
}
