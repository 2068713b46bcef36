package infrastructure

import (
	"database/sql"

	"github.com/google/uuid"

	"github.com/pkoziol/ReceiptLedger/internal/finance/domain"
)

type MockCategoryRepository struct {
	Categories []domain.Category
}

func (m *MockCategoryRepository) Save(category domain.Category) error {
	for _, existing := range m.Categories {
		if existing.UserID == category.UserID && existing.Name == category.Name {
			return domain.ErrDuplicate
		}
	}
	m.Categories = append(m.Categories, category)
	return nil
}

func (m *MockCategoryRepository) SaveAll(categories []domain.Category) error {
	for _, category := range categories {
		if err := m.Save(category); err != nil {
			return err
		}
	}
	return nil
}

func (m *MockCategoryRepository) FindByID(categoryID uuid.UUID) (*domain.Category, error) {
	for i := range m.Categories {
		if m.Categories[i].ID == categoryID {
			category := m.Categories[i]
			return &category, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *MockCategoryRepository) FindActiveByUser(userID string) ([]domain.Category, error) {
	var active []domain.Category
	for _, category := range m.Categories {
		if category.UserID == userID && !category.Deleted {
			active = append(active, category)
		}
	}
	return active, nil
}

func (m *MockCategoryRepository) Update(category domain.Category) error {
	for i := range m.Categories {
		if m.Categories[i].ID == category.ID {
			m.Categories[i] = category
			return nil
		}
	}
	return sql.ErrNoRows
}

func (m *MockCategoryRepository) MarkDeleted(categoryID uuid.UUID) error {
	for i := range m.Categories {
		if m.Categories[i].ID == categoryID {
			m.Categories[i].Deleted = true
			return nil
		}
	}
	return sql.ErrNoRows
}

func (m *MockCategoryRepository) DoesCategoryExistByID(categoryID uuid.UUID, userID string) (bool, error) {
	for _, category := range m.Categories {
		if category.ID == categoryID && category.UserID == userID && !category.Deleted {
			return true, nil
		}
	}
	return false, nil
}
