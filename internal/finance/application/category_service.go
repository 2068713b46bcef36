package application

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/pkoziol/ReceiptLedger/internal/finance/domain"
	financeErrors "github.com/pkoziol/ReceiptLedger/internal/finance/errors"
)

type CategoryService struct {
	repo domain.CategoryRepository
}

func NewCategoryService(repo domain.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) GetUserCategories(userID string) ([]domain.Category, error) {
	categories, err := s.repo.FindActiveByUser(userID)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		return []domain.Category{}, nil
	}
	return categories, nil
}

func (s *CategoryService) CreateCategory(category *domain.Category) error {
	category.ID = uuid.New()
	if err := category.Validate(); err != nil {
		return err
	}

	if err := s.repo.Save(*category); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return financeErrors.NewAlreadyExistsError("category", category.Name)
		}
		return err
	}
	log.Infof("created category %s for user %s", category.ID, category.UserID)
	return nil
}

// SeedPredefined creates the default category set for a freshly registered
// user. Called by the user module right after registration.
func (s *CategoryService) SeedPredefined(userID string) error {
	categories := make([]domain.Category, 0, len(domain.PredefinedCategories))
	for _, name := range domain.PredefinedCategories {
		categories = append(categories, domain.Category{
			ID:     uuid.New(),
			UserID: userID,
			Name:   name,
		})
	}
	if err := s.repo.SaveAll(categories); err != nil {
		return fmt.Errorf("could not seed categories for user %s: %w", userID, err)
	}
	return nil
}

func (s *CategoryService) UpdateCategory(userID string, categoryID uuid.UUID, name, description string) (*domain.Category, error) {
	category, err := s.getOwned(userID, categoryID)
	if err != nil {
		return nil, err
	}

	category.Name = name
	category.Description = description
	if err := category.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(*category); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, financeErrors.NewAlreadyExistsError("category", name)
		}
		return nil, err
	}
	return category, nil
}

// DeleteCategory soft-deletes: the row stays so historical expense items
// keep their category reference, but active listings exclude it.
func (s *CategoryService) DeleteCategory(userID string, categoryID uuid.UUID) error {
	if _, err := s.getOwned(userID, categoryID); err != nil {
		return err
	}
	if err := s.repo.MarkDeleted(categoryID); err != nil {
		return err
	}
	log.Infof("soft-deleted category %s for user %s", categoryID, userID)
	return nil
}

func (s *CategoryService) DoesCategoryExist(categoryID uuid.UUID, userID string) (bool, error) {
	return s.repo.DoesCategoryExistByID(categoryID, userID)
}

func (s *CategoryService) getOwned(userID string, categoryID uuid.UUID) (*domain.Category, error) {
	category, err := s.repo.FindByID(categoryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, financeErrors.NewNotFoundError("category", categoryID.String())
		}
		return nil, err
	}
	if category.UserID != userID {
		return nil, financeErrors.NewAccessDeniedError("category belongs to another user")
	}
	if category.Deleted {
		return nil, financeErrors.NewNotFoundError("category", categoryID.String())
	}
	return category, nil
}
