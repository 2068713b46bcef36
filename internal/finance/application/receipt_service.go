package application

import (
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/pkoziol/ReceiptLedger/internal/finance/domain"
	financeErrors "github.com/pkoziol/ReceiptLedger/internal/finance/errors"
	"github.com/pkoziol/ReceiptLedger/internal/ocr"
)

type OCRClientInterface interface {
	ProcessReceipt(image []byte, filename string) ([]ocr.ParsedExpense, error)
}

type ReceiptService struct {
	ocrClient       OCRClientInterface
	categoryService CategoryServiceInterface
}

func NewReceiptService(ocrClient OCRClientInterface, categoryService CategoryServiceInterface) *ReceiptService {
	return &ReceiptService{ocrClient: ocrClient, categoryService: categoryService}
}

// ProcessReceipt sends the uploaded image to the OCR module and turns the
// recognized line items into an expense draft. The draft is returned to the
// caller for review, never persisted here. Category names coming back from
// OCR must match one of the caller's own categories (case-insensitive);
// a miss is treated as an upstream failure since the OCR module is supposed
// to pick from the names it was given.
func (s *ReceiptService) ProcessReceipt(userID string, image []byte, filename string) (*domain.Expense, error) {
	if len(image) == 0 {
		return nil, financeErrors.NewValidationError("Receipt image is required")
	}

	parsed, err := s.ocrClient.ProcessReceipt(image, filename)
	if err != nil {
		return nil, err
	}
	if len(parsed) == 0 {
		return nil, financeErrors.NewUpstreamError("OCR module recognized no expenses on the receipt")
	}

	categories, err := s.categoryService.GetUserCategories(userID)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]domain.Category, len(categories))
	for _, category := range categories {
		byName[strings.ToLower(category.Name)] = category
	}

	draft := &domain.Expense{
		UserID:          userID,
		TransactionDate: time.Now().UTC(),
	}
	for _, p := range parsed {
		category, ok := byName[strings.ToLower(p.CategoryName)]
		if !ok {
			return nil, financeErrors.NewUpstreamError(
				fmt.Sprintf("OCR module returned unknown category %q", p.CategoryName))
		}
		draft.Items = append(draft.Items, domain.ExpenseItem{
			ProductName:  p.ProductName,
			Quantity:     p.Quantity,
			Price:        p.Price,
			CategoryID:   category.ID,
			CategoryName: category.Name,
		})
	}
	draft.RecalculateTotals()

	log.Debugf("built expense draft with %d items from receipt for user %s", draft.ItemCount, userID)
	return draft, nil
}
