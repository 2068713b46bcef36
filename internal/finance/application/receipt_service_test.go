package application

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/pkoziol/ReceiptLedger/internal/finance/domain"
	financeErrors "github.com/pkoziol/ReceiptLedger/internal/finance/errors"
	"github.com/pkoziol/ReceiptLedger/internal/ocr"
)

type mockOCRClient struct {
	parsed []ocr.ParsedExpense
	err    error
}

func (m *mockOCRClient) ProcessReceipt(image []byte, filename string) ([]ocr.ParsedExpense, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.parsed, nil
}

func receiptCategories() *MockCategoryService {
	return &MockCategoryService{
		Categories: []domain.Category{
			{ID: uuid.New(), UserID: testUserID, Name: "Groceries"},
			{ID: uuid.New(), UserID: testUserID, Name: "Transport"},
		},
	}
}

func TestProcessReceipt_BuildsDraft(t *testing.T) {
	client := &mockOCRClient{
		parsed: []ocr.ParsedExpense{
			{ProductName: "Milk", Price: dec("3.50"), Quantity: 2, CategoryName: "groceries"},
			{ProductName: "Bus ticket", Price: dec("4.40"), Quantity: 1, CategoryName: "Transport"},
		},
	}
	service := NewReceiptService(client, receiptCategories())

	draft, err := service.ProcessReceipt(testUserID, []byte("fake-image"), "receipt.jpg")
	assert.NoError(t, err)
	assert.Equal(t, uuid.Nil, draft.ID, "draft is not persisted")
	assert.Len(t, draft.Items, 2)
	assert.True(t, draft.TotalAmount.Equal(dec("11.40")))
	assert.Equal(t, 2, draft.ItemCount)
	// category names are matched case-insensitively against the user's own set
	assert.Equal(t, "Groceries", draft.Items[0].CategoryName)
	assert.NotEqual(t, uuid.Nil, draft.Items[0].CategoryID)
}

func TestProcessReceipt_UnknownCategoryIsUpstream(t *testing.T) {
	client := &mockOCRClient{
		parsed: []ocr.ParsedExpense{
			{ProductName: "Milk", Price: dec("3.50"), Quantity: 1, CategoryName: "Nonexistent"},
		},
	}
	service := NewReceiptService(client, receiptCategories())

	_, err := service.ProcessReceipt(testUserID, []byte("fake-image"), "receipt.jpg")
	assert.True(t, financeErrors.IsUpstreamError(err))
}

func TestProcessReceipt_EmptyResultIsUpstream(t *testing.T) {
	service := NewReceiptService(&mockOCRClient{}, receiptCategories())

	_, err := service.ProcessReceipt(testUserID, []byte("fake-image"), "receipt.jpg")
	assert.True(t, financeErrors.IsUpstreamError(err))
}

func TestProcessReceipt_EmptyImageIsValidation(t *testing.T) {
	service := NewReceiptService(&mockOCRClient{}, receiptCategories())

	_, err := service.ProcessReceipt(testUserID, nil, "receipt.jpg")
	assert.True(t, financeErrors.IsValidationError(err))
}

func TestProcessReceipt_ClientErrorPassesThrough(t *testing.T) {
	client := &mockOCRClient{err: financeErrors.NewUpstreamTimeoutError("OCR module timed out")}
	service := NewReceiptService(client, receiptCategories())

	_, err := service.ProcessReceipt(testUserID, []byte("fake-image"), "receipt.jpg")
	assert.True(t, financeErrors.IsUpstreamError(err))
}
