package interfaces

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/pkoziol/ReceiptLedger/internal/finance/domain"
	financeErrors "github.com/pkoziol/ReceiptLedger/internal/finance/errors"
)

func TestGetCategories_ReturnsActive(t *testing.T) {
	req := authedRequest(http.MethodGet, "/api/categories")
	w := httptest.NewRecorder()

	mockService := &MockCategoryService{
		categories: []domain.Category{
			{ID: uuid.New(), UserID: "user-1", Name: "Groceries"},
			{ID: uuid.New(), UserID: "user-1", Name: "Transport"},
		},
	}
	handler := NewCategoryHandler(mockService, respondJSON, respondError)
	handler.GetCategories(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)

	var response struct {
		Data []categoryDTO `json:"data"`
	}
	err := json.NewDecoder(res.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Len(t, response.Data, 2)
}

func TestCreateCategory_DuplicateName(t *testing.T) {
	body := bytes.NewBufferString(`{"name":"Groceries"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/categories", body)
	req = req.WithContext(context.WithValue(req.Context(), "userID", "user-1"))
	w := httptest.NewRecorder()

	mockService := &MockCategoryService{err: financeErrors.NewAlreadyExistsError("category", "Groceries")}
	handler := NewCategoryHandler(mockService, respondJSON, respondError)
	handler.CreateCategory(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusConflict, res.StatusCode)
}

func TestCreateCategory_Success(t *testing.T) {
	body := bytes.NewBufferString(`{"name":"Pets","description":"Food and vet"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/categories", body)
	req = req.WithContext(context.WithValue(req.Context(), "userID", "user-1"))
	w := httptest.NewRecorder()

	handler := NewCategoryHandler(&MockCategoryService{}, respondJSON, respondError)
	handler.CreateCategory(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusCreated, res.StatusCode)

	var response struct {
		Data categoryDTO `json:"data"`
	}
	err := json.NewDecoder(res.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Equal(t, "Pets", response.Data.Name)
	assert.NotEqual(t, uuid.Nil, response.Data.ID)
}

func TestDeleteCategory_NotFound(t *testing.T) {
	categoryID := uuid.New()
	req := authedRequest(http.MethodDelete, "/api/categories/"+categoryID.String())
	req.SetPathValue("categoryID", categoryID.String())
	w := httptest.NewRecorder()

	mockService := &MockCategoryService{err: financeErrors.NewNotFoundError("category", categoryID.String())}
	handler := NewCategoryHandler(mockService, respondJSON, respondError)
	handler.DeleteCategory(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}
