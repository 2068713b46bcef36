package interfaces

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/pkoziol/ReceiptLedger/internal/finance/application"
	financeErrors "github.com/pkoziol/ReceiptLedger/internal/finance/errors"
)

func TestGetDashboardData_Success(t *testing.T) {
	req := authedRequest(http.MethodGet, "/api/dashboard?year=2025&month=3")
	w := httptest.NewRecorder()

	mockService := &MockDashboardService{
		data: &application.DashboardData{
			KPI: application.KPI{
				Budget:        decimal.RequireFromString("1500"),
				TotalExpenses: decimal.RequireFromString("920.45"),
			},
			Trend: []application.TrendEntry{
				{Year: 2025, Month: 3, TotalAmount: decimal.RequireFromString("920.45")},
				{Year: 2025, Month: 2, TotalAmount: decimal.RequireFromString("1100.00")},
			},
			CategorySummaries: []application.CategorySummary{
				{CategoryID: uuid.New(), CategoryName: "Groceries", TotalSpent: decimal.RequireFromString("400.45"), Budget: decimal.RequireFromString("500")},
			},
		},
	}
	handler := NewDashboardHandler(mockService, respondJSON, respondError)
	handler.GetDashboardData(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)

	var response struct {
		Data dashboardDTO `json:"data"`
	}
	err := json.NewDecoder(res.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Equal(t, "1500", response.Data.KPI.Budget.String())
	assert.Len(t, response.Data.Trend, 2)
	assert.Equal(t, 3, response.Data.Trend[0].Month)
	assert.Len(t, response.Data.CategorySummaries, 1)
}

func TestGetDashboardData_MissingMonth(t *testing.T) {
	req := authedRequest(http.MethodGet, "/api/dashboard?year=2025")
	w := httptest.NewRecorder()

	handler := NewDashboardHandler(&MockDashboardService{}, respondJSON, respondError)
	handler.GetDashboardData(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestGetYearlySummary_FutureYearRejected(t *testing.T) {
	req := authedRequest(http.MethodGet, "/api/dashboard/yearly?year=2999")
	w := httptest.NewRecorder()

	mockService := &MockDashboardService{err: financeErrors.NewValidationError("Year cannot be in the future")}
	handler := NewDashboardHandler(mockService, respondJSON, respondError)
	handler.GetYearlySummary(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	var response map[string]interface{}
	err := json.NewDecoder(res.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Equal(t, "Year cannot be in the future", response["message"])
}

func TestGetYearlySummary_TwelveMonths(t *testing.T) {
	req := authedRequest(http.MethodGet, "/api/dashboard/yearly?year=2024")
	w := httptest.NewRecorder()

	summary := make([]application.MonthlySpending, 0, 12)
	for month := 1; month <= 12; month++ {
		summary = append(summary, application.MonthlySpending{
			Month:         month,
			TotalSpending: decimal.Zero,
			Budget:        decimal.Zero,
		})
	}
	handler := NewDashboardHandler(&MockDashboardService{summary: summary}, respondJSON, respondError)
	handler.GetYearlySummary(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)

	var response struct {
		Data []monthlySpendingDTO `json:"data"`
	}
	err := json.NewDecoder(res.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Len(t, response.Data, 12)
	assert.Equal(t, 1, response.Data[0].Month)
	assert.Equal(t, 12, response.Data[11].Month)
}

func TestGetDashboardData_InternalErrorHidesDetails(t *testing.T) {
	req := authedRequest(http.MethodGet, "/api/dashboard?year=2025&month=3")
	w := httptest.NewRecorder()

	handler := NewDashboardHandler(&MockDashboardService{shouldFail: true}, respondJSON, respondError)
	handler.GetDashboardData(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)

	var response map[string]interface{}
	err := json.NewDecoder(res.Body).Decode(&response)
	assert.NoError(t, err)
	assert.NotContains(t, response["message"], "service error")
	assert.Contains(t, response["message"], "ref:")
}
