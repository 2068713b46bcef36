package interfaces

import (
	"net/http"
	"strconv"

	"github.com/pkoziol/ReceiptLedger/internal/finance/application"
)

type DashboardServiceInterface interface {
	GetDashboardData(userID string, year, month int) (*application.DashboardData, error)
	GetYearlySpendingSummary(userID string, year int) ([]application.MonthlySpending, error)
}

type DashboardHandler struct {
	service      DashboardServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewDashboardHandler(
	service DashboardServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *DashboardHandler {
	if service == nil || respondJSON == nil || respondError == nil {
		panic("Service and response functions must not be nil")
	}
	return &DashboardHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

// GetDashboardData handles GET /api/dashboard?year=&month=
func (h *DashboardHandler) GetDashboardData(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid or missing year")
		return
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid or missing month")
		return
	}

	data, err := h.service.GetDashboardData(userID, year, month)
	if err != nil {
		handleServiceError(w, h.respondError, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Dashboard data retrieved successfully.",
		"data":    toDashboardDTO(data),
	})
}

// GetYearlySummary handles GET /api/dashboard/yearly?year=
func (h *DashboardHandler) GetYearlySummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid or missing year")
		return
	}

	summary, err := h.service.GetYearlySpendingSummary(userID, year)
	if err != nil {
		handleServiceError(w, h.respondError, err)
		return
	}

	months := make([]monthlySpendingDTO, 0, len(summary))
	for _, entry := range summary {
		months = append(months, monthlySpendingDTO{
			Month:         entry.Month,
			TotalSpending: entry.TotalSpending,
			Budget:        entry.Budget,
		})
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Yearly summary retrieved successfully.",
		"data":    months,
	})
}
