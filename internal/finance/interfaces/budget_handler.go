package interfaces

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pkoziol/ReceiptLedger/internal/finance/domain"
)

type BudgetServiceInterface interface {
	GetMonthlyBudget(userID string, year, month int) (*domain.MonthlyBudget, error)
	CreateBudget(budget *domain.MonthlyBudget) error
	UpdateBudget(userID string, budgetID uuid.UUID, updated domain.MonthlyBudget) (*domain.MonthlyBudget, error)
}

type BudgetHandler struct {
	service      BudgetServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewBudgetHandler(
	service BudgetServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *BudgetHandler {
	if service == nil || respondJSON == nil || respondError == nil {
		panic("Service and response functions must not be nil")
	}
	return &BudgetHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

type categoryBudgetRequest struct {
	CategoryID uuid.UUID       `json:"categoryId"`
	Budget     decimal.Decimal `json:"budget"`
}

type budgetRequest struct {
	Year            int                     `json:"year"`
	Month           int                     `json:"month"`
	Budget          decimal.Decimal         `json:"budget"`
	CategoryBudgets []categoryBudgetRequest `json:"categoryBudgets"`
}

func (r *budgetRequest) toDomain(userID string) domain.MonthlyBudget {
	budget := domain.MonthlyBudget{
		UserID: userID,
		Year:   r.Year,
		Month:  r.Month,
		Budget: r.Budget,
	}
	for _, cb := range r.CategoryBudgets {
		budget.CategoryBudgets = append(budget.CategoryBudgets, domain.CategoryBudget{
			CategoryID: cb.CategoryID,
			Budget:     cb.Budget,
		})
	}
	return budget
}

// GetBudget handles GET /api/budgets?year=&month=
func (h *BudgetHandler) GetBudget(w http.ResponseWriter, r *http.Request) {
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

	budget, err := h.service.GetMonthlyBudget(userID, year, month)
	if err != nil {
		handleServiceError(w, h.respondError, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Budget retrieved successfully.",
		"data":    toBudgetDTO(budget),
	})
}

func (h *BudgetHandler) CreateBudget(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req budgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	budget := req.toDomain(userID)
	if err := h.service.CreateBudget(&budget); err != nil {
		handleServiceError(w, h.respondError, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Budget successfully created.",
		"data":    toBudgetDTO(&budget),
	})
}

func (h *BudgetHandler) UpdateBudget(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	budgetID, err := uuid.Parse(r.PathValue("budgetID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid budget id")
		return
	}
	var req budgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	budget, err := h.service.UpdateBudget(userID, budgetID, req.toDomain(userID))
	if err != nil {
		handleServiceError(w, h.respondError, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Budget successfully updated.",
		"data":    toBudgetDTO(budget),
	})
}
