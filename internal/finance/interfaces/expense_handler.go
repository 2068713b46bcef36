package interfaces

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pkoziol/ReceiptLedger/internal/finance/application"
	"github.com/pkoziol/ReceiptLedger/internal/finance/domain"
)

type ExpenseServiceInterface interface {
	SearchExpenses(userID string, filter application.SearchFilter) (*application.ExpensePage, error)
	SearchExpenseDetails(userID string, expenseID uuid.UUID, categoryID *uuid.UUID) (*domain.Expense, error)
	CreateExpense(expense *domain.Expense) error
	UpdateExpense(userID string, expenseID uuid.UUID, description string, transactionDate time.Time, items []domain.ExpenseItem) (*domain.Expense, error)
	DeleteExpense(userID string, expenseID uuid.UUID) error
	UpdateExpenseItem(userID string, expenseID uuid.UUID, item domain.ExpenseItem) (*domain.Expense, error)
	DeleteExpenseItem(userID string, expenseID, itemID uuid.UUID) (*domain.Expense, error)
}

type ExpenseHandler struct {
	service      ExpenseServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewExpenseHandler(
	service ExpenseServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *ExpenseHandler {
	if service == nil || respondJSON == nil || respondError == nil {
		panic("Service and response functions must not be nil")
	}
	return &ExpenseHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

type expenseItemRequest struct {
	ID          *uuid.UUID      `json:"id"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  uuid.UUID       `json:"categoryId"`
}

type expenseRequest struct {
	Description     string               `json:"description"`
	TransactionDate time.Time            `json:"transactionDate"`
	Items           []expenseItemRequest `json:"items"`
}

func (r *expenseRequest) toItems() []domain.ExpenseItem {
	items := make([]domain.ExpenseItem, 0, len(r.Items))
	for _, item := range r.Items {
		domainItem := domain.ExpenseItem{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
			CategoryID:  item.CategoryID,
		}
		if item.ID != nil {
			domainItem.ID = *item.ID
		}
		items = append(items, domainItem)
	}
	return items
}

// SearchExpenses handles GET /api/expenses?year=&month=&categoryId=&page=&size=
func (h *ExpenseHandler) SearchExpenses(w http.ResponseWriter, r *http.Request) {
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

	filter := application.SearchFilter{Year: year, Month: month}

	if categoryIDStr := r.URL.Query().Get("categoryId"); categoryIDStr != "" {
		categoryID, err := uuid.Parse(categoryIDStr)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "Invalid category id")
			return
		}
		filter.CategoryID = &categoryID
	}
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		filter.Page, err = strconv.Atoi(pageStr)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "Invalid page value")
			return
		}
	}
	if sizeStr := r.URL.Query().Get("size"); sizeStr != "" {
		filter.Size, err = strconv.Atoi(sizeStr)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "Invalid size value")
			return
		}
	}

	page, err := h.service.SearchExpenses(userID, filter)
	if err != nil {
		handleServiceError(w, h.respondError, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Expenses retrieved successfully.",
		"data":    toExpensePageDTO(page),
	})
}

// GetExpenseDetails handles GET /api/expenses/{expenseID}. The optional
// categoryId query param narrows the item list only.
func (h *ExpenseHandler) GetExpenseDetails(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	expenseID, err := uuid.Parse(r.PathValue("expenseID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid expense id")
		return
	}

	var categoryID *uuid.UUID
	if categoryIDStr := r.URL.Query().Get("categoryId"); categoryIDStr != "" {
		parsed, err := uuid.Parse(categoryIDStr)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "Invalid category id")
			return
		}
		categoryID = &parsed
	}

	expense, err := h.service.SearchExpenseDetails(userID, expenseID, categoryID)
	if err != nil {
		handleServiceError(w, h.respondError, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Expense retrieved successfully.",
		"data":    toExpenseDTO(expense),
	})
}

func (h *ExpenseHandler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req expenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	expense := domain.Expense{
		UserID:          userID,
		Description:     req.Description,
		TransactionDate: req.TransactionDate,
		Items:           req.toItems(),
	}
	if err := h.service.CreateExpense(&expense); err != nil {
		handleServiceError(w, h.respondError, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Expense successfully created.",
		"data":    toExpenseDTO(&expense),
	})
}

func (h *ExpenseHandler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	expenseID, err := uuid.Parse(r.PathValue("expenseID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid expense id")
		return
	}
	var req expenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	expense, err := h.service.UpdateExpense(userID, expenseID, req.Description, req.TransactionDate, req.toItems())
	if err != nil {
		handleServiceError(w, h.respondError, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Expense successfully updated.",
		"data":    toExpenseDTO(expense),
	})
}

func (h *ExpenseHandler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	expenseID, err := uuid.Parse(r.PathValue("expenseID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid expense id")
		return
	}

	if err := h.service.DeleteExpense(userID, expenseID); err != nil {
		handleServiceError(w, h.respondError, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "Expense successfully deleted.",
	})
}

func (h *ExpenseHandler) UpdateExpenseItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	expenseID, err := uuid.Parse(r.PathValue("expenseID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid expense id")
		return
	}
	itemID, err := uuid.Parse(r.PathValue("itemID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid item id")
		return
	}
	var req expenseItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	item := domain.ExpenseItem{
		ID:          itemID,
		ProductName: req.ProductName,
		Quantity:    req.Quantity,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
	}
	expense, err := h.service.UpdateExpenseItem(userID, expenseID, item)
	if err != nil {
		handleServiceError(w, h.respondError, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Expense item successfully updated.",
		"data":    toExpenseDTO(expense),
	})
}

func (h *ExpenseHandler) DeleteExpenseItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	expenseID, err := uuid.Parse(r.PathValue("expenseID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid expense id")
		return
	}
	itemID, err := uuid.Parse(r.PathValue("itemID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid item id")
		return
	}

	expense, err := h.service.DeleteExpenseItem(userID, expenseID, itemID)
	if err != nil {
		handleServiceError(w, h.respondError, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Expense item successfully deleted.",
		"data":    toExpenseDTO(expense),
	})
}
