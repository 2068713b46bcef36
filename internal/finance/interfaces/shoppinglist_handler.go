package interfaces

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pkoziol/ReceiptLedger/internal/finance/domain"
)

type ShoppingListServiceInterface interface {
	GetUserLists(userID string) ([]domain.ShoppingList, error)
	GetList(userID string, listID uuid.UUID) (*domain.ShoppingList, error)
	CreateList(list *domain.ShoppingList) error
	UpdateList(userID string, listID uuid.UUID, name string, items []domain.ShoppingListItem) (*domain.ShoppingList, error)
	DeleteList(userID string, listID uuid.UUID) error
	TogglePurchased(userID string, listID, itemID uuid.UUID) (*domain.ShoppingList, error)
}

type ShoppingListHandler struct {
	service      ShoppingListServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewShoppingListHandler(
	service ShoppingListServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *ShoppingListHandler {
	if service == nil || respondJSON == nil || respondError == nil {
		panic("Service and response functions must not be nil")
	}
	return &ShoppingListHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

type shoppingListItemRequest struct {
	ID          *uuid.UUID      `json:"id"`
	ProductName string          `json:"productName"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	IsPurchased bool            `json:"isPurchased"`
}

type shoppingListRequest struct {
	Name  string                    `json:"name"`
	Items []shoppingListItemRequest `json:"items"`
}

func (r *shoppingListRequest) toItems() []domain.ShoppingListItem {
	items := make([]domain.ShoppingListItem, 0, len(r.Items))
	for _, item := range r.Items {
		domainItem := domain.ShoppingListItem{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Unit:        item.Unit,
			IsPurchased: item.IsPurchased,
		}
		if item.ID != nil {
			domainItem.ID = *item.ID
		}
		items = append(items, domainItem)
	}
	return items
}

func (h *ShoppingListHandler) GetLists(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	lists, err := h.service.GetUserLists(userID)
	if err != nil {
		handleServiceError(w, h.respondError, err)
		return
	}

	dtos := make([]shoppingListDTO, 0, len(lists))
	for i := range lists {
		dtos = append(dtos, toShoppingListDTO(&lists[i]))
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Shopping lists retrieved successfully.",
		"data":    dtos,
	})
}

func (h *ShoppingListHandler) GetList(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	listID, err := uuid.Parse(r.PathValue("listID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid list id")
		return
	}

	list, err := h.service.GetList(userID, listID)
	if err != nil {
		handleServiceError(w, h.respondError, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Shopping list retrieved successfully.",
		"data":    toShoppingListDTO(list),
	})
}

func (h *ShoppingListHandler) CreateList(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req shoppingListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	list := domain.ShoppingList{
		UserID: userID,
		Name:   req.Name,
		Items:  req.toItems(),
	}
	if err := h.service.CreateList(&list); err != nil {
		handleServiceError(w, h.respondError, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Shopping list successfully created.",
		"data":    toShoppingListDTO(&list),
	})
}

func (h *ShoppingListHandler) UpdateList(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	listID, err := uuid.Parse(r.PathValue("listID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid list id")
		return
	}
	var req shoppingListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	list, err := h.service.UpdateList(userID, listID, req.Name, req.toItems())
	if err != nil {
		handleServiceError(w, h.respondError, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Shopping list successfully updated.",
		"data":    toShoppingListDTO(list),
	})
}

func (h *ShoppingListHandler) DeleteList(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	listID, err := uuid.Parse(r.PathValue("listID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid list id")
		return
	}

	if err := h.service.DeleteList(userID, listID); err != nil {
		handleServiceError(w, h.respondError, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "Shopping list successfully deleted.",
	})
}

func (h *ShoppingListHandler) TogglePurchased(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	listID, err := uuid.Parse(r.PathValue("listID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid list id")
		return
	}
	itemID, err := uuid.Parse(r.PathValue("itemID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid item id")
		return
	}

	list, err := h.service.TogglePurchased(userID, listID, itemID)
	if err != nil {
		handleServiceError(w, h.respondError, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Shopping list item updated.",
		"data":    toShoppingListDTO(list),
	})
}
