package interfaces

import (
	"io"
	"net/http"

	"github.com/pkoziol/ReceiptLedger/internal/finance/domain"
)

// 10 MB; receipts photographed with a phone stay well below this.
const maxReceiptSize = 10 << 20

type ReceiptServiceInterface interface {
	ProcessReceipt(userID string, image []byte, filename string) (*domain.Expense, error)
}

type ReceiptHandler struct {
	service      ReceiptServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewReceiptHandler(
	service ReceiptServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *ReceiptHandler {
	if service == nil || respondJSON == nil || respondError == nil {
		panic("Service and response functions must not be nil")
	}
	return &ReceiptHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

// ProcessReceipt handles POST /api/receipts/process. Takes a multipart
// upload under the "file" field and responds with an expense draft the
// client can review and submit as a regular expense.
func (h *ReceiptHandler) ProcessReceipt(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := r.ParseMultipartForm(maxReceiptSize); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid multipart request")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Receipt file is required")
		return
	}
	defer file.Close()

	image, err := io.ReadAll(io.LimitReader(file, maxReceiptSize))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Could not read receipt file")
		return
	}

	draft, err := h.service.ProcessReceipt(userID, image, header.Filename)
	if err != nil {
		handleServiceError(w, h.respondError, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Receipt processed successfully.",
		"data":    toExpenseDTO(draft),
	})
}
