package interfaces

import (
	"net/http"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	financeErrors "github.com/pkoziol/ReceiptLedger/internal/finance/errors"
)

// handleServiceError maps the error taxonomy onto HTTP statuses. Anything
// unrecognized becomes a 500 with a correlation id: the full error is
// logged server-side, the client only gets the id.
func handleServiceError(w http.ResponseWriter, respondError func(w http.ResponseWriter, status int, message string), err error) {
	switch {
	case financeErrors.IsValidationError(err):
		respondError(w, http.StatusBadRequest, err.Error())
	case financeErrors.IsAccessDeniedError(err):
		respondError(w, http.StatusForbidden, err.Error())
	case financeErrors.IsNotFoundError(err):
		respondError(w, http.StatusNotFound, err.Error())
	case financeErrors.IsAlreadyExistsError(err):
		respondError(w, http.StatusConflict, err.Error())
	case financeErrors.IsUpstreamError(err):
		respondError(w, http.StatusBadGateway, err.Error())
	default:
		correlationID := uuid.NewString()
		log.Errorf("internal error [%s]: %v", correlationID, err)
		respondError(w, http.StatusInternalServerError, "Internal server error (ref: "+correlationID+")")
	}
}
