package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrymomot/vendingkit/pkg/inventory"
	"github.com/dmitrymomot/vendingkit/pkg/machine"
)

// Error codes, one per kind of the controller's error taxonomy.
const (
	CodeInvalidCommand    = "invalid_command_for_state"
	CodeUnknownProduct    = "unknown_product"
	CodeOutOfStock        = "out_of_stock"
	CodeInsufficientFunds = "insufficient_funds"
	CodeBusy              = "busy"
	CodeValidation        = "validation_error"
	CodeInternal          = "internal_error"
)

// errorResponse is the JSON error payload: a tagged error code plus a
// human-readable detail.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErrorCode(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// writeError maps a controller error to its tagged code and HTTP status.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case machine.IsInvalidCommandError(err):
		writeErrorCode(w, http.StatusConflict, CodeInvalidCommand, err.Error())
	case machine.IsBusyError(err):
		writeErrorCode(w, http.StatusServiceUnavailable, CodeBusy, err.Error())
	case machine.IsInsufficientFundsError(err):
		writeErrorCode(w, http.StatusPaymentRequired, CodeInsufficientFunds, err.Error())
	case inventory.IsUnknownProductError(err):
		writeErrorCode(w, http.StatusNotFound, CodeUnknownProduct, err.Error())
	case inventory.IsOutOfStockError(err):
		writeErrorCode(w, http.StatusConflict, CodeOutOfStock, err.Error())
	case errors.Is(err, machine.ErrNonPositiveAmount):
		writeErrorCode(w, http.StatusBadRequest, CodeValidation, err.Error())
	default:
		writeErrorCode(w, http.StatusInternalServerError, CodeInternal, err.Error())
	}
}
