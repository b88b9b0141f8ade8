package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"scooter-rental-backend/internal/domain"
	"scooter-rental-backend/internal/logger"
)

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

// writeError maps domain error codes onto HTTP statuses. Untyped errors are
// logged and surfaced as an opaque 500.
func writeError(w http.ResponseWriter, err error) {
	var de *domain.Error
	if !errors.As(err, &de) {
		logger.Error("Unclassified error reached the handler", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: string(domain.CodeInternal), Message: "internal error"})
		return
	}

	status := http.StatusInternalServerError
	message := de.Message
	switch de.Code {
	case domain.CodeNotFound:
		status = http.StatusNotFound
	case domain.CodeConflict:
		status = http.StatusConflict
	case domain.CodeValidation:
		status = http.StatusBadRequest
	case domain.CodeGatewayDeclined:
		status = http.StatusPaymentRequired
	case domain.CodeInternal:
		logger.Error("Internal error", "error", de.Err)
		message = "internal error"
	}
	writeJSON(w, status, errorBody{Error: string(de.Code), Message: message})
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return domain.Validation("invalid request body: %v", err)
	}
	return nil
}
