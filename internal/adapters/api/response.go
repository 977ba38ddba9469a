package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/javaBin/speechrank/internal/domain"
)

// maxBodyBytes bounds every JSON request body
const maxBodyBytes = 1 << 20

// ErrorResponse is the body of every failed API call
type ErrorResponse struct {
	Status  string              `json:"status"`
	Message string              `json:"message"`
	Fields  []domain.FieldError `json:"fields,omitempty"`
}

// statusFor maps catalog errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrPresentationNotFound), errors.Is(err, domain.ErrConferenceNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrConferenceExists), errors.Is(err, domain.ErrDuplicatePresentation):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON reads a bounded JSON body into v. Malformed bodies are invalid input.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: malformed request body: %v", domain.ErrInvalidInput, err)
	}
	return nil
}

// writeJSON writes v with the given status
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// writeError writes an ErrorResponse with the status matching err
func writeError(w http.ResponseWriter, message string, err error) {
	response := ErrorResponse{
		Status:  "error",
		Message: message,
	}

	if err != nil {
		response.Message = message + ": " + err.Error()

		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			response.Fields = validationErr.Fields
		}
	}

	writeJSON(w, statusFor(err), response)
}
