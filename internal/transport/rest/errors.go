package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/shima-pokedex/internal/domain"
)

// ErrorBody is the JSON envelope of every non-2xx API response.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes a failed request. Fields is set for validation errors.
type ErrorDetail struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Fields  []domain.FieldError `json:"fields,omitempty"`
}

// writeError maps a domain error to an HTTP status and JSON body. Unmapped
// errors are logged and hidden behind a generic 500.
func writeError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var (
		status int
		detail ErrorDetail
		verr   *domain.ValidationError
	)

	switch {
	case errors.As(err, &verr):
		status = http.StatusBadRequest
		detail = ErrorDetail{Code: "VALIDATION", Message: "invalid request", Fields: verr.Errors}
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
		detail = ErrorDetail{Code: "NOT_FOUND", Message: err.Error()}
	case errors.Is(err, domain.ErrUnavailable):
		status = http.StatusServiceUnavailable
		detail = ErrorDetail{Code: "UNAVAILABLE", Message: "store unavailable"}
	case errors.Is(err, context.Canceled):
		// Client went away; nothing useful to send.
		return
	default:
		log.ErrorContext(r.Context(), "request failed",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		status = http.StatusInternalServerError
		detail = ErrorDetail{Code: "INTERNAL", Message: "internal error"}
	}

	writeJSON(w, status, ErrorBody{Error: detail})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.Encode(v) //nolint:errcheck
}
