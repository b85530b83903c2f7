package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/agpb-backend/internal/domain"
)

// errorResponse is the JSON body of every non-2xx answer.
type errorResponse struct {
	Message string       `json:"message"`
	Errors  []fieldError `json:"errors,omitempty"`
	Code    string       `json:"code,omitempty"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Message: message})
}

// statusFor maps domain errors to HTTP status codes. Partial outcomes are
// checked first because an orphan error also wraps its cause.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrOrphanedLexeme), errors.Is(err, domain.ErrPartialBatchFailure):
		return http.StatusMultiStatus
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrUnsupportedLanguage):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrRejected):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrUpstreamUnavailable), errors.Is(err, domain.ErrInconsistentState):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// errorBody builds the client-facing body for err. Internal failures are
// not described.
func errorBody(err error, status int) errorResponse {
	body := errorResponse{Message: err.Error()}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		body.Message = "validation failed"
		for _, fe := range ve.Errors {
			body.Errors = append(body.Errors, fieldError{Field: fe.Field, Message: fe.Message})
		}
	}
	var ae *domain.APIError
	if errors.As(err, &ae) {
		body.Code = ae.Code
	}
	if status == http.StatusInternalServerError {
		body = errorResponse{Message: "internal server error"}
	}
	if status == http.StatusUnauthorized {
		body.Message = "unauthorized"
	}
	return body
}

// handleError logs err at a level matching its status and writes the
// mapped response.
func handleError(log *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	switch {
	case status >= 500:
		log.ErrorContext(r.Context(), "request failed", slog.Int("status", status), slog.String("error", err.Error()))
	case status != http.StatusUnauthorized:
		log.WarnContext(r.Context(), "request rejected", slog.Int("status", status), slog.String("error", err.Error()))
	}
	writeJSON(w, status, errorBody(err, status))
}

// decodeJSON reads a JSON body of at most maxBytes into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, maxBytes int64, dst any) error {
	if maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return domain.NewValidationError("body", fmt.Sprintf("larger than %d bytes", tooLarge.Limit))
		}
		return domain.NewValidationError("body", "invalid JSON")
	}
	return nil
}
