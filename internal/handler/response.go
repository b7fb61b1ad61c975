package handler

// RESPONSE HELPERS:
// These functions standardise how we send JSON responses and errors.
//
// CONSISTENT ERROR FORMAT:
// Every error response from our API has the same shape:
//   {"error": "rate_limited", "message": "Search limit exceeded. Wait one minute"}
//
// Validation errors also name the offending field:
//   {"error": "validation_error", "message": "Search term missing", "field": "term"}
//
// Callers that only look at headers get the same message in ErrorMessage when
// the upstream rate-limited us.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/usersearch/internal/apperror"
	"github.com/sakif/usersearch/internal/model"
)

// writeJSON sends a JSON response with the given status code.
//
// HEADER ORDER MATTERS:
// Headers (Link, ErrorMessage, Content-Type) must be set before WriteHeader.
// Anything set after the body starts is silently dropped.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// If encoding fails, the headers are already sent, so we can only log it.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps a domain error to the appropriate HTTP status code and sends it.
//
// ERROR MAPPING:
//
//	ErrValidation  → 400 validation_error
//	ErrRateLimited → 400 rate_limited, plus the ErrorMessage header
//	ErrUpstream    → 400 upstream_error
//	anything else  → 500 internal_error
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError

	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		errorType := model.ErrorTypeInternal

		switch {
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest
			errorType = model.ErrorTypeValidation
		case errors.Is(err, apperror.ErrRateLimited):
			status = http.StatusBadRequest
			errorType = model.ErrorTypeRateLimited
			w.Header().Set(model.HeaderErrorMessage, appErr.Message)
		case errors.Is(err, apperror.ErrUpstream):
			status = http.StatusBadRequest
			errorType = model.ErrorTypeUpstream
		}

		writeJSON(w, status, model.ErrorResponse{
			Error:   errorType,
			Message: appErr.Message,
			Field:   appErr.Field,
		})
		return
	}

	// Unknown error: return a generic 500
	// NEVER expose internal error details to the client in production!
	writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{
		Error:   model.ErrorTypeInternal,
		Message: "An internal error occurred",
	})
}
