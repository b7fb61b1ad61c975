package model

// Headers used between the mid-tier API and its callers.
const (
	// HeaderLink carries the upstream pagination header, passed through as-is.
	HeaderLink = "Link"
	// HeaderErrorMessage carries a caller-facing message on failed responses.
	HeaderErrorMessage = "ErrorMessage"
)

// Machine-readable error types used in ErrorResponse.Error.
const (
	ErrorTypeValidation  = "validation_error"
	ErrorTypeRateLimited = "rate_limited"
	ErrorTypeUpstream    = "upstream_error"
	ErrorTypeInternal    = "internal_error"
)

// ErrorResponse is the standard error body returned by all API endpoints.
type ErrorResponse struct {
	Error   string `json:"error"`           // Machine-readable error type (e.g., "rate_limited")
	Message string `json:"message"`         // Human-readable description
	Field   string `json:"field,omitempty"` // Input field that failed validation, if any
}
