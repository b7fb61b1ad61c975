package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrValidation  = errors.New("Validation Error")
	ErrRateLimited = errors.New("rate limited")
	ErrUpstream    = errors.New("upstream failure")
)

// RateLimitMessage is the caller-facing text attached to rate-limited responses.
const RateLimitMessage = "Search limit exceeded. Wait one minute"

type AppError struct {
	Err     error  // actual error
	Message string // Human-readable error message
	Field   string // Optional: field causing the error

	// StatusCode and Reason describe the upstream response that produced the
	// error. StatusCode is 0 when no response was received.
	StatusCode int
	Reason     string
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// RateLimited returns an AppError for an upstream rate-limit response.
// HTTP handlers surface Message through the ErrorMessage header.
func RateLimited(statusCode int, reason string) *AppError {
	return &AppError{
		Err:        ErrRateLimited,
		Message:    RateLimitMessage,
		StatusCode: statusCode,
		Reason:     reason,
	}
}

// UpstreamFailure returns an AppError for any other upstream failure,
// including transport errors (statusCode 0).
func UpstreamFailure(statusCode int, reason string) *AppError {
	msg := fmt.Sprintf("upstream request failed: %d %s", statusCode, reason)
	if statusCode == 0 {
		msg = fmt.Sprintf("upstream request failed: %s", reason)
	}
	return &AppError{
		Err:        ErrUpstream,
		Message:    msg,
		StatusCode: statusCode,
		Reason:     reason,
	}
}
