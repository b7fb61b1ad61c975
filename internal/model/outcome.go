package model

import "github.com/sakif/usersearch/internal/apperror"

// OutcomeKind classifies the result of one upstream call.
type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeRateLimited
	OutcomeFailure
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeRateLimited:
		return "rate_limited"
	case OutcomeFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Outcome is what a search or detail lookup produced. It is the contract
// between the orchestrator and whoever consumes it, in-process or over HTTP.
//
// Only the fields relevant to Kind are populated:
//   - Success:     Value, and Link when the upstream sent one
//   - RateLimited: StatusCode, Reason, Message
//   - Failure:     StatusCode (0 if no response arrived), Reason, optional Message, Err
type Outcome[T any] struct {
	Kind  OutcomeKind
	Value T

	// Link is the raw Link header value, passed through unparsed.
	Link string

	StatusCode int
	Reason     string

	// Message is the caller-facing text, if the producer supplied one.
	Message string

	// Err is the underlying cause for transport or decode failures.
	Err error
}

// Succeeded builds a success outcome.
func Succeeded[T any](value T, link string) Outcome[T] {
	return Outcome[T]{Kind: OutcomeSuccess, Value: value, Link: link}
}

// RateLimited builds a rate-limited outcome carrying the fixed caller-facing message.
func RateLimited[T any](statusCode int, reason string) Outcome[T] {
	return Outcome[T]{
		Kind:       OutcomeRateLimited,
		StatusCode: statusCode,
		Reason:     reason,
		Message:    apperror.RateLimitMessage,
	}
}

// Failed builds a failure outcome. cause may be nil.
func Failed[T any](statusCode int, reason string, cause error) Outcome[T] {
	return Outcome[T]{
		Kind:       OutcomeFailure,
		StatusCode: statusCode,
		Reason:     reason,
		Err:        cause,
	}
}

// OK reports whether the outcome is a success.
func (o Outcome[T]) OK() bool {
	return o.Kind == OutcomeSuccess
}

// Error maps a non-success outcome onto the apperror taxonomy.
// It returns nil for a success.
func (o Outcome[T]) Error() error {
	switch o.Kind {
	case OutcomeSuccess:
		return nil
	case OutcomeRateLimited:
		return apperror.RateLimited(o.StatusCode, o.Reason)
	default:
		appErr := apperror.UpstreamFailure(o.StatusCode, o.Reason)
		if o.Message != "" {
			appErr.Message = o.Message
		}
		return appErr
	}
}
