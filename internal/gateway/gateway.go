// Package gateway issues outbound GET requests to the upstream search API.
//
// The gateway does not interpret responses: a 403 or a 500 is returned as a
// Response just like a 200. Only a transport failure (DNS, refused connection,
// timeout) produces an error. Classifying responses is the service's job.
package gateway

import (
	"context"
	"net/http"
	"strconv"
	"strings"
)

// Response is the raw upstream response.
type Response struct {
	StatusCode int
	// ReasonPhrase is the text after the status code in the status line,
	// e.g. "rate limit exceeded" for "403 rate limit exceeded".
	ReasonPhrase string
	Header       http.Header
	Body         []byte
}

// IsSuccess reports whether the status code is 2xx.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Client represents the one operation the service needs from HTTP:
// a GET with a fixed set of headers.
type Client interface {
	Get(ctx context.Context, url string, headers map[string]string) (*Response, error)
}

// ReasonPhrase extracts the reason phrase from a status line such as
// "403 rate limit exceeded". When the status line carries no text it falls
// back to the standard text for the code.
func ReasonPhrase(status string, code int) string {
	reason := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(status), strconv.Itoa(code)))
	if reason == "" {
		return http.StatusText(code)
	}
	return reason
}
