// Package apiclient calls the mid-tier HTTP API and turns its responses back
// into outcomes, so the search controller can work against the API exactly as
// it would against the in-process service.
package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/sakif/usersearch/internal/apperror"
	"github.com/sakif/usersearch/internal/gateway"
	"github.com/sakif/usersearch/internal/model"
)

// Paths served by the mid-tier API.
const (
	SearchPath     = "/search"
	UserDetailPath = "/user-detail"
)

// Client is a mid-tier API client.
type Client struct {
	http    *resty.Client
	baseURL string
	logger  *slog.Logger
}

// New creates a Client for the API at baseURL.
func New(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetRetryCount(0)
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	return &Client{http: c, baseURL: baseURL, logger: logger}
}

// SearchURL is the absolute URL of the search endpoint, for logging.
func (c *Client) SearchURL() string { return c.baseURL + SearchPath }

// UserDetailURL is the absolute URL of the detail endpoint, for logging.
func (c *Client) UserDetailURL() string { return c.baseURL + UserDetailPath }

// Search posts q to the API. Like the service, it returns an error only when
// the query was rejected as invalid.
func (c *Client) Search(ctx context.Context, q model.SearchQuery) (model.Outcome[model.SearchResult], error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(q).
		Post(SearchPath)
	if err != nil {
		c.logger.Error("mid-tier search request failed",
			slog.String("url", c.SearchURL()),
			slog.String("error", err.Error()),
		)
		return model.Failed[model.SearchResult](0, "api request failed", err), nil
	}
	return decodeOutcome[model.SearchResult](resp)
}

// GetUserDetail fetches one user's profile through the API.
func (c *Client) GetUserDetail(ctx context.Context, login string) (model.Outcome[model.UserDetail], error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("userLogin", login).
		Get(UserDetailPath)
	if err != nil {
		c.logger.Error("mid-tier user detail request failed",
			slog.String("url", c.UserDetailURL()),
			slog.String("error", err.Error()),
		)
		return model.Failed[model.UserDetail](0, "api request failed", err), nil
	}
	return decodeOutcome[model.UserDetail](resp)
}

// decodeOutcome rebuilds an Outcome from an API response.
//
//	200                              → Success, Link header passed along
//	400 + validation_error body      → validation error
//	400 + rate_limited body          → RateLimited, message from ErrorMessage
//	anything else                    → Failure, message from ErrorMessage if present
func decodeOutcome[T any](resp *resty.Response) (model.Outcome[T], error) {
	status := resp.StatusCode()
	reason := gateway.ReasonPhrase(resp.Status(), status)

	if status == http.StatusOK {
		var value T
		if err := json.Unmarshal(resp.Body(), &value); err != nil {
			return model.Failed[T](status, "malformed response body", fmt.Errorf("decoding api response: %w", err)), nil
		}
		return model.Succeeded(value, resp.Header().Get(model.HeaderLink)), nil
	}

	var body model.ErrorResponse
	_ = json.Unmarshal(resp.Body(), &body) // the body is optional

	message := resp.Header().Get(model.HeaderErrorMessage)

	switch body.Error {
	case model.ErrorTypeValidation:
		return model.Outcome[T]{}, apperror.ValidationFailed(body.Field, body.Message)
	case model.ErrorTypeRateLimited:
		outcome := model.RateLimited[T](status, reason)
		if message != "" {
			outcome.Message = message
		}
		return outcome, nil
	}

	outcome := model.Failed[T](status, reason, nil)
	outcome.Message = message
	return outcome, nil
}
