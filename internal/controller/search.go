// Package controller drives a search from the user's side: it validates input,
// calls the backend, times the call, turns the Link header into pagination
// targets and tells the user how it went.
//
// A controller keeps no state between calls. Every action builds a fresh view
// state, so one controller can serve any number of requests.
package controller

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/usersearch/internal/apperror"
	"github.com/sakif/usersearch/internal/model"
	"github.com/sakif/usersearch/internal/notify"
	"github.com/sakif/usersearch/internal/pagination"
)

const (
	// DefaultPageSize is the number of results requested per page.
	DefaultPageSize = 30

	// FallbackErrorMessage is shown when a failure carries no message of its own.
	FallbackErrorMessage = "Search failed. Please try again"
)

// Backend is what the controller searches against. Both the in-process
// service and the mid-tier API client satisfy it.
type Backend interface {
	Search(ctx context.Context, q model.SearchQuery) (model.Outcome[model.SearchResult], error)
	GetUserDetail(ctx context.Context, login string) (model.Outcome[model.UserDetail], error)
}

// SearchViewState is everything a page needs to render one page of results.
type SearchViewState struct {
	ActionID     string                `json:"actionId"`
	Term         string                `json:"term"`
	CurrentPage  int                   `json:"currentPage"`
	TotalResults int                   `json:"totalResults"`
	Elapsed      string                `json:"elapsed"`
	Pagination   model.PaginationLinks `json:"pagination"`
	Items        []model.UserSummary   `json:"items"`
	// Error is the message shown to the user when the search failed.
	Error string `json:"error,omitempty"`
}

// UserInfoViewState is what a page needs to render one user's details.
type UserInfoViewState struct {
	ActionID string            `json:"actionId"`
	Login    string            `json:"login"`
	Elapsed  string            `json:"elapsed"`
	User     *model.UserDetail `json:"user,omitempty"`
	Error    string            `json:"error,omitempty"`
}

// SearchController runs searches and user lookups for one notification sink.
type SearchController struct {
	backend  Backend
	sink     notify.Sink
	logger   *slog.Logger
	pageSize int
	now      func() time.Time
}

// Option configures a SearchController.
type Option func(*SearchController)

// WithPageSize overrides DefaultPageSize. Values outside 1..100 are ignored.
func WithPageSize(n int) Option {
	return func(c *SearchController) {
		if n > 0 && n <= model.MaxResultsPerPage {
			c.pageSize = n
		}
	}
}

// WithClock replaces time.Now, for deterministic elapsed times in tests.
func WithClock(now func() time.Time) Option {
	return func(c *SearchController) {
		c.now = now
	}
}

// New creates a SearchController.
func New(backend Backend, sink notify.Sink, logger *slog.Logger, opts ...Option) *SearchController {
	c := &SearchController{
		backend:  backend,
		sink:     sink,
		logger:   logger,
		pageSize: DefaultPageSize,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RunSearch fetches one page of results for term.
//
// A blank term or a page below 1 is rejected before any call is made. Upstream
// failures are not errors here: they are reported to the sink and reflected in
// the returned view state, with the pagination targets left empty.
func (c *SearchController) RunSearch(ctx context.Context, term string, page int) (*SearchViewState, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		c.logger.Error("Search term missing")
		return nil, apperror.ValidationFailed("term", "Search term missing")
	}
	if page < 1 {
		c.logger.Error("Search component missing", slog.Int("page", page))
		return nil, apperror.ValidationFailed("page", "Search component missing")
	}

	state := &SearchViewState{
		ActionID:    xid.New().String(),
		Term:        term,
		CurrentPage: page,
		Items:       []model.UserSummary{},
	}

	query := model.SearchQuery{
		Term:           term,
		ResultsPerPage: c.pageSize,
		PageNumber:     page,
	}

	start := c.now()
	outcome, err := c.backend.Search(ctx, query)
	queryTime := formatElapsed(c.now().Sub(start))
	state.Elapsed = "User Search Web API Execution: " + queryTime

	if err != nil {
		return nil, fmt.Errorf("searching users: %w", err)
	}

	if !outcome.OK() {
		state.Error = c.reportFailure("search", state.ActionID, outcome.Kind, outcome.StatusCode, outcome.Reason, outcome.Message,
			slog.String("url", backendURL(c.backend, "search")),
			slog.String("term", query.Term),
			slog.Int("resultsPerPage", query.ResultsPerPage),
			slog.Int("pageNumber", query.PageNumber),
		)
		return state, nil
	}

	state.TotalResults = outcome.Value.TotalCount
	if outcome.Value.Items != nil {
		state.Items = outcome.Value.Items
	}
	state.Pagination = pagination.ParseLinkHeader(outcome.Link)

	c.sink.Success(fmt.Sprintf("%d users in %s", len(state.Items), queryTime))
	c.logger.Info("search rendered",
		slog.String("actionId", state.ActionID),
		slog.String("term", term),
		slog.Int("page", page),
		slog.Int("totalResults", state.TotalResults),
		slog.String("elapsed", queryTime),
	)
	return state, nil
}

// Navigate moves to another page of an existing search. currentPage comes
// straight from a query string and must parse as a page number.
func (c *SearchController) Navigate(ctx context.Context, term, currentPage string) (*SearchViewState, error) {
	if strings.TrimSpace(term) == "" {
		c.logger.Error("Search term missing")
		return nil, apperror.ValidationFailed("term", "Search term missing")
	}

	page, err := strconv.Atoi(strings.TrimSpace(currentPage))
	if err != nil {
		c.logger.Error("Search component missing - CurrentPage", slog.String("currentPage", currentPage))
		return nil, apperror.ValidationFailed("currentPage", "Search component missing")
	}

	return c.RunSearch(ctx, term, page)
}

// UserInfo fetches the details of one user.
func (c *SearchController) UserInfo(ctx context.Context, login string) (*UserInfoViewState, error) {
	login = strings.TrimSpace(login)
	if login == "" {
		c.logger.Error("User login missing")
		return nil, apperror.ValidationFailed("login", "User login missing")
	}

	state := &UserInfoViewState{
		ActionID: xid.New().String(),
		Login:    login,
	}

	start := c.now()
	outcome, err := c.backend.GetUserDetail(ctx, login)
	queryTime := formatElapsed(c.now().Sub(start))
	state.Elapsed = "User Detail Web API Execution: " + queryTime

	if err != nil {
		return nil, fmt.Errorf("fetching user detail: %w", err)
	}

	if !outcome.OK() {
		state.Error = c.reportFailure("user detail", state.ActionID, outcome.Kind, outcome.StatusCode, outcome.Reason, outcome.Message,
			slog.String("url", backendURL(c.backend, "user-detail")),
			slog.String("login", login),
		)
		return state, nil
	}

	user := outcome.Value
	state.User = &user
	c.sink.Success("User detail in " + queryTime)
	return state, nil
}

// reportFailure notifies the sink and logs the failure. It returns the
// message shown to the user.
func (c *SearchController) reportFailure(action, actionID string, kind model.OutcomeKind, status int, reason, message string, attrs ...any) string {
	shown := message
	if shown == "" {
		c.logger.Error("call failed with no provided detail from the API",
			slog.String("action", action),
			slog.String("actionId", actionID),
		)
		shown = FallbackErrorMessage
	}
	c.sink.Error(shown)

	attrs = append(attrs,
		slog.String("action", action),
		slog.String("actionId", actionID),
		slog.String("outcome", kind.String()),
		slog.Int("status", status),
		slog.String("reason", reason),
		slog.String("message", message),
	)
	c.logger.Error("call failed", attrs...)
	return shown
}

// backendURL asks the backend for the endpoint URL when it knows one.
func backendURL(b Backend, endpoint string) string {
	switch endpoint {
	case "search":
		if u, ok := b.(interface{ SearchURL() string }); ok {
			return u.SearchURL()
		}
	case "user-detail":
		if u, ok := b.(interface{ UserDetailURL() string }); ok {
			return u.UserDetailURL()
		}
	}
	return "in-process"
}

func formatElapsed(d time.Duration) string {
	return strconv.FormatInt(d.Milliseconds(), 10) + "ms"
}
