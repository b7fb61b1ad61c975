// Package service contains the business logic layer of the application.
//
// THE LAYERS:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (business layer) → validates, builds upstream requests, classifies results
//	Gateway (transport)      → sends the raw GET to the upstream API
//
// The service never touches net/http request or response writers, and the
// gateway never decides whether a response is good or bad. That split lets the
// service be tested with a fake gateway and plain function calls.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v73/github"
	"github.com/google/go-querystring/query"

	"github.com/sakif/usersearch/internal/apperror"
	"github.com/sakif/usersearch/internal/gateway"
	"github.com/sakif/usersearch/internal/metrics"
	"github.com/sakif/usersearch/internal/model"
)

// rateLimitReason is the exact reason phrase GitHub sends with a 403 when the
// search quota is exhausted. The comparison is case-sensitive.
const rateLimitReason = "rate limit exceeded"

// reasonMalformedBody is the failure reason for a 2xx whose body does not decode.
const reasonMalformedBody = "malformed response body"

// Endpoint names used for logging and metrics.
const (
	endpointSearch = "search"
	endpointUser   = "user"
)

// Upstream describes where and how the service reaches the upstream API.
type Upstream struct {
	SearchURL string
	UserURL   string
	Headers   map[string]string
}

// SearchService orchestrates user searches and user-detail lookups.
type SearchService struct {
	gateway  gateway.Client
	upstream Upstream
	logger   *slog.Logger
	now      func() time.Time
}

// NewSearchService creates a new SearchService.
func NewSearchService(gw gateway.Client, upstream Upstream, logger *slog.Logger) *SearchService {
	return &SearchService{
		gateway:  gw,
		upstream: upstream,
		logger:   logger,
		now:      time.Now,
	}
}

// Search runs a user search.
//
// The returned error is only ever a validation error: an invalid query is
// rejected before any network call. Everything that happens upstream,
// including rate limiting, is reported through the Outcome.
func (s *SearchService) Search(ctx context.Context, q model.SearchQuery) (model.Outcome[model.SearchResult], error) {
	q.Term = strings.TrimSpace(q.Term)
	if err := validateQuery(q); err != nil {
		return model.Outcome[model.SearchResult]{}, err
	}

	target, err := s.searchURL(q)
	if err != nil {
		return model.Outcome[model.SearchResult]{}, fmt.Errorf("building search url: %w", err)
	}

	outcome := fetch(ctx, s, endpointSearch, target, func(body []byte) (model.SearchResult, error) {
		var gh github.UsersSearchResult
		if err := json.Unmarshal(body, &gh); err != nil {
			return model.SearchResult{}, err
		}
		return searchResultFromGitHub(&gh), nil
	})

	if outcome.OK() {
		s.logger.Info("user search complete",
			slog.String("term", q.Term),
			slog.Int("page", q.PageNumber),
			slog.Int("totalCount", outcome.Value.TotalCount),
			slog.Int("items", len(outcome.Value.Items)),
			slog.Bool("hasLink", outcome.Link != ""),
		)
	}
	return outcome, nil
}

// GetUserDetail fetches the extended profile of one user.
func (s *SearchService) GetUserDetail(ctx context.Context, login string) (model.Outcome[model.UserDetail], error) {
	login = strings.TrimSpace(login)
	if login == "" {
		return model.Outcome[model.UserDetail]{}, apperror.ValidationFailed("login", "User login missing")
	}

	target := strings.TrimRight(s.upstream.UserURL, "/") + "/" + url.PathEscape(login)

	return fetch(ctx, s, endpointUser, target, func(body []byte) (model.UserDetail, error) {
		var gh github.User
		if err := json.Unmarshal(body, &gh); err != nil {
			return model.UserDetail{}, err
		}
		return userDetailFromGitHub(&gh), nil
	}), nil
}

// fetch performs the GET and classifies the response. It is a function rather
// than a method because Go methods cannot have type parameters.
func fetch[T any](ctx context.Context, s *SearchService, endpoint, target string, decode func([]byte) (T, error)) model.Outcome[T] {
	start := s.now()
	outcome := classify(ctx, s, endpoint, target, decode)
	metrics.ObserveUpstream(endpoint, outcome.Kind.String(), s.now().Sub(start))
	return outcome
}

func classify[T any](ctx context.Context, s *SearchService, endpoint, target string, decode func([]byte) (T, error)) model.Outcome[T] {
	resp, err := s.gateway.Get(ctx, target, s.upstream.Headers)
	if err != nil {
		s.logger.Error("upstream request failed",
			slog.String("endpoint", endpoint),
			slog.String("url", target),
			slog.String("error", err.Error()),
		)
		return model.Failed[T](0, transportReason(err), err)
	}

	if !resp.IsSuccess() {
		s.logger.Error("upstream returned an error status",
			slog.String("endpoint", endpoint),
			slog.String("url", target),
			slog.Int("status", resp.StatusCode),
			slog.String("reason", resp.ReasonPhrase),
			slog.String("rateLimitRemaining", resp.Header.Get("X-RateLimit-Remaining")),
			slog.String("rateLimitReset", resp.Header.Get("X-RateLimit-Reset")),
		)
		if isRateLimited(resp) {
			return model.RateLimited[T](resp.StatusCode, resp.ReasonPhrase)
		}
		return model.Failed[T](resp.StatusCode, resp.ReasonPhrase, nil)
	}

	value, err := decode(resp.Body)
	if err != nil {
		s.logger.Error("failed to decode upstream response",
			slog.String("endpoint", endpoint),
			slog.String("url", target),
			slog.Int("status", resp.StatusCode),
			slog.String("error", err.Error()),
		)
		return model.Failed[T](resp.StatusCode, reasonMalformedBody, err)
	}

	return model.Succeeded(value, resp.Header.Get("Link"))
}

// isRateLimited reports whether resp is GitHub's rate-limit response.
//
// Only the exact reason phrase counts. GitHub also sends
// X-RateLimit-Remaining: 0, but until its signalling is confirmed the header
// is logged, not used for classification.
func isRateLimited(resp *gateway.Response) bool {
	return resp.StatusCode == http.StatusForbidden && resp.ReasonPhrase == rateLimitReason
}

func transportReason(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "upstream request timed out"
	case errors.Is(err, context.Canceled):
		return "upstream request canceled"
	default:
		return "upstream request failed"
	}
}

// searchURL builds <search-base>?q=<term>[&per_page=n][&page=n][&sort=..][&order=..].
// Zero and empty values are left out entirely rather than sent as "0" or "".
func (s *SearchService) searchURL(q model.SearchQuery) (string, error) {
	base, err := url.Parse(s.upstream.SearchURL)
	if err != nil {
		return "", err
	}
	values, err := query.Values(q)
	if err != nil {
		return "", err
	}
	base.RawQuery = values.Encode()
	return base.String(), nil
}

func validateQuery(q model.SearchQuery) error {
	if q.Term == "" {
		return apperror.ValidationFailed("term", "Search term missing")
	}
	if q.ResultsPerPage < 0 || q.ResultsPerPage > model.MaxResultsPerPage {
		return apperror.ValidationFailed("resultsPerPage",
			fmt.Sprintf("results per page must be between 0 and %d", model.MaxResultsPerPage))
	}
	if q.PageNumber < 0 {
		return apperror.ValidationFailed("pageNumber", "page number must not be negative")
	}
	switch q.Sort {
	case "", model.SortFollowers, model.SortRepositories, model.SortJoined:
	default:
		return apperror.ValidationFailed("sort", "sort must be one of: followers, repositories, joined")
	}
	switch q.Order {
	case "", model.OrderAsc, model.OrderDesc:
	default:
		return apperror.ValidationFailed("order", "order must be one of: asc, desc")
	}
	return nil
}

func searchResultFromGitHub(gh *github.UsersSearchResult) model.SearchResult {
	items := make([]model.UserSummary, 0, len(gh.Users))
	for _, u := range gh.Users {
		if u == nil {
			continue
		}
		items = append(items, userSummaryFromGitHub(u))
	}
	return model.SearchResult{
		TotalCount:        gh.GetTotal(),
		IncompleteResults: gh.GetIncompleteResults(),
		Items:             items,
	}
}

func userSummaryFromGitHub(u *github.User) model.UserSummary {
	return model.UserSummary{
		Login:     u.GetLogin(),
		ID:        u.GetID(),
		AvatarURL: u.GetAvatarURL(),
		HTMLURL:   u.GetHTMLURL(),
		Type:      u.GetType(),
	}
}

func userDetailFromGitHub(u *github.User) model.UserDetail {
	return model.UserDetail{
		UserSummary: userSummaryFromGitHub(u),
		Name:        u.GetName(),
		Company:     u.GetCompany(),
		Location:    u.GetLocation(),
		Email:       u.GetEmail(),
		Bio:         u.GetBio(),
		Followers:   u.GetFollowers(),
		Following:   u.GetFollowing(),
		CreatedAt:   u.GetCreatedAt().Time,
		PublicRepos: u.GetPublicRepos(),
	}
}
