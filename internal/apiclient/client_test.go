package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/usersearch/internal/apperror"
	"github.com/sakif/usersearch/internal/model"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func writeErrorResponse(w http.ResponseWriter, errorType, message, header string) {
	if header != "" {
		w.Header().Set(model.HeaderErrorMessage, header)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(model.ErrorResponse{Error: errorType, Message: message})
}

func TestClient_Search_Success(t *testing.T) {
	const link = `<https://api.github.com/search/users?q=go&page=2>; rel="next"`
	var got model.SearchQuery

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, SearchPath, r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set(model.HeaderLink, link)
		_ = json.NewEncoder(w).Encode(model.SearchResult{
			TotalCount: 2,
			Items:      []model.UserSummary{{Login: "gopher"}, {Login: "golang"}},
		})
	})

	outcome, err := c.Search(context.Background(), model.SearchQuery{Term: "go", ResultsPerPage: 30, PageNumber: 1})
	require.NoError(t, err)

	assert.True(t, outcome.OK())
	assert.Equal(t, link, outcome.Link)
	assert.Equal(t, 2, outcome.Value.TotalCount)
	assert.Len(t, outcome.Value.Items, 2)
	assert.Equal(t, model.SearchQuery{Term: "go", ResultsPerPage: 30, PageNumber: 1}, got)
}

func TestClient_Search_Errors(t *testing.T) {
	tests := []struct {
		name        string
		handler     http.HandlerFunc
		wantKind    model.OutcomeKind
		wantStatus  int
		wantMessage string
	}{
		{
			name: "rate limited with header",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeErrorResponse(w, model.ErrorTypeRateLimited, apperror.RateLimitMessage, apperror.RateLimitMessage)
			},
			wantKind:    model.OutcomeRateLimited,
			wantStatus:  http.StatusBadRequest,
			wantMessage: apperror.RateLimitMessage,
		},
		{
			name: "rate limited header text wins",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeErrorResponse(w, model.ErrorTypeRateLimited, "body text", "Slow down")
			},
			wantKind:    model.OutcomeRateLimited,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Slow down",
		},
		{
			name: "upstream failure without header",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeErrorResponse(w, model.ErrorTypeUpstream, "upstream request failed: 422 Unprocessable Entity", "")
			},
			wantKind:    model.OutcomeFailure,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "",
		},
		{
			name: "plain 400 without body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
			},
			wantKind:   model.OutcomeFailure,
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "500",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			wantKind:   model.OutcomeFailure,
			wantStatus: http.StatusInternalServerError,
		},
		{
			name: "malformed 200 body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("{not json"))
			},
			wantKind:   model.OutcomeFailure,
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, tt.handler)

			outcome, err := c.Search(context.Background(), model.SearchQuery{Term: "go"})
			require.NoError(t, err)

			assert.Equal(t, tt.wantKind, outcome.Kind)
			assert.Equal(t, tt.wantStatus, outcome.StatusCode)
			assert.Equal(t, tt.wantMessage, outcome.Message)
			assert.Empty(t, outcome.Link)
		})
	}
}

func TestClient_Search_ValidationError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(model.ErrorResponse{
			Error:   model.ErrorTypeValidation,
			Message: "Search term missing",
			Field:   "term",
		})
	})

	_, err := c.Search(context.Background(), model.SearchQuery{})

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrValidation))
	assert.Equal(t, "Search term missing", err.Error())

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "term", appErr.Field)
}

func TestClient_Search_IncompleteResultsKeepOrder(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"total_count":4,"incomplete_results":true,"items":[
			{"login":"zed","id":4},
			{"login":"alice","id":1},
			{"login":"mallory","id":3},
			{"login":"bob","id":2}
		]}`)
	})

	outcome, err := c.Search(context.Background(), model.SearchQuery{Term: "a", ResultsPerPage: 30, PageNumber: 1})
	require.NoError(t, err)
	require.Equal(t, model.OutcomeSuccess, outcome.Kind)

	assert.True(t, outcome.Value.IncompleteResults)
	assert.Equal(t, 4, outcome.Value.TotalCount)

	var logins []string
	for _, u := range outcome.Value.Items {
		logins = append(logins, u.Login)
	}
	assert.Equal(t, []string{"zed", "alice", "mallory", "bob"}, logins)
}

func TestClient_Search_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(url, time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))

	outcome, err := c.Search(context.Background(), model.SearchQuery{Term: "go"})
	require.NoError(t, err)

	assert.Equal(t, model.OutcomeFailure, outcome.Kind)
	assert.Zero(t, outcome.StatusCode)
	assert.Error(t, outcome.Err)
}

func TestClient_GetUserDetail(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, UserDetailPath, r.URL.Path)
		assert.Equal(t, "octo cat", r.URL.Query().Get("userLogin"))

		_ = json.NewEncoder(w).Encode(model.UserDetail{
			UserSummary: model.UserSummary{Login: "octo cat"},
			Name:        "Spaced Out",
		})
	})

	outcome, err := c.GetUserDetail(context.Background(), "octo cat")
	require.NoError(t, err)

	assert.True(t, outcome.OK())
	assert.Equal(t, "Spaced Out", outcome.Value.Name)
}

func TestClient_URLs(t *testing.T) {
	c := New("http://localhost:5188/", 0, slog.New(slog.NewTextHandler(io.Discard, nil)))

	assert.Equal(t, "http://localhost:5188/search", c.SearchURL())
	assert.Equal(t, "http://localhost:5188/user-detail", c.UserDetailURL())
}
