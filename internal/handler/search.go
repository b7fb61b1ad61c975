// Package handler contains the HTTP request handlers.
//
// HANDLER RESPONSIBILITIES:
// 1. Parse the incoming HTTP request (query params, body, headers)
// 2. Call the service or controller
// 3. Write the HTTP response (status code, headers, body)
//
// Handlers hold no business logic. Classification of upstream results happens
// in the service; handlers only translate it to status codes and headers.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/usersearch/internal/apperror"
	"github.com/sakif/usersearch/internal/model"
)

// maxQueryBodyBytes caps the size of a POST /search body.
const maxQueryBodyBytes = 1 << 16

// Searcher is the part of the search service the mid-tier API needs.
type Searcher interface {
	Search(ctx context.Context, q model.SearchQuery) (model.Outcome[model.SearchResult], error)
	GetUserDetail(ctx context.Context, login string) (model.Outcome[model.UserDetail], error)
}

// SearchHandler exposes the search service over HTTP.
type SearchHandler struct {
	searcher Searcher
	logger   *slog.Logger
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(searcher Searcher, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{
		searcher: searcher,
		logger:   logger,
	}
}

// HandleSearch runs a user search.
//
// HTTP: POST /search
// REQUEST BODY: {"term": "octocat", "resultsPerPage": 30, "pageNumber": 2}
//
// RESPONSES:
//
//	200 SearchResult JSON, with the upstream Link header copied verbatim
//	400 ErrorResponse, with ErrorMessage set when the upstream rate-limited us
func (h *SearchHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	var q model.SearchQuery

	r.Body = http.MaxBytesReader(w, r.Body, maxQueryBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		h.logger.Warn("invalid search request body", slog.String("error", err.Error()))
		writeError(w, apperror.ValidationFailed("body", "Invalid JSON body"))
		return
	}

	outcome, err := h.searcher.Search(r.Context(), q)
	if err != nil {
		writeError(w, err)
		return
	}

	if !outcome.OK() {
		writeError(w, outcome.Error())
		return
	}

	if outcome.Link != "" {
		w.Header().Set(model.HeaderLink, outcome.Link)
	}
	writeJSON(w, http.StatusOK, outcome.Value)
}

// HandleUserDetail returns one user's profile.
//
// HTTP: GET /user-detail?userLogin=octocat
func (h *SearchHandler) HandleUserDetail(w http.ResponseWriter, r *http.Request) {
	login := r.URL.Query().Get("userLogin")

	outcome, err := h.searcher.GetUserDetail(r.Context(), login)
	if err != nil {
		writeError(w, err)
		return
	}

	if !outcome.OK() {
		writeError(w, outcome.Error())
		return
	}

	writeJSON(w, http.StatusOK, outcome.Value)
}
