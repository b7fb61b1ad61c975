// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data, similar to classes in other languages,
// but without inheritance. Go favours composition over inheritance.
package model

// Sort and order values accepted by the GitHub user search endpoint.
// An empty string means "let GitHub decide" and is never sent upstream.
const (
	SortFollowers    = "followers"
	SortRepositories = "repositories"
	SortJoined       = "joined"

	OrderAsc  = "asc"
	OrderDesc = "desc"

	// MaxResultsPerPage is the largest per_page value GitHub accepts.
	MaxResultsPerPage = 100
)

// SearchQuery is the set of parameters for one user search.
//
// ZERO VALUES AS "NOT SET":
// ResultsPerPage and PageNumber use 0 to mean "omit from the upstream query".
// GitHub then applies its own defaults (30 per page, page 1). The same rule
// applies to Sort and Order with the empty string.
//
// The `url:"..."` tags are read by go-querystring when the service builds the
// upstream query string; `omitempty` is what drops the zero values.
type SearchQuery struct {
	Term           string `json:"term"           url:"q"`
	ResultsPerPage int    `json:"resultsPerPage" url:"per_page,omitempty"`
	PageNumber     int    `json:"pageNumber"     url:"page,omitempty"`
	Sort           string `json:"sort,omitempty" url:"sort,omitempty"`
	Order          string `json:"order,omitempty" url:"order,omitempty"`
}

// SearchResult is one page of user search results.
//
// The JSON names match GitHub's wire format, so the mid-tier API returns the
// same shape it received from upstream.
type SearchResult struct {
	TotalCount        int           `json:"total_count"`
	IncompleteResults bool          `json:"incomplete_results"`
	Items             []UserSummary `json:"items"`
}
