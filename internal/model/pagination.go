package model

// PaginationLinks holds the page numbers of the four standard relations of a
// Link header. An empty string means the relation was absent, which is normal:
// the first page has no "prev" and a single page of results has no "next".
type PaginationLinks struct {
	First string `json:"first"`
	Prev  string `json:"prev"`
	Next  string `json:"next"`
	Last  string `json:"last"`
}
