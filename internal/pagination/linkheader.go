// Package pagination turns an HTTP Link header into page numbers a UI can bind to.
//
// GitHub paginates search results with a header such as:
//
//	Link: <https://api.github.com/search/users?q=go&page=2>; rel="next",
//	      <https://api.github.com/search/users?q=go&page=34>; rel="last"
//
// There is no cursor: each relation points at a URL whose "page" query
// parameter is the page number. The relations appear in no particular order.
package pagination

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/sakif/usersearch/internal/model"
)

// Relation names used by GitHub.
const (
	RelFirst = "first"
	RelPrev  = "prev"
	RelNext  = "next"
	RelLast  = "last"
)

// Link is one parsed entry of a Link header.
type Link struct {
	URL    *url.URL
	Rels   []string          // a rel attribute may hold several space-separated types
	Params map[string]string // every other attribute, keys lower-cased
}

// HasRel reports whether the link carries the given relation type.
func (l Link) HasRel(rel string) bool {
	for _, r := range l.Rels {
		if strings.EqualFold(r, rel) {
			return true
		}
	}
	return false
}

// Page returns the value of the link's "page" query parameter if it is a
// positive integer.
func (l Link) Page() (string, bool) {
	raw := l.URL.Query().Get("page")
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return "", false
	}
	return strconv.Itoa(n), true
}

// ParseLinks parses every well-formed entry of a raw Link header value.
// Malformed entries are skipped; an empty header yields nil.
func ParseLinks(raw string) []Link {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	var links []Link
	for _, entry := range splitEntries(raw) {
		if link, ok := parseEntry(entry); ok {
			links = append(links, link)
		}
	}
	return links
}

// ParseLinkHeader extracts the first/prev/next/last page numbers from a raw
// Link header value. Relations that are absent, or whose URL has no usable
// page parameter, come back as empty strings. It never fails.
func ParseLinkHeader(raw string) model.PaginationLinks {
	links := ParseLinks(raw)
	return model.PaginationLinks{
		First: pageFor(links, RelFirst),
		Prev:  pageFor(links, RelPrev),
		Next:  pageFor(links, RelNext),
		Last:  pageFor(links, RelLast),
	}
}

// pageFor returns the page of the first link carrying rel with a valid page.
func pageFor(links []Link, rel string) string {
	for _, l := range links {
		if !l.HasRel(rel) {
			continue
		}
		if page, ok := l.Page(); ok {
			return page
		}
	}
	return ""
}

// splitEntries splits at each comma whose next non-space character is '<'.
// Commas inside a URL or a quoted attribute never start a new entry, and an
// entry left unterminated by a stray '<' or '"' cannot swallow the entries
// after it.
func splitEntries(raw string) []string {
	var (
		entries []string
		start   int
	)
	for i := 0; i < len(raw); i++ {
		if raw[i] != ',' {
			continue
		}
		if rest := strings.TrimLeft(raw[i+1:], " \t"); strings.HasPrefix(rest, "<") {
			entries = append(entries, raw[start:i])
			start = i + 1
		}
	}
	return append(entries, raw[start:])
}

// parseEntry parses `<URL>; rel="name"; other=value`.
func parseEntry(entry string) (Link, bool) {
	entry = strings.TrimSpace(entry)
	if !strings.HasPrefix(entry, "<") {
		return Link{}, false
	}
	end := strings.Index(entry, ">")
	if end < 0 {
		return Link{}, false
	}

	target, err := url.Parse(strings.TrimSpace(entry[1:end]))
	if err != nil {
		return Link{}, false
	}

	link := Link{URL: target, Params: make(map[string]string)}
	for _, attr := range strings.Split(entry[end+1:], ";") {
		key, value, found := strings.Cut(strings.TrimSpace(attr), "=")
		if !found {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.Trim(strings.TrimSpace(value), `"`)
		if key == "rel" {
			link.Rels = append(link.Rels, strings.Fields(value)...)
			continue
		}
		link.Params[key] = value
	}

	if len(link.Rels) == 0 {
		return Link{}, false
	}
	return link, true
}
