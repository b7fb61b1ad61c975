package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sakif/usersearch/internal/controller"
	"github.com/sakif/usersearch/internal/model"
	"github.com/sakif/usersearch/internal/notify"
)

func TestRenderSearch(t *testing.T) {
	var buf bytes.Buffer
	renderSearch(&buf, &controller.SearchViewState{
		Term:         "octocat",
		CurrentPage:  1,
		TotalResults: 1000,
		Elapsed:      "User Search Web API Execution: 120ms",
		Pagination:   model.PaginationLinks{Next: "2", Last: "34"},
		Items: []model.UserSummary{
			{Login: "octocat", HTMLURL: "https://github.com/octocat"},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "1000 users, page 1")
	assert.Contains(t, out, "octocat")
	assert.Contains(t, out, "https://github.com/octocat")
	assert.Contains(t, out, "next=2")
	assert.Contains(t, out, "last=34")
	assert.NotContains(t, out, "first=")
	assert.NotContains(t, out, "prev=")
	assert.Contains(t, out, "120ms")
}

func TestRenderSearch_FailureSkipsItems(t *testing.T) {
	var buf bytes.Buffer
	renderSearch(&buf, &controller.SearchViewState{
		Term:    "octocat",
		Elapsed: "User Search Web API Execution: 5ms",
		Error:   "Search limit exceeded. Wait one minute",
		Items:   []model.UserSummary{{Login: "stale"}},
	})

	assert.NotContains(t, buf.String(), "stale")
}

func TestRenderUser(t *testing.T) {
	var buf bytes.Buffer
	renderUser(&buf, &controller.UserInfoViewState{
		Elapsed: "User Detail Web API Execution: 8ms",
		User: &model.UserDetail{
			UserSummary: model.UserSummary{Login: "octocat", HTMLURL: "https://github.com/octocat"},
			Name:        "The Octocat",
			PublicRepos: 8,
		},
	})

	out := buf.String()
	assert.Contains(t, out, "The Octocat")
	assert.Contains(t, out, "Repos")
	assert.NotContains(t, out, "Company")
	assert.NotContains(t, out, "Joined")
}

func TestNewSink(t *testing.T) {
	var buf bytes.Buffer

	quiet := newSink(true, &buf)
	assert.Equal(t, notify.Discard{}, quiet)
	quiet.Success("3 users in 42ms")
	quiet.Error("Search limit exceeded. Wait one minute")
	assert.Empty(t, buf.String())

	loud := newSink(false, &buf)
	loud.Success("3 users in 42ms")
	assert.Contains(t, buf.String(), "3 users in 42ms")
}
