package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sakif/usersearch/internal/apperror"
)

func TestOutcomeError(t *testing.T) {
	tests := []struct {
		name    string
		outcome Outcome[SearchResult]
		target  error
		message string
	}{
		{
			name:    "rate limited maps to ErrRateLimited",
			outcome: RateLimited[SearchResult](403, "rate limit exceeded"),
			target:  apperror.ErrRateLimited,
			message: apperror.RateLimitMessage,
		},
		{
			name:    "failure maps to ErrUpstream",
			outcome: Failed[SearchResult](500, "Internal Server Error", nil),
			target:  apperror.ErrUpstream,
			message: "upstream request failed: 500 Internal Server Error",
		},
		{
			name: "failure keeps a supplied message",
			outcome: Outcome[SearchResult]{
				Kind:       OutcomeFailure,
				StatusCode: 400,
				Message:    "something the mid-tier said",
			},
			target:  apperror.ErrUpstream,
			message: "something the mid-tier said",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.outcome.Error()
			assert.True(t, errors.Is(err, tt.target))
			assert.Equal(t, tt.message, err.Error())
			assert.False(t, tt.outcome.OK())
		})
	}
}

func TestOutcomeSuccess(t *testing.T) {
	o := Succeeded(SearchResult{TotalCount: 2}, `<https://x/?page=2>; rel="next"`)

	assert.True(t, o.OK())
	assert.NoError(t, o.Error())
	assert.Equal(t, 2, o.Value.TotalCount)
	assert.Equal(t, "success", o.Kind.String())
}
