package notify

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecorder(t *testing.T) {
	var r Recorder
	r.Success("3 users in 12ms")
	r.Error("Search limit exceeded. Wait one minute")

	got := r.Notifications()
	assert.Equal(t, []Notification{
		{Level: LevelSuccess, Message: "3 users in 12ms"},
		{Level: LevelError, Message: "Search limit exceeded. Wait one minute"},
	}, got)

	// The returned slice is a copy.
	got[0].Message = "changed"
	assert.Equal(t, "3 users in 12ms", r.Notifications()[0].Message)
}

func TestRecorderEmpty(t *testing.T) {
	var r Recorder
	assert.Empty(t, r.Notifications())
}

func TestTerminal(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf)

	term.Success("User detail in 5ms")
	term.Error("Search failed")

	out := buf.String()
	assert.Contains(t, out, "User detail in 5ms")
	assert.Contains(t, out, "Search failed")
}

func TestSinksSatisfyInterface(t *testing.T) {
	var _ Sink = (*Recorder)(nil)
	var _ Sink = (*Terminal)(nil)
	var _ Sink = Discard{}
}
