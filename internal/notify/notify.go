// Package notify delivers success and failure messages to whoever is showing
// results to the user: a JSON view, a terminal, or nobody at all.
package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Level is the severity of a notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notification is one message for the user.
type Notification struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Sink receives notifications.
type Sink interface {
	Success(message string)
	Error(message string)
}

// Recorder collects notifications in memory so they can be returned with a
// view state. It is safe for concurrent use.
type Recorder struct {
	mu    sync.Mutex
	items []Notification
}

func (r *Recorder) Success(message string) { r.add(LevelSuccess, message) }
func (r *Recorder) Error(message string)   { r.add(LevelError, message) }

func (r *Recorder) add(level Level, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, Notification{Level: level, Message: message})
}

// Notifications returns a copy of everything recorded so far.
func (r *Recorder) Notifications() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.items...)
}

var (
	successStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42"))

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))
)

// Terminal writes styled one-line notifications to w.
type Terminal struct {
	w io.Writer
}

func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{w: w}
}

func (t *Terminal) Success(message string) {
	fmt.Fprintln(t.w, successStyle.Render("✔ "+message))
}

func (t *Terminal) Error(message string) {
	fmt.Fprintln(t.w, errorStyle.Render("✖ "+message))
}

// Discard drops every notification.
type Discard struct{}

func (Discard) Success(string) {}
func (Discard) Error(string)   {}
