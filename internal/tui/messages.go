package tui

import (
	"github.com/mmcdole/marquee/internal/domain"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// SearchResultsMsg carries the outcome of the search stamped Seq
type SearchResultsMsg struct {
	Seq     uint64
	Query   string
	Outcome domain.SearchOutcome
}

// debounceFiredMsg is delivered when a scheduled search's quiet period ends.
// Only the most recently scheduled tag is acted on.
type debounceFiredMsg struct {
	Tag   uint64
	Query string
}

// URLOpenedMsg signals that the launcher handed a URL to the browser
type URLOpenedMsg struct {
	URL string
}

// TickMsg is a general tick message for animations
type TickMsg struct{}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}
