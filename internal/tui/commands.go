package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/marquee/internal/search"
)

// Command factories for async operations

// SearchCmd performs one search and stamps the outcome with seq
func SearchCmd(svc *search.Service, seq uint64, title string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		outcome := svc.Search(ctx, title)
		return SearchResultsMsg{Seq: seq, Query: title, Outcome: outcome}
	}
}

// DebounceCmd delivers a debounceFiredMsg for tag once delay has passed
func DebounceCmd(delay time.Duration, tag uint64, title string) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return debounceFiredMsg{Tag: tag, Query: title}
	})
}

// OpenURLCmd opens url in the browser
func OpenURLCmd(launcher Launcher, url string) tea.Cmd {
	return func() tea.Msg {
		if err := launcher.Open(url); err != nil {
			return ErrMsg{Err: err, Context: "opening browser"}
		}
		return URLOpenedMsg{URL: url}
	}
}

// TickCmd returns a command that sends a tick after a delay
func TickCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return TickMsg{}
	})
}

// ClearStatusCmd returns a command that clears the status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
