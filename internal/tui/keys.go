package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application
type KeyMap struct {
	// Search input
	Submit      key.Binding
	ClearSearch key.Binding
	FocusInput  key.Binding
	Escape      key.Binding

	// Results and watchlist
	Add        key.Binding
	Remove     key.Binding
	Sort       key.Binding
	Filter     key.Binding
	OpenIMDb   key.Binding
	OpenPoster key.Binding

	// Global
	ToggleView key.Binding
	Help       key.Binding
	Quit       key.Binding
	ForceQuit  key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "search now"),
		),
		ClearSearch: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("C-l", "clear search"),
		),
		FocusInput: key.NewBinding(
			key.WithKeys("i", "/"),
			key.WithHelp("i or /", "edit query"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear query/leave input"),
		),

		Add: key.NewBinding(
			key.WithKeys("enter", "a"),
			key.WithHelp("enter/a", "add to watchlist"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "remove from watchlist"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		OpenIMDb: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open IMDb page"),
		),
		OpenPoster: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "open poster"),
		),

		ToggleView: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "search/watchlist"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("C-c", "quit"),
		),
	}
}

// Keys is the global key bindings instance
var Keys = DefaultKeyMap()
