package tui

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/search"
	"github.com/mmcdole/marquee/internal/tui/components"
	"github.com/mmcdole/marquee/internal/watchlist"
)

// ViewMode selects the page on screen
type ViewMode int

const (
	ViewSearch ViewMode = iota
	ViewWatchlist
)

// String returns the display name for the view
func (v ViewMode) String() string {
	if v == ViewWatchlist {
		return "Watchlist"
	}
	return "Search"
}

// searchFocus tracks which part of the search view receives keys
type searchFocus int

const (
	focusInput searchFocus = iota
	focusResults
)

// Timing defaults
const (
	DefaultDebounce      = 500 * time.Millisecond
	DefaultSearchTimeout = 15 * time.Second

	statusDuration = 3 * time.Second
	tickInterval   = 100 * time.Millisecond
)

// Placeholder text for the search input
const InputPlaceholder = "Search for movies..."

// Launcher opens a URL outside the terminal
type Launcher interface {
	Open(url string) error
}

// Options configures a Model
type Options struct {
	Debounce          time.Duration
	SearchTimeout     time.Duration
	GridColumns       int
	PlaceholderPoster string
	DefaultSort       watchlist.SortField
	Locale            string
	Logger            *slog.Logger
}

// Model is the main Bubble Tea model for the application.
// It owns all mutable state; components only render what they are given.
type Model struct {
	Mode  ViewMode
	Ready bool

	// Search session
	Query    string
	Results  []domain.Film
	ErrorMsg string
	Loading  bool

	// searchSeq stamps each issued search; results carrying another stamp are stale
	searchSeq uint64
	// debounceTag identifies the pending debounce; bumping it cancels the schedule
	debounceTag   uint64
	debounceDelay time.Duration
	searchTimeout time.Duration

	// Services
	SearchSvc *search.Service
	Watchlist *watchlist.Service
	Launcher  Launcher

	// UI Components
	Input     textinput.Model
	Grid      components.ResultsGrid
	Panel     components.WatchlistPanel
	SortModal components.SortModal

	focus    searchFocus
	ShowHelp bool

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg    string
	StatusIsErr  bool
	SpinnerFrame int

	logger *slog.Logger
}

// NewModel creates a new application model
func NewModel(searchSvc *search.Service, wl *watchlist.Service, launcher Launcher, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.SearchTimeout <= 0 {
		opts.SearchTimeout = DefaultSearchTimeout
	}

	ti := textinput.New()
	ti.Placeholder = InputPlaceholder
	ti.Prompt = "> "
	ti.CharLimit = 200
	ti.Focus()

	grid := components.NewResultsGrid(opts.GridColumns, opts.PlaceholderPoster)
	grid.SetWatchlist(wl.Contains)

	panel := components.NewWatchlistPanel(watchlist.NewSorter(opts.Locale), opts.DefaultSort)
	panel.SetEntries(wl.Entries())

	return Model{
		Mode:          ViewSearch,
		SearchSvc:     searchSvc,
		Watchlist:     wl,
		Launcher:      launcher,
		Input:         ti,
		Grid:          grid,
		Panel:         panel,
		SortModal:     components.NewSortModal(),
		debounceDelay: opts.Debounce,
		searchTimeout: opts.SearchTimeout,
		logger:        logger,
	}
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		TickCmd(tickInterval),
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case TickMsg:
		m.SpinnerFrame++
		return m, TickCmd(tickInterval)

	case debounceFiredMsg:
		if msg.Tag != m.debounceTag {
			return m, nil
		}
		return m, m.SubmitQuery(msg.Query)

	case SearchResultsMsg:
		m.applySearchResults(msg)
		return m, nil

	case URLOpenedMsg:
		return m, m.setStatus("Opened "+msg.URL, false)

	case StatusMsg:
		return m, m.setStatus(msg.Message, msg.IsError)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil

	case ErrMsg:
		m.logger.Error("command failed", "context", msg.Context, "error", msg.Err)
		return m, m.setStatus(msg.Error(), true)
	}

	// Cursor blink and other component messages
	var cmd tea.Cmd
	if m.Mode == ViewWatchlist {
		m.Panel, cmd = m.Panel.Update(msg)
	} else {
		m.Input, cmd = m.Input.Update(msg)
	}
	return m, cmd
}

// SubmitQuery starts a search for title right away.
// Any pending debounced search is cancelled.
func (m *Model) SubmitQuery(title string) tea.Cmd {
	m.debounceTag++
	m.searchSeq++

	trimmed, ok := search.Validate(title)
	if !ok {
		m.ErrorMsg = search.MsgEmptyQuery
		m.Loading = false
		m.setResults(nil)
		return nil
	}

	m.Loading = true
	m.ErrorMsg = ""
	m.logger.Debug("search submitted", "query", trimmed, "seq", m.searchSeq)
	return SearchCmd(m.SearchSvc, m.searchSeq, trimmed, m.searchTimeout)
}

// DebounceQuery records title as the query and schedules a search after the
// quiet period, replacing any schedule already pending
func (m *Model) DebounceQuery(title string) tea.Cmd {
	m.Query = title
	if m.Input.Value() != title {
		m.Input.SetValue(title)
	}
	m.debounceTag++
	return DebounceCmd(m.debounceDelay, m.debounceTag, title)
}

// ClearSearch resets the query, results and error without searching
func (m *Model) ClearSearch() {
	m.debounceTag++
	// A response still in flight no longer belongs to anything on screen
	m.searchSeq++
	m.Query = ""
	m.Input.SetValue("")
	m.ErrorMsg = ""
	m.Loading = false
	m.setResults(nil)
}

// AddToWatchlist saves film unless it is already present
func (m *Model) AddToWatchlist(film domain.Film) tea.Cmd {
	added, err := m.Watchlist.Add(film)
	m.Panel.SetEntries(m.Watchlist.Entries())
	if err != nil {
		return m.setStatus(err.Error(), true)
	}
	if !added {
		return nil
	}
	return m.setStatus(fmt.Sprintf("Added %s to watchlist", film.Title), false)
}

// RemoveFromWatchlist drops the entry with id; absent ids are ignored
func (m *Model) RemoveFromWatchlist(id string) tea.Cmd {
	var title string
	for _, f := range m.Watchlist.Entries() {
		if f.ID == id {
			title = f.Title
			break
		}
	}

	removed, err := m.Watchlist.Remove(id)
	m.Panel.SetEntries(m.Watchlist.Entries())
	if err != nil {
		return m.setStatus(err.Error(), true)
	}
	if !removed {
		return nil
	}
	return m.setStatus(fmt.Sprintf("Removed %s from watchlist", title), false)
}

// ToggleView flips between the search and watchlist pages
func (m *Model) ToggleView() {
	if m.Mode == ViewSearch {
		m.Mode = ViewWatchlist
	} else {
		m.Mode = ViewSearch
	}
	m.applyFocus()
}

// applySearchResults stores the outcome of the latest search; others are dropped
func (m *Model) applySearchResults(msg SearchResultsMsg) {
	if msg.Seq != m.searchSeq {
		m.logger.Debug("discarding stale search results", "query", msg.Query, "seq", msg.Seq, "current", m.searchSeq)
		return
	}

	m.Loading = false
	m.ErrorMsg = msg.Outcome.ErrorMessage
	m.setResults(msg.Outcome.Films)
}

func (m *Model) setResults(films []domain.Film) {
	m.Results = films
	m.Grid.SetResults(films)
	if len(films) == 0 && m.focus == focusResults {
		m.setFocus(focusInput)
	}
}

func (m *Model) setFocus(f searchFocus) {
	m.focus = f
	m.applyFocus()
}

// applyFocus routes keyboard focus for the current view
func (m *Model) applyFocus() {
	if m.Mode == ViewWatchlist {
		m.Input.Blur()
		m.Grid.SetFocused(false)
		m.Panel.SetFocused(true)
		return
	}

	m.Panel.SetFocused(false)
	if m.focus == focusInput {
		m.Input.Focus()
		m.Grid.SetFocused(false)
	} else {
		m.Input.Blur()
		m.Grid.SetFocused(true)
	}
}

// setStatus shows a transient footer message
func (m *Model) setStatus(msg string, isErr bool) tea.Cmd {
	m.StatusMsg = msg
	m.StatusIsErr = isErr
	return ClearStatusCmd(statusDuration)
}

// openFilm opens the film's IMDb page, or its poster when poster is set
func (m *Model) openFilm(film domain.Film, poster bool) tea.Cmd {
	if m.Launcher == nil {
		return nil
	}
	url := film.IMDbURL()
	if poster {
		if !film.HasPoster() {
			return m.setStatus("No poster available for "+film.Title, false)
		}
		url = film.PosterURL
	}
	return OpenURLCmd(m.Launcher, url)
}
