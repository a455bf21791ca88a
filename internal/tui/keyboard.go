package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/marquee/internal/watchlist"
)

// handleKeyMsg routes a key press to whatever currently owns the keyboard
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, Keys.ForceQuit) {
		return m, tea.Quit
	}

	// Any key closes help
	if m.ShowHelp {
		m.ShowHelp = false
		return m, nil
	}

	if m.SortModal.IsVisible() {
		if _, sel := m.SortModal.HandleKey(msg.String()); sel != nil {
			m.Panel.SetSort(sel.Field, sel.Direction)
			m.logger.Debug("watchlist sort changed", "field", sel.Field.String(), "desc", sel.Direction == watchlist.SortDesc)
		}
		return m, nil
	}

	// Text entry swallows printable keys
	if m.Mode == ViewSearch && m.focus == focusInput {
		return m.handleInputKey(msg)
	}
	if m.Mode == ViewWatchlist && m.Panel.IsFilterTyping() {
		var cmd tea.Cmd
		m.Panel, cmd = m.Panel.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, Keys.Help):
		m.ShowHelp = true
		return m, nil
	case key.Matches(msg, Keys.ToggleView):
		m.ToggleView()
		return m, nil
	}

	if m.Mode == ViewWatchlist {
		return m.handleWatchlistKey(msg)
	}
	return m.handleResultsKey(msg)
}

// handleInputKey handles keys while the search input has focus
func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.ToggleView):
		m.ToggleView()
		return m, nil
	case key.Matches(msg, Keys.Submit):
		m.Query = m.Input.Value()
		return m, m.SubmitQuery(m.Query)
	case key.Matches(msg, Keys.ClearSearch):
		m.ClearSearch()
		return m, nil
	case key.Matches(msg, Keys.Escape):
		if m.Input.Value() != "" {
			m.ClearSearch()
		} else if len(m.Results) > 0 {
			m.setFocus(focusResults)
		}
		return m, nil
	case msg.Type == tea.KeyDown:
		if len(m.Results) > 0 {
			m.setFocus(focusResults)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	if v := m.Input.Value(); v != m.Query {
		return m, tea.Batch(cmd, m.DebounceQuery(v))
	}
	return m, cmd
}

// handleResultsKey handles keys while a result card is selected
func (m Model) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.FocusInput), key.Matches(msg, Keys.Escape):
		m.setFocus(focusInput)
		return m, textinput.Blink
	case key.Matches(msg, Keys.ClearSearch):
		m.ClearSearch()
		m.setFocus(focusInput)
		return m, nil
	}

	card, ok := m.Grid.SelectedCard()
	if ok {
		switch {
		case key.Matches(msg, Keys.Add):
			film, enabled := card.Activate()
			if !enabled {
				return m, m.setStatus(card.Film.Title+" is already in your watchlist", false)
			}
			return m, m.AddToWatchlist(film)
		case key.Matches(msg, Keys.OpenIMDb):
			return m, m.openFilm(card.Film, false)
		case key.Matches(msg, Keys.OpenPoster):
			return m, m.openFilm(card.Film, true)
		}
	}

	var cmd tea.Cmd
	m.Grid, cmd = m.Grid.Update(msg)
	return m, cmd
}

// handleWatchlistKey handles keys on the watchlist page
func (m Model) handleWatchlistKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Sort):
		field, dir := m.Panel.Sort()
		m.SortModal.Show(field, dir)
		return m, nil
	case key.Matches(msg, Keys.Filter) && !m.Panel.IsFiltering():
		m.Panel.ToggleFilter()
		return m, textinput.Blink
	}

	if film, ok := m.Panel.Selected(); ok {
		switch {
		case key.Matches(msg, Keys.Remove):
			return m, m.RemoveFromWatchlist(film.ID)
		case key.Matches(msg, Keys.OpenIMDb):
			return m, m.openFilm(film, false)
		case key.Matches(msg, Keys.OpenPoster):
			return m, m.openFilm(film, true)
		}
	}

	var cmd tea.Cmd
	m.Panel, cmd = m.Panel.Update(msg)
	return m, cmd
}
