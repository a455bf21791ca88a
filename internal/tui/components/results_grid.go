package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// Layout constants for the results grid
const (
	// Border adds 1 char on each side
	BorderWidth  = 2
	BorderHeight = 2

	// Scroll indicators ("↑ more" and "↓ more") each take 1 line
	ScrollIndicatorLines = 2

	// Preferred outer card width when the column count is automatic
	PreferredCardWidth = 34
)

// ResultsGrid lays out the current search results as movie cards
type ResultsGrid struct {
	films       []domain.Film
	inWatchlist func(id string) bool

	// Zero means fit as many columns as the width allows
	columns     int
	placeholder string

	// Selection
	cursor    int
	rowOffset int
	maxRows   int

	// Dimensions
	width   int
	height  int
	focused bool
}

// NewResultsGrid creates a grid with a fixed column count (0 for automatic)
// and the poster text shown for films without one
func NewResultsGrid(columns int, placeholder string) ResultsGrid {
	return ResultsGrid{
		columns:     columns,
		placeholder: placeholder,
		inWatchlist: func(string) bool { return false },
		maxRows:     1,
	}
}

// SetResults replaces the displayed films and resets the selection
func (g *ResultsGrid) SetResults(films []domain.Film) {
	g.films = films
	g.cursor = 0
	g.rowOffset = 0
}

// SetWatchlist sets the membership check used for card action labels
func (g *ResultsGrid) SetWatchlist(contains func(id string) bool) {
	if contains == nil {
		contains = func(string) bool { return false }
	}
	g.inWatchlist = contains
}

// SetSize updates the component dimensions
func (g *ResultsGrid) SetSize(width, height int) {
	g.width = width
	g.height = height
	g.recalcMaxRows()
	g.ensureVisible()
}

func (g *ResultsGrid) recalcMaxRows() {
	interior := g.height - BorderHeight - ScrollIndicatorLines
	g.maxRows = max(interior/CardHeight, 1)
}

// SetFocused sets the focus state
func (g *ResultsGrid) SetFocused(focused bool) {
	g.focused = focused
}

// Len returns the number of results
func (g ResultsGrid) Len() int {
	return len(g.films)
}

// Cursor returns the index of the selected card
func (g ResultsGrid) Cursor() int {
	return g.cursor
}

// SetCursor moves the selection, clamped to the results
func (g *ResultsGrid) SetCursor(pos int) {
	if len(g.films) == 0 {
		g.cursor = 0
		return
	}
	g.cursor = min(max(pos, 0), len(g.films)-1)
	g.ensureVisible()
}

// Columns returns the effective number of card columns
func (g ResultsGrid) Columns() int {
	if g.columns > 0 {
		return g.columns
	}
	inner := g.width - BorderWidth
	return max(inner/PreferredCardWidth, 1)
}

// Card returns the card for result i
func (g ResultsGrid) Card(i int) MovieCard {
	f := g.films[i]
	return NewMovieCard(f, g.inWatchlist(f.ID))
}

// Cards returns one card per result, in result order
func (g ResultsGrid) Cards() []MovieCard {
	cards := make([]MovieCard, len(g.films))
	for i := range g.films {
		cards[i] = g.Card(i)
	}
	return cards
}

// SelectedCard returns the selected card
func (g ResultsGrid) SelectedCard() (MovieCard, bool) {
	if len(g.films) == 0 || g.cursor >= len(g.films) {
		return MovieCard{}, false
	}
	return g.Card(g.cursor), true
}

// ensureVisible scrolls so the cursor's row is on screen
func (g *ResultsGrid) ensureVisible() {
	row := g.cursor / g.Columns()
	if row < g.rowOffset {
		g.rowOffset = row
	}
	if row >= g.rowOffset+g.maxRows {
		g.rowOffset = row - g.maxRows + 1
	}
}

// Update handles navigation keys
func (g ResultsGrid) Update(msg tea.Msg) (ResultsGrid, tea.Cmd) {
	if !g.focused || len(g.films) == 0 {
		return g, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return g, nil
	}

	cols := g.Columns()
	keys := ResultsGridKeys
	switch {
	case key.Matches(keyMsg, keys.Right):
		g.SetCursor(g.cursor + 1)
	case key.Matches(keyMsg, keys.Left):
		g.SetCursor(g.cursor - 1)
	case key.Matches(keyMsg, keys.Down):
		if g.cursor+cols < len(g.films) {
			g.SetCursor(g.cursor + cols)
		} else if g.cursor/cols < (len(g.films)-1)/cols {
			// Partial last row
			g.SetCursor(len(g.films) - 1)
		}
	case key.Matches(keyMsg, keys.Up):
		if g.cursor-cols >= 0 {
			g.SetCursor(g.cursor - cols)
		}
	case key.Matches(keyMsg, keys.Home):
		g.SetCursor(0)
	case key.Matches(keyMsg, keys.End):
		g.SetCursor(len(g.films) - 1)
	}

	return g, nil
}

// View renders the grid
func (g ResultsGrid) View() string {
	style := styles.InactiveBorder
	if g.focused {
		style = styles.ActiveBorder
	}

	frameW, frameH := style.GetFrameSize()
	return style.
		Width(max(g.width-frameW, 0)).
		Height(max(g.height-frameH, 0)).
		Render(g.renderCards())
}

func (g ResultsGrid) renderCards() string {
	if len(g.films) == 0 {
		return ""
	}

	cols := g.Columns()
	cw := cardWidth(g.width-BorderWidth, cols)
	totalRows := (len(g.films) + cols - 1) / cols
	endRow := min(g.rowOffset+g.maxRows, totalRows)

	var rows []string
	for r := g.rowOffset; r < endRow; r++ {
		var cards []string
		for c := 0; c < cols; c++ {
			i := r*cols + c
			if i >= len(g.films) {
				break
			}
			cards = append(cards, g.Card(i).View(cw, i == g.cursor, g.placeholder))
		}
		rows = append(rows, joinCards(cards))
	}

	header := " "
	if g.rowOffset > 0 {
		header = styles.DimStyle.Render("↑ more")
	}
	footer := " "
	if endRow < totalRows {
		footer = styles.DimStyle.Render(fmt.Sprintf("↓ more (%d/%d)", g.cursor+1, len(g.films)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, strings.Join(rows, "\n"), footer)
}
