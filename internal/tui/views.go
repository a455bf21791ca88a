package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	if m.ShowHelp {
		return m.renderHelp()
	}

	var content string
	if m.Mode == ViewWatchlist {
		content = m.Panel.View()
	} else {
		content = m.renderSearch()
	}

	view := lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		content,
		m.renderFooter(),
	)

	if m.SortModal.IsVisible() {
		view = lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.SortModal.View())
	}

	return view
}

// renderHeader renders the title bar with the view toggle hint
func (m Model) renderHeader() string {
	title := styles.HeaderStyle.Render("Marquee")

	toggle := "View Watchlist"
	if m.Mode == ViewWatchlist {
		toggle = "Search Movies"
	}
	hint := styles.HeaderHintStyle.Render(fmt.Sprintf("tab %s (%d saved)", toggle, m.Watchlist.Len()))

	gap := max(m.Width-lipgloss.Width(title)-lipgloss.Width(hint), 0)
	fill := styles.HeaderHintStyle.Padding(0).Render(strings.Repeat(" ", gap))
	return title + fill + hint
}

// renderSearch renders the input, the message line and the results
func (m Model) renderSearch() string {
	input := m.Input.View()

	var message string
	switch {
	case m.Loading:
		message = styles.RenderSpinner(m.SpinnerFrame) + " " + styles.DimStyle.Render("Loading...")
	case m.ErrorMsg != "":
		message = styles.ErrorStyle.Render(m.ErrorMsg)
	case len(m.Results) > 0:
		message = styles.DimStyle.Render(fmt.Sprintf("%d results for %q", len(m.Results), strings.TrimSpace(m.Query)))
	default:
		message = " "
	}

	return lipgloss.JoinVertical(lipgloss.Left, input, message, m.Grid.View())
}

// renderFooter renders a single-line minimal footer
func (m Model) renderFooter() string {
	var left string
	if m.StatusMsg != "" {
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.SuccessStyle.Render(m.StatusMsg)
		}
	}

	// Center section: context-specific hints
	var center string
	switch {
	case m.Mode == ViewWatchlist:
		center = hint("x", "Remove") + "  " + hint("s", "Sort") + "  " + hint("/", "Filter")
	case m.focus == focusResults:
		center = hint("enter", "Add") + "  " + hint("o", "IMDb") + "  " + hint("p", "Poster")
	default:
		center = hint("enter", "Search") + "  " + hint("esc", "Clear")
	}

	right := hint("?", "help")

	leftWidth := lipgloss.Width(left)
	centerWidth := lipgloss.Width(center)
	rightWidth := lipgloss.Width(right)

	if leftWidth+centerWidth+rightWidth >= m.Width {
		// Not enough space - just left + right
		gap := max(m.Width-leftWidth-rightWidth, 0)
		return left + strings.Repeat(" ", gap) + right
	}

	available := m.Width - leftWidth - rightWidth
	leftPad := (available - centerWidth) / 2
	rightPad := available - centerWidth - leftPad

	return left + strings.Repeat(" ", leftPad) + center + strings.Repeat(" ", rightPad) + right
}

func hint(k, desc string) string {
	return styles.HelpKeyStyle.Render(k) + styles.HelpDescStyle.Render(" "+desc)
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	help := `
SEARCH                          WATCHLIST
  type       Search as you type    x      Remove entry
  Enter      Search now            s      Sort by title/year
  Esc        Clear / results       /      Filter
  Ctrl+l     Clear search          j/k    Up/down
  ↓          Go to results

RESULTS                         OTHER
  h/j/k/l    Move between cards    Tab    Search / watchlist
  Enter/a    Add to watchlist      ?      This help
  o          Open IMDb page        q      Quit
  p          Open poster           Esc    Close / Cancel
  i or /     Edit query

Press any key to return...
`

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(help))
}
