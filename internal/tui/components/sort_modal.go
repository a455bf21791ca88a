package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/marquee/internal/tui/styles"
	"github.com/mmcdole/marquee/internal/watchlist"
)

// SortSelection represents the user's sort choice
type SortSelection struct {
	Field     watchlist.SortField
	Direction watchlist.SortDirection
}

// SortModal is a small popup for choosing the watchlist order
type SortModal struct {
	visible     bool
	options     []watchlist.SortField
	cursor      int
	activeField watchlist.SortField
	activeDir   watchlist.SortDirection
}

// NewSortModal creates a new sort modal
func NewSortModal() SortModal {
	return SortModal{}
}

// Show displays the modal positioned on the current sort field
func (m *SortModal) Show(activeField watchlist.SortField, activeDir watchlist.SortDirection) {
	m.visible = true
	m.options = watchlist.SortFields()
	m.activeField = activeField
	m.activeDir = activeDir
	m.cursor = 0
	for i, opt := range m.options {
		if opt == activeField {
			m.cursor = i
			break
		}
	}
}

// Hide dismisses the modal
func (m *SortModal) Hide() {
	m.visible = false
}

// IsVisible returns whether the modal is shown
func (m SortModal) IsVisible() bool {
	return m.visible
}

// HandleKey processes a key press, returns (handled, selection).
// If selection is non-nil, the user confirmed a choice.
func (m *SortModal) HandleKey(key string) (handled bool, selection *SortSelection) {
	if !m.visible {
		return false, nil
	}

	switch key {
	case "j", "down":
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
		return true, nil
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return true, nil
	case "enter":
		chosen := m.options[m.cursor]
		dir := watchlist.SortAsc
		if chosen == m.activeField && m.activeDir == watchlist.SortAsc {
			// Choosing the active field again flips its direction
			dir = watchlist.SortDesc
		}
		m.visible = false
		return true, &SortSelection{Field: chosen, Direction: dir}
	case "esc", "s":
		m.visible = false
		return true, nil
	}

	return true, nil // consume all keys when visible
}

// View renders the sort modal
func (m SortModal) View() string {
	if !m.visible || len(m.options) == 0 {
		return ""
	}

	var lines []string
	for i, opt := range m.options {
		isActive := opt == m.activeField

		prefix := "  "
		suffix := ""
		if isActive {
			prefix = "✓ "
			suffix = " ↑"
			if m.activeDir == watchlist.SortDesc {
				suffix = " ↓"
			}
		}
		text := styles.Pad(prefix+opt.String()+suffix, 20)

		style := lipgloss.NewStyle().Foreground(styles.LightGray)
		switch {
		case i == m.cursor:
			style = lipgloss.NewStyle().Foreground(styles.White).Background(styles.SlateLight)
		case isActive:
			style = lipgloss.NewStyle().Foreground(styles.MarqueeGold)
		}
		lines = append(lines, style.Render(text))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.MarqueeGold).
		Background(styles.SlateDark).
		Padding(0, 1).
		Render(styles.ModalTitleStyle.Render("Sort by") + "\n" + strings.Join(lines, "\n"))
}
