package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// Card layout constants
const (
	// Title, year, poster and action lines plus top and bottom border
	CardHeight = 6

	// Border (2) + horizontal padding (2)
	cardChrome = 4

	MinCardWidth = 24
)

// Action labels
const (
	LabelAdd   = "Add to Watchlist"
	LabelAdded = "Added"
)

// MovieCard renders one search result and its add action
type MovieCard struct {
	Film        domain.Film
	InWatchlist bool
}

// NewMovieCard creates a card for film
func NewMovieCard(film domain.Film, inWatchlist bool) MovieCard {
	return MovieCard{Film: film, InWatchlist: inWatchlist}
}

// Enabled reports whether the add action can be used
func (c MovieCard) Enabled() bool {
	return !c.InWatchlist
}

// ActionLabel returns the label of the add action
func (c MovieCard) ActionLabel() string {
	if c.InWatchlist {
		return LabelAdded
	}
	return LabelAdd
}

// Activate returns the film to add, or false when the action is disabled
func (c MovieCard) Activate() (domain.Film, bool) {
	if !c.Enabled() {
		return domain.Film{}, false
	}
	return c.Film, true
}

// View renders the card at the given outer width
func (c MovieCard) View(width int, selected bool, placeholder string) string {
	if width < MinCardWidth {
		width = MinCardWidth
	}
	inner := width - cardChrome

	title := styles.TitleStyle.Render(styles.Truncate(c.Film.Title, inner))
	year := styles.SubtitleStyle.Render(styles.Truncate("Year: "+c.Film.Year, inner))

	poster := c.Film.PosterOr(placeholder)
	posterLine := styles.DimStyle.Render(styles.Truncate("Poster: "+poster, inner))

	var action string
	if c.Enabled() {
		action = styles.BadgeStyle.Render(c.ActionLabel())
	} else {
		action = styles.DimBadgeStyle.Render(c.ActionLabel())
	}

	content := strings.Join([]string{title, year, posterLine, action}, "\n")

	style := styles.CardStyle
	if selected {
		style = styles.CardSelectedStyle
	}
	frameW, _ := style.GetFrameSize()
	return style.Width(width - frameW).Render(content)
}

// cardWidth returns the outer card width for cols columns across width cells
func cardWidth(width, cols int) int {
	if cols <= 0 {
		return width
	}
	return max(width/cols, MinCardWidth)
}

// joinCards lays out rendered cards in a row
func joinCards(cards []string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}
