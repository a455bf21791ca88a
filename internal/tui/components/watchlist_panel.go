package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/tui/styles"
	"github.com/mmcdole/marquee/internal/watchlist"
	"github.com/sahilm/fuzzy"
)

// Panel messages
const (
	EmptyWatchlistText = "No movies in your watchlist yet."
	NoMatchesText      = "No matches"
	RemoveLabel        = "Remove"
)

// WatchlistPanel shows the saved films in the chosen order
type WatchlistPanel struct {
	entries []domain.Film
	sorter  watchlist.Sorter
	field   watchlist.SortField
	dir     watchlist.SortDirection

	// Derived from entries, sort and filter
	rows []panelRow

	// Selection
	cursor     int
	offset     int
	maxVisible int

	// Dimensions
	width   int
	height  int
	focused bool

	// Filter state
	filterActive bool
	filterInput  textinput.Model
	filterQuery  string
}

type panelRow struct {
	film    domain.Film
	matched []int // rune positions in the title
}

// NewWatchlistPanel creates a panel sorted by field ascending
func NewWatchlistPanel(sorter watchlist.Sorter, field watchlist.SortField) WatchlistPanel {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	return WatchlistPanel{
		sorter:      sorter,
		field:       field,
		dir:         watchlist.SortAsc,
		filterInput: ti,
		maxVisible:  1,
	}
}

// SetEntries replaces the films shown, in their stored order
func (p *WatchlistPanel) SetEntries(entries []domain.Film) {
	p.entries = entries
	p.rebuild()
}

// SetSort changes the display order
func (p *WatchlistPanel) SetSort(field watchlist.SortField, dir watchlist.SortDirection) {
	p.field = field
	p.dir = dir
	p.rebuild()
}

// Sort returns the active field and direction
func (p WatchlistPanel) Sort() (watchlist.SortField, watchlist.SortDirection) {
	return p.field, p.dir
}

// rebuild recomputes the visible rows and clamps the cursor
func (p *WatchlistPanel) rebuild() {
	sorted := p.sorter.Sort(p.entries, p.field, p.dir)

	p.rows = make([]panelRow, 0, len(sorted))
	if p.filterQuery == "" {
		for _, f := range sorted {
			p.rows = append(p.rows, panelRow{film: f})
		}
	} else {
		titles := make([]string, len(sorted))
		for i, f := range sorted {
			titles[i] = f.Title
		}
		// Find ranks by score; rows keep the sorted order
		matched := make(map[int][]int)
		for _, m := range fuzzy.Find(p.filterQuery, titles) {
			matched[m.Index] = runePositions(m.Str, m.MatchedIndexes)
		}
		for i, f := range sorted {
			if positions, ok := matched[i]; ok {
				p.rows = append(p.rows, panelRow{film: f, matched: positions})
			}
		}
	}

	if p.cursor >= len(p.rows) {
		p.cursor = max(len(p.rows)-1, 0)
	}
	p.ensureVisible()
}

// runePositions converts byte offsets in s to rune positions
func runePositions(s string, byteIdx []int) []int {
	if len(byteIdx) == 0 {
		return nil
	}
	want := make(map[int]bool, len(byteIdx))
	for _, b := range byteIdx {
		want[b] = true
	}
	var out []int
	pos := 0
	for b := range s {
		if want[b] {
			out = append(out, pos)
		}
		pos++
	}
	return out
}

// Visible returns the films in display order after sorting and filtering
func (p WatchlistPanel) Visible() []domain.Film {
	out := make([]domain.Film, len(p.rows))
	for i, r := range p.rows {
		out[i] = r.film
	}
	return out
}

// Selected returns the film under the cursor
func (p WatchlistPanel) Selected() (domain.Film, bool) {
	if len(p.rows) == 0 {
		return domain.Film{}, false
	}
	return p.rows[p.cursor].film, true
}

// Cursor returns the cursor position in display order
func (p WatchlistPanel) Cursor() int {
	return p.cursor
}

// SetSize updates the component dimensions
func (p *WatchlistPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.recalcMaxVisible()
	p.ensureVisible()
}

func (p *WatchlistPanel) recalcMaxVisible() {
	// Border, header line and both scroll indicators
	p.maxVisible = p.height - BorderHeight - 1 - ScrollIndicatorLines
	if p.filterActive {
		p.maxVisible--
	}
	if p.maxVisible < 1 {
		p.maxVisible = 1
	}
}

// SetFocused sets the focus state
func (p *WatchlistPanel) SetFocused(focused bool) {
	p.focused = focused
}

func (p *WatchlistPanel) ensureVisible() {
	if p.cursor < p.offset {
		p.offset = p.cursor
	}
	if p.cursor >= p.offset+p.maxVisible {
		p.offset = p.cursor - p.maxVisible + 1
	}
}

// ToggleFilter activates the filter input
func (p *WatchlistPanel) ToggleFilter() {
	p.filterActive = true
	p.filterInput.Focus()
	p.recalcMaxVisible()
}

// IsFiltering returns true if filter mode is active
func (p WatchlistPanel) IsFiltering() bool {
	return p.filterActive
}

// IsFilterTyping returns true if the filter input has focus
func (p WatchlistPanel) IsFilterTyping() bool {
	return p.filterActive && p.filterInput.Focused()
}

// ClearFilter deactivates the filter and shows all entries
func (p *WatchlistPanel) ClearFilter() {
	p.filterActive = false
	p.filterQuery = ""
	p.filterInput.SetValue("")
	p.filterInput.Blur()
	p.cursor = 0
	p.offset = 0
	p.recalcMaxVisible()
	p.rebuild()
}

// Update handles filter input and navigation keys
func (p WatchlistPanel) Update(msg tea.Msg) (WatchlistPanel, tea.Cmd) {
	if !p.focused {
		return p, nil
	}

	if p.IsFilterTyping() {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch {
			case key.Matches(keyMsg, WatchlistPanelKeys.Escape):
				p.ClearFilter()
				return p, nil
			case key.Matches(keyMsg, WatchlistPanelKeys.Enter):
				// Keep results, return to navigation
				p.filterInput.Blur()
				return p, nil
			case keyMsg.String() == "backspace":
				if p.filterInput.Value() == "" {
					p.ClearFilter()
					return p, nil
				}
			}
		}

		var cmd tea.Cmd
		p.filterInput, cmd = p.filterInput.Update(msg)
		if q := p.filterInput.Value(); q != p.filterQuery {
			p.filterQuery = q
			p.cursor = 0
			p.offset = 0
			p.rebuild()
		}
		return p, cmd
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	keys := WatchlistPanelKeys
	if p.filterActive {
		switch {
		case key.Matches(keyMsg, keys.Escape):
			p.ClearFilter()
			return p, nil
		case key.Matches(keyMsg, keys.Filter):
			p.filterInput.Focus()
			return p, nil
		}
	}

	count := len(p.rows)
	if count == 0 {
		return p, nil
	}

	switch {
	case key.Matches(keyMsg, keys.Down):
		if p.cursor < count-1 {
			p.cursor++
		}
	case key.Matches(keyMsg, keys.Up):
		if p.cursor > 0 {
			p.cursor--
		}
	case key.Matches(keyMsg, keys.Home):
		p.cursor = 0
	case key.Matches(keyMsg, keys.End):
		p.cursor = count - 1
	case key.Matches(keyMsg, keys.HalfDown):
		p.cursor = min(p.cursor+p.maxVisible/2, count-1)
	case key.Matches(keyMsg, keys.HalfUp):
		p.cursor = max(p.cursor-p.maxVisible/2, 0)
	}
	p.ensureVisible()

	return p, nil
}

// View renders the panel
func (p WatchlistPanel) View() string {
	style := styles.InactiveBorder
	if p.focused {
		style = styles.ActiveBorder
	}

	frameW, frameH := style.GetFrameSize()
	return style.
		Width(max(p.width-frameW, 0)).
		Height(max(p.height-frameH, 0)).
		Render(p.renderList())
}

func (p WatchlistPanel) renderList() string {
	itemWidth := p.width - BorderWidth - 2

	arrow := "↑"
	if p.dir == watchlist.SortDesc {
		arrow = "↓"
	}
	header := styles.AccentStyle.Render(fmt.Sprintf("Watchlist (%d)", len(p.entries))) +
		styles.DimStyle.Render(fmt.Sprintf("  sorted by %s %s", p.field, arrow))

	if len(p.rows) == 0 {
		msg := EmptyWatchlistText
		if p.filterQuery != "" {
			msg = NoMatchesText
		}
		content := header + "\n \n" + styles.DimStyle.Render(msg)
		if p.filterActive {
			content += "\n" + p.renderFilterBar()
		}
		return content
	}

	end := min(p.offset+p.maxVisible, len(p.rows))
	var lines []string
	for i := p.offset; i < end; i++ {
		lines = append(lines, p.renderRow(p.rows[i], i == p.cursor, itemWidth))
	}

	up := " "
	if p.offset > 0 {
		up = styles.DimStyle.Render("↑ more")
	}
	down := " "
	if end < len(p.rows) {
		down = styles.DimStyle.Render("↓ more")
	}

	content := header + "\n" + up + "\n" + strings.Join(lines, "\n") + "\n" + down
	if p.filterActive {
		content += "\n" + p.renderFilterBar()
	}
	return content
}

func (p WatchlistPanel) renderRow(r panelRow, selected bool, width int) string {
	year := ""
	if r.film.Year != "" {
		year = " (" + r.film.Year + ")"
	}
	action := "  x " + RemoveLabel

	titleWidth := max(width-lipgloss.Width(year)-lipgloss.Width(action)-2, 4)
	title := styles.Truncate(r.film.Title, titleWidth)

	dimGray := styles.DimGray
	parts := highlightParts(title, r.matched)
	parts = append(parts,
		styles.RowPart{Text: year, Foreground: &dimGray},
	)

	used := 0
	for _, part := range parts {
		used += lipgloss.Width(part.Text)
	}
	if gap := width - 2 - used - lipgloss.Width(action); gap > 0 {
		parts = append(parts, styles.RowPart{Text: strings.Repeat(" ", gap)})
	}
	red := styles.Red
	parts = append(parts, styles.RowPart{Text: action, Foreground: &red})

	return styles.RenderListRow(parts, selected, width)
}

// highlightParts splits title into runs, coloring matched rune positions
func highlightParts(title string, matched []int) []styles.RowPart {
	if len(matched) == 0 {
		return []styles.RowPart{{Text: title}}
	}
	set := make(map[int]bool, len(matched))
	for _, m := range matched {
		set[m] = true
	}

	gold := styles.MarqueeGold
	var parts []styles.RowPart
	var run []rune
	runMatched := false
	flush := func() {
		if len(run) == 0 {
			return
		}
		part := styles.RowPart{Text: string(run)}
		if runMatched {
			part.Foreground = &gold
		}
		parts = append(parts, part)
		run = run[:0]
	}
	for i, r := range []rune(title) {
		if set[i] != runMatched {
			flush()
			runMatched = set[i]
		}
		run = append(run, r)
	}
	flush()
	return parts
}

func (p WatchlistPanel) renderFilterBar() string {
	input := p.filterInput.View()
	if p.filterQuery == "" {
		return input
	}
	return input + styles.DimStyle.Render(fmt.Sprintf(" [%d/%d]", len(p.rows), len(p.entries)))
}
