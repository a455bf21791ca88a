package tui

// Vertical chrome
const (
	HeaderHeight = 1
	FooterHeight = 1

	// Search input line plus the message line under it
	SearchBarHeight = 2

	minInputWidth = 10
)

// updateLayout recalculates component sizes after a resize
func (m *Model) updateLayout() {
	contentHeight := max(m.Height-HeaderHeight-FooterHeight, 1)

	m.Input.Width = max(m.Width-len(m.Input.Prompt)-1, minInputWidth)
	m.Grid.SetSize(m.Width, max(contentHeight-SearchBarHeight, 1))
	m.Panel.SetSize(m.Width, contentHeight)
}
