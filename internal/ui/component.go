package ui

import tea "github.com/charmbracelet/bubbletea"

// Component is a focusable panel. The set is closed: ListPanel serves the
// port and rate lists and CommandPanel serves the command line.
//
// HandleKey may only mutate the component's own state; anything else is
// expressed through the returned Action.
type Component interface {
	HandleKey(msg tea.KeyMsg) Action
	Render(width, height int, active bool) string
}

var (
	_ Component = (*ListPanel)(nil)
	_ Component = (*CommandPanel)(nil)
)

// panelFrame draws body inside the shared bordered box, highlighting the
// border when the panel has focus.
func panelFrame(body string, width, height int, active bool) string {
	style := styles.Panel
	if active && styles.ActivePanel != nil {
		style = styles.ActivePanel
	}
	if style == nil {
		return body
	}
	s := style.Copy()
	if w := width - s.GetHorizontalFrameSize(); w > 0 {
		s = s.Width(w)
	}
	if h := height - s.GetVerticalFrameSize(); h > 0 {
		s = s.Height(h).MaxHeight(height)
	}
	return s.Render(body)
}

func innerSize(width, height int) (int, int) {
	if styles.Panel == nil {
		return width, height
	}
	return width - styles.Panel.GetHorizontalFrameSize(), height - styles.Panel.GetVerticalFrameSize()
}
