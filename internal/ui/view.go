package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const (
	inputRows      = 3
	statusRows     = 1
	leftMinWidth   = 16
	leftMaxWidth   = 30
	collapsedList  = 4
	receiveTitle   = "Receive"
	scrollHintText = "↑ %d"
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	width, height := m.size()
	topHeight := height - inputRows - statusRows
	if topHeight < 2*collapsedList {
		topHeight = 2 * collapsedList
	}

	leftWidth := width / 4
	if leftWidth < leftMinWidth {
		leftWidth = leftMinWidth
	}
	if leftWidth > leftMaxWidth {
		leftWidth = leftMaxWidth
	}
	portHeight, rateHeight := m.listHeights(topHeight)
	left := lipgloss.JoinVertical(lipgloss.Left,
		m.ports.Render(leftWidth, portHeight, m.mode == ModePortChoice),
		m.rates.Render(leftWidth, rateHeight, m.mode == ModeRateChoice),
	)
	right := m.renderReceive(width-leftWidth, topHeight)
	top := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	return lipgloss.JoinVertical(lipgloss.Left,
		top,
		m.input.Render(width, inputRows, m.mode == ModeCommandInput),
		m.statusLine(width),
	)
}

// listHeights gives the focused list the room it needs and collapses the
// other; with the command line focused both share the column.
func (m *Model) listHeights(total int) (int, int) {
	switch m.mode {
	case ModePortChoice:
		return total - collapsedList, collapsedList
	case ModeRateChoice:
		return collapsedList, total - collapsedList
	default:
		port := total / 2
		return port, total - port
	}
}

// renderReceive draws the rows of the receive buffer that fit, following the
// tail unless the session is scrolled back.
func (m *Model) renderReceive(width, height int) string {
	innerW, innerH := innerSize(width, height)
	bodyRows := innerH - 1
	if innerW < 1 || bodyRows < 1 {
		return panelFrame("", width, height, false)
	}
	m.lines.sync(m.session.Received(), innerW)
	maxBack := m.lines.count() - bodyRows
	if maxBack < 0 {
		maxBack = 0
	}
	m.session.ClampScrollBack(maxBack)
	visible := m.lines.window(maxBack-m.session.ScrollBack(), bodyRows)

	m.receive.Width = innerW
	m.receive.Height = bodyRows
	m.receive.SetContent(render(styles.Receive, strings.Join(visible, "\n")))
	m.receive.SetYOffset(0)

	title := receiveTitle
	if back := m.session.ScrollBack(); back > 0 {
		title = fmt.Sprintf("%s  "+scrollHintText, title, back)
	}
	body := render(styles.Title, clip(title, innerW)) + "\n" + m.receive.View()
	return panelFrame(body, width, height, false)
}

// statusLine shows the pending error, or the connection summary.
func (m *Model) statusLine(width int) string {
	if m.errMsg != "" {
		return render(styles.Error, clip(fmt.Sprintf("Error: %s", m.errMsg), width))
	}
	port := m.session.PortName
	if port == "" {
		port = "(no port)"
	}
	summary := fmt.Sprintf("%s @ %d", port, m.session.BaudRate)
	var state string
	if m.session.Connected() {
		state = render(styles.Connected, "connected")
	} else {
		label := "disconnected"
		if err := m.session.LastOpenError(); err != nil {
			label = fmt.Sprintf("disconnected (%v)", err)
		}
		state = render(styles.Disconnected, label)
	}
	bytes := fmt.Sprintf("%d bytes", m.session.BytesReceived())
	line := render(styles.Status, summary) + "  " + state + "  " + render(styles.Status, bytes)
	return truncate.StringWithTail(line, uint(width), "…")
}

func (m *Model) scrollPage() int {
	_, height := m.size()
	page := height - inputRows - statusRows - 3
	if page < 1 {
		return 1
	}
	return page
}

func render(style *lipgloss.Style, text string) string {
	if style == nil || text == "" {
		return text
	}
	return style.Render(text)
}
