package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/atomicstack/uart-console/internal/logging/events"
	uistate "github.com/atomicstack/uart-console/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/truncate"
)

// SelectionKind decides which Action a confirmed list item becomes.
type SelectionKind int

const (
	PortSelection SelectionKind = iota
	RateSelection
)

func (k SelectionKind) String() string {
	if k == RateSelection {
		return "rates"
	}
	return "ports"
}

// ListPanel renders a SelectableList and turns Enter into SelectPort or
// SelectRate according to its kind.
type ListPanel struct {
	kind      SelectionKind
	list      *uistate.SelectableList
	title     string
	searching bool
	query     string
}

// NewListPanel wraps list. A nil list starts empty.
func NewListPanel(kind SelectionKind, title string, list *uistate.SelectableList) *ListPanel {
	if list == nil {
		list = uistate.NewSelectableList(nil)
	}
	return &ListPanel{kind: kind, list: list, title: title}
}

// List exposes the underlying selection state.
func (p *ListPanel) List() *uistate.SelectableList {
	return p.list
}

// Searching reports whether a type-ahead query is being typed.
func (p *ListPanel) Searching() bool {
	return p.searching
}

// Query returns the pending type-ahead text.
func (p *ListPanel) Query() string {
	return p.query
}

// claims reports whether the panel consumes key rather than letting it
// start a command line.
func (p *ListPanel) claims(key tea.KeyMsg) bool {
	if key.Type != tea.KeyRunes || key.Alt || p.searching {
		return true
	}
	return len(key.Runes) == 1 && strings.ContainsRune("kj/", key.Runes[0])
}

// HandleKey moves the selection with the arrow keys or k/j and confirms it
// with Enter. '/' starts a type-ahead query that jumps to the best match as
// it grows; Backspace on an empty query ends it.
func (p *ListPanel) HandleKey(msg tea.KeyMsg) Action {
	switch msg.Type {
	case tea.KeyUp:
		return p.move(p.list.Previous)
	case tea.KeyDown:
		return p.move(p.list.Next)
	case tea.KeyEnter:
		p.endSearch()
		return p.confirm()
	case tea.KeyBackspace, tea.KeyCtrlH:
		p.trimQuery()
		return NoAction()
	case tea.KeySpace:
		if p.searching {
			p.extendQuery(" ")
		}
		return NoAction()
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return NoAction()
		}
		if p.searching {
			p.extendQuery(string(msg.Runes))
			return NoAction()
		}
		if len(msg.Runes) == 1 {
			switch msg.Runes[0] {
			case 'k':
				return p.move(p.list.Previous)
			case 'j':
				return p.move(p.list.Next)
			case '/':
				p.searching = true
				p.query = ""
			}
		}
	}
	return NoAction()
}

func (p *ListPanel) endSearch() {
	p.searching = false
	p.query = ""
}

func (p *ListPanel) move(step func()) Action {
	p.endSearch()
	step()
	if idx, ok := p.list.Selected(); ok {
		events.List.Cursor(p.kind.String(), idx)
	}
	return NoAction()
}

func (p *ListPanel) confirm() Action {
	item, ok := p.list.SelectedItem()
	if !ok {
		return NoAction()
	}
	events.List.Confirm(p.kind.String(), item)
	switch p.kind {
	case RateSelection:
		rate, err := strconv.ParseUint(strings.TrimSpace(item), 10, 32)
		if err != nil || rate == 0 {
			return ErrorAction(fmt.Sprintf("invalid baud rate: %s", item))
		}
		return SelectRate(uint32(rate))
	default:
		return SelectPort(item)
	}
}

func (p *ListPanel) extendQuery(text string) {
	p.query += text
	idx := p.list.MatchIndex(p.query)
	if idx >= 0 {
		p.list.Select(idx)
	}
	events.List.Jump(p.kind.String(), p.query, idx)
}

func (p *ListPanel) trimQuery() {
	if p.query == "" {
		p.searching = false
		return
	}
	runes := []rune(p.query)
	p.query = string(runes[:len(runes)-1])
	if p.query == "" {
		return
	}
	if idx := p.list.MatchIndex(p.query); idx >= 0 {
		p.list.Select(idx)
	}
}

// Render draws the title row followed by as many items as fit, scrolled so
// the selection stays visible.
func (p *ListPanel) Render(width, height int, active bool) string {
	innerW, innerH := innerSize(width, height)
	lines := make([]string, 0, innerH)

	title := p.title
	if p.searching {
		title = fmt.Sprintf("%s /%s", title, p.query)
	}
	titleStyle := styles.Title
	if active && styles.ActiveTitle != nil {
		titleStyle = styles.ActiveTitle
	}
	lines = append(lines, render(titleStyle, clip(title, innerW)))

	items := p.list.Items()
	rows := innerH - 1
	if len(items) == 0 {
		lines = append(lines, render(styles.Empty, clip("(none)", innerW)))
		return panelFrame(strings.Join(lines, "\n"), width, height, active)
	}
	selected, hasSelection := p.list.Selected()
	start := visibleStart(selected, len(items), rows)
	for i := start; i < len(items) && (rows <= 0 || i < start+rows); i++ {
		text := clip(items[i], innerW)
		switch {
		case hasSelection && i == selected && active:
			lines = append(lines, render(styles.SelectedItem, text))
		case hasSelection && i == selected:
			lines = append(lines, render(styles.InactiveSelection, text))
		default:
			lines = append(lines, render(styles.Item, text))
		}
	}
	return panelFrame(strings.Join(lines, "\n"), width, height, active)
}

func visibleStart(selected, total, rows int) int {
	if rows <= 0 || total <= rows || selected < rows {
		return 0
	}
	if selected >= total {
		selected = total - 1
	}
	return selected - rows + 1
}

func clip(text string, width int) string {
	if width <= 0 {
		return text
	}
	return truncate.StringWithTail(text, uint(width), "…")
}
