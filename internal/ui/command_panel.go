package ui

import (
	"github.com/atomicstack/uart-console/internal/logging/events"
	"github.com/atomicstack/uart-console/internal/ui/command"
	uistate "github.com/atomicstack/uart-console/internal/ui/state"
	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const commandPrompt = "> "

// CommandPanel edits the command line and dispatches it on Enter.
type CommandPanel struct {
	editor *uistate.TextEditor
	cursor cursor.Model
	dirty  bool
}

// NewCommandPanel returns an empty command line with a focused caret.
func NewCommandPanel() *CommandPanel {
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Input != nil {
		c.TextStyle = styles.Input.Copy()
	}
	c.SetChar(" ")
	return &CommandPanel{editor: uistate.NewTextEditor(), cursor: c}
}

// Editor exposes the line buffer.
func (p *CommandPanel) Editor() *uistate.TextEditor {
	return p.editor
}

// HandleKey applies editing keys to the buffer. Enter submits a non-empty
// line; Esc yields no command and keeps the buffer.
func (p *CommandPanel) HandleKey(msg tea.KeyMsg) Action {
	before := p.editor.Cursor()
	defer p.noteCursor(before)

	switch msg.String() {
	case "ctrl+a":
		p.editor.Home()
		return NoAction()
	case "ctrl+e":
		p.editor.End()
		return NoAction()
	}
	switch msg.Type {
	case tea.KeyEnter:
		return p.submit()
	case tea.KeyEsc:
		p.editor.Cancel()
	case tea.KeyBackspace, tea.KeyCtrlH:
		p.editor.Backspace()
	case tea.KeyDelete:
		p.editor.DeleteForward()
	case tea.KeyLeft:
		p.editor.MoveLeft()
	case tea.KeyRight:
		p.editor.MoveRight()
	case tea.KeyHome:
		p.editor.Home()
	case tea.KeyEnd:
		p.editor.End()
	case tea.KeySpace:
		p.editor.Insert(' ')
	case tea.KeyRunes:
		if msg.Alt {
			return NoAction()
		}
		p.editor.InsertString(string(msg.Runes))
	}
	return NoAction()
}

func (p *CommandPanel) submit() Action {
	line := p.editor.Submit()
	if line == "" {
		return NoAction()
	}
	events.Command.Submit(line)
	cmd, parsed, err := command.Parse(line)
	if err != nil {
		events.Command.Rejected(line, err)
		return ErrorAction(err.Error())
	}
	events.Command.Parsed(parsed.Name, parsed.Args)
	switch cmd {
	case command.PortChoice:
		return SwitchMode(ModePortChoice)
	case command.RateChoice:
		return SwitchMode(ModeRateChoice)
	case command.Open:
		return OpenAction()
	case command.Quit:
		return QuitAction()
	default:
		return NoAction()
	}
}

func (p *CommandPanel) noteCursor(before int) {
	if before != p.editor.Cursor() {
		p.dirty = true
	}
}

// updateCursor feeds blink and focus messages to the caret.
func (p *CommandPanel) updateCursor(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.cursor, cmd = p.cursor.Update(msg)
	return cmd
}

// blinkCmd restarts the blink cycle after the caret moved so it is shown
// solid while the user is typing.
func (p *CommandPanel) blinkCmd() tea.Cmd {
	if !p.dirty {
		return nil
	}
	p.dirty = false
	p.cursor.Blink = false
	return p.cursor.BlinkCmd()
}

// Render draws the prompt and the buffer, with the caret only when active.
func (p *CommandPanel) Render(width, height int, active bool) string {
	innerW, _ := innerSize(width, height)
	prompt := render(styles.InputPrompt, commandPrompt)

	before, at, after := p.editor.Split()
	if avail := innerW - lipgloss.Width(commandPrompt) - 1; avail > 1 {
		if r := []rune(before); len(r) > avail {
			before = "…" + string(r[len(r)-avail+1:])
		}
	}
	var caret string
	if active {
		caret = p.renderCursor(at)
	} else {
		caret = render(styles.Input, at)
	}
	line := prompt + render(styles.Input, before) + caret + render(styles.Input, after)
	if innerW > 0 {
		line = truncate.String(line, uint(innerW))
	}
	return panelFrame(line, width, height, active)
}

func (p *CommandPanel) renderCursor(char string) string {
	if char == "" {
		char = " "
	}
	p.cursor.SetChar(char)

	base := p.cursor.TextStyle.Copy().Inline(true)
	if p.cursor.Blink {
		return base.Render(char)
	}
	if styles.Cursor != nil {
		return base.Inherit(styles.Cursor.Copy().Inline(true)).Blink(false).Render(char)
	}
	return base.Reverse(true).Render(char)
}
