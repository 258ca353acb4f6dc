package ui

import (
	"github.com/atomicstack/uart-console/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

// applyAction carries out a component's action. Any action other than Error
// clears the status error.
func (m *Model) applyAction(a Action) tea.Cmd {
	if a.Kind != ActionNone {
		events.Action.Apply(a.String())
	}
	if a.Kind != ActionError {
		m.errMsg = ""
	}
	switch a.Kind {
	case ActionQuit:
		m.session.Close()
		m.quitting = true
		return tea.Quit
	case ActionSwitchMode:
		return m.setMode(a.Mode)
	case ActionSelectPort:
		m.session.PortName = a.Port
		events.Serial.SelectPort(a.Port)
		return m.setMode(ModeCommandInput)
	case ActionSelectRate:
		m.session.BaudRate = a.Rate
		events.Serial.SelectRate(a.Rate)
		return m.setMode(ModeCommandInput)
	case ActionOpen:
		m.session.Open()
	case ActionError:
		m.errMsg = a.Message
		events.Action.Error(a.Message)
	}
	return nil
}

// cancel returns focus to the command line without consulting the focused
// component.
func (m *Model) cancel() tea.Cmd {
	if m.mode != ModeCommandInput {
		events.Mode.Cancel(m.mode.String())
	}
	return m.setMode(ModeCommandInput)
}

func (m *Model) setMode(next Mode) tea.Cmd {
	if next == m.mode {
		return nil
	}
	events.Mode.Switch(m.mode.String(), next.String())
	m.mode = next
	if next == ModeCommandInput {
		return m.input.cursor.Focus()
	}
	m.input.cursor.Blur()
	return nil
}
