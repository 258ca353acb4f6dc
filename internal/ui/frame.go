package ui

import (
	"slices"
	"time"

	"github.com/atomicstack/uart-console/internal/logging"
	"github.com/atomicstack/uart-console/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

// frameMsg drives the periodic refresh/drain step.
type frameMsg time.Time

func (m *Model) scheduleFrame() tea.Cmd {
	if m.pollInterval <= 0 {
		return nil
	}
	return tea.Tick(m.pollInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m *Model) handleFrameMsg(tea.Msg) tea.Cmd {
	m.step()
	return m.scheduleFrame()
}

// step refreshes the port list and drains the connection once. Draw follows
// because Bubble Tea renders after every Update.
func (m *Model) step() {
	m.refreshPorts()
	m.session.Drain()
}

// refreshPorts replaces the port list with a fresh enumeration. A failed
// enumeration leaves the previous items in place.
func (m *Model) refreshPorts() {
	if m.transport == nil {
		return
	}
	ports, err := m.transport.Ports()
	if err != nil {
		if msg := err.Error(); msg != m.lastListErr {
			m.lastListErr = msg
			logging.Error(err)
			events.Serial.Enumerate(nil, err)
		}
		return
	}
	m.lastListErr = ""
	if !slices.Equal(ports, m.lastPorts) {
		events.Serial.Enumerate(ports, nil)
		m.lastPorts = slices.Clone(ports)
	}
	m.ports.List().RefreshItems(ports)
}
