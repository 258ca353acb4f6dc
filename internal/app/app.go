package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/atomicstack/uart-console/internal/backend"
	"github.com/atomicstack/uart-console/internal/logging/events"
	"github.com/atomicstack/uart-console/internal/state"
	"github.com/atomicstack/uart-console/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// Config describes user-provided application options.
type Config struct {
	Port         string
	Baud         uint32
	Rates        []string
	ReadTimeout  time.Duration
	PollInterval time.Duration
	BufferSize   int
	CancelKey    string
}

// Run bootstraps and executes the Bubble Tea program on transport, or on the
// system serial ports when transport is nil.
func Run(cfg Config, transport backend.Transport) error {
	if transport == nil {
		transport = backend.NewSerialTransport()
	}
	return run(cfg, transport, nil)
}

func run(cfg Config, transport backend.Transport, opts []tea.ProgramOption) error {
	model := NewModel(cfg, transport)
	defer model.Session().Close()

	if opts == nil {
		opts = []tea.ProgramOption{tea.WithAltScreen()}
	}
	program := tea.NewProgram(model, opts...)
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		events.App.Stop("killed")
		return nil
	}
	if err != nil {
		events.App.Stop("error")
		return fmt.Errorf("run terminal program: %w", err)
	}
	events.App.Stop("quit")
	return nil
}

// NewModel wires a session on transport into the UI model.
func NewModel(cfg Config, transport backend.Transport) *ui.Model {
	session := state.NewSession(transport, cfg.ReadTimeout, cfg.BufferSize)
	session.PortName = cfg.Port
	session.BaudRate = cfg.Baud
	return ui.NewModel(session, transport, ui.Options{
		Rates:        cfg.Rates,
		PollInterval: cfg.PollInterval,
		CancelKey:    cfg.CancelKey,
	})
}
