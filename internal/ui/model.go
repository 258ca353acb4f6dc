package ui

import (
	"reflect"
	"slices"
	"strconv"
	"time"

	"github.com/atomicstack/uart-console/internal/backend"
	"github.com/atomicstack/uart-console/internal/state"
	"github.com/atomicstack/uart-console/internal/theme"
	uistate "github.com/atomicstack/uart-console/internal/ui/state"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	DefaultPollInterval = 100 * time.Millisecond
	DefaultCancelKey    = "esc"

	defaultWidth  = 80
	defaultHeight = 24
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options carries the user-tunable parts of the model.
type Options struct {
	// Rates are the baud rates offered in the rate panel, in display order.
	Rates []string
	// PollInterval is the frame period: how often ports are re-enumerated
	// and the connection drained when no key arrives.
	PollInterval time.Duration
	// CancelKey returns focus to the command line from any panel.
	CancelKey string
}

// Model implements the Bubble Tea model for the serial console.
type Model struct {
	session   *state.Session
	transport backend.Transport

	mode    Mode
	ports   *ListPanel
	rates   *ListPanel
	input   *CommandPanel
	receive viewport.Model
	lines   receiveLines

	errMsg      string
	width       int
	height      int
	fixedSize   bool
	quitting    bool
	lastPorts   []string
	lastListErr string

	pollInterval time.Duration
	cancelKey    string

	handlers map[reflect.Type]msgHandler
}

// NewModel builds the console around session. Ports are enumerated through
// transport once here and again on every frame.
func NewModel(session *state.Session, transport backend.Transport, opts Options) *Model {
	if session == nil {
		session = state.NewSession(transport, 0, 0)
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if opts.CancelKey == "" {
		opts.CancelKey = DefaultCancelKey
	}
	m := &Model{
		session:      session,
		transport:    transport,
		mode:         ModeCommandInput,
		ports:        NewListPanel(PortSelection, "Ports", nil),
		rates:        NewListPanel(RateSelection, "Baud", uistate.NewSelectableList(opts.Rates)),
		input:        NewCommandPanel(),
		receive:      viewport.New(0, 0),
		pollInterval: opts.PollInterval,
		cancelKey:    opts.CancelKey,
	}
	m.refreshPorts()
	m.preselect()
	m.registerHandlers()
	return m
}

// preselect points both lists at the session's current port and rate so
// Enter without navigation keeps them.
func (m *Model) preselect() {
	if idx := slices.Index(m.ports.List().Items(), m.session.PortName); idx >= 0 {
		m.ports.List().Select(idx)
	}
	rate := strconv.FormatUint(uint64(m.session.BaudRate), 10)
	if idx := slices.Index(m.rates.List().Items(), rate); idx >= 0 {
		m.rates.List().Select(idx)
	}
}

// SetSize fixes the render size, overriding window size messages.
func (m *Model) SetSize(width, height int) {
	m.width, m.height = width, height
	m.fixedSize = width > 0 && height > 0
}

// Mode reports the panel that currently owns the keyboard.
func (m *Model) Mode() Mode {
	return m.mode
}

// Session exposes the serial session.
func (m *Model) Session() *state.Session {
	return m.session
}

// ErrorMessage is the text shown in the status line, if any.
func (m *Model) ErrorMessage() string {
	return m.errMsg
}

// Quitting reports whether Quit has been applied.
func (m *Model) Quitting() bool {
	return m.quitting
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if cmd := m.scheduleFrame(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if cmd := m.input.cursor.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.input.updateCursor(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(frameMsg{}):          m.handleFrameMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if cmd := m.input.blinkCmd(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// handleKeyMsg routes a key press. The cancel key, ctrl+c and the receive
// scroll keys are global. Printable keys a list does not use move focus to
// the command line first. Everything else goes to the focused component and
// the resulting action is applied before the frame step runs. Every key but
// quit ends with the step.
func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch key.String() {
	case m.cancelKey:
		cmd := m.cancel()
		m.step()
		return cmd
	case "ctrl+c":
		return m.applyAction(QuitAction())
	case "pgup":
		m.session.ScrollUp(m.scrollPage())
		m.step()
		return nil
	case "pgdown":
		m.session.ScrollDown(m.scrollPage())
		m.step()
		return nil
	case "ctrl+end":
		m.session.ScrollToEnd()
		m.step()
		return nil
	}
	cmds := make([]tea.Cmd, 0, 2)
	if list := m.activeList(); list != nil && !list.claims(key) {
		// typing in a list starts a command line; ':' only moves focus
		cmds = append(cmds, m.setMode(ModeCommandInput))
		if string(key.Runes) == ":" {
			m.step()
			return tea.Batch(cmds...)
		}
	}
	action := m.active().HandleKey(key)
	cmds = append(cmds, m.applyAction(action))
	if action.Kind != ActionQuit {
		m.step()
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	size, ok := msg.(tea.WindowSizeMsg)
	if !ok || m.fixedSize {
		return nil
	}
	m.width = size.Width
	m.height = size.Height
	return nil
}

func (m *Model) activeList() *ListPanel {
	switch m.mode {
	case ModePortChoice:
		return m.ports
	case ModeRateChoice:
		return m.rates
	default:
		return nil
	}
}

// active returns the component that owns the current mode.
func (m *Model) active() Component {
	switch m.mode {
	case ModePortChoice:
		return m.ports
	case ModeRateChoice:
		return m.rates
	default:
		return m.input
	}
}

func (m *Model) size() (int, int) {
	w, h := m.width, m.height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	return w, h
}
