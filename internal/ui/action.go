package ui

import "fmt"

// ActionKind tags the variant held by an Action.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionQuit
	ActionSwitchMode
	ActionSelectPort
	ActionSelectRate
	ActionOpen
	ActionError
)

func (k ActionKind) String() string {
	switch k {
	case ActionQuit:
		return "quit"
	case ActionSwitchMode:
		return "switch-mode"
	case ActionSelectPort:
		return "select-port"
	case ActionSelectRate:
		return "select-rate"
	case ActionOpen:
		return "open"
	case ActionError:
		return "error"
	default:
		return "none"
	}
}

// Action is the intent produced by a single key press. Only the field that
// matches Kind is meaningful.
type Action struct {
	Kind    ActionKind
	Mode    Mode
	Port    string
	Rate    uint32
	Message string
}

func NoAction() Action { return Action{Kind: ActionNone} }

func QuitAction() Action { return Action{Kind: ActionQuit} }

func SwitchMode(m Mode) Action { return Action{Kind: ActionSwitchMode, Mode: m} }

func SelectPort(name string) Action { return Action{Kind: ActionSelectPort, Port: name} }

func SelectRate(rate uint32) Action { return Action{Kind: ActionSelectRate, Rate: rate} }

func OpenAction() Action { return Action{Kind: ActionOpen} }

func ErrorAction(message string) Action { return Action{Kind: ActionError, Message: message} }

func (a Action) String() string {
	switch a.Kind {
	case ActionSwitchMode:
		return fmt.Sprintf("switch-mode(%s)", a.Mode)
	case ActionSelectPort:
		return fmt.Sprintf("select-port(%s)", a.Port)
	case ActionSelectRate:
		return fmt.Sprintf("select-rate(%d)", a.Rate)
	case ActionError:
		return fmt.Sprintf("error(%s)", a.Message)
	default:
		return a.Kind.String()
	}
}
