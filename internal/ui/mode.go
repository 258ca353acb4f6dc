package ui

// Mode identifies the panel that owns keyboard focus.
type Mode int

const (
	ModeCommandInput Mode = iota
	ModePortChoice
	ModeRateChoice
)

func (m Mode) String() string {
	switch m {
	case ModePortChoice:
		return "port-choice"
	case ModeRateChoice:
		return "rate-choice"
	default:
		return "command-input"
	}
}
