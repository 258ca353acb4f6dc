// Package command turns a typed command line into one of the session's
// built-in commands.
package command

import "fmt"

// Command is a recognised command.
type Command int

const (
	None Command = iota
	PortChoice
	RateChoice
	Open
	Quit
)

func (c Command) String() string {
	switch c {
	case PortChoice:
		return "port-choice"
	case RateChoice:
		return "rate-choice"
	case Open:
		return "open"
	case Quit:
		return "quit"
	default:
		return "none"
	}
}

// Parsed is a tokenised command line: the first token names the command and
// the rest are its arguments.
type Parsed struct {
	Name string
	Args []string
}

// ErrorKind classifies parse failures.
type ErrorKind int

const (
	ErrEmpty ErrorKind = iota + 1
	ErrNoCommand
	ErrUnclosedQuote
	ErrUnknown
)

// ParseError describes why a line did not yield a command.
type ParseError struct {
	Kind ErrorKind
	Name string
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case ErrEmpty:
		return "Empty command"
	case ErrNoCommand:
		return "No command found"
	case ErrUnclosedQuote:
		return "Unclosed quote"
	case ErrUnknown:
		return fmt.Sprintf("unknown command: %s", e.Name)
	default:
		return "invalid command"
	}
}

var table = map[string]Command{
	"c": PortChoice,
	"r": RateChoice,
	"o": Open,
	"q": Quit,
}

// Dispatch maps a parsed line onto a command. Names are case-sensitive.
func Dispatch(p Parsed) (Command, error) {
	if cmd, ok := table[p.Name]; ok {
		return cmd, nil
	}
	return None, &ParseError{Kind: ErrUnknown, Name: p.Name}
}

// Parse tokenises and dispatches input.
func Parse(input string) (Command, Parsed, error) {
	p, err := Split(input)
	if err != nil {
		return None, Parsed{}, err
	}
	cmd, err := Dispatch(p)
	return cmd, p, err
}
