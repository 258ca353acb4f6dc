package command

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []string
	}{
		{"plain", "c r  o", []string{"c", "r", "o"}},
		{"quoted group", `c "o pen" q`, []string{"c", "o pen", "q"}},
		{"quote joins adjacent text", `a"b c"d`, []string{"ab cd"}},
		{"escaped quote outside", `say \"hi\"`, []string{"say", `"hi"`}},
		{"escaped quote inside", `"a \" b"`, []string{`a " b`}},
		{"escaped backslash", `x\\y`, []string{`x\y`}},
		{"lone backslash kept", `a\b`, []string{`a\b`}},
		{"tabs split", "c\tr", []string{"c", "r"}},
		{"empty quotes dropped", `"" c`, []string{"c"}},
		{"unicode", "ö 端口", []string{"ö", "端口"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Tokenize(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestTokenizeUnclosedQuote(t *testing.T) {
	_, err := Tokenize(`x "y`)
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, ErrUnclosedQuote, perr.Kind)
	assert.Equal(t, "Unclosed quote", err.Error())
}

func TestSplitRejectsEmptyInput(t *testing.T) {
	_, err := Split("   ")
	require.Error(t, err)
	assert.Equal(t, "Empty command", err.Error())

	_, err = Split(`""`)
	require.Error(t, err)
	assert.Equal(t, "No command found", err.Error())
}

func TestSplitKeepsArguments(t *testing.T) {
	p, err := Split(`o "/dev/tty USB0" 9600`)
	require.NoError(t, err)
	assert.Equal(t, "o", p.Name)
	assert.Equal(t, []string{"/dev/tty USB0", "9600"}, p.Args)
}

func TestParseDispatchTable(t *testing.T) {
	cases := map[string]Command{
		"c":         PortChoice,
		"r":         RateChoice,
		"o":         Open,
		"q":         Quit,
		"  q  ":     Quit,
		"c ignored": PortChoice,
	}
	for input, want := range cases {
		got, _, err := Parse(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}
}

func TestParseUnknownCommand(t *testing.T) {
	cmd, p, err := Parse("Q")
	assert.Equal(t, None, cmd)
	assert.Equal(t, "Q", p.Name)
	require.Error(t, err)
	assert.Equal(t, "unknown command: Q", err.Error())
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, ErrUnknown, perr.Kind)
}

func TestCommandString(t *testing.T) {
	assert.Equal(t, "open", Open.String())
	assert.Equal(t, "none", Command(99).String())
}
