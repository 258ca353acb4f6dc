package testutil

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// PlainView strips ANSI styling and trailing blanks so rendered frames can be
// matched with plain string assertions.
func PlainView(view string) string {
	lines := strings.Split(ansi.Strip(view), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.Join(lines, "\n")
}
