package ui

import (
	"strings"
	"unicode/utf8"

	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
)

// tailLimit caps how much of an unterminated line is rewrapped per frame;
// longer runs are committed as if a line break had arrived.
const tailLimit = 4096

// receiveLines keeps the receive buffer wrapped to the pane width. Text is
// wrapped once as it arrives and only the unterminated last line is wrapped
// again on the next sync. A width change starts over.
type receiveLines struct {
	width    int
	consumed int
	afterCR  bool
	rows     []string
	tail     string
	tailRows []string

	// wrapped counts bytes handed to the wrapper.
	wrapped int
}

// sync catches up with text, which must only ever grow.
func (r *receiveLines) sync(text string, width int) {
	if width != r.width || len(text) < r.consumed {
		*r = receiveLines{width: width, wrapped: r.wrapped}
	}
	if len(text) == r.consumed {
		return
	}
	fresh := text[r.consumed:]
	r.consumed = len(text)

	// CR, LF and CRLF each end a line, even when a CRLF straddles two syncs.
	start := 0
	for i := 0; i < len(fresh); i++ {
		c := fresh[i]
		if c != '\r' && c != '\n' {
			r.afterCR = false
			continue
		}
		if c == '\n' && r.afterCR {
			r.afterCR = false
			start = i + 1
			continue
		}
		r.rows = append(r.rows, r.wrap(r.tail+fresh[start:i])...)
		r.tail = ""
		start = i + 1
		r.afterCR = c == '\r'
	}
	pending := r.tail + fresh[start:]
	for len(pending) > tailLimit {
		cut := tailCut(pending)
		r.rows = append(r.rows, r.wrap(pending[:cut])...)
		pending = pending[cut:]
	}
	r.tail = pending
	r.tailRows = nil
	if pending != "" {
		r.tailRows = r.wrap(pending)
	}
}

func (r *receiveLines) wrap(line string) []string {
	r.wrapped += len(line)
	if line == "" {
		return []string{""}
	}
	return strings.Split(wrap.String(wordwrap.String(line, r.width), r.width), "\n")
}

// count is the number of wrapped rows, the unterminated line included.
func (r *receiveLines) count() int {
	return len(r.rows) + len(r.tailRows)
}

// window returns up to n rows starting at row start.
func (r *receiveLines) window(start, n int) []string {
	if start < 0 {
		start = 0
	}
	end := start + n
	if total := r.count(); end > total {
		end = total
	}
	if start >= end {
		return nil
	}
	out := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		if i < len(r.rows) {
			out = append(out, r.rows[i])
		} else {
			out = append(out, r.tailRows[i-len(r.rows)])
		}
	}
	return out
}

// tailCut picks where to break an overlong line: after the last space within
// the limit, else on the last rune boundary.
func tailCut(s string) int {
	if cut := strings.LastIndexByte(s[:tailLimit], ' ') + 1; cut > 0 {
		return cut
	}
	cut := tailLimit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	if cut == 0 {
		return tailLimit
	}
	return cut
}
