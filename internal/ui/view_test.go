package ui

import (
	"errors"
	"strings"
	"testing"

	"github.com/atomicstack/uart-console/internal/state"
	"github.com/atomicstack/uart-console/internal/testutil"
)

func TestViewShowsPanelsAndStatus(t *testing.T) {
	h, _ := newTestHarness(t, Options{}, "COM1", "COM3")
	view := testutil.PlainView(h.View())
	for _, want := range []string{"Ports", "COM3", "Baud", "460800", "Receive", "> ", "(no port) @ 115200", "disconnected", "0 bytes"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view, got:\n%s", want, view)
		}
	}
	if got := len(strings.Split(view, "\n")); got != 24 {
		t.Fatalf("expected view to fill 24 rows, got %d", got)
	}
}

func TestViewShowsReceivedText(t *testing.T) {
	h, transport := newTestHarness(t, Options{}, "COM1")
	h.Model().Session().PortName = "COM1"
	submit(h, "o")
	transport.Port.Queue("hello from the board\r\nsecond line\r\n")
	h.Frame()

	view := testutil.PlainView(h.View())
	for _, want := range []string{"hello from the board", "second line", "COM1 @ 115200", "connected", "35 bytes"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view, got:\n%s", want, view)
		}
	}
}

func TestViewShowsActionError(t *testing.T) {
	h, _ := newTestHarness(t, Options{}, "COM1")
	submit(h, "nope")
	view := testutil.PlainView(h.View())
	if !strings.Contains(view, "Error: unknown command: nope") {
		t.Fatalf("expected error in status line, got:\n%s", view)
	}
}

func TestViewShowsOpenFailureAsDisconnected(t *testing.T) {
	h, transport := newTestHarness(t, Options{}, "COM1")
	transport.OpenErr = errors.New("busy")
	h.Model().Session().PortName = "COM1"
	submit(h, "o")
	view := testutil.PlainView(h.View())
	if !strings.Contains(view, "disconnected (busy)") {
		t.Fatalf("expected open failure in status, got:\n%s", view)
	}
}

func TestViewFollowsTailUnlessScrolledBack(t *testing.T) {
	h, transport := newTestHarness(t, Options{}, "COM1")
	h.Model().Session().PortName = "COM1"
	submit(h, "o")
	var b strings.Builder
	for i := 0; i < 60; i++ {
		b.WriteString("line-")
		b.WriteByte(byte('A' + i%26))
		b.WriteString(strings.Repeat("x", i/26))
		b.WriteString("\n")
	}
	transport.Port.Queue(b.String())
	h.Frame()

	view := testutil.PlainView(h.View())
	if !strings.Contains(view, "line-Hxx") {
		t.Fatalf("expected the last line to be visible, got:\n%s", view)
	}
	if strings.Contains(view, "line-A\n") || strings.Contains(view, "line-A ") {
		t.Fatalf("expected the first line to be scrolled out, got:\n%s", view)
	}

	h.Model().Session().ScrollUp(1000)
	view = testutil.PlainView(h.View())
	if !strings.Contains(view, "line-A ") {
		t.Fatalf("expected scroll back to reach the first line, got:\n%s", view)
	}
	if h.Model().Session().ScrollBack() >= 1000 {
		t.Fatalf("expected scroll back to be clamped, got %d", h.Model().Session().ScrollBack())
	}
}

func TestViewWrapsOnlyNewlyReceivedText(t *testing.T) {
	h, transport := newTestHarness(t, Options{}, "COM1")
	model := h.Model()
	model.session = state.NewSession(transport, 0, 1<<20)
	model.session.PortName = "COM1"
	model.session.BaudRate = 115200
	submit(h, "o")

	line := strings.Repeat("0123456789", 6) + "\n"
	big := strings.Repeat(line, (4<<20)/len(line))
	transport.Port.Queue(big)
	for model.session.BytesReceived() < len(big) {
		h.Frame()
	}
	h.View()

	before := model.lines.wrapped
	view := testutil.PlainView(h.View())
	if model.lines.wrapped != before {
		t.Fatalf("expected a repeat render to wrap nothing, wrapped %d bytes", model.lines.wrapped-before)
	}
	if !strings.Contains(view, "0123456789") {
		t.Fatalf("expected the tail of the buffer in view, got:\n%s", view)
	}

	transport.Port.Queue("login: ")
	h.Frame()
	view = testutil.PlainView(h.View())
	if delta := model.lines.wrapped - before; delta != len("login: ") {
		t.Fatalf("expected only the new text to be wrapped, wrapped %d bytes", delta)
	}
	if !strings.Contains(view, "login:") {
		t.Fatalf("expected the new prompt in view, got:\n%s", view)
	}
}
