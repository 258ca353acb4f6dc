package app

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/atomicstack/uart-console/internal/testutil"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewModelCarriesConfig(t *testing.T) {
	transport := testutil.NewFakeTransport("COM1", "COM3")
	m := NewModel(Config{Port: "COM3", Baud: 9600, Rates: []string{"9600"}}, transport)
	assert.Equal(t, "COM3", m.Session().PortName)
	assert.Equal(t, uint32(9600), m.Session().BaudRate)
	assert.False(t, m.Session().Connected())
}

func TestRunQuitsOnCommand(t *testing.T) {
	transport := testutil.NewFakeTransport("COM1")
	in := bytes.NewBufferString("q\r")
	cfg := Config{Baud: 115200, Rates: []string{"115200"}, PollInterval: 10 * time.Millisecond, ReadTimeout: time.Millisecond, BufferSize: 64}

	done := make(chan error, 1)
	go func() {
		done <- run(cfg, transport, []tea.ProgramOption{
			tea.WithInput(in),
			tea.WithOutput(io.Discard),
			tea.WithoutSignalHandler(),
		})
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("program did not quit")
	}
	assert.GreaterOrEqual(t, transport.Lists, 1)
}
