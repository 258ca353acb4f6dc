package backend

import (
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.bug.st/serial"
)

type stubSerialPort struct {
	serial.Port
	reads      []stubRead
	timeout    time.Duration
	timeoutErr error
	closed     bool
}

type stubRead struct {
	data string
	err  error
}

func (s *stubSerialPort) Read(p []byte) (int, error) {
	if len(s.reads) == 0 {
		return 0, nil
	}
	next := s.reads[0]
	s.reads = s.reads[1:]
	return copy(p, next.data), next.err
}

func (s *stubSerialPort) SetReadTimeout(d time.Duration) error {
	s.timeout = d
	return s.timeoutErr
}

func (s *stubSerialPort) Close() error {
	s.closed = true
	return nil
}

func newStubTransport(port *stubSerialPort, openErr error) (*SerialTransport, *serial.Mode) {
	var got serial.Mode
	tr := &SerialTransport{
		listPorts: func() ([]string, error) { return []string{"/dev/ttyUSB0", " ", "/dev/ttyACM0"}, nil },
		openPort: func(name string, mode *serial.Mode) (serial.Port, error) {
			got = *mode
			if openErr != nil {
				return nil, openErr
			}
			return port, nil
		},
	}
	return tr, &got
}

func TestPortsDropsBlankNames(t *testing.T) {
	tr, _ := newStubTransport(nil, nil)
	ports, err := tr.Ports()
	require.NoError(t, err)
	assert.Equal(t, []string{"/dev/ttyUSB0", "/dev/ttyACM0"}, ports)
}

func TestPortsWrapsEnumerationError(t *testing.T) {
	boom := errors.New("no sysfs")
	tr := &SerialTransport{listPorts: func() ([]string, error) { return nil, boom }}
	ports, err := tr.Ports()
	assert.Empty(t, ports)
	assert.ErrorIs(t, err, boom)
}

func TestOpenAppliesModeAndTimeout(t *testing.T) {
	stub := &stubSerialPort{}
	tr, mode := newStubTransport(stub, nil)
	port, err := tr.Open("COM3", 115200, 10*time.Millisecond)
	require.NoError(t, err)
	require.NotNil(t, port)
	assert.Equal(t, 115200, mode.BaudRate)
	assert.Equal(t, 8, mode.DataBits)
	assert.Equal(t, serial.NoParity, mode.Parity)
	assert.Equal(t, serial.OneStopBit, mode.StopBits)
	assert.Equal(t, 10*time.Millisecond, stub.timeout)
}

func TestOpenRejectsMissingPortAndRate(t *testing.T) {
	tr, _ := newStubTransport(&stubSerialPort{}, nil)
	_, err := tr.Open("  ", 9600, time.Millisecond)
	assert.ErrorIs(t, err, ErrNoPort)
	_, err = tr.Open("COM3", 0, time.Millisecond)
	assert.Error(t, err)
}

func TestOpenClosesPortWhenTimeoutFails(t *testing.T) {
	stub := &stubSerialPort{timeoutErr: errors.New("ioctl")}
	tr, _ := newStubTransport(stub, nil)
	_, err := tr.Open("COM3", 9600, time.Millisecond)
	assert.Error(t, err)
	assert.True(t, stub.closed)
}

func TestOpenWrapsDriverError(t *testing.T) {
	busy := errors.New("port busy")
	tr, _ := newStubTransport(nil, busy)
	_, err := tr.Open("COM3", 9600, time.Millisecond)
	assert.ErrorIs(t, err, busy)
}

func TestReadMapsEmptyReadToTimeout(t *testing.T) {
	stub := &stubSerialPort{reads: []stubRead{{data: "ok"}, {}}}
	tr, _ := newStubTransport(stub, nil)
	port, err := tr.Open("COM3", 9600, time.Millisecond)
	require.NoError(t, err)

	buf := make([]byte, 8)
	n, err := port.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(buf[:n]))

	n, err = port.Read(buf)
	assert.Zero(t, n)
	assert.True(t, IsTimeout(err))

	require.NoError(t, port.Close())
	assert.True(t, stub.closed)
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestIsTimeout(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"sentinel", ErrTimeout, true},
		{"wrapped sentinel", fmt.Errorf("read: %w", ErrTimeout), true},
		{"deadline", os.ErrDeadlineExceeded, true},
		{"timeout interface", fmt.Errorf("read: %w", timeoutErr{}), true},
		{"other", errors.New("device disconnected"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsTimeout(tc.err))
		})
	}
}
