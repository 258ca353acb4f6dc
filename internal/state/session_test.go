package state

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/atomicstack/uart-console/internal/backend"
	"github.com/atomicstack/uart-console/internal/logging"
	"github.com/atomicstack/uart-console/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T, tr backend.Transport) *Session {
	t.Helper()
	logging.Configure(filepath.Join(t.TempDir(), "session.log"))
	t.Cleanup(func() { logging.Configure("") })
	s := NewSession(tr, 5*time.Millisecond, 16)
	s.PortName = "COM3"
	s.BaudRate = 115200
	return s
}

func TestOpenSuccessHoldsConnection(t *testing.T) {
	tr := testutil.NewFakeTransport("COM3")
	s := newTestSession(t, tr)

	require.True(t, s.Open())
	assert.True(t, s.Connected())
	assert.NoError(t, s.LastOpenError())
	require.Len(t, tr.Opened, 1)
	assert.Equal(t, testutil.OpenCall{Name: "COM3", Baud: 115200, Timeout: 5 * time.Millisecond}, tr.Opened[0])
}

func TestOpenFailureLeavesSessionDisconnected(t *testing.T) {
	tr := testutil.NewFakeTransport("COM3")
	tr.OpenErr = errors.New("access denied")
	s := newTestSession(t, tr)

	assert.False(t, s.Open())
	assert.False(t, s.Connected())
	assert.ErrorIs(t, s.LastOpenError(), tr.OpenErr)
}

func TestOpenWithoutTransportFails(t *testing.T) {
	s := newTestSession(t, nil)
	assert.False(t, s.Open())
	assert.False(t, s.Connected())
	assert.Error(t, s.LastOpenError())
}

func TestReopenClosesPreviousConnection(t *testing.T) {
	tr := testutil.NewFakeTransport("COM3")
	s := newTestSession(t, tr)
	require.True(t, s.Open())
	first := tr.Port

	require.True(t, s.Open())
	assert.True(t, first.Closed)
	assert.NotSame(t, first, tr.Port)
	assert.True(t, s.Connected())
}

func TestDrainWithoutConnectionIsNoOp(t *testing.T) {
	s := newTestSession(t, testutil.NewFakeTransport())
	assert.Zero(t, s.Drain())
	assert.Empty(t, s.Received())
}

func TestDrainAppendsReceivedText(t *testing.T) {
	tr := testutil.NewFakeTransport("COM3")
	s := newTestSession(t, tr)
	require.True(t, s.Open())
	tr.Port.Queue("boot ok\r\n")

	assert.Equal(t, 9, s.Drain())
	assert.Equal(t, "boot ok\r\n", s.Received())
	assert.Equal(t, 9, s.BytesReceived())
}

func TestDrainTimeoutKeepsConnectionAndBuffer(t *testing.T) {
	tr := testutil.NewFakeTransport("COM3")
	s := newTestSession(t, tr)
	require.True(t, s.Open())
	tr.Port.Queue("x")
	s.Drain()
	tr.Port.QueueErr(backend.ErrTimeout)

	assert.Zero(t, s.Drain())
	assert.True(t, s.Connected())
	assert.Equal(t, "x", s.Received())

	// an empty queue also reports a timeout
	assert.Zero(t, s.Drain())
	assert.True(t, s.Connected())
	assert.Equal(t, "x", s.Received())
}

func TestDrainOtherErrorDropsConnection(t *testing.T) {
	tr := testutil.NewFakeTransport("COM3")
	s := newTestSession(t, tr)
	require.True(t, s.Open())
	port := tr.Port
	port.QueueErr(errors.New("device unplugged"))

	s.Drain()
	assert.False(t, s.Connected())
	assert.True(t, port.Closed)
	assert.Zero(t, s.Drain())
}

func TestDrainReadsAtMostScratchSize(t *testing.T) {
	tr := testutil.NewFakeTransport("COM3")
	s := newTestSession(t, tr)
	require.True(t, s.Open())
	tr.Port.Queue("0123456789abcdefXYZ")

	assert.Equal(t, 16, s.Drain())
	assert.Equal(t, "0123456789abcdef", s.Received())
	assert.Equal(t, 3, s.Drain())
	assert.Equal(t, "0123456789abcdefXYZ", s.Received())
}

func TestDrainDecodesLossily(t *testing.T) {
	tr := testutil.NewFakeTransport("COM3")
	s := newTestSession(t, tr)
	require.True(t, s.Open())
	tr.Port.QueueBytes([]byte{'a', 0xff, 'b'})

	s.Drain()
	assert.Equal(t, "a�b", s.Received())
}

func TestDrainJoinsSplitCodepoints(t *testing.T) {
	tr := testutil.NewFakeTransport("COM3")
	s := newTestSession(t, tr)
	require.True(t, s.Open())
	euro := []byte("€")
	tr.Port.QueueBytes(append([]byte("price "), euro[:2]...))
	tr.Port.QueueBytes(append(euro[2:], '5'))

	s.Drain()
	assert.Equal(t, "price ", s.Received())
	s.Drain()
	assert.Equal(t, "price €5", s.Received())
}

func TestDrainReplacesEachInvalidByte(t *testing.T) {
	tr := testutil.NewFakeTransport("COM3")
	s := newTestSession(t, tr)
	require.True(t, s.Open())
	tr.Port.QueueBytes([]byte("a\xff\xffb\xe2\x28c"))

	s.Drain()
	assert.Equal(t, "a\uFFFD\uFFFDb\uFFFD(c", s.Received())
}

func TestDrainKeepsLiteralReplacementCharacter(t *testing.T) {
	tr := testutil.NewFakeTransport("COM3")
	s := newTestSession(t, tr)
	require.True(t, s.Open())
	tr.Port.Queue("x\uFFFDy")

	s.Drain()
	assert.Equal(t, "x\uFFFDy", s.Received())
}

func TestIdleDrainFlushesIncompleteSequence(t *testing.T) {
	tr := testutil.NewFakeTransport("COM3")
	s := newTestSession(t, tr)
	require.True(t, s.Open())
	tr.Port.QueueBytes([]byte("a\xff\xffb\xe2"))

	s.Drain()
	assert.Equal(t, "a\uFFFD\uFFFDb", s.Received())

	// the line goes quiet: the held lead byte is given up on
	assert.Zero(t, s.Drain())
	assert.Equal(t, "a\uFFFD\uFFFDb\uFFFD", s.Received())

	assert.Zero(t, s.Drain())
	assert.Equal(t, "a\uFFFD\uFFFDb\uFFFD", s.Received())
	assert.Equal(t, 5, s.BytesReceived())
}

func TestDropFlushesIncompleteSequence(t *testing.T) {
	tr := testutil.NewFakeTransport("COM3")
	s := newTestSession(t, tr)
	require.True(t, s.Open())
	tr.Port.QueueBytes([]byte{'z', 0xe2, 0x82})

	s.Drain()
	assert.Equal(t, "z", s.Received())
	s.Close()
	assert.Equal(t, "z\uFFFD", s.Received())
}

func TestCloseDropsConnection(t *testing.T) {
	tr := testutil.NewFakeTransport("COM3")
	s := newTestSession(t, tr)
	require.True(t, s.Open())
	s.Close()
	assert.False(t, s.Connected())
	assert.True(t, tr.Port.Closed)
	s.Close()
}

func TestScrollBackClamps(t *testing.T) {
	s := newTestSession(t, nil)
	s.ScrollDown(3)
	assert.Zero(t, s.ScrollBack())
	s.ScrollUp(10)
	s.ClampScrollBack(4)
	assert.Equal(t, 4, s.ScrollBack())
	s.ScrollDown(1)
	assert.Equal(t, 3, s.ScrollBack())
	s.ScrollToEnd()
	assert.Zero(t, s.ScrollBack())
}

func TestNewSessionDefaults(t *testing.T) {
	s := NewSession(nil, 0, 0)
	assert.Equal(t, DefaultReadTimeout, s.readTimeout)
	assert.Len(t, s.scratch, DefaultBufferSize)
}
