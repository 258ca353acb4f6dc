package state

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/atomicstack/uart-console/internal/backend"
	"github.com/atomicstack/uart-console/internal/logging"
	"github.com/atomicstack/uart-console/internal/logging/events"
)

const (
	DefaultReadTimeout = 10 * time.Millisecond
	DefaultBufferSize  = 1024
)

var errNoTransport = errors.New("no serial transport configured")

// Session owns the chosen port and rate, the single live connection, and the
// text received over it. Only Drain, Open and Close touch the connection.
type Session struct {
	PortName string
	BaudRate uint32

	transport   backend.Transport
	readTimeout time.Duration
	scratch     []byte

	conn        backend.Port
	lastOpenErr error

	received   strings.Builder
	partial    []byte
	byteCount  int
	scrollBack int
}

// NewSession prepares a disconnected session. Non-positive timeout or buffer
// size fall back to the defaults.
func NewSession(transport backend.Transport, readTimeout time.Duration, bufferSize int) *Session {
	if readTimeout <= 0 {
		readTimeout = DefaultReadTimeout
	}
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	return &Session{
		transport:   transport,
		readTimeout: readTimeout,
		scratch:     make([]byte, bufferSize),
	}
}

// Connected reports whether a connection is currently held.
func (s *Session) Connected() bool {
	return s.conn != nil
}

// LastOpenError returns the error of the most recent failed Open, or nil when
// the last attempt succeeded or none was made.
func (s *Session) LastOpenError() error {
	return s.lastOpenErr
}

// Received returns everything decoded so far.
func (s *Session) Received() string {
	return s.received.String()
}

// BytesReceived counts raw bytes read since start.
func (s *Session) BytesReceived() int {
	return s.byteCount
}

// Open replaces any existing connection with a new one for PortName and
// BaudRate. Failure leaves the session disconnected; the error is logged and
// kept for LastOpenError but not returned.
func (s *Session) Open() bool {
	if s.conn != nil {
		s.drop(events.DropReasonReopen, nil)
	}
	if s.transport == nil {
		s.openFailed(errNoTransport)
		return false
	}
	conn, err := s.transport.Open(s.PortName, s.BaudRate, s.readTimeout)
	if err != nil {
		s.openFailed(err)
		return false
	}
	s.conn = conn
	s.lastOpenErr = nil
	s.partial = nil
	events.Serial.Open(s.PortName, s.BaudRate)
	return true
}

func (s *Session) openFailed(err error) {
	s.lastOpenErr = err
	logging.Errorf("open serial port %q at %d: %w", s.PortName, s.BaudRate, err)
	events.Serial.OpenFailed(s.PortName, s.BaudRate, err)
}

// Close drops the connection if one is open.
func (s *Session) Close() {
	if s.conn != nil {
		s.drop(events.DropReasonQuit, nil)
	}
}

// Drain performs one bounded read. Data is appended to the receive buffer, a
// timeout is ignored, and any other error drops the connection. A read that
// comes back empty flushes a held incomplete sequence as U+FFFD. It returns
// the number of bytes read.
func (s *Session) Drain() int {
	if s.conn == nil {
		return 0
	}
	n, err := s.conn.Read(s.scratch)
	if n > 0 {
		s.appendBytes(s.scratch[:n])
		s.byteCount += n
		events.Serial.Receive(s.PortName, n)
	} else if err == nil || backend.IsTimeout(err) {
		s.flushPartial()
	}
	if err != nil && !backend.IsTimeout(err) {
		logging.Errorf("read serial port %q: %w", s.PortName, err)
		s.drop(events.DropReasonReadError, err)
	}
	return n
}

func (s *Session) drop(reason events.DropReason, cause error) {
	if err := s.conn.Close(); err != nil {
		logging.Errorf("close serial port %q: %w", s.PortName, err)
	}
	events.Serial.Drop(s.PortName, reason, cause)
	s.conn = nil
	s.flushPartial()
}

// appendBytes decodes b lossily, one U+FFFD per invalid byte. An incomplete
// multi-byte sequence at the end is held back until the next read.
func (s *Session) appendBytes(b []byte) {
	data := b
	if len(s.partial) > 0 {
		data = append(s.partial, b...)
		s.partial = nil
	}
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size <= 1 {
			if !utf8.FullRune(data) {
				s.partial = append([]byte(nil), data...)
				return
			}
			s.received.WriteRune(utf8.RuneError)
			data = data[1:]
			continue
		}
		s.received.Write(data[:size])
		data = data[size:]
	}
}

// flushPartial gives up on a held sequence the line never completed.
func (s *Session) flushPartial() {
	if len(s.partial) == 0 {
		return
	}
	s.partial = nil
	s.received.WriteRune(utf8.RuneError)
}

// ScrollBack is how many lines the receive view is held above its tail.
func (s *Session) ScrollBack() int {
	return s.scrollBack
}

// ScrollUp moves the receive view n lines towards older output.
func (s *Session) ScrollUp(n int) {
	if n > 0 {
		s.scrollBack += n
	}
}

// ScrollDown moves the receive view n lines towards the tail.
func (s *Session) ScrollDown(n int) {
	s.scrollBack -= n
	if s.scrollBack < 0 {
		s.scrollBack = 0
	}
}

// ScrollToEnd resumes following new output.
func (s *Session) ScrollToEnd() {
	s.scrollBack = 0
}

// ClampScrollBack limits the scroll-back to max lines.
func (s *Session) ClampScrollBack(max int) {
	if max < 0 {
		max = 0
	}
	if s.scrollBack > max {
		s.scrollBack = max
	}
}
