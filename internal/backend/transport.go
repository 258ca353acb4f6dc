package backend

import (
	"errors"
	"os"
	"time"
)

// Transport enumerates and opens serial ports.
type Transport interface {
	Ports() ([]string, error)
	Open(name string, baud uint32, timeout time.Duration) (Port, error)
}

// Port is a single open connection. Read blocks for at most the timeout given
// to Open; an expired wait is reported as ErrTimeout (or another error for
// which IsTimeout holds).
type Port interface {
	Read(p []byte) (int, error)
	Close() error
}

var (
	// ErrTimeout reports a read that ended without data.
	ErrTimeout = errors.New("serial read timed out")
	// ErrNoPort is returned by Open when no port name has been chosen.
	ErrNoPort = errors.New("no serial port selected")
)

// IsTimeout reports whether err only means the read deadline expired.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTimeout) || errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var t interface{ Timeout() bool }
	if errors.As(err, &t) {
		return t.Timeout()
	}
	return false
}
