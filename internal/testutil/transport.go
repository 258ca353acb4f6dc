package testutil

import (
	"errors"
	"time"

	"github.com/atomicstack/uart-console/internal/backend"
)

// ErrPortClosed is returned by FakePort reads after Close.
var ErrPortClosed = errors.New("fake port closed")

// OpenCall records one FakeTransport.Open invocation.
type OpenCall struct {
	Name    string
	Baud    uint32
	Timeout time.Duration
}

// FakeTransport is an in-memory backend.Transport for tests.
type FakeTransport struct {
	PortNames []string
	ListErr   error
	OpenErr   error
	// Port is handed out by Open; a fresh FakePort is created when nil.
	Port   *FakePort
	Opened []OpenCall
	Lists  int
}

// NewFakeTransport returns a transport advertising the given ports.
func NewFakeTransport(ports ...string) *FakeTransport {
	return &FakeTransport{PortNames: ports}
}

func (f *FakeTransport) Ports() ([]string, error) {
	f.Lists++
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return append([]string(nil), f.PortNames...), nil
}

func (f *FakeTransport) Open(name string, baud uint32, timeout time.Duration) (backend.Port, error) {
	f.Opened = append(f.Opened, OpenCall{Name: name, Baud: baud, Timeout: timeout})
	if f.OpenErr != nil {
		return nil, f.OpenErr
	}
	if f.Port == nil || f.Port.Closed {
		f.Port = &FakePort{}
	}
	return f.Port, nil
}

type fakeRead struct {
	data []byte
	err  error
}

// FakePort replays queued reads. An empty queue behaves like an expired
// read timeout.
type FakePort struct {
	reads     []fakeRead
	Closed    bool
	ReadCalls int
}

// Queue schedules data for a later Read.
func (p *FakePort) Queue(data string) {
	p.reads = append(p.reads, fakeRead{data: []byte(data)})
}

// QueueBytes schedules raw bytes for a later Read.
func (p *FakePort) QueueBytes(data []byte) {
	p.reads = append(p.reads, fakeRead{data: append([]byte(nil), data...)})
}

// QueueErr schedules a failing Read.
func (p *FakePort) QueueErr(err error) {
	p.reads = append(p.reads, fakeRead{err: err})
}

// Pending returns how many queued reads remain.
func (p *FakePort) Pending() int {
	return len(p.reads)
}

func (p *FakePort) Read(buf []byte) (int, error) {
	p.ReadCalls++
	if p.Closed {
		return 0, ErrPortClosed
	}
	if len(p.reads) == 0 {
		return 0, backend.ErrTimeout
	}
	next := p.reads[0]
	n := copy(buf, next.data)
	if n < len(next.data) {
		p.reads[0].data = next.data[n:]
		return n, nil
	}
	p.reads = p.reads[1:]
	return n, next.err
}

func (p *FakePort) Close() error {
	p.Closed = true
	return nil
}
