package backend

import (
	"fmt"
	"strings"
	"time"

	"go.bug.st/serial"
)

// SerialTransport talks to local UART devices through go.bug.st/serial.
type SerialTransport struct {
	listPorts func() ([]string, error)
	openPort  func(string, *serial.Mode) (serial.Port, error)
}

// NewSerialTransport returns a transport backed by the host's serial ports.
func NewSerialTransport() *SerialTransport {
	return &SerialTransport{
		listPorts: serial.GetPortsList,
		openPort:  serial.Open,
	}
}

// Ports lists the port names currently present. A host without any ports
// yields an empty slice and no error.
func (t *SerialTransport) Ports() ([]string, error) {
	ports, err := t.listPorts()
	if err != nil {
		return nil, fmt.Errorf("enumerate serial ports: %w", err)
	}
	names := make([]string, 0, len(ports))
	for _, name := range ports {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

// Open opens name at baud with 8N1 framing and applies the read timeout.
func (t *SerialTransport) Open(name string, baud uint32, timeout time.Duration) (Port, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrNoPort
	}
	if baud == 0 {
		return nil, fmt.Errorf("open %s: baud rate must be > 0", name)
	}
	mode := &serial.Mode{
		BaudRate: int(baud),
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := t.openPort(name, mode)
	if err != nil {
		return nil, fmt.Errorf("open %s at %d baud: %w", name, baud, err)
	}
	if timeout > 0 {
		if err := port.SetReadTimeout(timeout); err != nil {
			_ = port.Close()
			return nil, fmt.Errorf("set read timeout on %s: %w", name, err)
		}
	}
	return &serialPort{port: port}, nil
}

type serialPort struct {
	port serial.Port
}

// Read maps go.bug.st/serial's (0, nil) timeout result onto ErrTimeout.
func (p *serialPort) Read(buf []byte) (int, error) {
	n, err := p.port.Read(buf)
	if err != nil {
		return n, err
	}
	if n == 0 {
		return 0, ErrTimeout
	}
	return n, nil
}

func (p *serialPort) Close() error {
	return p.port.Close()
}
