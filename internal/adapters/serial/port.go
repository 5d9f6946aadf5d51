// Package serial adapts go.bug.st/serial to ports.Port.
package serial

import (
	"fmt"
	"time"

	bugst "go.bug.st/serial"

	"github.com/bft-labs/uartship/internal/ports"
)

// pollBufSize bounds a single non-blocking read made by Available.
const pollBufSize = 4096

// rawPort is the subset of go.bug.st/serial.Port used by this package.
type rawPort interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	Drain() error
	SetReadTimeout(t time.Duration) error
	Close() error
}

// Port implements ports.Port on top of a go.bug.st serial port.
// Bytes picked up by Available are held in pending until Read consumes them.
type Port struct {
	raw     rawPort
	name    string
	timeout time.Duration
	// current read timeout set on raw, to avoid redundant syscalls
	current time.Duration
	pending []byte
	buf     []byte
}

// Mode returns the 8N1 line settings for baud.
func Mode(baud int) *bugst.Mode {
	return &bugst.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   bugst.NoParity,
		StopBits: bugst.OneStopBit,
	}
}

// Open opens the named device.
func Open(cfg ports.PortConfig) (ports.Port, error) {
	p, err := bugst.Open(cfg.Name, Mode(cfg.BaudRate))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Name, err)
	}
	port, err := newPort(p, cfg.Name, cfg.Timeout)
	if err != nil {
		_ = p.Close()
		return nil, err
	}
	return port, nil
}

// Opener is a ports.Opener backed by go.bug.st/serial.
var Opener ports.Opener = ports.OpenerFunc(Open)

func newPort(raw rawPort, name string, timeout time.Duration) (*Port, error) {
	p := &Port{
		raw:     raw,
		name:    name,
		timeout: timeout,
		current: -2, // neither NoTimeout nor a real duration
		buf:     make([]byte, pollBufSize),
	}
	if err := p.setTimeout(timeout); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Port) setTimeout(d time.Duration) error {
	if p.current == d {
		return nil
	}
	if err := p.raw.SetReadTimeout(d); err != nil {
		return fmt.Errorf("set read timeout on %s: %w", p.name, err)
	}
	p.current = d
	return nil
}

// Write writes b to the port.
func (p *Port) Write(b []byte) (int, error) {
	return p.raw.Write(b)
}

// Read serves bytes already collected by Available first. Otherwise it
// blocks for at most the configured timeout and returns 0, nil when it expires.
func (p *Port) Read(b []byte) (int, error) {
	if len(p.pending) > 0 {
		n := copy(b, p.pending)
		p.pending = p.pending[n:]
		return n, nil
	}
	if err := p.setTimeout(p.timeout); err != nil {
		return 0, err
	}
	return p.raw.Read(b)
}

// Available drains whatever the driver has buffered without blocking and
// returns the number of bytes ready for Read.
func (p *Port) Available() (int, error) {
	if err := p.setTimeout(0); err != nil {
		return len(p.pending), err
	}
	for {
		n, err := p.raw.Read(p.buf)
		if n > 0 {
			p.pending = append(p.pending, p.buf[:n]...)
		}
		if err != nil {
			return len(p.pending), err
		}
		if n < len(p.buf) {
			return len(p.pending), nil
		}
	}
}

// Flush waits until every written byte has left the transmit buffer.
func (p *Port) Flush() error {
	return p.raw.Drain()
}

// Close closes the underlying port.
func (p *Port) Close() error {
	return p.raw.Close()
}

// ListPorts returns the serial devices present on the system.
func ListPorts() ([]string, error) {
	return bugst.GetPortsList()
}
