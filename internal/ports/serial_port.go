package ports

import "time"

// Port is an open serial connection. It is owned by a single operation
// and must be closed on every exit path.
type Port interface {
	// Write writes p to the link. Writes are synchronous.
	Write(p []byte) (int, error)

	// Read reads up to len(p) bytes, blocking at most for the read timeout.
	Read(p []byte) (int, error)

	// Available returns how many bytes can be read without blocking.
	Available() (int, error)

	// Flush blocks until all written bytes have been transmitted.
	Flush() error

	// Close releases the port.
	Close() error
}

// PortConfig identifies and configures a serial link.
type PortConfig struct {
	// Name is the device name, e.g. "COM4" or "/dev/ttyUSB0".
	Name string

	// BaudRate is the symbol rate of the link.
	BaudRate int

	// Timeout bounds a blocking read.
	Timeout time.Duration
}

// Opener opens serial ports.
type Opener interface {
	Open(cfg PortConfig) (Port, error)
}

// OpenerFunc adapts a function to the Opener interface.
type OpenerFunc func(cfg PortConfig) (Port, error)

// Open calls f(cfg).
func (f OpenerFunc) Open(cfg PortConfig) (Port, error) { return f(cfg) }
