package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent error conditions in the uartship domain.
// These errors can be checked with errors.Is.
var (
	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("uartship: invalid configuration")

	// ErrShortWrite is returned when the transport accepts fewer bytes than a chunk.
	ErrShortWrite = errors.New("uartship: short write")
)

// Kind classifies why an operation stopped.
type Kind int

const (
	// KindUnexpected is any fault that is not otherwise classified.
	KindUnexpected Kind = iota

	// KindSourceMissing means the file to transmit does not exist.
	KindSourceMissing

	// KindTransport means the serial port could not be opened or failed mid-transfer.
	KindTransport

	// KindCancelled means the operator stopped the operation. It is a normal stop.
	KindCancelled
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindUnexpected:
		return "Unexpected"
	case KindSourceMissing:
		return "SourceMissing"
	case KindTransport:
		return "Transport"
	case KindCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// TransferError is returned by the transmitter and receiver.
// Op names the step that failed ("open", "write", "append", ...).
type TransferError struct {
	Kind Kind
	Op   string
	Err  error
}

// NewError wraps err with a kind and the failing step.
func NewError(kind Kind, op string, err error) *TransferError {
	return &TransferError{Kind: kind, Op: op, Err: err}
}

func (e *TransferError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransferError) Unwrap() error { return e.Err }

// KindOf returns the kind carried by err. Errors that are not a
// *TransferError are KindUnexpected.
func KindOf(err error) Kind {
	var te *TransferError
	if errors.As(err, &te) {
		return te.Kind
	}
	return KindUnexpected
}

// Message converts err into the operator-facing message for its kind.
func Message(err error) string {
	var te *TransferError
	if !errors.As(err, &te) {
		return fmt.Sprintf("Unexpected error: %v", err)
	}
	switch te.Kind {
	case KindSourceMissing:
		return fmt.Sprintf("File not found: %v. Please check the path and try again.", te.Err)
	case KindTransport:
		return fmt.Sprintf("Serial error: %v", te.Err)
	case KindCancelled:
		return "Stopped."
	default:
		return fmt.Sprintf("Unexpected error: %v", te.Err)
	}
}
