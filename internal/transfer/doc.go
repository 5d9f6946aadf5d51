// Package transfer implements the two uartship operations.
//
// The [Transmitter] writes a text file to a serial port in fixed-size
// chunks. The [Receiver] busy-polls a serial port and appends whatever
// arrives to an output file. Both are synchronous and single-threaded,
// own their port for the duration of one call and close it on every
// exit path. Neither retries: a failed send has to be started again.
//
// Failures are returned as *domain.TransferError and are also reported to
// the configured ports.Reporter, so callers that only care about console
// output can ignore the error.
package transfer
