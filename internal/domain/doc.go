// Package domain contains the core types of uartship.
//
// This package has no dependencies on infrastructure concerns (serial ports,
// the file system, logging) and contains only pure logic.
//
// # Types
//
//   - [Payload]: The text being transmitted and its UTF-8 encoding
//   - [Progress]: Cumulative byte counter with an average bit rate
//   - [TransferError]: A classified failure returned by an operation
//
// Chunking and lenient decoding live here so that they can be tested
// without a port.
package domain
