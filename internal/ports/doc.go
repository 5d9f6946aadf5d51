// Package ports defines the interfaces that connect the transfer operations
// to infrastructure adapters.
//
// # Port Interfaces
//
//   - [Port]: An open serial connection
//   - [Opener]: Opens a [Port] by name with a baud rate and read timeout
//   - [TextAppender]: Appends received text to the output file
//   - [Reporter]: Receives progress and status events
//
// The transfer package depends only on these interfaces. Adapters under
// internal/adapters implement them with go.bug.st/serial, the file system,
// zerolog and progressbar.
package ports
