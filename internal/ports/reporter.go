package ports

// Reporter receives status events from the transmitter and receiver.
// Calls are made synchronously from the operation's goroutine.
type Reporter interface {
	// Connected is called once the port is open.
	Connected(port string, baudRate int)

	// Empty is called when the source file has no content.
	Empty(path string)

	// ChunkSent is called after each chunk when a rate is available.
	ChunkSent(sent, total int, bps float64)

	// Sent is called once every chunk has been written and flushed.
	Sent(path string, total int)

	// Echo is called when the bytes read back after sending match the payload.
	Echo()

	// ChunkReceived is called after each append when a rate is available.
	// text is the decoded chunk trimmed of surrounding whitespace.
	ChunkReceived(text string, received int, bps float64)

	// Stopped is called when the receiver is interrupted by the operator.
	Stopped()

	// Failed is called with the error that ended an operation.
	Failed(err error)

	// Disconnected is called on every exit path of an operation.
	Disconnected()
}
