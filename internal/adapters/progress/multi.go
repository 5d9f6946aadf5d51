package progress

import "github.com/bft-labs/uartship/internal/ports"

// Multi fans every event out to each reporter in order.
type Multi []ports.Reporter

func (m Multi) Connected(port string, baudRate int) {
	for _, r := range m {
		r.Connected(port, baudRate)
	}
}

func (m Multi) Empty(path string) {
	for _, r := range m {
		r.Empty(path)
	}
}

func (m Multi) ChunkSent(sent, total int, bps float64) {
	for _, r := range m {
		r.ChunkSent(sent, total, bps)
	}
}

func (m Multi) Sent(path string, total int) {
	for _, r := range m {
		r.Sent(path, total)
	}
}

func (m Multi) Echo() {
	for _, r := range m {
		r.Echo()
	}
}

func (m Multi) ChunkReceived(text string, received int, bps float64) {
	for _, r := range m {
		r.ChunkReceived(text, received, bps)
	}
}

func (m Multi) Stopped() {
	for _, r := range m {
		r.Stopped()
	}
}

func (m Multi) Failed(err error) {
	for _, r := range m {
		r.Failed(err)
	}
}

func (m Multi) Disconnected() {
	for _, r := range m {
		r.Disconnected()
	}
}
