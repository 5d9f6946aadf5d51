package transfer

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bft-labs/uartship/internal/ports"
)

// fakePort records writes and serves scripted incoming chunks.
type fakePort struct {
	mu       sync.Mutex
	writes   [][]byte
	incoming [][]byte
	pending  []byte
	flushed  int
	closed   int

	writeErr error
	pollErr  error
	shortBy  int

	// onIdle is called when Available finds nothing left to deliver.
	onIdle func()
}

func (p *fakePort) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.writeErr != nil {
		return 0, p.writeErr
	}
	n := len(b) - p.shortBy
	p.writes = append(p.writes, append([]byte(nil), b[:n]...))
	return n, nil
}

func (p *fakePort) Read(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := copy(b, p.pending)
	p.pending = p.pending[n:]
	return n, nil
}

func (p *fakePort) Available() (int, error) {
	p.mu.Lock()
	if p.pollErr != nil {
		p.mu.Unlock()
		return 0, p.pollErr
	}
	if len(p.pending) == 0 && len(p.incoming) > 0 {
		p.pending = p.incoming[0]
		p.incoming = p.incoming[1:]
	}
	n := len(p.pending)
	idle := p.onIdle
	p.mu.Unlock()
	if n == 0 && idle != nil {
		idle()
	}
	return n, nil
}

func (p *fakePort) Flush() error {
	p.flushed++
	return nil
}

func (p *fakePort) Close() error {
	p.closed++
	return nil
}

func (p *fakePort) written() []byte {
	var out []byte
	for _, w := range p.writes {
		out = append(out, w...)
	}
	return out
}

// fakeOpener hands out a single port and counts opens.
type fakeOpener struct {
	port    *fakePort
	opens   int
	lastCfg ports.PortConfig
	err     error
}

func (o *fakeOpener) Open(cfg ports.PortConfig) (ports.Port, error) {
	o.opens++
	o.lastCfg = cfg
	if o.err != nil {
		return nil, o.err
	}
	return o.port, nil
}

// stepClock advances by step on every call.
type stepClock struct {
	t    time.Time
	step time.Duration
}

func (c *stepClock) Now() time.Time {
	now := c.t
	c.t = c.t.Add(c.step)
	return now
}

func newStepClock(step time.Duration) *stepClock {
	return &stepClock{t: time.Unix(1700000000, 0), step: step}
}

type sentEvent struct {
	sent, total int
	bps         float64
}

type recvEvent struct {
	text     string
	received int
	bps      float64
}

// recordingReporter implements ports.Reporter for assertions.
type recordingReporter struct {
	connected    int
	empty        []string
	sent         []sentEvent
	done         []string
	echo         int
	received     []recvEvent
	stopped      int
	failed       []error
	disconnected int
}

func (r *recordingReporter) Connected(port string, baudRate int) { r.connected++ }
func (r *recordingReporter) Empty(path string)                   { r.empty = append(r.empty, path) }
func (r *recordingReporter) ChunkSent(sent, total int, bps float64) {
	r.sent = append(r.sent, sentEvent{sent, total, bps})
}
func (r *recordingReporter) Sent(path string, total int) { r.done = append(r.done, path) }
func (r *recordingReporter) Echo()                       { r.echo++ }
func (r *recordingReporter) ChunkReceived(text string, received int, bps float64) {
	r.received = append(r.received, recvEvent{text, received, bps})
}
func (r *recordingReporter) Stopped()         { r.stopped++ }
func (r *recordingReporter) Failed(err error) { r.failed = append(r.failed, err) }
func (r *recordingReporter) Disconnected()    { r.disconnected++ }

// memAppender records appends in order.
type memAppender struct {
	appends []string
	err     error
}

func (m *memAppender) Append(text string) error {
	if m.err != nil {
		return m.err
	}
	m.appends = append(m.appends, text)
	return nil
}

var errDevice = errors.New("device reports an error")

func cancelledContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	return ctx
}
