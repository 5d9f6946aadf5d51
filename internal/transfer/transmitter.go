package transfer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"
	"unicode/utf8"

	"github.com/bft-labs/uartship/internal/domain"
	"github.com/bft-labs/uartship/internal/ports"
	"github.com/bft-labs/uartship/pkg/log"
)

// SendConfig configures one transmission.
type SendConfig struct {
	Port      ports.PortConfig
	Path      string
	ChunkSize int
}

// SendSummary describes a finished transmission.
type SendSummary struct {
	Path    string
	Empty   bool
	Total   int
	Sent    int
	Chunks  int
	Echo    bool
	Elapsed time.Duration
}

// Transmitter sends files over a serial port.
type Transmitter struct {
	opener ports.Opener
	opts   options
}

// NewTransmitter creates a Transmitter that opens ports with opener.
func NewTransmitter(opener ports.Opener, opts ...Option) *Transmitter {
	return &Transmitter{opener: opener, opts: buildOptions(opts)}
}

// Send reads cfg.Path and writes its UTF-8 bytes to the port in chunks of
// cfg.ChunkSize. An empty file is not an error and does not open the port.
func (t *Transmitter) Send(ctx context.Context, cfg SendConfig) (sum SendSummary, err error) {
	rep := t.opts.reporter
	defer rep.Disconnected()
	defer func() {
		if err != nil {
			rep.Failed(err)
		}
	}()

	sum.Path = cfg.Path
	if cfg.ChunkSize <= 0 {
		return sum, domain.NewError(domain.KindUnexpected, "config",
			fmt.Errorf("%w: chunk size must be positive, got %d", domain.ErrInvalidConfig, cfg.ChunkSize))
	}

	payload, err := t.load(cfg.Path)
	if err != nil {
		return sum, err
	}
	if payload.Empty() {
		rep.Empty(cfg.Path)
		sum.Empty = true
		return sum, nil
	}

	port, err := t.opener.Open(cfg.Port)
	if err != nil {
		return sum, domain.NewError(domain.KindTransport, "open", err)
	}
	defer closePort(port, t.opts.logger, cfg.Port.Name)
	rep.Connected(cfg.Port.Name, cfg.Port.BaudRate)

	data := payload.Bytes()
	sum.Total = len(data)
	start := t.opts.now()
	prog := domain.NewProgress(start, len(data))

	for _, chunk := range domain.Chunks(data, cfg.ChunkSize) {
		if ctx.Err() != nil {
			sum.Sent = prog.Bytes
			return sum, domain.NewError(domain.KindCancelled, "write", ctx.Err())
		}
		n, werr := port.Write(chunk)
		prog.Add(n)
		sum.Chunks++
		if werr != nil {
			sum.Sent = prog.Bytes
			return sum, domain.NewError(domain.KindTransport, "write", werr)
		}
		if n < len(chunk) {
			sum.Sent = prog.Bytes
			return sum, domain.NewError(domain.KindTransport, "write",
				fmt.Errorf("%w: %d of %d bytes", domain.ErrShortWrite, n, len(chunk)))
		}
		if bps, ok := prog.Rate(t.opts.now()); ok {
			rep.ChunkSent(prog.Bytes, prog.Total, bps)
		}
	}
	sum.Sent = prog.Bytes

	if err := port.Flush(); err != nil {
		return sum, domain.NewError(domain.KindTransport, "flush", err)
	}
	sum.Elapsed = t.opts.now().Sub(start)
	rep.Sent(cfg.Path, sum.Total)

	if t.echoed(port, payload) {
		sum.Echo = true
		rep.Echo()
	}
	return sum, nil
}

func (t *Transmitter) load(path string) (domain.Payload, error) {
	text, err := t.opts.readText(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.Payload{}, domain.NewError(domain.KindSourceMissing, "read", err)
		}
		return domain.Payload{}, domain.NewError(domain.KindUnexpected, "read", err)
	}
	if !utf8.ValidString(text) {
		return domain.Payload{}, domain.NewError(domain.KindUnexpected, "read",
			fmt.Errorf("%s is not valid UTF-8 text", path))
	}
	return domain.NewPayload(text), nil
}

// echoed reads whatever is immediately available and compares it with the
// payload. It has no effect beyond its result; read failures count as no echo.
func (t *Transmitter) echoed(port ports.Port, payload domain.Payload) bool {
	n, err := port.Available()
	if err != nil {
		t.opts.logger.Debug("echo check: poll", log.Err(err))
		return false
	}
	buf := make([]byte, n)
	if n > 0 {
		m, err := port.Read(buf)
		if err != nil {
			t.opts.logger.Debug("echo check: read", log.Err(err))
			return false
		}
		buf = buf[:m]
	}
	echo := payload.IsEcho(domain.DecodeLenient(buf))
	t.opts.logger.Debug("echo check", log.Int("bytes", len(buf)), log.Bool("match", echo))
	return echo
}
