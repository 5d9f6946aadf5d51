package transfer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bft-labs/uartship/internal/domain"
	"github.com/bft-labs/uartship/internal/ports"
	"github.com/bft-labs/uartship/pkg/log"
)

// ReceiveConfig configures a receive session.
type ReceiveConfig struct {
	Port   ports.PortConfig
	Output ports.TextAppender
}

// ReceiveSummary describes a finished receive session.
type ReceiveSummary struct {
	Received int
	Appends  int
	Stopped  bool
	Elapsed  time.Duration
}

// Receiver appends bytes arriving on a serial port to a file.
type Receiver struct {
	opener ports.Opener
	opts   options
}

// NewReceiver creates a Receiver that opens ports with opener.
func NewReceiver(opener ports.Opener, opts ...Option) *Receiver {
	return &Receiver{opener: opener, opts: buildOptions(opts)}
}

// Receive polls the port without sleeping until ctx is cancelled or the
// port fails. Cancellation is a normal stop and returns a nil error.
func (r *Receiver) Receive(ctx context.Context, cfg ReceiveConfig) (sum ReceiveSummary, err error) {
	rep := r.opts.reporter
	defer rep.Disconnected()
	defer func() {
		if err != nil {
			rep.Failed(err)
		}
	}()

	if cfg.Output == nil {
		return sum, domain.NewError(domain.KindUnexpected, "config",
			fmt.Errorf("%w: no output file", domain.ErrInvalidConfig))
	}

	port, err := r.opener.Open(cfg.Port)
	if err != nil {
		return sum, domain.NewError(domain.KindTransport, "open", err)
	}
	defer closePort(port, r.opts.logger, cfg.Port.Name)
	rep.Connected(cfg.Port.Name, cfg.Port.BaudRate)

	start := r.opts.now()
	prog := domain.NewProgress(start, 0)
	finish := func() {
		sum.Received = prog.Bytes
		sum.Elapsed = r.opts.now().Sub(start)
	}

	for {
		select {
		case <-ctx.Done():
			finish()
			sum.Stopped = true
			rep.Stopped()
			return sum, nil
		default:
		}

		n, err := port.Available()
		if err != nil {
			finish()
			return sum, domain.NewError(domain.KindTransport, "poll", err)
		}
		if n == 0 {
			continue
		}

		buf := make([]byte, n)
		m, err := port.Read(buf)
		if err != nil {
			finish()
			return sum, domain.NewError(domain.KindTransport, "read", err)
		}
		r.opts.logger.Debug("read", log.Bytes("raw", buf[:m]))
		text := domain.DecodeLenient(buf[:m])

		if err := cfg.Output.Append(text); err != nil {
			finish()
			return sum, domain.NewError(domain.KindUnexpected, "append", err)
		}
		sum.Appends++
		prog.Add(len(text))

		if bps, ok := prog.Rate(r.opts.now()); ok {
			rep.ChunkReceived(strings.TrimSpace(text), prog.Bytes, bps)
		}
	}
}
