// Package uartship sends text files over a serial link in fixed-size chunks
// and receives whatever arrives on a link into an append-only file.
//
// Example usage:
//
//	cfg := uartship.DefaultConfig()
//	cfg.Port = "/dev/ttyUSB0"
//	cfg.SourcePath = "send.txt"
//	u, err := uartship.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if _, err := u.Send(context.Background()); err != nil {
//	    log.Fatal(err)
//	}
package uartship

import (
	"context"
	"errors"
	"time"

	"github.com/bft-labs/uartship/internal/adapters/fs"
	"github.com/bft-labs/uartship/internal/adapters/progress"
	"github.com/bft-labs/uartship/internal/adapters/serial"
	"github.com/bft-labs/uartship/internal/cliconfig"
	"github.com/bft-labs/uartship/internal/domain"
	"github.com/bft-labs/uartship/internal/ports"
	"github.com/bft-labs/uartship/internal/transfer"
	"github.com/bft-labs/uartship/internal/watch"
	"github.com/bft-labs/uartship/pkg/log"
)

// Config holds the port, file and link settings.
// Use DefaultConfig() to get a Config with the documented defaults.
type Config = cliconfig.Config

// Re-exported so that callers can supply their own transport or reporting.
type (
	Port           = ports.Port
	PortConfig     = ports.PortConfig
	Opener         = ports.Opener
	OpenerFunc     = ports.OpenerFunc
	Reporter       = ports.Reporter
	SendSummary    = transfer.SendSummary
	ReceiveSummary = transfer.ReceiveSummary
	Kind           = domain.Kind
)

// Error kinds, see KindOf.
const (
	KindUnexpected    = domain.KindUnexpected
	KindSourceMissing = domain.KindSourceMissing
	KindTransport     = domain.KindTransport
	KindCancelled     = domain.KindCancelled
)

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return cliconfig.DefaultConfig()
}

// KindOf classifies an error returned by Send or Receive.
func KindOf(err error) Kind {
	return domain.KindOf(err)
}

// ListPorts returns the serial devices present on the system.
func ListPorts() ([]string, error) {
	return serial.ListPorts()
}

// Option configures optional behavior of Uartship.
type Option func(*options)

type options struct {
	opener   ports.Opener
	reporter ports.Reporter
	logger   log.Logger
}

// WithOpener replaces the go.bug.st/serial transport.
func WithOpener(o Opener) Option {
	return func(opts *options) {
		opts.opener = o
	}
}

// WithReporter sets where progress events go.
// If not provided, events are logged through the logger.
func WithReporter(r Reporter) Option {
	return func(opts *options) {
		opts.reporter = r
	}
}

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger log.Logger) Option {
	return func(opts *options) {
		opts.logger = logger
	}
}

// Uartship runs transfers for one Config.
type Uartship struct {
	cfg  Config
	opts options
	tx   *transfer.Transmitter
	rx   *transfer.Receiver
}

// New validates cfg and builds a Uartship.
func New(cfg Config, opts ...Option) (*Uartship, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := options{
		opener: serial.Opener,
		logger: log.NewNoopLogger(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.reporter == nil {
		o.reporter = progress.NewLogReporter(o.logger)
	}

	topts := []transfer.Option{
		transfer.WithReporter(o.reporter),
		transfer.WithLogger(o.logger),
	}
	return &Uartship{
		cfg:  cfg,
		opts: o,
		tx:   transfer.NewTransmitter(o.opener, topts...),
		rx:   transfer.NewReceiver(o.opener, topts...),
	}, nil
}

func (u *Uartship) portConfig() ports.PortConfig {
	return ports.PortConfig{
		Name:     u.cfg.Port,
		BaudRate: u.cfg.BaudRate,
		Timeout:  u.cfg.Timeout,
	}
}

// Send transmits cfg.SourcePath once.
func (u *Uartship) Send(ctx context.Context) (SendSummary, error) {
	return u.tx.Send(ctx, transfer.SendConfig{
		Port:      u.portConfig(),
		Path:      u.cfg.SourcePath,
		ChunkSize: u.cfg.ChunkSize,
	})
}

// Receive appends incoming bytes to cfg.OutputPath until ctx is cancelled
// or the port fails.
func (u *Uartship) Receive(ctx context.Context) (ReceiveSummary, error) {
	return u.rx.Receive(ctx, transfer.ReceiveConfig{
		Port:   u.portConfig(),
		Output: fs.NewAppendFile(u.cfg.OutputPath),
	})
}

// Watch sends cfg.SourcePath now and again each time it changes, until
// ctx is cancelled. Failed sends are reported and do not stop watching.
func (u *Uartship) Watch(ctx context.Context) error {
	w := watch.New(u.cfg.SourcePath, func(ctx context.Context) {
		_, _ = u.Send(ctx)
	}, u.opts.logger)
	return w.Run(ctx)
}

// Run sends, waits cfg.Pause, then receives. The receive step runs even if
// sending failed. Both errors are returned joined.
func (u *Uartship) Run(ctx context.Context) error {
	_, sendErr := u.Send(ctx)

	t := time.NewTimer(u.cfg.Pause)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return sendErr
	case <-t.C:
	}

	_, recvErr := u.Receive(ctx)
	return errors.Join(sendErr, recvErr)
}
