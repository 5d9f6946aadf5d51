package transfer

import (
	"time"

	"github.com/bft-labs/uartship/internal/adapters/fs"
	"github.com/bft-labs/uartship/internal/adapters/progress"
	"github.com/bft-labs/uartship/internal/ports"
	"github.com/bft-labs/uartship/pkg/log"
)

// Option configures a Transmitter or Receiver.
type Option func(*options)

type options struct {
	reporter ports.Reporter
	logger   log.Logger
	now      func() time.Time
	readText func(path string) (string, error)
}

func defaultOptions() options {
	return options{
		logger:   log.NewNoopLogger(),
		now:      time.Now,
		readText: fs.ReadText,
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.reporter == nil {
		o.reporter = progress.NewLogReporter(o.logger)
	}
	return o
}

// WithReporter sets where progress and status events go.
// If not provided, events are logged through the configured logger.
func WithReporter(r ports.Reporter) Option {
	return func(o *options) {
		o.reporter = r
	}
}

// WithLogger sets the logger used for diagnostics that are not progress
// events, such as a failing close.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithTextReader replaces how the transmitter reads its source file.
func WithTextReader(read func(path string) (string, error)) Option {
	return func(o *options) {
		o.readText = read
	}
}

func closePort(port ports.Port, logger log.Logger, name string) {
	if err := port.Close(); err != nil {
		logger.Warn("close port", log.String("port", name), log.Err(err))
	}
}
