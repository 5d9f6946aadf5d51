// Package progress implements ports.Reporter for the console.
package progress

import (
	"github.com/bft-labs/uartship/internal/domain"
	"github.com/bft-labs/uartship/pkg/log"
)

// LogReporter writes one structured log line per transfer event.
type LogReporter struct {
	logger log.Logger
}

// NewLogReporter creates a reporter that logs through logger.
func NewLogReporter(logger log.Logger) *LogReporter {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &LogReporter{logger: logger}
}

func (r *LogReporter) Connected(port string, baudRate int) {
	r.logger.Info("connected", log.String("port", port), log.Int("baud", baudRate))
}

func (r *LogReporter) Empty(path string) {
	r.logger.Warn("file is empty, nothing to send", log.String("file", path))
}

func (r *LogReporter) ChunkSent(sent, total int, bps float64) {
	r.logger.Info("sent",
		log.Int("bytes", sent),
		log.Int("total", total),
		log.Float64("bits_per_sec", round2(bps)),
	)
}

func (r *LogReporter) Sent(path string, total int) {
	r.logger.Info("data sent successfully", log.String("file", path), log.Int("bytes", total))
}

func (r *LogReporter) Echo() {
	r.logger.Info("echo received and suppressed")
}

func (r *LogReporter) ChunkReceived(text string, received int, bps float64) {
	r.logger.Info("received",
		log.String("data", text),
		log.Int("bytes", received),
		log.Float64("bits_per_sec", round2(bps)),
	)
}

func (r *LogReporter) Stopped() {
	r.logger.Info("stopped receiving data")
}

func (r *LogReporter) Failed(err error) {
	r.logger.Error(domain.Message(err), log.String("kind", domain.KindOf(err).String()), log.Err(err))
}

func (r *LogReporter) Disconnected() {
	r.logger.Info("disconnected")
}

func round2(f float64) float64 {
	return float64(int64(f*100+0.5)) / 100
}
