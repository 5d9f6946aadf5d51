package progress

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/bft-labs/uartship/internal/ports"
)

// BarReporter renders transmitter progress as a progress bar and forwards
// every other event to a fallback reporter. The receiver has no known
// total, so its events always go to the fallback.
type BarReporter struct {
	ports.Reporter

	out io.Writer
	bar *progressbar.ProgressBar
}

// NewBarReporter creates a bar reporter writing to stderr.
func NewBarReporter(fallback ports.Reporter) *BarReporter {
	return NewBarReporterTo(os.Stderr, fallback)
}

// NewBarReporterTo creates a bar reporter writing to out.
func NewBarReporterTo(out io.Writer, fallback ports.Reporter) *BarReporter {
	return &BarReporter{Reporter: fallback, out: out}
}

func (b *BarReporter) initBar(total int) {
	if b.bar != nil {
		return
	}
	b.bar = progressbar.NewOptions64(int64(total),
		progressbar.OptionSetDescription("Sending"),
		progressbar.OptionSetWriter(b.out),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionShowCount(),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(false),
	)
}

// ChunkSent advances the bar and shows the average rate.
func (b *BarReporter) ChunkSent(sent, total int, bps float64) {
	b.initBar(total)
	_ = b.bar.Set64(int64(sent))
	b.bar.Describe(fmt.Sprintf("Sending (%.2f bits/s)", bps))
}

// Sent finishes the bar before reporting completion.
func (b *BarReporter) Sent(path string, total int) {
	b.initBar(total)
	_ = b.bar.Set64(int64(total))
	_ = b.bar.Finish()
	fmt.Fprintln(b.out)
	b.bar = nil
	b.Reporter.Sent(path, total)
}

// Failed drops a partially rendered bar so the next send starts fresh.
func (b *BarReporter) Failed(err error) {
	b.abandon()
	b.Reporter.Failed(err)
}

// Disconnected ends the operation; any bar still open belongs to it.
func (b *BarReporter) Disconnected() {
	b.abandon()
	b.Reporter.Disconnected()
}

func (b *BarReporter) abandon() {
	if b.bar == nil {
		return
	}
	_ = b.bar.Exit()
	fmt.Fprintln(b.out)
	b.bar = nil
}
