package domain

import "time"

// Progress tracks bytes moved since an operation began.
type Progress struct {
	Start time.Time
	Bytes int
	Total int // zero when unknown (receiver)
}

// NewProgress starts a counter at the given time.
func NewProgress(start time.Time, total int) *Progress {
	return &Progress{Start: start, Total: total}
}

// Add increments the counter by n bytes.
func (p *Progress) Add(n int) {
	p.Bytes += n
}

// Rate returns the average bits per second at now.
// ok is false when no time has elapsed, in which case no rate exists.
func (p *Progress) Rate(now time.Time) (bps float64, ok bool) {
	elapsed := now.Sub(p.Start).Seconds()
	if elapsed <= 0 {
		return 0, false
	}
	return float64(p.Bytes*8) / elapsed, true
}
