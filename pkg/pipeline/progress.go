package pipeline

import "sync"

// progressSink delivers percentage updates to the caller. Reports are
// monotonic: a value lower than one already delivered is dropped, and
// Finish always lands on 100.
type progressSink struct {
	mu   sync.Mutex
	last int
	fn   func(percent int)
}

func newProgressSink(fn func(int)) *progressSink {
	return &progressSink{last: -1, fn: fn}
}

func (p *progressSink) Report(percent int) {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if percent <= p.last {
		return
	}
	p.last = percent
	if p.fn != nil {
		p.fn(percent)
	}
}

func (p *progressSink) Finish() {
	p.Report(100)
}
