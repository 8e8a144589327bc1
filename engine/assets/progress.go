package assets

import (
	"sync"
)

// Progress joins a fixed number of loads. It counts up monotonically, flips to
// ready exactly once when the count reaches the total, and can fail instead;
// once failed it never becomes ready.
type Progress struct {
	mu      sync.Mutex
	total   int
	done    int
	ready   bool
	err     error
	once    sync.Once
	onReady func()
}

func NewProgress(total int, onReady func()) *Progress {
	return &Progress{
		total:   total,
		onReady: onReady,
	}
}

// Increment records one finished load and returns the new percentage. The
// ready callback runs on the call that completes the set, outside the lock.
func (p *Progress) Increment() int {
	p.mu.Lock()
	if p.err != nil || p.ready {
		pct := p.percent()
		p.mu.Unlock()
		return pct
	}
	p.done++
	pct := p.percent()
	fire := p.done >= p.total
	if fire {
		p.ready = true
	}
	p.mu.Unlock()

	if fire {
		p.once.Do(func() {
			if p.onReady != nil {
				p.onReady()
			}
		})
	}
	return pct
}

// Fail keeps the first error only.
func (p *Progress) Fail(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err == nil && !p.ready {
		p.err = err
	}
}

func (p *Progress) Ready() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ready
}

func (p *Progress) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

func (p *Progress) Done() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done
}

func (p *Progress) Total() int {
	return p.total
}

// Percent is floor(done*100/total).
func (p *Progress) Percent() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.percent()
}

func (p *Progress) percent() int {
	if p.total == 0 {
		return 100
	}
	return p.done * 100 / p.total
}
