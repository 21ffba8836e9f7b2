package loop

import "time"

// Pacer turns frame deltas into ticks for front-ends that own their frame
// loop. It yields at most one tick per Advance and drops any backlog.
type Pacer struct {
	Interval time.Duration
	acc      time.Duration
	running  bool
}

func NewPacer(interval time.Duration) *Pacer {
	return &Pacer{Interval: interval}
}

func (p *Pacer) Start() {
	if p.running {
		return
	}
	p.running = true
	p.acc = 0
}

func (p *Pacer) Stop() {
	p.running = false
	p.acc = 0
}

func (p *Pacer) Running() bool {
	return p.running
}

func (p *Pacer) Advance(dt time.Duration) bool {
	if !p.running || dt <= 0 {
		return false
	}
	p.acc += dt
	if p.acc < p.Interval {
		return false
	}
	p.acc -= p.Interval
	if p.acc >= p.Interval {
		p.acc = 0
	}
	return true
}
