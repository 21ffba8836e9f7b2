package loop

import "time"

// Metronome is a restartable ticker. While stopped, C returns a nil channel so
// a select case on it never fires.
type Metronome struct {
	Interval time.Duration
	ticker   *time.Ticker
}

func NewMetronome(interval time.Duration) *Metronome {
	return &Metronome{Interval: interval}
}

func (m *Metronome) Start() {
	if m.ticker != nil {
		return
	}
	m.ticker = time.NewTicker(m.Interval)
}

func (m *Metronome) Stop() {
	if m.ticker == nil {
		return
	}
	m.ticker.Stop()
	m.ticker = nil
}

func (m *Metronome) Running() bool {
	return m.ticker != nil
}

func (m *Metronome) C() <-chan time.Time {
	if m.ticker == nil {
		return nil
	}
	return m.ticker.C
}
