package clock

import (
	"sync"
	"time"
)

// Clock is an interface for time operations to enable testability.
type Clock interface {
	Now() time.Time
	// NewTicker returns a Ticker delivering ticks every d. Panics if d <= 0.
	NewTicker(d time.Duration) *Ticker
}

// Ticker delivers periodic ticks on C. Buffered with capacity 1; ticks are
// dropped when the consumer falls behind, matching time.Ticker.
type Ticker struct {
	C <-chan time.Time

	stop func()
}

// Stop turns off the ticker. C is not closed.
func (t *Ticker) Stop() { t.stop() }

// RealClock is the production implementation using actual system time.
type RealClock struct{}

// NewRealClock creates a new RealClock.
func NewRealClock() Clock {
	return &RealClock{}
}

// Now returns the current system time.
func (c *RealClock) Now() time.Time {
	return time.Now()
}

// NewTicker wraps time.NewTicker.
func (c *RealClock) NewTicker(d time.Duration) *Ticker {
	t := time.NewTicker(d)
	return &Ticker{C: t.C, stop: t.Stop}
}

// MockClock is a test implementation that allows setting the current time.
// Tickers fire only when Advance moves time past their deadline.
// Safe for concurrent use.
type MockClock struct {
	mu      sync.Mutex
	current time.Time
	tickers []*mockTicker
}

type mockTicker struct {
	ch       chan time.Time
	next     time.Time
	interval time.Duration
	stopped  bool
}

// NewMockClock creates a new MockClock starting at the given time.
func NewMockClock(startTime time.Time) *MockClock {
	return &MockClock{current: startTime}
}

// Now returns the mock current time.
func (m *MockClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Set sets the mock current time. Tickers are not fired.
func (m *MockClock) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = t
}

// NewTicker registers a ticker driven by Advance.
func (m *MockClock) NewTicker(d time.Duration) *Ticker {
	if d <= 0 {
		panic("clock: non-positive interval for NewTicker")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	mt := &mockTicker{
		ch:       make(chan time.Time, 1),
		next:     m.current.Add(d),
		interval: d,
	}
	m.tickers = append(m.tickers, mt)

	return &Ticker{
		C: mt.ch,
		stop: func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			mt.stopped = true
		},
	}
}

// Advance advances the mock clock by the given duration and fires every
// ticker whose deadline was crossed. Sends never block.
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.current = m.current.Add(d)

	live := m.tickers[:0]
	for _, t := range m.tickers {
		if t.stopped {
			continue
		}
		for !t.next.After(m.current) {
			select {
			case t.ch <- t.next:
			default:
			}
			t.next = t.next.Add(t.interval)
		}
		live = append(live, t)
	}
	m.tickers = live
}

// TickerCount reports how many live tickers are registered.
func (m *MockClock) TickerCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, t := range m.tickers {
		if !t.stopped {
			n++
		}
	}
	return n
}
