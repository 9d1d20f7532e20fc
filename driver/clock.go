package driver

import (
	"sync"
	"time"
)

// Clock is the time source a backend polls the driver with.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// ManualClock only moves when told to. Headless recording and tests use it.
type ManualClock struct {
	mu      sync.RWMutex
	current time.Time
}

func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{current: start}
}

func (m *ManualClock) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

func (m *ManualClock) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = t
}

func (m *ManualClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = m.current.Add(d)
}
