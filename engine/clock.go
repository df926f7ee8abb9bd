package engine

import (
	"sync"
	"time"
)

// Clock supplies frame time and paces the loop
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// SystemClock reads the monotonic wall clock
type SystemClock struct{}

// NewSystemClock creates a real-time clock
func NewSystemClock() *SystemClock {
	return &SystemClock{}
}

func (SystemClock) Now() time.Time {
	return time.Now()
}

func (SystemClock) Sleep(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}

// MockClock is a controllable clock for tests; Sleep advances it instantly
type MockClock struct {
	mu      sync.RWMutex
	now     time.Time
	slept   time.Duration
	onSleep func(d time.Duration)
}

// NewMockClock creates a mock clock starting at start
func NewMockClock(start time.Time) *MockClock {
	return &MockClock{now: start}
}

func (m *MockClock) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.now
}

// Sleep advances the clock by d and records it
func (m *MockClock) Sleep(d time.Duration) {
	if d <= 0 {
		return
	}
	m.mu.Lock()
	m.now = m.now.Add(d)
	m.slept += d
	hook := m.onSleep
	m.mu.Unlock()

	if hook != nil {
		hook(d)
	}
}

// Advance moves the clock forward by d
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

// Set jumps the clock to t
func (m *MockClock) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = t
}

// Slept returns the total duration passed to Sleep
func (m *MockClock) Slept() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.slept
}

// OnSleep registers a hook called after each Sleep
func (m *MockClock) OnSleep(fn func(d time.Duration)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onSleep = fn
}
