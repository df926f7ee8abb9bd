package status

import (
	"slices"
	"sync"
)

// MetricMap holds named metrics of one kind
// Lookup takes a lock; the returned pointer is then used lock-free
type MetricMap[T any] struct {
	mu    sync.RWMutex
	items map[string]*T
	// format renders one metric for Pairs
	format func(*T) string
}

// NewMetricMap creates an empty MetricMap whose values render through format
func NewMetricMap[T any](format func(*T) string) *MetricMap[T] {
	return &MetricMap[T]{items: make(map[string]*T), format: format}
}

// Get returns the metric for key, allocating it on first use
func (m *MetricMap[T]) Get(key string) *T {
	m.mu.RLock()
	ptr, ok := m.items[key]
	m.mu.RUnlock()
	if ok {
		return ptr
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if ptr, ok = m.items[key]; !ok {
		ptr = new(T)
		m.items[key] = ptr
	}
	return ptr
}

// Has reports whether key was ever requested
func (m *MetricMap[T]) Has(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.items[key]
	return ok
}

// Pairs renders every metric as "key=value", sorted by key
func (m *MetricMap[T]) Pairs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.items))
	for k := range m.items {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = k + "=" + m.format(m.items[k])
	}
	return pairs
}

func (m *MetricMap[T]) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
