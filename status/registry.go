package status

import (
	"strings"
	"sync/atomic"
)

// Metric keys published by the engine loop
const (
	KeyFrames     = "engine.frames"
	KeyTicks      = "engine.ticks"
	KeyLastTicks  = "engine.ticks_last_frame"
	KeyFPS        = "engine.fps"
	KeyFrameMs    = "engine.frame_ms"
	KeyTickAlpha  = "engine.tick_alpha"
	KeyPhase      = "engine.phase"
	KeyRunning    = "engine.running"
	KeyClearColor = "scene.color"
)

// Registry is the central counter facade for a running loop
// Callers cache metric pointers once; the frame loop writes atomics directly
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap(formatBool),
		Ints:    NewMetricMap(formatInt),
		Floats:  NewMetricMap(formatFloat),
		Strings: NewMetricMap(formatString),
	}
}

// TotalCount returns the number of registered metrics across all kinds
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// Summary renders every metric as "key=value" pairs in key order, one kind after another
func (r *Registry) Summary() string {
	var parts []string
	parts = append(parts, r.Ints.Pairs()...)
	parts = append(parts, r.Floats.Pairs()...)
	parts = append(parts, r.Bools.Pairs()...)
	parts = append(parts, r.Strings.Pairs()...)
	return strings.Join(parts, " ")
}
