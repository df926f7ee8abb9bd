package status

import (
	"math"
	"strconv"
	"sync/atomic"
	"unicode/utf8"
)

// AtomicFloat is a float64 cell with the Store/Load shape of sync/atomic types
type AtomicFloat struct {
	bits atomic.Uint64
}

func (f *AtomicFloat) Store(val float64) {
	f.bits.Store(math.Float64bits(val))
}

func (f *AtomicFloat) Load() float64 {
	return math.Float64frombits(f.bits.Load())
}

// MaxStringLen caps stored labels in bytes
const MaxStringLen = 24

// AtomicString stores a short label such as the current phase name
type AtomicString struct {
	ptr atomic.Pointer[string]
}

// Store keeps at most MaxStringLen bytes of val, cut on a rune boundary
func (s *AtomicString) Store(val string) {
	if len(val) > MaxStringLen {
		cut := MaxStringLen
		for cut > 0 && !utf8.RuneStart(val[cut]) {
			cut--
		}
		val = val[:cut]
	}
	s.ptr.Store(&val)
}

func (s *AtomicString) Load() string {
	if p := s.ptr.Load(); p != nil {
		return *p
	}
	return ""
}

func formatInt(v *atomic.Int64) string    { return strconv.FormatInt(v.Load(), 10) }
func formatBool(v *atomic.Bool) string    { return strconv.FormatBool(v.Load()) }
func formatFloat(v *AtomicFloat) string   { return strconv.FormatFloat(v.Load(), 'f', 2, 64) }
func formatString(v *AtomicString) string { return v.Load() }
