package game

import (
	"math/rand"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/frameloop/input"
	"github.com/lixenwraith/frameloop/status"
	"github.com/lixenwraith/frameloop/window"
)

// fakeKeys reports a fixed set of active keys
type fakeKeys map[input.Key]bool

func (f fakeKeys) ActiveKey(k input.Key) bool { return f[k] }

func (f fakeKeys) hold(keys ...input.Key) {
	clear(f)
	for _, k := range keys {
		f[k] = true
	}
}

func openTestWindow(t *testing.T) (window.Window, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	w, err := window.OpenTerminal("tint", 80, 24, window.TerminalOptions{
		NewScreen: func() (tcell.Screen, error) { return sim, nil },
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })
	return w, sim
}

func newInitialized(t *testing.T, keys input.Source) *TintLogic {
	t.Helper()
	w, _ := openTestWindow(t)
	l := NewTintLogic(keys, DefaultTintOptions())
	require.NoError(t, l.Init(w))
	t.Cleanup(func() { _ = l.End() })
	return l
}

// frame runs one frame's phases in engine order
func frame(t *testing.T, l *TintLogic, w window.Window, updates int) {
	t.Helper()
	require.NoError(t, l.InputEvents())
	require.NoError(t, l.FirstStep())
	require.NoError(t, l.MainSteps(updates))
	require.NoError(t, l.LastStep())
	if w != nil {
		require.NoError(t, l.Render(w))
	}
}

func TestDirectionFromKeys(t *testing.T) {
	tests := []struct {
		name string
		keys []input.Key
		want int
	}{
		{"none", nil, 0},
		{"up", []input.Key{input.KeyUp}, 1},
		{"down", []input.Key{input.KeyDown}, -1},
		{"both favors up", []input.Key{input.KeyUp, input.KeyDown}, 1},
		{"unrelated key", []input.Key{input.RuneKey('x')}, 0},
	}

	keys := fakeKeys{}
	l := NewTintLogic(keys, DefaultTintOptions())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keys.hold(tt.keys...)
			require.NoError(t, l.InputEvents())
			assert.Equal(t, tt.want, l.Direction())
		})
	}
}

func TestColorAlwaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	keys := fakeKeys{}
	l := NewTintLogic(keys, DefaultTintOptions())

	choices := [][]input.Key{nil, {input.KeyUp}, {input.KeyDown}, {input.KeyUp, input.KeyDown}}
	for i := 0; i < 5000; i++ {
		// Long runs of the same input push against both bounds
		keys.hold(choices[rng.Intn(len(choices))]...)
		for n := rng.Intn(150); n >= 0; n-- {
			require.NoError(t, l.InputEvents())
			require.NoError(t, l.FirstStep())
			c := l.Color()
			require.GreaterOrEqual(t, c, float32(0))
			require.LessOrEqual(t, c, float32(1))
		}
	}
}

func TestSetColorClamps(t *testing.T) {
	l := NewTintLogic(fakeKeys{}, DefaultTintOptions())

	l.SetColor(7)
	assert.Equal(t, float32(1), l.Color())
	l.SetColor(-3)
	assert.Equal(t, float32(0), l.Color())
	l.SetColor(0.5)
	assert.Equal(t, float32(0.5), l.Color())
}

func TestFirstStepClampsFromAnyStart(t *testing.T) {
	keys := fakeKeys{}
	l := NewTintLogic(keys, DefaultTintOptions())

	l.SetColor(1)
	keys.hold(input.KeyUp)
	require.NoError(t, l.InputEvents())
	require.NoError(t, l.FirstStep())
	assert.Equal(t, float32(1), l.Color())

	l.SetColor(0)
	keys.hold(input.KeyDown)
	require.NoError(t, l.InputEvents())
	require.NoError(t, l.FirstStep())
	assert.Equal(t, float32(0), l.Color())
}

func TestMainStepsZeroIsNoop(t *testing.T) {
	keys := fakeKeys{}
	l := NewTintLogic(keys, DefaultTintOptions())
	keys.hold(input.KeyUp)
	require.NoError(t, l.InputEvents())
	require.NoError(t, l.FirstStep())

	before := *l
	require.NoError(t, l.MainSteps(0))
	assert.Equal(t, before, *l)

	require.NoError(t, l.MainSteps(-2))
	assert.Equal(t, before, *l)

	require.NoError(t, l.MainSteps(3))
	assert.Equal(t, uint64(3), l.Ticks())
	assert.Equal(t, before.Color(), l.Color())
}

func TestLastStepOncePerFrame(t *testing.T) {
	keys := fakeKeys{}
	l := NewTintLogic(keys, DefaultTintOptions())

	for i, updates := range []int{0, 1, 5, 0, 2} {
		frame(t, l, nil, updates)
		assert.Equal(t, uint64(i+1), l.Frames())
	}
	assert.Equal(t, uint64(8), l.Ticks())
}

func TestNoDriftWithoutInput(t *testing.T) {
	l := NewTintLogic(fakeKeys{}, DefaultTintOptions())

	for i := 0; i < 1000; i++ {
		frame(t, l, nil, i%3)
	}
	assert.Equal(t, float32(0), l.Color())
	assert.Equal(t, [4]float32{0, 0, 0, 0}, l.ClearColor())
}

func TestHoldUpThenDownSweepsExactly(t *testing.T) {
	keys := fakeKeys{}
	l := newInitialized(t, keys)
	w, _ := openTestWindow(t)

	keys.hold(input.KeyUp)
	for i := 0; i < 100; i++ {
		frame(t, l, w, 1)
	}
	assert.Equal(t, float32(1), l.Color())

	for i := 0; i < 20; i++ {
		frame(t, l, w, 1)
		require.Equal(t, float32(1), l.Color())
	}
	assert.Equal(t, [4]float32{1, 1, 1, 0}, l.ClearColor())

	keys.hold(input.KeyDown)
	for i := 0; i < 100; i++ {
		frame(t, l, w, 1)
	}
	assert.Equal(t, float32(0), l.Color())

	for i := 0; i < 20; i++ {
		frame(t, l, w, 1)
		require.Equal(t, float32(0), l.Color())
	}
}

func TestRenderSetsClearColorAndDrawsQuad(t *testing.T) {
	keys := fakeKeys{}
	w, sim := openTestWindow(t)
	l := NewTintLogic(keys, DefaultTintOptions())
	require.NoError(t, l.Init(w))
	defer l.End()

	keys.hold(input.KeyUp)
	for i := 0; i < 50; i++ {
		frame(t, l, w, 0)
	}
	require.NoError(t, w.SwapBuffers())

	c, a := w.ClearColor()
	assert.InDelta(t, 0.5, c.R, 1e-6)
	assert.Equal(t, float32(0), a)

	cells, width, _ := sim.GetContents()
	_, corner, _ := cells[0].Style.Decompose()
	assert.Equal(t, tcell.NewRGBColor(128, 128, 128), corner)

	// The quad has no green component; the background gray does
	_, center, _ := cells[12*width+40].Style.Decompose()
	_, g, _ := center.RGB()
	assert.Equal(t, int32(0), g)
}

func TestRenderDoesNotMutateState(t *testing.T) {
	keys := fakeKeys{}
	w, _ := openTestWindow(t)
	l := NewTintLogic(keys, DefaultTintOptions())
	require.NoError(t, l.Init(w))
	defer l.End()

	keys.hold(input.KeyUp)
	frame(t, l, nil, 1)

	color, dir, ticks, frames := l.Color(), l.Direction(), l.Ticks(), l.Frames()
	for i := 0; i < 3; i++ {
		require.NoError(t, l.Render(w))
	}
	assert.Equal(t, color, l.Color())
	assert.Equal(t, dir, l.Direction())
	assert.Equal(t, ticks, l.Ticks())
	assert.Equal(t, frames, l.Frames())
}

func TestInitThenEndReleasesEverything(t *testing.T) {
	w, _ := openTestWindow(t)
	l := NewTintLogic(fakeKeys{}, DefaultTintOptions())

	require.NoError(t, l.Init(w))
	require.True(t, l.Initialized())
	mesh, renderer := l.mesh, l.renderer

	require.NoError(t, l.End())
	assert.False(t, l.Initialized())
	assert.True(t, mesh.Released())
	assert.False(t, renderer.Ready())

	// Second End is a no-op
	require.NoError(t, l.End())
	assert.ErrorIs(t, l.Render(w), ErrNotInitialized)
}

func TestInitValidation(t *testing.T) {
	assert.Error(t, NewTintLogic(fakeKeys{}, DefaultTintOptions()).Init(nil))

	w, _ := openTestWindow(t)
	assert.Error(t, NewTintLogic(nil, DefaultTintOptions()).Init(w))

	l := NewTintLogic(fakeKeys{}, DefaultTintOptions())
	require.NoError(t, l.Init(w))
	defer l.End()
	assert.Error(t, l.Init(w), "second Init must fail")
}

func TestEndWithoutInit(t *testing.T) {
	l := NewTintLogic(fakeKeys{}, DefaultTintOptions())
	assert.NoError(t, l.End())
}

func TestCustomKeysAndSteps(t *testing.T) {
	keys := fakeKeys{}
	l := NewTintLogic(keys, TintOptions{Up: input.RuneKey('k'), Down: input.RuneKey('j'), Steps: 4})

	keys.hold(input.RuneKey('k'))
	for i := 0; i < 3; i++ {
		frame(t, l, nil, 0)
	}
	assert.Equal(t, float32(0.75), l.Color())

	keys.hold(input.KeyUp)
	frame(t, l, nil, 0)
	assert.Equal(t, 0, l.Direction())
}

func TestLastStepPublishesColor(t *testing.T) {
	reg := status.NewRegistry()
	keys := fakeKeys{}
	opts := DefaultTintOptions()
	opts.Status = reg
	l := NewTintLogic(keys, opts)

	keys.hold(input.KeyUp)
	for i := 0; i < 25; i++ {
		frame(t, l, nil, 0)
	}

	require.True(t, reg.Floats.Has(status.KeyClearColor))
	assert.InDelta(t, 0.25, reg.Floats.Get(status.KeyClearColor).Load(), 1e-6)
}
