// Package engine drives a Logic through a fixed-timestep frame loop.
//
// Every frame runs, in order and on one goroutine:
//
//	PollEvents → Sample → InputEvents → FirstStep → MainSteps(n) → LastStep → Render → SwapBuffers
//
// where n is the number of fixed ticks owed since the previous frame.
// Init runs once before the first frame and End once after the last.
package engine

import "github.com/lixenwraith/frameloop/window"

// Logic is the pluggable unit the engine drives
//
// Any returned error is fatal for the run; the engine never retries a phase.
type Logic interface {
	// Init acquires the window reference, renderer and geometry; called once
	Init(w window.Window) error
	// InputEvents captures intent from the sampled key state; must not block
	InputEvents() error
	// FirstStep applies the frame delta derived from captured input
	FirstStep() error
	// MainSteps runs the tick body updates times; 0 is a no-op
	MainSteps(updates int) error
	// LastStep finalizes derived state; runs once per frame even when no tick ran
	LastStep() error
	// Render draws the current state; must not mutate simulation state
	Render(w window.Window) error
	// End releases what Init acquired; must tolerate partial Init and repeat calls
	End() error
}
