package engine

import (
	"errors"
	"fmt"
)

// Error kinds; every PhaseError matches exactly one of these with errors.Is
var (
	ErrInit     = errors.New("initialization failed")
	ErrFrame    = errors.New("frame failed")
	ErrTeardown = errors.New("teardown failed")

	ErrAlreadyStarted = errors.New("engine already started")
)

// Phase names one step of the lifecycle
type Phase uint8

const (
	PhaseOpen Phase = iota
	PhaseInit
	PhasePoll
	PhaseInput
	PhaseFirstStep
	PhaseMainSteps
	PhaseLastStep
	PhaseRender
	PhaseSwap
	PhaseEnd
	PhaseClose
)

var phaseNames = [...]string{
	PhaseOpen:      "open",
	PhaseInit:      "init",
	PhasePoll:      "poll",
	PhaseInput:     "input_events",
	PhaseFirstStep: "first_step",
	PhaseMainSteps: "main_steps",
	PhaseLastStep:  "last_step",
	PhaseRender:    "render",
	PhaseSwap:      "swap",
	PhaseEnd:       "end",
	PhaseClose:     "close",
}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return fmt.Sprintf("phase(%d)", p)
}

// kind maps a phase to its error class
func (p Phase) kind() error {
	switch p {
	case PhaseOpen, PhaseInit:
		return ErrInit
	case PhaseEnd, PhaseClose:
		return ErrTeardown
	default:
		return ErrFrame
	}
}

// PhaseError reports which phase failed and on which frame
// Frame is 0 for open/init, 1-based inside the loop, and the last frame number for teardown
type PhaseError struct {
	Phase Phase
	Frame uint64
	Err   error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("%s: %s (frame %d): %v", e.Phase.kind(), e.Phase, e.Frame, e.Err)
}

func (e *PhaseError) Unwrap() error {
	return e.Err
}

// Is matches the error kind of the failed phase
func (e *PhaseError) Is(target error) bool {
	return target == e.Phase.kind()
}

// PanicError carries a panic recovered from a phase
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap exposes the panic value when it was an error
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
