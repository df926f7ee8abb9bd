// Package window defines the surface the engine drives and a terminal
// implementation of it.
package window

import (
	"errors"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/frameloop/input"
	"github.com/lixenwraith/frameloop/render"
)

var (
	ErrOpen   = errors.New("window open failed")
	ErrClosed = errors.New("window closed")
)

// Window owns the drawing surface and its event pump
// All methods are called from the loop goroutine
type Window interface {
	render.Target

	Title() string
	SetClearColor(r, g, b, a float32)
	ClearColor() (colorful.Color, float32)

	// PollEvents drains pending OS events without blocking
	PollEvents()
	SwapBuffers() error

	ShouldClose() bool
	// RequestClose makes ShouldClose report true from now on
	RequestClose()
	Close() error
}

// Opener creates the window for one engine run
type Opener interface {
	Open(title string, width, height int) (Window, error)
}

// OpenerFunc adapts a function to Opener
type OpenerFunc func(title string, width, height int) (Window, error)

func (f OpenerFunc) Open(title string, width, height int) (Window, error) {
	return f(title, width, height)
}

// KeyHandler receives key presses as they are polled
type KeyHandler interface {
	HandleKey(k input.Key)
}

// ClampUnit limits a color channel to [0,1]
func ClampUnit(v float32) float32 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
