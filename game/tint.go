// Package game holds the placeholder scene: a flat quad over a background
// whose gray level follows the up and down keys.
package game

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/frameloop/config"
	"github.com/lixenwraith/frameloop/input"
	"github.com/lixenwraith/frameloop/render"
	"github.com/lixenwraith/frameloop/status"
	"github.com/lixenwraith/frameloop/window"
)

var ErrNotInitialized = errors.New("tint logic not initialized")

// Quad geometry in view space, in front of the camera
var (
	quadPositions = []float32{
		-0.5, 0.5, -1.05,
		-0.5, -0.5, -1.05,
		0.5, -0.5, -1.05,
		0.5, 0.5, -1.05,
	}
	quadColors = []float32{
		0.5, 0.0, 0.0,
		0.0, 0.0, 0.0,
		0.0, 0.0, 0.5,
		0.0, 0.0, 0.5,
	}
	quadIndices = []int{0, 1, 3, 3, 1, 2}
)

// TintOptions configure TintLogic
type TintOptions struct {
	Up, Down input.Key
	// Steps is the number of frames a held key needs to sweep the color across [0,1]
	Steps      int
	CellAspect float64
	// Status receives the current gray level; may be nil
	Status *status.Registry
}

// DefaultTintOptions uses the arrow keys and the config defaults
func DefaultTintOptions() TintOptions {
	return TintOptions{
		Up:         input.KeyUp,
		Down:       input.KeyDown,
		Steps:      config.DefaultColorSteps,
		CellAspect: config.DefaultCellAspect,
	}
}

// TintLogic nudges a gray level by one step per frame while up or down is held
//
// The level is kept as an integer in [0, Steps] so a full sweep lands exactly
// on 0.0 and 1.0. When both keys are active, up wins.
type TintLogic struct {
	keys input.Source
	opts TintOptions

	window   window.Window
	renderer *render.Renderer
	mesh     *render.Mesh

	direction int
	level     int
	ticks     uint64
	frames    uint64
	clear     [4]float32

	statColor *status.AtomicFloat
}

// NewTintLogic creates the scene reading keys from src
func NewTintLogic(src input.Source, opts TintOptions) *TintLogic {
	if opts.Steps <= 0 {
		opts.Steps = config.DefaultColorSteps
	}
	if opts.CellAspect <= 0 {
		opts.CellAspect = config.DefaultCellAspect
	}
	l := &TintLogic{keys: src, opts: opts}
	if opts.Status != nil {
		l.statColor = opts.Status.Floats.Get(status.KeyClearColor)
	}
	return l
}

func (l *TintLogic) Init(w window.Window) error {
	if w == nil {
		return errors.New("tint: nil window")
	}
	if l.window != nil {
		return errors.New("tint: already initialized")
	}
	if l.keys == nil {
		return errors.New("tint: nil key source")
	}
	l.window = w

	l.renderer = render.NewRenderer(l.opts.CellAspect)
	if err := l.renderer.Init(); err != nil {
		return fmt.Errorf("tint: %w", err)
	}

	mesh, err := render.NewMesh(quadPositions, quadColors, quadIndices)
	if err != nil {
		return fmt.Errorf("tint: %w", err)
	}
	l.mesh = mesh
	return nil
}

func (l *TintLogic) InputEvents() error {
	switch {
	case l.keys.ActiveKey(l.opts.Up):
		l.direction = 1
	case l.keys.ActiveKey(l.opts.Down):
		l.direction = -1
	default:
		l.direction = 0
	}
	return nil
}

func (l *TintLogic) FirstStep() error {
	l.level = min(max(l.level+l.direction, 0), l.opts.Steps)
	return nil
}

func (l *TintLogic) MainSteps(updates int) error {
	for i := 0; i < updates; i++ {
		l.ticks++
	}
	return nil
}

func (l *TintLogic) LastStep() error {
	c := l.Color()
	l.clear = [4]float32{c, c, c, 0}
	l.frames++
	if l.statColor != nil {
		l.statColor.Store(float64(c))
	}
	return nil
}

func (l *TintLogic) Render(w window.Window) error {
	if l.mesh == nil || l.renderer == nil {
		return ErrNotInitialized
	}
	w.SetClearColor(l.clear[0], l.clear[1], l.clear[2], l.clear[3])
	return l.renderer.Render(l.mesh, w)
}

// End releases the renderer and then the mesh; safe after a partial Init
func (l *TintLogic) End() error {
	if l.renderer != nil {
		l.renderer.Cleanup()
		l.renderer = nil
	}
	if l.mesh != nil {
		l.mesh.Cleanup()
		l.mesh = nil
	}
	l.window = nil
	return nil
}

// Direction is the intent captured by the last InputEvents: -1, 0 or 1
func (l *TintLogic) Direction() int {
	return l.direction
}

// Color is the current gray level in [0,1]
func (l *TintLogic) Color() float32 {
	return float32(l.level) / float32(l.opts.Steps)
}

// SetColor moves the level to the step nearest c, clamped to [0,1]
func (l *TintLogic) SetColor(c float32) {
	c = window.ClampUnit(c)
	l.level = int(c*float32(l.opts.Steps) + 0.5)
}

// ClearColor is the background derived by the last LastStep
func (l *TintLogic) ClearColor() [4]float32 {
	return l.clear
}

// Ticks is the number of tick bodies run so far
func (l *TintLogic) Ticks() uint64 {
	return l.ticks
}

// Frames is the number of LastStep calls so far
func (l *TintLogic) Frames() uint64 {
	return l.frames
}

// Initialized reports whether Init acquired its resources and End has not released them
func (l *TintLogic) Initialized() bool {
	return l.mesh != nil && l.renderer != nil
}
