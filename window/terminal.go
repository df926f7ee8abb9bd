package window

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/frameloop/input"
)

// TerminalOptions configure the terminal backend
type TerminalOptions struct {
	// NewScreen creates the tcell screen; nil uses tcell.NewScreen
	NewScreen func() (tcell.Screen, error)
	// Keys receives every key press; may be nil
	Keys KeyHandler
	// QuitKey closes the window when pressed; KeyNone disables it
	QuitKey input.Key
}

// TerminalOpener opens Terminal windows
type TerminalOpener struct {
	opts TerminalOptions
}

// NewTerminalOpener creates an Opener for the terminal backend
func NewTerminalOpener(opts TerminalOptions) *TerminalOpener {
	return &TerminalOpener{opts: opts}
}

// Open initializes the screen; width and height cap the drawable area in cells
func (o *TerminalOpener) Open(title string, width, height int) (Window, error) {
	t, err := OpenTerminal(title, width, height, o.opts)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Terminal is a Window backed by a tcell screen
// Each cell is one pixel; the clear color fills the cell background
type Terminal struct {
	screen tcell.Screen
	title  string

	maxWidth, maxHeight int

	clear colorful.Color
	alpha float32

	keys    KeyHandler
	quitKey input.Key

	shouldClose bool
	closed      bool
	resizes     int
}

// OpenTerminal creates and initializes a terminal window
func OpenTerminal(title string, width, height int, opts TerminalOptions) (*Terminal, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrOpen, width, height)
	}

	newScreen := opts.NewScreen
	if newScreen == nil {
		newScreen = tcell.NewScreen
	}
	screen, err := newScreen()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}

	screen.SetTitle(title)
	screen.HideCursor()
	screen.Clear()

	return &Terminal{
		screen:    screen,
		title:     title,
		maxWidth:  width,
		maxHeight: height,
		keys:      opts.Keys,
		quitKey:   opts.QuitKey,
	}, nil
}

// Screen exposes the underlying tcell screen
func (t *Terminal) Screen() tcell.Screen {
	return t.screen
}

func (t *Terminal) Title() string {
	return t.title
}

// Size returns the drawable area: the requested size clipped to the terminal
func (t *Terminal) Size() (int, int) {
	w, h := t.screen.Size()
	return min(w, t.maxWidth), min(h, t.maxHeight)
}

// SetClearColor sets the background used by Clear; alpha is kept but terminals cannot blend
func (t *Terminal) SetClearColor(r, g, b, a float32) {
	t.clear = colorful.Color{
		R: float64(ClampUnit(r)),
		G: float64(ClampUnit(g)),
		B: float64(ClampUnit(b)),
	}
	t.alpha = ClampUnit(a)
}

func (t *Terminal) ClearColor() (colorful.Color, float32) {
	return t.clear, t.alpha
}

// Clear fills the drawable area with the clear color
func (t *Terminal) Clear() {
	t.screen.Clear()
	style := tcell.StyleDefault.Background(toCellColor(t.clear))
	w, h := t.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			t.screen.SetContent(x, y, ' ', nil, style)
		}
	}
}

// Plot paints one cell
func (t *Terminal) Plot(x, y int, c colorful.Color) {
	w, h := t.Size()
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	t.screen.SetContent(x, y, ' ', nil, tcell.StyleDefault.Background(toCellColor(c)))
}

// PollEvents dispatches every queued event without blocking
func (t *Terminal) PollEvents() {
	if t.closed {
		return
	}
	for t.screen.HasPendingEvent() {
		switch ev := t.screen.PollEvent().(type) {
		case nil:
			// Screen finalized underneath us
			t.shouldClose = true
			return
		case *tcell.EventKey:
			k := KeyFromEvent(ev)
			if k == input.KeyCtrlC || (t.quitKey != input.KeyNone && k == t.quitKey) {
				t.shouldClose = true
			}
			if t.keys != nil {
				t.keys.HandleKey(k)
			}
		case *tcell.EventResize:
			t.resizes++
			t.screen.Sync()
		}
	}
}

// Resizes counts resize events seen so far
func (t *Terminal) Resizes() int {
	return t.resizes
}

// SwapBuffers presents the frame
func (t *Terminal) SwapBuffers() error {
	if t.closed {
		return ErrClosed
	}
	t.screen.Show()
	return nil
}

func (t *Terminal) ShouldClose() bool {
	return t.shouldClose || t.closed
}

func (t *Terminal) RequestClose() {
	t.shouldClose = true
}

// Close restores the terminal; repeated calls are no-ops
func (t *Terminal) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true
	t.screen.Fini()
	return nil
}

func toCellColor(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// KeyFromEvent maps a tcell key event to an input key
func KeyFromEvent(ev *tcell.EventKey) input.Key {
	switch ev.Key() {
	case tcell.KeyUp:
		return input.KeyUp
	case tcell.KeyDown:
		return input.KeyDown
	case tcell.KeyLeft:
		return input.KeyLeft
	case tcell.KeyRight:
		return input.KeyRight
	case tcell.KeyEscape:
		return input.KeyEscape
	case tcell.KeyEnter:
		return input.KeyEnter
	case tcell.KeyTab:
		return input.KeyTab
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return input.KeyBackspace
	case tcell.KeyCtrlC:
		return input.KeyCtrlC
	case tcell.KeyRune:
		return input.RuneKey(ev.Rune())
	}
	return input.KeyNone
}
