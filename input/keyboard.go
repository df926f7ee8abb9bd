package input

import "time"

// Source answers per-key state queries for the current frame
type Source interface {
	ActiveKey(k Key) bool
}

// Sampler refreshes key state; the engine calls it once per frame before logic runs
type Sampler interface {
	Sample()
}

// Clock supplies the time used to expire held keys
type Clock interface {
	Now() time.Time
}

// Action is the per-frame state of one key
type Action uint8

const (
	Unpressed Action = iota
	Pressed
	Held
	Released
)

var actionNames = [...]string{"unpressed", "pressed", "held", "released"}

func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "unknown"
}

// Active is true for pressed and held keys
func (a Action) Active() bool {
	return a == Pressed || a == Held
}

// Keyboard turns a stream of key-press events into per-frame key actions
//
// Terminals report presses and auto-repeats but no releases, so a key stays
// active until hold has elapsed without a repeat. Events received between
// two Sample calls become visible together at the next Sample.
// Keyboard is driven from the loop goroutine only.
type Keyboard struct {
	clock Clock
	hold  time.Duration

	pending  map[Key]time.Time
	lastSeen map[Key]time.Time
	state    map[Key]Action
}

// NewKeyboard creates a Keyboard expiring keys after hold
func NewKeyboard(clock Clock, hold time.Duration) *Keyboard {
	return &Keyboard{
		clock:    clock,
		hold:     hold,
		pending:  make(map[Key]time.Time),
		lastSeen: make(map[Key]time.Time),
		state:    make(map[Key]Action),
	}
}

// HandleKey records a press or auto-repeat of k
func (kb *Keyboard) HandleKey(k Key) {
	if k == KeyNone {
		return
	}
	kb.pending[k] = kb.clock.Now()
}

// Sample folds pending events into the visible key state
func (kb *Keyboard) Sample() {
	now := kb.clock.Now()

	for k, a := range kb.state {
		at, repeated := kb.pending[k]
		last := kb.lastSeen[k]
		switch {
		case a == Released:
			delete(kb.state, k)
			delete(kb.lastSeen, k)
		case repeated && at.Sub(last) >= kb.hold:
			// Released and pressed again between two samples
			kb.state[k] = Pressed
		case repeated:
			kb.state[k] = Held
		case now.Sub(last) >= kb.hold:
			kb.state[k] = Released
		case a == Pressed:
			kb.state[k] = Held
		}
	}

	for k, at := range kb.pending {
		if _, tracked := kb.state[k]; !tracked {
			kb.state[k] = Pressed
		}
		kb.lastSeen[k] = at
		delete(kb.pending, k)
	}
}

// Action returns the state of k as of the last Sample
func (kb *Keyboard) Action(k Key) Action {
	return kb.state[k]
}

// ActiveKey reports whether k was pressed or held at the last Sample
func (kb *Keyboard) ActiveKey(k Key) bool {
	return kb.state[k].Active()
}

// Reset forgets all key state
func (kb *Keyboard) Reset() {
	clear(kb.pending)
	clear(kb.lastSeen)
	clear(kb.state)
}
