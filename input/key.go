// Package input samples keyboard state once per frame.
//
// Key identities are opaque to the loop: special keys are negative
// constants, printable keys carry their rune value.
package input

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Key identifies a physical key
type Key int32

// Special keys
const (
	KeyNone Key = 0

	KeyUp Key = -(iota + 1)
	KeyDown
	KeyLeft
	KeyRight
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyCtrlC
)

// KeySpace is a rune key, named for config convenience
const KeySpace = Key(' ')

var keyNames = map[Key]string{
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyEscape:    "esc",
	KeyEnter:     "enter",
	KeyTab:       "tab",
	KeyBackspace: "backspace",
	KeyCtrlC:     "ctrl+c",
	KeySpace:     "space",
}

var namedKeys = func() map[string]Key {
	m := make(map[string]Key, len(keyNames)+1)
	for k, name := range keyNames {
		m[name] = k
	}
	m["escape"] = KeyEscape
	return m
}()

// RuneKey returns the key for a printable rune
func RuneKey(r rune) Key {
	return Key(r)
}

// IsRune reports whether k is a printable rune key
func (k Key) IsRune() bool {
	return k > 0
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	if k.IsRune() {
		return string(rune(k))
	}
	return fmt.Sprintf("key(%d)", int32(k))
}

// ParseKey resolves a config key name: a special name ("up", "esc") or a single character
func ParseKey(name string) (Key, error) {
	if k, ok := namedKeys[strings.ToLower(name)]; ok {
		return k, nil
	}
	if utf8.RuneCountInString(name) == 1 {
		r, _ := utf8.DecodeRuneInString(name)
		if r != utf8.RuneError && r > ' ' {
			return RuneKey(r), nil
		}
	}
	return KeyNone, fmt.Errorf("unknown key name %q", name)
}
