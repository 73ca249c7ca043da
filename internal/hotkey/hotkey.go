// Package hotkey triggers region selection from a global key combination.
package hotkey

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync/atomic"

	hook "github.com/robotn/gohook"
)

var aliases = map[string]string{
	"control": "ctrl",
	"option":  "alt",
	"win":     "cmd",
	"super":   "cmd",
	"meta":    "cmd",
	"return":  "enter",
	"escape":  "esc",
	"prtsc":   "printscreen",
	"print":   "printscreen",
}

var modifiers = map[string]bool{"ctrl": true, "alt": true, "shift": true, "cmd": true}

// ErrEmpty is returned for a blank combination.
var ErrEmpty = errors.New("empty hotkey")

// Parse turns "Ctrl+Shift+S" into gohook key names, modifiers first. Every
// combination needs exactly one non-modifier key.
func Parse(combo string) ([]string, error) {
	if strings.TrimSpace(combo) == "" {
		return nil, ErrEmpty
	}
	var mods []string
	var main string
	seen := map[string]bool{}
	for _, part := range strings.Split(combo, "+") {
		name := strings.ToLower(strings.TrimSpace(part))
		if alias, ok := aliases[name]; ok {
			name = alias
		}
		if name == "" {
			return nil, fmt.Errorf("hotkey %q: empty key", combo)
		}
		if _, ok := hook.Keycode[name]; !ok && !modifiers[name] {
			return nil, fmt.Errorf("hotkey %q: unknown key %q", combo, part)
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		if modifiers[name] {
			mods = append(mods, name)
			continue
		}
		if main != "" {
			return nil, fmt.Errorf("hotkey %q: more than one key (%s, %s)", combo, main, name)
		}
		main = name
	}
	if main == "" {
		return nil, fmt.Errorf("hotkey %q: needs a non-modifier key", combo)
	}
	return append(mods, main), nil
}

// Listener dispatches a callback whenever its combination is pressed. A
// trigger arriving while the previous callback is still running is dropped.
type Listener struct {
	keys    []string
	trigger func()
	busy    atomic.Bool
}

// NewListener parses combo and prepares a listener.
func NewListener(combo string, trigger func()) (*Listener, error) {
	keys, err := Parse(combo)
	if err != nil {
		return nil, err
	}
	return &Listener{keys: keys, trigger: trigger}, nil
}

// Keys returns the parsed combination.
func (l *Listener) Keys() []string { return append([]string(nil), l.keys...) }

func (l *Listener) fire() bool {
	if !l.busy.CompareAndSwap(false, true) {
		log.Printf("hotkey %s: selection already running", strings.Join(l.keys, "+"))
		return false
	}
	go func() {
		defer l.busy.Store(false)
		l.trigger()
	}()
	return true
}

// hooks wraps the global gohook state.
var hooks = struct {
	register func(uint8, []string, func(hook.Event))
	start    func() chan hook.Event
	process  func(<-chan hook.Event) chan bool
	end      func()
}{hook.Register, hook.Start, hook.Process, hook.End}

// Run blocks until ctx is cancelled.
func (l *Listener) Run(ctx context.Context) error {
	hooks.register(hook.KeyDown, l.keys, func(hook.Event) { l.fire() })
	events := hooks.start()
	done := hooks.process(events)
	log.Printf("listening for %s", strings.Join(l.keys, "+"))
	select {
	case <-ctx.Done():
		hooks.end()
		return ctx.Err()
	case <-done:
		return errors.New("hotkey event stream closed")
	}
}
