package overlay

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/mobile/event/key"

	"github.com/example/regionshot/internal/selector"
)

// KeyShortcut describes a keyboard combination. A shortcut matches either
// on Code or, when Code is zero, on the lower-cased Rune.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

const modifierMask = key.ModShift | key.ModControl | key.ModAlt | key.ModMeta

var codeNames = map[key.Code]string{
	key.CodeUpArrow:     "Up",
	key.CodeDownArrow:   "Down",
	key.CodeLeftArrow:   "Left",
	key.CodeRightArrow:  "Right",
	key.CodeReturnEnter: "Enter",
	key.CodeKeypadEnter: "KeypadEnter",
	key.CodeEscape:      "Esc",
	key.CodeTab:         "Tab",
	key.CodeA:           "A",
	key.CodeD:           "D",
	key.CodeS:           "S",
	key.CodeW:           "W",
}

func (k KeyShortcut) String() string {
	var parts []string
	if k.Modifiers&key.ModControl != 0 {
		parts = append(parts, "Ctrl")
	}
	if k.Modifiers&key.ModAlt != 0 {
		parts = append(parts, "Alt")
	}
	if k.Modifiers&key.ModShift != 0 {
		parts = append(parts, "Shift")
	}
	if k.Modifiers&key.ModMeta != 0 {
		parts = append(parts, "Meta")
	}
	switch {
	case k.Code != key.CodeUnknown:
		name, ok := codeNames[k.Code]
		if !ok {
			name = fmt.Sprintf("code%d", k.Code)
		}
		parts = append(parts, name)
	case k.Rune > 0:
		parts = append(parts, strings.ToUpper(string(k.Rune)))
	}
	return strings.Join(parts, "+")
}

// Action is what a binding does.
type Action int

const (
	ActionCommand Action = iota
	ActionAccept
	ActionExit
	ActionToggleDetect
)

// Binding pairs an action with the selector command it carries.
type Binding struct {
	Action  Action
	Command selector.Command
}

func (b Binding) String() string {
	switch b.Action {
	case ActionAccept:
		return "accept"
	case ActionExit:
		return "exit"
	case ActionToggleDetect:
		return "toggle-detect"
	}
	return b.Command.String()
}

// Bindings maps shortcuts to bindings.
type Bindings map[KeyShortcut]Binding

func cmd(c selector.Command) Binding { return Binding{Action: ActionCommand, Command: c} }

// DefaultBindings returns the standard keyboard layout: WASD moves by one
// pixel, Ctrl+arrows grow and Shift+arrows shrink the matching edge.
func DefaultBindings() Bindings {
	return Bindings{
		{Code: key.CodeW}: cmd(selector.MoveUp),
		{Code: key.CodeS}: cmd(selector.MoveDown),
		{Code: key.CodeA}: cmd(selector.MoveLeft),
		{Code: key.CodeD}: cmd(selector.MoveRight),

		{Code: key.CodeUpArrow, Modifiers: key.ModControl}:    cmd(selector.GrowTop),
		{Code: key.CodeDownArrow, Modifiers: key.ModControl}:  cmd(selector.GrowBottom),
		{Code: key.CodeLeftArrow, Modifiers: key.ModControl}:  cmd(selector.GrowLeft),
		{Code: key.CodeRightArrow, Modifiers: key.ModControl}: cmd(selector.GrowRight),

		{Code: key.CodeUpArrow, Modifiers: key.ModShift}:    cmd(selector.ShrinkTop),
		{Code: key.CodeDownArrow, Modifiers: key.ModShift}:  cmd(selector.ShrinkBottom),
		{Code: key.CodeLeftArrow, Modifiers: key.ModShift}:  cmd(selector.ShrinkLeft),
		{Code: key.CodeRightArrow, Modifiers: key.ModShift}: cmd(selector.ShrinkRight),

		{Code: key.CodeA, Modifiers: key.ModControl}: cmd(selector.SelectAll),

		{Code: key.CodeReturnEnter}: {Action: ActionAccept},
		{Code: key.CodeKeypadEnter}: {Action: ActionAccept},
		{Code: key.CodeEscape}:      {Action: ActionExit},
		{Code: key.CodeTab}:         {Action: ActionToggleDetect},
	}
}

// Lookup finds the binding for a key event.
func (b Bindings) Lookup(e key.Event) (Binding, bool) {
	mods := e.Modifiers & modifierMask
	if e.Code != key.CodeUnknown {
		if bind, ok := b[KeyShortcut{Code: e.Code, Modifiers: mods}]; ok {
			return bind, true
		}
	}
	if e.Rune > 0 {
		if bind, ok := b[KeyShortcut{Rune: unicode.ToLower(e.Rune), Modifiers: mods}]; ok {
			return bind, true
		}
	}
	return Binding{}, false
}

// Describe lists the bindings as "shortcut  action" lines sorted by action.
func (b Bindings) Describe() []string {
	lines := make([]string, 0, len(b))
	for ks, bind := range b {
		lines = append(lines, fmt.Sprintf("%-14s %s", ks, bind))
	}
	sort.Slice(lines, func(i, j int) bool {
		return strings.Fields(lines[i])[1] < strings.Fields(lines[j])[1] ||
			strings.Fields(lines[i])[1] == strings.Fields(lines[j])[1] && lines[i] < lines[j]
	})
	return lines
}
