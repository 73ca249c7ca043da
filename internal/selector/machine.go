package selector

import (
	"fmt"
	"image"
)

// State is the interaction state of a selection session.
type State int

const (
	Initial State = iota
	Normal
	Selecting
	Captured
	Moving
	Resizing
	Locked
)

var stateNames = [...]string{
	Initial:   "initial",
	Normal:    "normal",
	Selecting: "selecting",
	Captured:  "captured",
	Moving:    "moving",
	Resizing:  "resizing",
	Locked:    "locked",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// EventKind identifies the input delivered to Machine.Handle.
type EventKind int

const (
	EventStart EventKind = iota
	EventExit
	EventPress
	EventMove
	EventRelease
	EventShortcut
)

// Event is a single input. Pointer events carry Pos in overlay coordinates
// and only concern the left button; Shortcut events carry Command.
type Event struct {
	Kind    EventKind
	Pos     image.Point
	Command Command
}

// Result reports what an event did. Changed is set whenever the rendering
// collaborator has something new to draw.
type Result struct {
	Changed bool
	State   State
	Cursor  Cursor
}

// Detector supplies the bounds of the window under a point.
type Detector interface {
	WindowAt(p image.Point) (image.Rectangle, bool)
}

// Machine drives one selection session. It is not safe for concurrent use;
// all events are expected on the thread that owns the overlay.
type Machine struct {
	state    State
	unlocked State

	sel       Selection
	bounds    image.Point
	pending   *image.Point
	tolerance int

	detector Detector
	detect   bool

	zone    Zone
	cursor  Cursor
	anchor  image.Point
	pointer image.Point

	visible     bool
	infoVisible bool
}

// Option configures a Machine during creation.
type Option func(*Machine)

// WithBounds sets the canvas size.
func WithBounds(size image.Point) Option { return func(m *Machine) { m.bounds = size } }

// WithTolerance sets the hit-test tolerance in pixels.
func WithTolerance(tol int) Option { return func(m *Machine) { m.tolerance = tol } }

// WithDetector enables detect mode backed by d.
func WithDetector(d Detector) Option {
	return func(m *Machine) {
		m.detector = d
		m.detect = d != nil
	}
}

// New returns a Machine in the Initial state.
func New(opts ...Option) *Machine {
	m := &Machine{tolerance: DefaultTolerance, cursor: Cross}
	for _, o := range opts {
		o(m)
	}
	m.tolerance = normTolerance(m.tolerance)
	return m
}

func (m *Machine) State() State          { return m.state }
func (m *Machine) Cursor() Cursor        { return m.cursor }
func (m *Machine) Zone() Zone            { return m.zone }
func (m *Machine) Bounds() image.Point   { return m.bounds }
func (m *Machine) Visible() bool         { return m.visible }
func (m *Machine) Tolerance() int        { return m.tolerance }
func (m *Machine) Selection() Selection  { return m.sel }
func (m *Machine) Rect() image.Rectangle { return m.sel.Canonical() }

// Detecting reports whether detect mode is enabled.
func (m *Machine) Detecting() bool { return m.detect }

// SetDetect toggles detect mode. It has no effect without a Detector.
func (m *Machine) SetDetect(on bool) { m.detect = on && m.detector != nil }

func (m *Machine) result(changed bool) Result {
	return Result{Changed: changed, State: m.state, Cursor: m.cursor}
}

// Handle applies ev and reports the outcome.
func (m *Machine) Handle(ev Event) Result {
	if ev.Kind == EventExit {
		return m.exit()
	}
	if m.state == Locked {
		return m.result(false)
	}
	switch ev.Kind {
	case EventStart:
		return m.start(ev.Pos)
	case EventPress:
		return m.press(ev.Pos)
	case EventMove:
		return m.move(ev.Pos)
	case EventRelease:
		return m.release(ev.Pos)
	case EventShortcut:
		return m.shortcut(ev.Command)
	}
	return m.result(false)
}

func (m *Machine) start(p image.Point) Result {
	if m.state != Initial {
		return m.result(false)
	}
	m.state = Normal
	m.visible = true
	m.pointer = p
	m.cursor = Cross
	if m.detect {
		m.detectAt(p)
		m.infoVisible = true
	}
	return m.result(true)
}

func (m *Machine) exit() Result {
	changed := m.state != Initial || m.visible || m.sel != (Selection{})
	m.state = Initial
	m.sel.Reset()
	m.visible = false
	m.infoVisible = false
	m.zone = Outside
	m.cursor = Cross
	m.applyPending()
	return m.result(changed)
}

func (m *Machine) press(p image.Point) Result {
	m.pointer = p
	switch m.state {
	case Normal:
		m.sel.Begin(p)
		m.infoVisible = true
		m.state = Selecting
		return m.result(true)
	case Captured:
		m.zone = Classify(m.sel, p, m.tolerance)
		m.cursor = CursorFor(m.sel, m.zone)
		m.anchor = p
		if m.zone == Inside {
			m.state = Moving
		} else {
			m.state = Resizing
		}
		return m.result(true)
	}
	return m.result(false)
}

func (m *Machine) move(p image.Point) Result {
	m.pointer = p
	switch m.state {
	case Normal:
		return m.setCursor(Cross)
	case Selecting:
		before := m.sel
		m.sel.Extend(p)
		return m.result(m.sel != before)
	case Captured:
		m.zone = Classify(m.sel, p, m.tolerance)
		return m.setCursor(CursorFor(m.sel, m.zone))
	case Moving:
		applied := m.sel.MoveBy(p.Sub(m.anchor), m.bounds)
		m.anchor = p
		return m.result(applied != image.Point{})
	case Resizing:
		changed := m.sel.ResizeBy(m.zone, p.Sub(m.anchor))
		m.anchor = p
		if changed && zoneTable[m.zone].corner {
			m.cursor = CursorFor(m.sel, m.zone)
		}
		return m.result(changed)
	}
	return m.result(false)
}

func (m *Machine) release(p image.Point) Result {
	m.pointer = p
	switch m.state {
	case Selecting:
		m.sel.Extend(p)
		if m.sel.Empty() && m.detect {
			m.detectAt(p)
		}
	case Moving, Resizing:
		m.anchor = image.Point{}
	default:
		return m.result(false)
	}
	m.state = Captured
	m.applyPending()
	return m.result(true)
}

func (m *Machine) shortcut(cmd Command) Result {
	if cmd == SelectAll {
		if m.state == Initial {
			return m.result(false)
		}
		m.sel.Set(image.Rectangle{Max: m.bounds})
		m.state = Captured
		m.infoVisible = true
		return m.result(true)
	}
	if m.state != Captured {
		return m.result(false)
	}
	return m.result(adjust(&m.sel, cmd, m.bounds))
}

func (m *Machine) setCursor(c Cursor) Result {
	changed := m.cursor != c
	m.cursor = c
	return m.result(changed)
}

func (m *Machine) detectAt(p image.Point) bool {
	if m.detector == nil {
		return false
	}
	r, ok := m.detector.WindowAt(p)
	if !ok {
		return false
	}
	before := m.sel
	m.sel.Set(r)
	return m.sel != before
}

// Refresh re-samples the detector at the last pointer position while idle in
// Normal with detect mode on. The paint loop calls it every frame.
func (m *Machine) Refresh() Result {
	if m.state != Normal || !m.detect {
		return m.result(false)
	}
	return m.result(m.detectAt(m.pointer))
}

// Lock freezes the session; every event but Exit is ignored until Unlock.
func (m *Machine) Lock() {
	if m.state == Locked {
		return
	}
	m.unlocked = m.state
	m.state = Locked
}

// Unlock returns to the state held before Lock.
func (m *Machine) Unlock() {
	if m.state != Locked {
		return
	}
	m.state = m.unlocked
}

// SetBounds replaces the canvas size. While a drag is in progress the new
// size is held until the pointer is released. The current selection is never
// re-clamped. A drag that was locked mid-way still counts as in progress.
func (m *Machine) SetBounds(size image.Point) {
	st := m.state
	if st == Locked {
		st = m.unlocked
	}
	switch st {
	case Selecting, Moving, Resizing:
		m.pending = &size
	default:
		m.bounds = size
		m.pending = nil
	}
}

func (m *Machine) applyPending() {
	if m.pending != nil {
		m.bounds = *m.pending
		m.pending = nil
	}
}

// InfoPlacement describes where the size label goes.
type InfoPlacement struct {
	Text    string
	Size    image.Point
	At      image.Point
	Visible bool
}

// Info places a label of the given pixel size just above the selection's
// top-left corner, or just inside it when above would leave the canvas.
func (m *Machine) Info(label image.Point) InfoPlacement {
	r := m.sel.Canonical()
	y := r.Min.Y - label.Y
	if y < 0 {
		y = r.Min.Y + 1
	}
	return InfoPlacement{
		Text:    fmt.Sprintf("%d x %d", r.Dx(), r.Dy()),
		Size:    r.Size(),
		At:      image.Pt(r.Min.X+1, y),
		Visible: m.visible && m.infoVisible && (m.detect || m.state > Normal),
	}
}
