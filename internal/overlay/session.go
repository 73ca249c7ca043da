// Package overlay hosts the interactive region selector window.
package overlay

import (
	"errors"
	"fmt"
	"image"
	"log"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/regionshot/internal/render"
	"github.com/example/regionshot/internal/selector"
)

// ErrCancelled is returned when the user leaves the overlay without
// accepting a region.
var ErrCancelled = errors.New("selection cancelled")

// Session owns one overlay window and the selection machine behind it.
// Selector coordinates are window pixels; the canvas may be larger when the
// window manager refuses a full-size window, in which case results and
// detector lookups are scaled.
type Session struct {
	m        *selector.Machine
	detector selector.Detector
	bindings Bindings
	tol      int

	canvas   image.Point
	window   image.Point
	backdrop image.Image
	style    render.Style
	title    string

	updates <-chan image.Point

	pointer  image.Point
	started  bool
	done     bool
	accepted bool
	err      error
}

// Option configures a Session.
type Option func(*Session)

// WithBackdrop sets the frozen desktop image drawn under the mask.
func WithBackdrop(img image.Image) Option { return func(s *Session) { s.backdrop = img } }

// WithStyle sets the theme and border width.
func WithStyle(st render.Style) Option { return func(s *Session) { s.style = st } }

// WithBindings replaces the keyboard bindings.
func WithBindings(b Bindings) Option { return func(s *Session) { s.bindings = b } }

// WithTitle sets the window title.
func WithTitle(t string) Option { return func(s *Session) { s.title = t } }

// WithPointer seeds the pointer position in canvas coordinates.
func WithPointer(p image.Point) Option { return func(s *Session) { s.pointer = p } }

// WithDetector enables window snapping. d answers in canvas coordinates.
func WithDetector(d selector.Detector) Option { return func(s *Session) { s.detector = d } }

// WithTolerance sets the anchor hit tolerance.
func WithTolerance(tol int) Option {
	return func(s *Session) { s.tol = tol }
}

// WithCanvasUpdates feeds desktop size changes, such as a monitor being
// plugged in, into the running session.
func WithCanvasUpdates(ch <-chan image.Point) Option { return func(s *Session) { s.updates = ch } }

// NewSession prepares a session for a canvas of the given size.
func NewSession(canvas image.Point, opts ...Option) *Session {
	s := &Session{canvas: canvas, window: canvas, bindings: DefaultBindings(), tol: selector.DefaultTolerance}
	for _, o := range opts {
		o(s)
	}
	mopts := []selector.Option{selector.WithBounds(canvas), selector.WithTolerance(s.tol)}
	if s.detector != nil {
		mopts = append(mopts, selector.WithDetector(scaledDetector{s}))
	}
	s.m = selector.New(mopts...)
	return s
}

// Machine exposes the underlying selection machine.
func (s *Session) Machine() *selector.Machine { return s.m }

// Done reports whether the session has finished.
func (s *Session) Done() bool { return s.done }

func (s *Session) noop() selector.Result {
	return selector.Result{State: s.m.State(), Cursor: s.m.Cursor()}
}

// Start shows the selector at the seeded pointer position.
func (s *Session) Start() selector.Result {
	if s.started {
		return s.noop()
	}
	s.started = true
	s.pointer = s.toWindow(s.pointer)
	return s.m.Handle(selector.Event{Kind: selector.EventStart, Pos: s.pointer})
}

// Resize reacts to the window changing size.
func (s *Session) Resize(sz image.Point) {
	if sz.X <= 0 || sz.Y <= 0 || sz == s.window {
		return
	}
	s.window = sz
	s.m.SetBounds(sz)
}

// SetCanvas replaces the desktop size. A window that was showing the whole
// canvas follows it, which moves the selector bounds too.
func (s *Session) SetCanvas(sz image.Point) {
	if sz.X <= 0 || sz.Y <= 0 || sz == s.canvas {
		return
	}
	follow := s.window == s.canvas
	s.canvas = sz
	if follow {
		s.window = sz
		s.m.SetBounds(sz)
	}
}

type canvasEvent struct{ size image.Point }

func (s *Session) finish(accepted bool) selector.Result {
	s.done = true
	s.accepted = accepted
	if accepted {
		s.m.Lock()
		return selector.Result{Changed: true, State: s.m.State(), Cursor: s.m.Cursor()}
	}
	return s.m.Handle(selector.Event{Kind: selector.EventExit})
}

// HandleMouse feeds a pointer event to the machine. Only the left button
// drives the selection; a right click cancels.
func (s *Session) HandleMouse(e mouse.Event) selector.Result {
	if s.done {
		return s.noop()
	}
	p := image.Pt(int(e.X), int(e.Y))
	moved := p != s.pointer
	s.pointer = p
	switch {
	case e.Button == mouse.ButtonRight && e.Direction == mouse.DirPress:
		return s.finish(false)
	case e.Direction == mouse.DirNone:
		r := s.m.Handle(selector.Event{Kind: selector.EventMove, Pos: p})
		if s.m.State() == selector.Normal {
			r.Changed = s.m.Refresh().Changed || r.Changed || moved
		}
		return r
	case e.Button != mouse.ButtonLeft:
		return s.noop()
	case e.Direction == mouse.DirPress:
		return s.m.Handle(selector.Event{Kind: selector.EventPress, Pos: p})
	case e.Direction == mouse.DirRelease:
		return s.m.Handle(selector.Event{Kind: selector.EventRelease, Pos: p})
	}
	return s.noop()
}

// HandleKey applies the binding for e, if any. done is set once the session
// was accepted or cancelled.
func (s *Session) HandleKey(e key.Event) (r selector.Result, done bool) {
	if s.done || e.Direction == key.DirRelease {
		return s.noop(), s.done
	}
	b, ok := s.bindings.Lookup(e)
	if !ok {
		return s.noop(), false
	}
	switch b.Action {
	case ActionExit:
		return s.finish(false), true
	case ActionAccept:
		if s.m.State() != selector.Captured || s.m.Rect().Empty() {
			return s.noop(), false
		}
		return s.finish(true), true
	case ActionToggleDetect:
		before := s.m.Detecting()
		s.m.SetDetect(!before)
		r := s.m.Refresh()
		r.Changed = r.Changed || before != s.m.Detecting()
		return r, false
	}
	return s.m.Handle(selector.Event{Kind: selector.EventShortcut, Command: b.Command}), false
}

// Frame describes what the next paint should show.
func (s *Session) Frame() render.Frame {
	m := s.m
	st := m.State()
	f := render.Frame{Backdrop: s.backdrop, Pointer: s.pointer}
	if !m.Visible() {
		return f
	}
	f.Selection = m.Rect()
	f.Crosshair = st == selector.Normal
	f.Decorations = m.Detecting() || st > selector.Normal
	if st >= selector.Captured {
		f.Anchors = selector.Anchors(m.Selection(), m.Tolerance())
		f.CursorHint = m.Cursor().String()
	}
	info := m.Info(image.Point{})
	f.Info = m.Info(render.LabelSize(render.LabelText(info, f.CursorHint)))
	return f
}

// Result returns the accepted region in canvas coordinates.
func (s *Session) Result() (image.Rectangle, error) {
	if s.err != nil {
		return image.Rectangle{}, s.err
	}
	if !s.accepted {
		return image.Rectangle{}, ErrCancelled
	}
	return s.toCanvas(s.m.Rect()), nil
}

// Run opens the overlay and blocks until it closes. It must be called from
// the main goroutine.
func (s *Session) Run() (image.Rectangle, error) {
	driver.Main(s.Main)
	return s.Result()
}

// Main is the shiny entry point.
func (s *Session) Main(sc screen.Screen) {
	w, err := sc.NewWindow(&screen.NewWindowOptions{Width: s.canvas.X, Height: s.canvas.Y, Title: s.title})
	if err != nil {
		s.err = fmt.Errorf("new window: %w", err)
		return
	}
	defer w.Release()

	if s.updates != nil {
		done := make(chan struct{})
		go func() {
			for {
				select {
				case sz, ok := <-s.updates:
					if !ok {
						return
					}
					w.Send(canvasEvent{sz})
				case <-done:
					return
				}
			}
		}()
		defer close(done)
	}

	s.Start()
	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				if !s.done {
					s.finish(false)
				}
				return
			}
		case canvasEvent:
			s.SetCanvas(e.size)
			w.Send(paint.Event{})
		case size.Event:
			s.Resize(image.Pt(e.WidthPx, e.HeightPx))
			w.Send(paint.Event{})
		case paint.Event:
			s.paint(sc, w)
		case mouse.Event:
			if r := s.HandleMouse(e); r.Changed {
				w.Send(paint.Event{})
			}
			if s.done {
				return
			}
		case key.Event:
			r, done := s.HandleKey(e)
			if done {
				return
			}
			if r.Changed {
				w.Send(paint.Event{})
			}
		case error:
			log.Printf("overlay: %v", e)
		}
	}
}

func (s *Session) paint(sc screen.Screen, w screen.Window) {
	s.m.Refresh()
	b, err := sc.NewBuffer(s.window)
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()
	render.Paint(b.RGBA(), s.Frame(), s.style)
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}

func scale(v, num, den int) int {
	if den == 0 || num == den {
		return v
	}
	return v * num / den
}

func (s *Session) toWindow(p image.Point) image.Point {
	return image.Pt(scale(p.X, s.window.X, s.canvas.X), scale(p.Y, s.window.Y, s.canvas.Y))
}

func (s *Session) toCanvas(r image.Rectangle) image.Rectangle {
	return image.Rect(
		scale(r.Min.X, s.canvas.X, s.window.X), scale(r.Min.Y, s.canvas.Y, s.window.Y),
		scale(r.Max.X, s.canvas.X, s.window.X), scale(r.Max.Y, s.canvas.Y, s.window.Y),
	)
}

// scaledDetector answers window lookups made in window pixels.
type scaledDetector struct{ s *Session }

func (d scaledDetector) WindowAt(p image.Point) (image.Rectangle, bool) {
	s := d.s
	cp := image.Pt(scale(p.X, s.canvas.X, s.window.X), scale(p.Y, s.canvas.Y, s.window.Y))
	r, ok := s.detector.WindowAt(cp)
	if !ok {
		return image.Rectangle{}, false
	}
	return image.Rectangle{Min: s.toWindow(r.Min), Max: s.toWindow(r.Max)}, true
}
