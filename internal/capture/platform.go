package capture

import (
	"errors"
	"image"
)

type platformBackend interface {
	ListMonitors() ([]MonitorInfo, error)
	ListWindows() ([]WindowInfo, error)
	PointerPosition() (image.Point, error)
}

var backend = newBackend()

var (
	errNoMonitors = errors.New("no monitors available")
	errNoWindows  = errors.New("no windows available")

	// ErrNoDisplay is returned when neither X11 nor the screenshot library
	// can see an active display.
	ErrNoDisplay = errors.New("no active displays found")
)

// MonitorInfo describes an individual monitor in the display layout.
type MonitorInfo struct {
	Index   int
	Name    string
	Rect    image.Rectangle
	Primary bool
}

// WindowInfo describes a top-level window. Rect is in global screen
// coordinates including the border. Windows are listed topmost first.
type WindowInfo struct {
	Index    int
	ID       uint32
	Title    string
	Class    string
	Instance string
	Rect     image.Rectangle
	Active   bool
	Viewable bool
}

// ListMonitors retrieves all monitors using the platform backend.
func ListMonitors() ([]MonitorInfo, error) {
	return backend.ListMonitors()
}

// ListWindows retrieves the top-level windows in stacking order, topmost first.
func ListWindows() ([]WindowInfo, error) {
	return backend.ListWindows()
}

// PointerPosition reports the pointer in global screen coordinates.
func PointerPosition() (image.Point, error) {
	return backend.PointerPosition()
}
