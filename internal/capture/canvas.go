package capture

import (
	"fmt"
	"image"
	"log"

	"github.com/kbinani/screenshot"
)

// Canvas is the flat overlay surface laid over every monitor. Overlay
// coordinates start at (0,0); Origin is where that lands on the desktop.
type Canvas struct {
	Origin   image.Point
	Size     image.Point
	Monitors []MonitorInfo
}

// Rect returns the canvas in global coordinates.
func (c Canvas) Rect() image.Rectangle {
	return image.Rectangle{Min: c.Origin, Max: c.Origin.Add(c.Size)}
}

// ToOverlay maps a global rectangle into overlay coordinates.
func (c Canvas) ToOverlay(r image.Rectangle) image.Rectangle { return r.Sub(c.Origin) }

// ToGlobal maps an overlay rectangle back onto the desktop.
func (c Canvas) ToGlobal(r image.Rectangle) image.Rectangle { return r.Add(c.Origin) }

// CanvasFor lays the monitors side by side: the width is the sum of the
// monitor widths and the height is the tallest monitor.
func CanvasFor(monitors []MonitorInfo) Canvas {
	if len(monitors) == 0 {
		return Canvas{}
	}
	c := Canvas{Origin: monitors[0].Rect.Min, Monitors: monitors}
	for _, mon := range monitors {
		c.Origin.X = min(c.Origin.X, mon.Rect.Min.X)
		c.Origin.Y = min(c.Origin.Y, mon.Rect.Min.Y)
		c.Size.X += mon.Rect.Dx()
		c.Size.Y = max(c.Size.Y, mon.Rect.Dy())
	}
	return c
}

var displayBoundsFn = func() []image.Rectangle {
	n := screenshot.NumActiveDisplays()
	bounds := make([]image.Rectangle, 0, n)
	for i := 0; i < n; i++ {
		bounds = append(bounds, screenshot.GetDisplayBounds(i))
	}
	return bounds
}

// DesktopCanvas resolves the overlay surface from the RandR monitor layout,
// falling back to the displays the screenshot library reports.
func DesktopCanvas() (Canvas, error) {
	monitors, err := ListMonitors()
	if err == nil && len(monitors) > 0 {
		return CanvasFor(monitors), nil
	}
	if err != nil {
		log.Printf("monitor layout: %v; using display bounds", err)
	}
	displays := displayBoundsFn()
	if len(displays) == 0 {
		return Canvas{}, ErrNoDisplay
	}
	monitors = make([]MonitorInfo, 0, len(displays))
	for i, r := range displays {
		monitors = append(monitors, MonitorInfo{
			Index:   i,
			Name:    fmt.Sprintf("display-%d", i),
			Rect:    r,
			Primary: i == 0,
		})
	}
	return CanvasFor(monitors), nil
}

// CanvasBounds returns the overlay size in pixels.
func CanvasBounds() (image.Point, error) {
	c, err := DesktopCanvas()
	if err != nil {
		return image.Point{}, err
	}
	return c.Size, nil
}
