package capture

import (
	"fmt"
	"image"
)

// WindowDetector answers window-under-pointer queries against a snapshot of
// the stacking order taken before the overlay maps. Rectangles are stored in
// overlay coordinates and clipped to the canvas.
type WindowDetector struct {
	rects []image.Rectangle
}

// NewWindowDetector builds a detector from windows listed topmost first.
// Windows that are not viewable or fall outside the canvas are ignored.
func NewWindowDetector(windows []WindowInfo, c Canvas) *WindowDetector {
	bounds := image.Rectangle{Max: c.Size}
	d := &WindowDetector{}
	for _, win := range windows {
		if !win.Viewable {
			continue
		}
		r := c.ToOverlay(win.Rect).Intersect(bounds)
		if r.Empty() {
			continue
		}
		d.rects = append(d.rects, r)
	}
	return d
}

// DetectWindows snapshots the current windows for c.
func DetectWindows(c Canvas) (*WindowDetector, error) {
	windows, err := ListWindows()
	if err != nil {
		return nil, fmt.Errorf("detect windows: %w", err)
	}
	return NewWindowDetector(windows, c), nil
}

// WindowAt returns the topmost window containing p.
func (d *WindowDetector) WindowAt(p image.Point) (image.Rectangle, bool) {
	for _, r := range d.rects {
		if p.In(r) {
			return r, true
		}
	}
	return image.Rectangle{}, false
}

// Len reports how many windows the detector knows about.
func (d *WindowDetector) Len() int { return len(d.rects) }
