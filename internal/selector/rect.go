package selector

import "image"

// Selection holds the two raw corners of the selected region. The corners
// keep the order the user dragged them in, so X1 may exceed X2 and Y1 may
// exceed Y2; Canonical normalizes on read.
type Selection struct {
	X1, Y1 int
	X2, Y2 int
}

// Begin collapses both corners onto p.
func (s *Selection) Begin(p image.Point) {
	s.X1, s.Y1 = p.X, p.Y
	s.X2, s.Y2 = p.X, p.Y
}

// Extend moves the second corner to p.
func (s *Selection) Extend(p image.Point) {
	s.X2, s.Y2 = p.X, p.Y
}

// Set replaces the selection with r, using Min as the first corner.
func (s *Selection) Set(r image.Rectangle) {
	s.X1, s.Y1 = r.Min.X, r.Min.Y
	s.X2, s.Y2 = r.Max.X, r.Max.Y
}

// Reset zeroes every coordinate.
func (s *Selection) Reset() {
	*s = Selection{}
}

// Canonical returns the selection as a well-formed rectangle.
func (s Selection) Canonical() image.Rectangle {
	return image.Rect(s.X1, s.Y1, s.X2, s.Y2)
}

// Size returns the width and height of the canonical rectangle.
func (s Selection) Size() image.Point {
	return s.Canonical().Size()
}

// Empty reports whether the selection has zero area.
func (s Selection) Empty() bool {
	return s.Canonical().Empty()
}

// MoveBy translates the selection by delta, saturating each axis so the
// canonical rectangle stays within [0,bounds). It returns the delta that was
// applied.
func (s *Selection) MoveBy(delta, bounds image.Point) image.Point {
	r := s.Canonical()
	d := image.Point{
		X: clampDelta(delta.X, r.Min.X, bounds.X-r.Max.X),
		Y: clampDelta(delta.Y, r.Min.Y, bounds.Y-r.Max.Y),
	}
	s.X1 += d.X
	s.X2 += d.X
	s.Y1 += d.Y
	s.Y2 += d.Y
	return d
}

func clampDelta(d, before, after int) int {
	if d < 0 {
		return max(d, -max(before, 0))
	}
	return min(d, max(after, 0))
}

// ResizeBy adds delta to the raw coordinates zone z grabs. Corners are free
// to cross; the result is normalized by Canonical. Zones that grab no edge
// leave the selection untouched and report false.
func (s *Selection) ResizeBy(z Zone, delta image.Point) bool {
	entry, ok := zoneTable[z]
	if !ok || entry.edits == 0 {
		return false
	}
	before := *s
	if entry.edits&editX1 != 0 {
		s.X1 += delta.X
	}
	if entry.edits&editX2 != 0 {
		s.X2 += delta.X
	}
	if entry.edits&editY1 != 0 {
		s.Y1 += delta.Y
	}
	if entry.edits&editY2 != 0 {
		s.Y2 += delta.Y
	}
	return *s != before
}
