package selector

import "image"

// DefaultTolerance is the hit-test band width and anchor box size in pixels.
const DefaultTolerance = 8

type hitBox struct {
	zone Zone
	rect image.Rectangle
}

// box returns a tol x tol square centred on c.
func box(c image.Point, tol int) image.Rectangle {
	origin := c.Sub(image.Pt(tol/2, tol/2))
	return image.Rectangle{Min: origin, Max: origin.Add(image.Pt(tol, tol))}
}

// anchorBoxes lists corner boxes before edge-midpoint boxes; Classify relies
// on the order for priority.
func anchorBoxes(s Selection, tol int) []hitBox {
	mx := s.X1 + (s.X2-s.X1)/2
	my := s.Y1 + (s.Y2-s.Y1)/2
	return []hitBox{
		{X1Y1Anchor, box(image.Pt(s.X1, s.Y1), tol)},
		{X1Y2Anchor, box(image.Pt(s.X1, s.Y2), tol)},
		{X2Y1Anchor, box(image.Pt(s.X2, s.Y1), tol)},
		{X2Y2Anchor, box(image.Pt(s.X2, s.Y2), tol)},
		{Y1Anchor, box(image.Pt(mx, s.Y1), tol)},
		{X2Anchor, box(image.Pt(s.X2, my), tol)},
		{Y2Anchor, box(image.Pt(mx, s.Y2), tol)},
		{X1Anchor, box(image.Pt(s.X1, my), tol)},
	}
}

// Anchors returns the eight anchor boxes of s for painting: four corners
// followed by the four edge midpoints.
func Anchors(s Selection, tolerance int) []image.Rectangle {
	boxes := anchorBoxes(s, normTolerance(tolerance))
	out := make([]image.Rectangle, len(boxes))
	for i, b := range boxes {
		out[i] = b.rect
	}
	return out
}

func normTolerance(tol int) int {
	if tol < 1 {
		return 1
	}
	return tol
}

// inBand reports whether v falls in the tol-wide band centred on line.
func inBand(v, line, tol int) bool {
	lo := line - tol/2
	return v >= lo && v < lo+tol
}

func within(v, a, b int) bool {
	if a > b {
		a, b = b, a
	}
	return v >= a && v <= b
}

// Classify locates p relative to s. Anchor boxes win over the border bands
// they overlap, and borders win over the interior. Zone names refer to the
// raw corners, so X1Border is always the edge on the line x == s.X1.
func Classify(s Selection, p image.Point, tolerance int) Zone {
	tol := normTolerance(tolerance)
	for _, b := range anchorBoxes(s, tol) {
		if p.In(b.rect) {
			return b.zone
		}
	}
	switch {
	case inBand(p.X, s.X1, tol) && within(p.Y, s.Y1, s.Y2):
		return X1Border
	case inBand(p.X, s.X2, tol) && within(p.Y, s.Y1, s.Y2):
		return X2Border
	case inBand(p.Y, s.Y1, tol) && within(p.X, s.X1, s.X2):
		return Y1Border
	case inBand(p.Y, s.Y2, tol) && within(p.X, s.X1, s.X2):
		return Y2Border
	}
	if p.In(s.Canonical()) {
		return Inside
	}
	return Outside
}
