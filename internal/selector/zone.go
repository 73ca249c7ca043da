package selector

// Zone classifies a pointer position relative to the selection.
type Zone int

const (
	Outside Zone = iota
	Inside
	X1Anchor
	X2Anchor
	Y1Anchor
	Y2Anchor
	X1Border
	X2Border
	Y1Border
	Y2Border
	X1Y1Anchor
	X1Y2Anchor
	X2Y1Anchor
	X2Y2Anchor
)

var zoneNames = [...]string{
	Outside:    "outside",
	Inside:     "inside",
	X1Anchor:   "x1-anchor",
	X2Anchor:   "x2-anchor",
	Y1Anchor:   "y1-anchor",
	Y2Anchor:   "y2-anchor",
	X1Border:   "x1-border",
	X2Border:   "x2-border",
	Y1Border:   "y1-border",
	Y2Border:   "y2-border",
	X1Y1Anchor: "x1y1-anchor",
	X1Y2Anchor: "x1y2-anchor",
	X2Y1Anchor: "x2y1-anchor",
	X2Y2Anchor: "x2y2-anchor",
}

func (z Zone) String() string {
	if z < 0 || int(z) >= len(zoneNames) {
		return "unknown"
	}
	return zoneNames[z]
}

// Cursor is the pointer shape the overlay should present.
type Cursor int

const (
	Cross Cursor = iota
	SizeAll
	Forbidden
	SizeVertical
	SizeHorizontal
	SizeDiagonalFwd
	SizeDiagonalBack
)

var cursorNames = [...]string{
	Cross:            "cross",
	SizeAll:          "size-all",
	Forbidden:        "forbidden",
	SizeVertical:     "size-ver",
	SizeHorizontal:   "size-hor",
	SizeDiagonalFwd:  "size-fdiag",
	SizeDiagonalBack: "size-bdiag",
}

func (c Cursor) String() string {
	if c < 0 || int(c) >= len(cursorNames) {
		return "unknown"
	}
	return cursorNames[c]
}

// edit names the raw coordinates a resize in a zone touches.
type edit uint8

const (
	editX1 edit = 1 << iota
	editY1
	editX2
	editY2
)

// zoneSpec is consulted by both the cursor hint and ResizeBy so the two
// cannot disagree about which edge a zone grabs.
type zoneSpec struct {
	edits  edit
	cursor Cursor
	corner bool
}

var zoneTable = map[Zone]zoneSpec{
	Inside:     {cursor: SizeAll},
	Outside:    {cursor: Forbidden},
	Y1Anchor:   {edits: editY1, cursor: SizeVertical},
	Y2Anchor:   {edits: editY2, cursor: SizeVertical},
	Y1Border:   {edits: editY1, cursor: SizeVertical},
	Y2Border:   {edits: editY2, cursor: SizeVertical},
	X1Anchor:   {edits: editX1, cursor: SizeHorizontal},
	X2Anchor:   {edits: editX2, cursor: SizeHorizontal},
	X1Border:   {edits: editX1, cursor: SizeHorizontal},
	X2Border:   {edits: editX2, cursor: SizeHorizontal},
	X1Y1Anchor: {edits: editX1 | editY1, corner: true},
	X1Y2Anchor: {edits: editX1 | editY2, corner: true},
	X2Y1Anchor: {edits: editX2 | editY1, corner: true},
	X2Y2Anchor: {edits: editX2 | editY2, corner: true},
}

// CursorFor returns the cursor hint for zone z over sel. Corner zones pick
// the forward diagonal when the grabbed corner lies up-left or down-right of
// the opposite corner.
func CursorFor(sel Selection, z Zone) Cursor {
	entry, ok := zoneTable[z]
	if !ok {
		return Cross
	}
	if !entry.corner {
		return entry.cursor
	}
	cx, ox := sel.X2, sel.X1
	if entry.edits&editX1 != 0 {
		cx, ox = sel.X1, sel.X2
	}
	cy, oy := sel.Y2, sel.Y1
	if entry.edits&editY1 != 0 {
		cy, oy = sel.Y1, sel.Y2
	}
	dx, dy := cx-ox, cy-oy
	if (dx < 0 && dy < 0) || (dx > 0 && dy > 0) {
		return SizeDiagonalFwd
	}
	return SizeDiagonalBack
}
