package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/regionshot/internal/selector"
	"github.com/example/regionshot/internal/theme"
)

const labelPadding = 3

var labelFace font.Face = basicfont.Face7x13

// dashLength is the run length of both the dashes and the gaps.
const dashLength = 6

// BorderStyle is the stroke used for the selection border.
type BorderStyle int

const (
	BorderSolid BorderStyle = iota
	BorderDashed
)

func (b BorderStyle) String() string {
	if b == BorderDashed {
		return "dashed"
	}
	return "solid"
}

// ParseBorderStyle accepts "solid" or "dashed".
func ParseBorderStyle(s string) (BorderStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "solid", "":
		return BorderSolid, nil
	case "dashed":
		return BorderDashed, nil
	}
	return BorderSolid, fmt.Errorf("unknown border style %q", s)
}

// Style controls how a frame is drawn.
type Style struct {
	Theme       *theme.Theme
	BorderWidth int
	BorderStyle BorderStyle
}

// Frame is everything needed to draw one overlay frame. Coordinates are
// overlay coordinates.
type Frame struct {
	Backdrop image.Image // frozen desktop; nil leaves dst untouched beneath the mask

	Selection   image.Rectangle
	Anchors     []image.Rectangle
	Decorations bool // border and anchors

	Info       selector.InfoPlacement
	CursorHint string

	Pointer   image.Point
	Crosshair bool
}

// LabelSize measures the info label for text.
func LabelSize(text string) image.Point {
	w := font.MeasureString(labelFace, text).Ceil()
	h := labelFace.Metrics().Height.Ceil()
	return image.Pt(w+labelPadding*2, h+labelPadding*2)
}

// LabelText joins the size text and the optional cursor hint.
func LabelText(info selector.InfoPlacement, hint string) string {
	if hint == "" {
		return info.Text
	}
	return info.Text + "  " + hint
}

// Paint draws f onto dst.
func Paint(dst draw.Image, f Frame, s Style) {
	th := s.Theme
	if th == nil {
		th = theme.Default()
	}
	bounds := dst.Bounds()

	if f.Backdrop != nil {
		blit(dst, f.Backdrop)
	}

	sel := f.Selection.Canon().Intersect(bounds)
	mask := image.NewUniform(th.Mask)
	for _, r := range outside(bounds, sel) {
		draw.Draw(dst, r, mask, image.Point{}, draw.Over)
	}

	if f.Crosshair {
		cross := image.NewUniform(th.Crosshair)
		p := f.Pointer
		draw.Draw(dst, image.Rect(bounds.Min.X, p.Y, bounds.Max.X, p.Y+1).Intersect(bounds), cross, image.Point{}, draw.Over)
		draw.Draw(dst, image.Rect(p.X, bounds.Min.Y, p.X+1, bounds.Max.Y).Intersect(bounds), cross, image.Point{}, draw.Over)
	}

	if f.Decorations {
		border, bw := f.Selection.Canon(), max(s.BorderWidth, 1)
		if s.BorderStyle == BorderDashed {
			drawDashedBorder(dst, border, bw, th.Border)
		} else {
			drawBorder(dst, border, bw, th.Border)
		}
		for _, a := range f.Anchors {
			fillRect(dst, a, th.Anchor)
			drawBorder(dst, a, 1, th.AnchorBorder)
		}
	}

	if f.Info.Visible {
		drawLabel(dst, f.Info.At, LabelText(f.Info, f.CursorHint), th)
	}
}

// blit copies the backdrop, scaling it when the window and the desktop grab
// disagree on size.
func blit(dst draw.Image, src image.Image) {
	db, sb := dst.Bounds(), src.Bounds()
	if db.Size() == sb.Size() {
		xdraw.Copy(dst, db.Min, src, sb, xdraw.Src, nil)
		return
	}
	xdraw.ApproxBiLinear.Scale(dst, db, src, sb, xdraw.Src, nil)
}

// outside splits bounds minus sel into up to four bands: above, left,
// right and below the selection.
func outside(bounds, sel image.Rectangle) []image.Rectangle {
	if sel.Empty() {
		return []image.Rectangle{bounds}
	}
	bands := []image.Rectangle{
		image.Rect(bounds.Min.X, bounds.Min.Y, bounds.Max.X, sel.Min.Y),
		image.Rect(bounds.Min.X, sel.Min.Y, sel.Min.X, sel.Max.Y),
		image.Rect(sel.Max.X, sel.Min.Y, bounds.Max.X, sel.Max.Y),
		image.Rect(bounds.Min.X, sel.Max.Y, bounds.Max.X, bounds.Max.Y),
	}
	out := bands[:0]
	for _, b := range bands {
		if !b.Empty() {
			out = append(out, b)
		}
	}
	return out
}

func fillRect(dst draw.Image, r image.Rectangle, c color.RGBA) {
	draw.Draw(dst, r.Intersect(dst.Bounds()), image.NewUniform(c), image.Point{}, draw.Over)
}

// drawBorder strokes the inside of r with width w.
func drawBorder(dst draw.Image, r image.Rectangle, w int, c color.RGBA) {
	if r.Empty() {
		return
	}
	w = min(w, r.Dx(), r.Dy())
	fillRect(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+w), c)
	fillRect(dst, image.Rect(r.Min.X, r.Max.Y-w, r.Max.X, r.Max.Y), c)
	fillRect(dst, image.Rect(r.Min.X, r.Min.Y+w, r.Min.X+w, r.Max.Y-w), c)
	fillRect(dst, image.Rect(r.Max.X-w, r.Min.Y+w, r.Max.X, r.Max.Y-w), c)
}

// drawDashedBorder strokes the inside of r like drawBorder, leaving a gap
// after every dash. Dashes are measured from r.Min on each edge.
func drawDashedBorder(dst draw.Image, r image.Rectangle, w int, c color.RGBA) {
	if r.Empty() {
		return
	}
	w = min(w, r.Dx(), r.Dy())
	for x := r.Min.X; x < r.Max.X; x += 2 * dashLength {
		end := min(x+dashLength, r.Max.X)
		fillRect(dst, image.Rect(x, r.Min.Y, end, r.Min.Y+w), c)
		fillRect(dst, image.Rect(x, r.Max.Y-w, end, r.Max.Y), c)
	}
	for y := r.Min.Y; y < r.Max.Y; y += 2 * dashLength {
		end := min(y+dashLength, r.Max.Y)
		fillRect(dst, image.Rect(r.Min.X, y, r.Min.X+w, end), c)
		fillRect(dst, image.Rect(r.Max.X-w, y, r.Max.X, end), c)
	}
}

func drawLabel(dst draw.Image, at image.Point, text string, th *theme.Theme) {
	box := image.Rectangle{Min: at, Max: at.Add(LabelSize(text))}
	fillRect(dst, box, th.InfoBackground)
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(th.InfoText),
		Face: labelFace,
		Dot:  fixed.P(box.Min.X+labelPadding, box.Min.Y+labelPadding+labelFace.Metrics().Ascent.Ceil()),
	}
	d.DrawString(text)
}
