package render

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/example/regionshot/internal/selector"
	"github.com/example/regionshot/internal/theme"
)

func whiteBackdrop(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	return img
}

func TestPaintDimsOutsideOnly(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 200, 150))
	Paint(dst, Frame{
		Backdrop:  whiteBackdrop(200, 150),
		Selection: image.Rect(50, 40, 150, 110),
	}, Style{Theme: theme.Default()})

	white := color.RGBA{255, 255, 255, 255}
	if got := dst.RGBAAt(100, 75); got != white {
		t.Fatalf("inside pixel = %v, want untouched", got)
	}
	for _, p := range []image.Point{{10, 10}, {10, 75}, {190, 75}, {100, 140}} {
		if got := dst.RGBAAt(p.X, p.Y); got == white {
			t.Fatalf("outside pixel %v was not dimmed", p)
		}
	}
}

func TestPaintMasksEverythingWithoutSelection(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 20, 20))
	Paint(dst, Frame{Backdrop: whiteBackdrop(20, 20)}, Style{})
	if got := dst.RGBAAt(10, 10); got == (color.RGBA{255, 255, 255, 255}) {
		t.Fatalf("expected a dimmed canvas, got %v", got)
	}
}

func TestPaintBorderAndAnchors(t *testing.T) {
	th := theme.Default()
	th.Mask = color.RGBA{}
	dst := image.NewRGBA(image.Rect(0, 0, 200, 150))
	sel := selector.Selection{X1: 50, Y1: 40, X2: 150, Y2: 110}
	Paint(dst, Frame{
		Backdrop:    whiteBackdrop(200, 150),
		Selection:   sel.Canonical(),
		Anchors:     selector.Anchors(sel, 8),
		Decorations: true,
	}, Style{Theme: th, BorderWidth: 2})

	if got := dst.RGBAAt(75, 41); got != th.Border {
		t.Fatalf("border pixel = %v, want %v", got, th.Border)
	}
	if got := dst.RGBAAt(75, 42); got != (color.RGBA{255, 255, 255, 255}) {
		t.Fatalf("pixel past the border width = %v", got)
	}
	if got := dst.RGBAAt(46, 36); got != th.AnchorBorder {
		t.Fatalf("anchor outline = %v, want %v", got, th.AnchorBorder)
	}
	if got := dst.RGBAAt(48, 38); got != th.Anchor {
		t.Fatalf("anchor fill = %v, want %v", got, th.Anchor)
	}
}

func TestPaintDashedBorder(t *testing.T) {
	th := theme.Default()
	th.Mask = color.RGBA{}
	dst := image.NewRGBA(image.Rect(0, 0, 200, 150))
	Paint(dst, Frame{
		Backdrop:    whiteBackdrop(200, 150),
		Selection:   image.Rect(50, 40, 150, 110),
		Decorations: true,
	}, Style{Theme: th, BorderWidth: 1, BorderStyle: BorderDashed})

	white := color.RGBA{255, 255, 255, 255}
	tests := map[string]struct {
		p    image.Point
		want color.RGBA
	}{
		"top dash":    {image.Pt(50+1, 40), th.Border},
		"top gap":     {image.Pt(50+dashLength+1, 40), white},
		"next dash":   {image.Pt(50+2*dashLength, 40), th.Border},
		"left dash":   {image.Pt(50, 40+2), th.Border},
		"left gap":    {image.Pt(50, 40+dashLength+2), white},
		"bottom dash": {image.Pt(50+1, 109), th.Border},
		"right gap":   {image.Pt(149, 40+dashLength+2), white},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := dst.RGBAAt(tc.p.X, tc.p.Y); got != tc.want {
				t.Fatalf("pixel %v = %v, want %v", tc.p, got, tc.want)
			}
		})
	}
}

func TestParseBorderStyle(t *testing.T) {
	tests := map[string]struct {
		in      string
		want    BorderStyle
		wantErr bool
	}{
		"solid":   {in: "solid", want: BorderSolid},
		"dashed":  {in: " Dashed ", want: BorderDashed},
		"empty":   {in: "", want: BorderSolid},
		"unknown": {in: "dotted", wantErr: true},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseBorderStyle(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tc.wantErr)
			}
			if err == nil && got != tc.want {
				t.Fatalf("ParseBorderStyle(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestPaintWithoutDecorations(t *testing.T) {
	th := theme.Default()
	th.Mask = color.RGBA{}
	dst := image.NewRGBA(image.Rect(0, 0, 100, 100))
	Paint(dst, Frame{
		Backdrop:  whiteBackdrop(100, 100),
		Selection: image.Rect(10, 10, 90, 90),
	}, Style{Theme: th})
	if got := dst.RGBAAt(50, 10); got != (color.RGBA{255, 255, 255, 255}) {
		t.Fatalf("border drawn while decorations are off: %v", got)
	}
}

func TestPaintInfoLabel(t *testing.T) {
	th := theme.Default()
	th.Mask = color.RGBA{}
	th.InfoBackground = color.RGBA{10, 20, 30, 255}
	dst := image.NewRGBA(image.Rect(0, 0, 300, 200))
	info := selector.InfoPlacement{Text: "120 x 80", At: image.Pt(20, 30), Visible: true}
	Paint(dst, Frame{Backdrop: whiteBackdrop(300, 200), Info: info}, Style{Theme: th})

	if got := dst.RGBAAt(21, 31); got != th.InfoBackground {
		t.Fatalf("label background = %v", got)
	}
	size := LabelSize(info.Text)
	foundText := false
	for y := 30; y < 30+size.Y; y++ {
		for x := 20; x < 20+size.X; x++ {
			if dst.RGBAAt(x, y) != th.InfoBackground {
				foundText = true
			}
		}
	}
	if !foundText {
		t.Fatalf("no glyph pixels inside the label box")
	}
	if got := dst.RGBAAt(20+size.X+1, 31); got != (color.RGBA{255, 255, 255, 255}) {
		t.Fatalf("label spilled past its measured size: %v", got)
	}
}

func TestPaintCrosshair(t *testing.T) {
	th := theme.Default()
	th.Mask = color.RGBA{}
	th.Crosshair = color.RGBA{255, 0, 0, 255}
	dst := image.NewRGBA(image.Rect(0, 0, 50, 50))
	Paint(dst, Frame{Backdrop: whiteBackdrop(50, 50), Pointer: image.Pt(10, 20), Crosshair: true}, Style{Theme: th})
	if got := dst.RGBAAt(45, 20); got != th.Crosshair {
		t.Fatalf("horizontal line = %v", got)
	}
	if got := dst.RGBAAt(10, 2); got != th.Crosshair {
		t.Fatalf("vertical line = %v", got)
	}
	if got := dst.RGBAAt(30, 30); got == th.Crosshair {
		t.Fatalf("crosshair leaked to %v", image.Pt(30, 30))
	}
}

func TestPaintScalesBackdrop(t *testing.T) {
	th := theme.Default()
	th.Mask = color.RGBA{}
	src := image.NewRGBA(image.Rect(0, 0, 10, 10))
	draw.Draw(src, src.Bounds(), image.NewUniform(color.RGBA{0, 0, 255, 255}), image.Point{}, draw.Src)
	dst := image.NewRGBA(image.Rect(0, 0, 40, 40))
	Paint(dst, Frame{Backdrop: src}, Style{Theme: th})
	if got := dst.RGBAAt(35, 35); got.R != 0 || got.B < 250 {
		t.Fatalf("scaled backdrop pixel = %v", got)
	}
}

func TestOutside(t *testing.T) {
	bounds := image.Rect(0, 0, 100, 100)
	bands := outside(bounds, image.Rect(0, 0, 100, 50))
	if len(bands) != 1 || bands[0] != image.Rect(0, 50, 100, 100) {
		t.Fatalf("bands = %v", bands)
	}
	area := 0
	for _, b := range outside(bounds, image.Rect(20, 30, 60, 70)) {
		area += b.Dx() * b.Dy()
	}
	if area != 100*100-40*40 {
		t.Fatalf("mask area = %d", area)
	}
}

func TestLabelText(t *testing.T) {
	info := selector.InfoPlacement{Text: "4 x 3"}
	if got := LabelText(info, ""); got != "4 x 3" {
		t.Fatalf("LabelText = %q", got)
	}
	if got := LabelText(info, "size-all"); got != "4 x 3  size-all" {
		t.Fatalf("LabelText = %q", got)
	}
}
