package capture

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"log"

	"github.com/kbinani/screenshot"
)

// ErrEmptyRegion is returned when a crop has nothing left after clipping.
var ErrEmptyRegion = errors.New("region is empty")

var (
	screenGrabFn       = screenshot.CaptureRect
	portalScreenshotFn = portalScreenshot
)

// GrabDesktop freezes the pixels under the canvas. The returned image is
// in overlay coordinates. Wayland sessions go through the desktop portal
// first; X11 sessions read the screen directly and only fall back to the
// portal when that fails.
func GrabDesktop(c Canvas) (*image.RGBA, error) {
	if c.Size.X <= 0 || c.Size.Y <= 0 {
		return nil, fmt.Errorf("grab desktop: %w", ErrNoDisplay)
	}
	if runningOnWayland() {
		img, err := portalScreenshotFn(false)
		if err == nil {
			return img, nil
		}
		log.Printf("portal screenshot: %v; trying direct capture", err)
		img, gerr := screenGrabFn(c.Rect())
		if gerr != nil {
			return nil, fmt.Errorf("portal screenshot: %v; direct capture: %w", err, gerr)
		}
		return rebase(img), nil
	}
	img, err := screenGrabFn(c.Rect())
	if err == nil {
		return rebase(img), nil
	}
	log.Printf("direct capture: %v; trying desktop portal", err)
	shot, perr := portalScreenshotFn(false)
	if perr != nil {
		return nil, fmt.Errorf("direct capture: %v; portal fallback: %w", err, perr)
	}
	return shot, nil
}

// Crop copies r out of src. r is clipped to src first; a region that lies
// entirely outside is rejected.
func Crop(src *image.RGBA, r image.Rectangle) (*image.RGBA, error) {
	r = r.Canon().Intersect(src.Bounds())
	if r.Empty() {
		return nil, ErrEmptyRegion
	}
	dst := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(dst, dst.Bounds(), src, r.Min, draw.Src)
	return dst, nil
}

func rebase(img *image.RGBA) *image.RGBA {
	if img.Bounds().Min == (image.Point{}) {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, draw.Src)
	return dst
}
