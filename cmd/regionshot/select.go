package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/example/regionshot/internal/capture"
	"github.com/example/regionshot/internal/clipboard"
	"github.com/example/regionshot/internal/overlay"
	"github.com/example/regionshot/internal/render"
)

var (
	desktopCanvasFn   = capture.DesktopCanvas
	grabDesktopFn     = capture.GrabDesktop
	detectWindowsFn   = capture.DetectWindows
	pointerPositionFn = capture.PointerPosition
	watchCanvasFn     = capture.WatchCanvas
	copyImageFn       = clipboard.WriteImage
	copyTextFn        = clipboard.WriteText
	runOverlayFn      = func(s *overlay.Session) (image.Rectangle, error) { return s.Run() }
	nowFn             = time.Now
)

const canvasPollInterval = 2 * time.Second

type selectCmd struct {
	output       string
	stdout       bool
	toClipboard  bool
	geometry     bool
	copyGeometry bool
	hold         time.Duration
	detect       bool
	tolerance    int
	borderWidth  int
	borderStyle  string
	*root
	fs *flag.FlagSet
}

func (s *selectCmd) FlagSet() *flag.FlagSet {
	return s.fs
}

func parseSelectCmd(args []string, r *root) (*selectCmd, error) {
	fs := flag.NewFlagSet("select", flag.ExitOnError)
	s := &selectCmd{root: r, fs: fs}
	fs.Usage = usageFunc(s)
	sel := r.config.Selector
	fs.StringVar(&s.output, "output", "", "write the capture to this file path")
	fs.StringVar(&s.output, "o", "", "write the capture to this file path (alias)")
	fs.BoolVar(&s.stdout, "stdout", false, "write PNG data to stdout")
	fs.BoolVar(&s.toClipboard, "to-clipboard", false, "copy the capture to the clipboard")
	fs.BoolVar(&s.toClipboard, "to-clip", false, "copy the capture to the clipboard (alias)")
	fs.BoolVar(&s.geometry, "geometry", false, "print the region as WxH+X+Y in screen coordinates")
	fs.BoolVar(&s.copyGeometry, "copy-geometry", false, "copy the WxH+X+Y geometry to the clipboard instead of the image")
	fs.DurationVar(&s.hold, "hold", 10*time.Second, "keep serving clipboard data this long after selecting")
	fs.BoolVar(&s.detect, "detect", sel.DetectWindow, "snap to the window under the pointer")
	fs.IntVar(&s.tolerance, "tolerance", sel.Tolerance, "anchor hit size in pixels")
	fs.IntVar(&s.borderWidth, "border-width", sel.BorderWidth, "selection border width in pixels")
	fs.StringVar(&s.borderStyle, "border-style", sel.BorderStyle.String(), "selection border style: solid or dashed")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: s}
	}
	if s.stdout && s.geometry {
		return nil, fmt.Errorf("-stdout cannot be used with -geometry")
	}
	if s.toClipboard && s.copyGeometry {
		return nil, fmt.Errorf("-to-clipboard cannot be used with -copy-geometry")
	}
	if s.tolerance < 1 || s.borderWidth < 1 {
		return nil, fmt.Errorf("-tolerance and -border-width must be positive")
	}
	if _, err := render.ParseBorderStyle(s.borderStyle); err != nil {
		return nil, fmt.Errorf("-border-style: %w", err)
	}
	return s, nil
}

// wantsFile reports whether the capture should be written to disk: either
// -output was given or no other destination was requested.
func (s *selectCmd) wantsFile() bool {
	if s.output != "" {
		return true
	}
	return !s.stdout && !s.toClipboard && !s.geometry && !s.copyGeometry
}

func (s *selectCmd) Run() error {
	canvas, err := desktopCanvasFn()
	if err != nil {
		return fmt.Errorf("select: %w", err)
	}
	desktop, err := grabDesktopFn(canvas)
	if err != nil {
		return fmt.Errorf("select: grab desktop: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	region, err := runOverlayFn(overlay.NewSession(canvas.Size, s.sessionOptions(ctx, canvas, desktop)...))
	if err != nil {
		return fmt.Errorf("select: %w", err)
	}
	// A resize may leave the canvas; outputs describe the trimmed region.
	region = region.Canon().Intersect(image.Rectangle{Max: canvas.Size})
	img, err := capture.Crop(desktop, region)
	if err != nil {
		return fmt.Errorf("select %s: %w", formatGeometry(region), err)
	}
	global := canvas.ToGlobal(region)
	log.Printf("selected %s", formatGeometry(global))
	s.root.notifyCapture(global, img)

	if s.geometry {
		fmt.Fprintln(os.Stdout, formatGeometry(global))
	}
	if s.stdout {
		if err := png.Encode(os.Stdout, img); err != nil {
			return fmt.Errorf("write PNG to stdout: %w", err)
		}
		fmt.Fprintln(os.Stderr, "wrote PNG data to stdout")
	}
	if s.wantsFile() {
		if err := s.save(img); err != nil {
			return err
		}
	}
	if s.toClipboard || s.copyGeometry {
		return s.copy(img, global)
	}
	return nil
}

func (s *selectCmd) style() render.Style {
	bs, _ := render.ParseBorderStyle(s.borderStyle)
	return render.Style{Theme: s.activeTheme, BorderWidth: s.borderWidth, BorderStyle: bs}
}

func (s *selectCmd) sessionOptions(ctx context.Context, canvas capture.Canvas, desktop image.Image) []overlay.Option {
	opts := []overlay.Option{
		overlay.WithBackdrop(desktop),
		overlay.WithStyle(s.style()),
		overlay.WithTolerance(s.tolerance),
		overlay.WithTitle(windowTitle(titleOptions{Mode: "select", Detail: fmt.Sprintf("%dx%d", canvas.Size.X, canvas.Size.Y)})),
		overlay.WithCanvasUpdates(watchCanvasFn(ctx, canvasPollInterval)),
	}
	if p, err := pointerPositionFn(); err != nil {
		log.Printf("pointer position: %v", err)
	} else {
		opts = append(opts, overlay.WithPointer(p.Sub(canvas.Origin)))
	}
	if s.detect {
		d, err := detectWindowsFn(canvas)
		if err != nil {
			log.Printf("window snapping disabled: %v", err)
		} else {
			opts = append(opts, overlay.WithDetector(d))
		}
	}
	return opts
}

func (s *selectCmd) outputPath() string {
	if s.output != "" {
		return s.output
	}
	name := fmt.Sprintf("regionshot-%s.png", nowFn().Format("20060102-150405"))
	return filepath.Join(s.config.SaveDir, name)
}

func (s *selectCmd) save(img image.Image) error {
	path := s.outputPath()
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output %q: %w", path, err)
	}
	if err := writePNG(f, img); err != nil {
		return fmt.Errorf("write PNG to %q: %w", path, err)
	}
	saved := path
	if abs, err := filepath.Abs(path); err == nil {
		saved = abs
	}
	fmt.Fprintf(os.Stderr, "saved %s\n", saved)
	s.root.notifySave(saved)
	return nil
}

func writePNG(f io.WriteCloser, img image.Image) error {
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func (s *selectCmd) copy(img image.Image, global image.Rectangle) error {
	var (
		changed <-chan struct{}
		err     error
		detail  string
	)
	if s.copyGeometry {
		detail = formatGeometry(global)
		changed, err = copyTextFn(detail)
	} else {
		detail = fmt.Sprintf("region %s", formatGeometry(global))
		changed, err = copyImageFn(img)
	}
	if err != nil {
		return fmt.Errorf("copy %s to clipboard: %w", detail, err)
	}
	fmt.Fprintf(os.Stderr, "copied %s to clipboard\n", detail)
	s.root.notifyCopy(detail)
	if clipboard.Hold(changed, s.hold) {
		log.Printf("clipboard taken over by another program")
	}
	return nil
}

// formatGeometry renders r the way X11 tools do.
func formatGeometry(r image.Rectangle) string {
	return fmt.Sprintf("%dx%d+%d+%d", r.Dx(), r.Dy(), r.Min.X, r.Min.Y)
}
