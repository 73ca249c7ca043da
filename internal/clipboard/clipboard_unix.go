//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && cgo

package clipboard

import (
	"bytes"
	"image"
	"image/png"
	"sync"

	"golang.design/x/clipboard"
)

var (
	initOnce sync.Once
	initErr  error
	initFn   = clipboard.Init
)

func ensureInit() error {
	initOnce.Do(func() {
		if !hasDisplay() {
			initErr = errNoDisplay
			return
		}
		initErr = initFn()
	})
	return initErr
}

// WriteImage publishes img as PNG. The returned channel is closed once some
// other program takes the clipboard over; on X11 the data is only served
// while this process is alive.
func WriteImage(img image.Image) (<-chan struct{}, error) {
	if err := ensureInit(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return clipboard.Write(clipboard.FmtImage, buf.Bytes()), nil
}

// WriteText publishes text, such as region geometry.
func WriteText(text string) (<-chan struct{}, error) {
	if err := ensureInit(); err != nil {
		return nil, err
	}
	return clipboard.Write(clipboard.FmtText, []byte(text)), nil
}

// ReadText returns the clipboard's text content.
func ReadText() (string, error) {
	if err := ensureInit(); err != nil {
		return "", err
	}
	data := clipboard.Read(clipboard.FmtText)
	if len(data) == 0 {
		return "", errNoText
	}
	return string(data), nil
}
