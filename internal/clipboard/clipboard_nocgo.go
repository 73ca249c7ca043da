//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && !cgo

package clipboard

import (
	"errors"
	"image"
)

var errCGODisabled = errors.New("clipboard operations require cgo support")

func ensureInit() error {
	if !hasDisplay() {
		return errNoDisplay
	}
	return errCGODisabled
}

func WriteImage(image.Image) (<-chan struct{}, error) { return nil, ensureInit() }

func WriteText(string) (<-chan struct{}, error) { return nil, ensureInit() }

func ReadText() (string, error) { return "", ensureInit() }
