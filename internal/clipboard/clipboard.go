// Package clipboard publishes captured regions to the system clipboard.
package clipboard

import (
	"errors"
	"os"
	"time"
)

var (
	errNoDisplay = errors.New("clipboard initialization requires DISPLAY or WAYLAND_DISPLAY")
	errNoText    = errors.New("clipboard does not contain text data")
)

func hasDisplay() bool {
	return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
}

// Hold blocks until changed fires or d elapses, whichever is first. A zero d
// returns at once. It reports whether the clipboard was taken over.
func Hold(changed <-chan struct{}, d time.Duration) bool {
	if changed == nil || d <= 0 {
		return false
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-changed:
		return true
	case <-timer.C:
		return false
	}
}
