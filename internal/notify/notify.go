// Package notify sends desktop notifications for finished captures.
package notify

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// Event identifies a notification trigger.
type Event string

const (
	EventCapture Event = "capture"
	EventSave    Event = "save"
	EventCopy    Event = "copy"
)

// Message is one notification as handed to the desktop.
type Message struct {
	Title    string
	Body     string
	IconPath string
	Timeout  int32 // milliseconds; -1 leaves it to the server
}

// Preferences describes notification text, loaded from configuration.
type Preferences struct {
	Title     string
	Timeout   int32
	Templates map[Event]string
}

// DefaultPreferences returns the default notification settings.
func DefaultPreferences() Preferences {
	return Preferences{
		Title:   "RegionShot",
		Timeout: 5000,
		Templates: map[Event]string{
			EventCapture: "Captured %s",
			EventSave:    "Saved %s",
			EventCopy:    "Copied %s to clipboard",
		},
	}
}

// LoadPreferences applies REGIONSHOT_NOTIFY_* overrides from lookup.
func LoadPreferences(lookup func(string) (string, bool)) Preferences {
	prefs := DefaultPreferences()
	get := func(key string) (string, bool) {
		v, ok := lookup("REGIONSHOT_NOTIFY_" + key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}
	if v, ok := get("TITLE"); ok {
		prefs.Title = v
	}
	for key, event := range map[string]Event{
		"CAPTURE_TEXT": EventCapture,
		"SAVE_TEXT":    EventSave,
		"COPY_TEXT":    EventCopy,
	} {
		if v, ok := get(key); ok {
			prefs.Templates[event] = v
		}
	}
	return prefs
}

// sendFn delivers a message to the desktop.
var sendFn = send

// Notifier sends notifications for the events that were enabled.
type Notifier struct {
	prefs   Preferences
	enabled map[Event]bool
}

// New creates a Notifier with every event disabled.
func New(prefs Preferences) *Notifier {
	cloned := prefs
	cloned.Templates = make(map[Event]string, len(prefs.Templates))
	for k, v := range prefs.Templates {
		cloned.Templates[k] = v
	}
	return &Notifier{prefs: cloned, enabled: map[Event]bool{}}
}

// Enable toggles the notifier for event.
func (n *Notifier) Enable(event Event, on bool) {
	if n == nil {
		return
	}
	n.enabled[event] = on
}

// Capture announces a captured region, with img as the preview icon.
func (n *Notifier) Capture(region image.Rectangle, img image.Image) {
	if !n.enabledFor(EventCapture) {
		return
	}
	detail := fmt.Sprintf("%dx%d at %d,%d", region.Dx(), region.Dy(), region.Min.X, region.Min.Y)
	var icon string
	if img != nil {
		path, cleanup, err := writePreview(img)
		if err != nil {
			log.Printf("notification preview: %v", err)
		} else {
			defer cleanup()
			icon = path
		}
	}
	n.dispatch(EventCapture, detail, icon)
}

// Save announces a written file.
func (n *Notifier) Save(path string) {
	if !n.enabledFor(EventSave) {
		return
	}
	detail := strings.TrimSpace(path)
	icon := ""
	if abs, err := filepath.Abs(path); err == nil {
		detail = abs
		if _, err := os.Stat(abs); err == nil {
			icon = abs
		}
	}
	n.dispatch(EventSave, detail, icon)
}

// Copy announces a clipboard copy.
func (n *Notifier) Copy(detail string) {
	if !n.enabledFor(EventCopy) {
		return
	}
	if strings.TrimSpace(detail) == "" {
		detail = "image"
	}
	n.dispatch(EventCopy, detail, "")
}

func (n *Notifier) enabledFor(event Event) bool {
	return n != nil && n.enabled[event]
}

func (n *Notifier) dispatch(event Event, detail, icon string) {
	tmpl := strings.TrimSpace(n.prefs.Templates[event])
	if tmpl == "" {
		return
	}
	body := tmpl
	if strings.Contains(tmpl, "%s") {
		body = fmt.Sprintf(tmpl, strings.TrimSpace(detail))
	}
	msg := Message{Title: n.prefs.Title, Body: strings.TrimSpace(body), IconPath: icon, Timeout: n.prefs.Timeout}
	if err := sendFn(msg); err != nil {
		log.Printf("notification %s: %v", event, err)
	}
}

func writePreview(img image.Image) (string, func(), error) {
	f, err := os.CreateTemp("", "regionshot-preview-*.png")
	if err != nil {
		return "", nil, err
	}
	path := f.Name()
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", nil, err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", nil, err
	}
	return path, func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Printf("remove preview: %v", err)
		}
	}, nil
}
