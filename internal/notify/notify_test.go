package notify

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"
)

func captureSends(t *testing.T) *[]Message {
	t.Helper()
	var sent []Message
	old := sendFn
	sendFn = func(m Message) error {
		sent = append(sent, m)
		return nil
	}
	t.Cleanup(func() { sendFn = old })
	return &sent
}

func TestLoadPreferences(t *testing.T) {
	env := map[string]string{
		"REGIONSHOT_NOTIFY_TITLE":     "Shots",
		"REGIONSHOT_NOTIFY_COPY_TEXT": "Clipboard has %s",
		"REGIONSHOT_NOTIFY_SAVE_TEXT": "  ",
	}
	prefs := LoadPreferences(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})
	if prefs.Title != "Shots" {
		t.Fatalf("title = %q", prefs.Title)
	}
	if prefs.Templates[EventCopy] != "Clipboard has %s" {
		t.Fatalf("copy template = %q", prefs.Templates[EventCopy])
	}
	if prefs.Templates[EventSave] != "Saved %s" {
		t.Fatalf("blank override replaced save template: %q", prefs.Templates[EventSave])
	}
}

func TestDisabledEventsAreSilent(t *testing.T) {
	sent := captureSends(t)
	n := New(DefaultPreferences())
	n.Copy("image")
	n.Capture(image.Rect(0, 0, 1, 1), nil)
	var nilNotifier *Notifier
	nilNotifier.Copy("image")
	if len(*sent) != 0 {
		t.Fatalf("sent %v", *sent)
	}
}

func TestCaptureDetail(t *testing.T) {
	sent := captureSends(t)
	n := New(DefaultPreferences())
	n.Enable(EventCapture, true)
	n.Capture(image.Rect(10, 20, 110, 70), image.NewRGBA(image.Rect(0, 0, 2, 2)))
	if len(*sent) != 1 {
		t.Fatalf("sent %d messages", len(*sent))
	}
	m := (*sent)[0]
	if m.Title != "RegionShot" || m.Body != "Captured 100x50 at 10,20" {
		t.Fatalf("message = %+v", m)
	}
	if m.IconPath == "" {
		t.Fatalf("expected a preview icon")
	}
	if _, err := os.Stat(m.IconPath); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("preview not cleaned up: %v", err)
	}
}

func TestSaveUsesAbsolutePath(t *testing.T) {
	sent := captureSends(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "shot.png")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	n := New(DefaultPreferences())
	n.Enable(EventSave, true)
	n.Save(path)
	if len(*sent) != 1 || (*sent)[0].Body != "Saved "+path || (*sent)[0].IconPath != path {
		t.Fatalf("sent = %+v", *sent)
	}
}

func TestTemplateWithoutVerb(t *testing.T) {
	sent := captureSends(t)
	prefs := DefaultPreferences()
	prefs.Templates[EventCopy] = "Done"
	n := New(prefs)
	n.Enable(EventCopy, true)
	n.Copy("")
	if len(*sent) != 1 || (*sent)[0].Body != "Done" {
		t.Fatalf("sent = %+v", *sent)
	}
}
