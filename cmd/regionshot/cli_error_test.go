package main

import (
	"errors"
	"flag"
	"image"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/example/regionshot/internal/capture"
	"github.com/example/regionshot/internal/config"
)

func TestRootWithoutCommandIsUsageError(t *testing.T) {
	r := &root{fs: flag.NewFlagSet("regionshot", flag.ContinueOnError), program: "regionshot", config: config.New()}
	err := r.Run(nil)
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected UsageError, got %v", err)
	}
	help := uerr.Error()
	for _, want := range []string{"Usage: regionshot", "select", "listen"} {
		if !strings.Contains(help, want) {
			t.Fatalf("help missing %q:\n%s", want, help)
		}
	}
}

func TestUnknownCommandIsUsageError(t *testing.T) {
	r := &root{fs: flag.NewFlagSet("regionshot", flag.ContinueOnError), program: "regionshot", config: config.New()}
	var uerr *UsageError
	if err := r.Run([]string{"annotate"}); !errors.As(err, &uerr) {
		t.Fatalf("expected UsageError, got %v", err)
	}
}

func TestSelectHelpListsKeys(t *testing.T) {
	cmd, err := parseSelectCmd(nil, testRoot())
	if err != nil {
		t.Fatal(err)
	}
	help := (&UsageError{of: cmd}).Error()
	for _, want := range []string{"regionshot select", "-tolerance", "Ctrl+Up", "grow-top", "Right click"} {
		if !strings.Contains(help, want) {
			t.Fatalf("help missing %q:\n%s", want, help)
		}
	}
}

func TestSelectRejectsOperands(t *testing.T) {
	var uerr *UsageError
	if _, err := parseSelectCmd([]string{"extra"}, testRoot()); !errors.As(err, &uerr) {
		t.Fatalf("expected UsageError, got %v", err)
	}
}

func TestConfigWithoutSubcommand(t *testing.T) {
	cmd, err := parseConfigCmd(nil, testRoot())
	if err != nil {
		t.Fatal(err)
	}
	var uerr *UsageError
	if err := cmd.Run(); !errors.As(err, &uerr) {
		t.Fatalf("expected UsageError, got %v", err)
	}
	if err := (&configCmd{root: testRoot(), fs: flagSetWith(t, "bogus")}).Run(); err == nil || !strings.Contains(err.Error(), "unknown config command") {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func flagSetWith(t *testing.T, args ...string) *flag.FlagSet {
	t.Helper()
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		t.Fatal(err)
	}
	return fs
}

func TestConfigSaveWritesDefaultPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	old := configPathOverride
	configPathOverride = ""
	t.Cleanup(func() { configPathOverride = old })

	r := testRoot()
	r.config.Hotkey = "alt+p"
	cmd := &configCmd{root: r, fs: flagSetWith(t, "save")}
	if err := cmd.Run(); err != nil {
		t.Fatalf("save: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(home, ".config", "regionshot", "config.rc"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "hotkey = alt+p") {
		t.Fatalf("saved config:\n%s", data)
	}
}

func TestListErrorsAreWrapped(t *testing.T) {
	sentinel := errors.New("cannot open display")
	oldM, oldW := listMonitorsFn, listWindowsFn
	t.Cleanup(func() { listMonitorsFn, listWindowsFn = oldM, oldW })
	listMonitorsFn = func() ([]capture.MonitorInfo, error) { return nil, sentinel }
	listWindowsFn = func() ([]capture.WindowInfo, error) { return nil, sentinel }

	if err := (&monitorsCmd{root: testRoot()}).Run(); !errors.Is(err, sentinel) || !strings.Contains(err.Error(), "list monitors") {
		t.Fatalf("monitors err = %v", err)
	}
	if err := (&windowsCmd{root: testRoot()}).Run(); !errors.Is(err, sentinel) || !strings.Contains(err.Error(), "list windows") {
		t.Fatalf("windows err = %v", err)
	}
}

func TestFormatWindowLabel(t *testing.T) {
	got := formatWindowLabel(capture.WindowInfo{Index: 3, ID: 0x2a, Title: " Terminal ", Class: "xterm", Rect: image.Rect(0, 0, 640, 480)})
	for _, want := range []string{" 3:", "0x0000002a", "640x480+0+0", "Terminal", "[xterm]", "(hidden)"} {
		if !strings.Contains(got, want) {
			t.Fatalf("label %q missing %q", got, want)
		}
	}
}

func TestListenSelectCommand(t *testing.T) {
	oldExe := executableFn
	executableFn = func() (string, error) { return "/usr/bin/regionshot", nil }
	t.Cleanup(func() { executableFn = oldExe })

	r := testRoot()
	r.themeName = "dark"
	r.copyAlerts = true
	cmd, err := parseListenCmd([]string{"-hotkey", "alt+p", "--", "-to-clip", "-detect=false"}, r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cmd.combo != "alt+p" {
		t.Fatalf("combo = %q", cmd.combo)
	}
	child, err := cmd.selectCommand()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"/usr/bin/regionshot",
		"-notify-capture=false", "-notify-save=false", "-notify-copy=true",
		"-theme", "dark", "select", "-to-clip", "-detect=false"}
	if !reflect.DeepEqual(child.Args, want) {
		t.Fatalf("args = %q\nwant %q", child.Args, want)
	}
}

func TestListenRejectsBadHotkey(t *testing.T) {
	if _, err := parseListenCmd([]string{"-hotkey", "ctrl+shift"}, testRoot()); err == nil {
		t.Fatalf("expected error for modifier-only hotkey")
	}
}

func TestWindowTitle(t *testing.T) {
	oldV, oldC := version, commit
	t.Cleanup(func() { version, commit = oldV, oldC })
	version, commit = "1.2.0", ""
	if got := windowTitle(titleOptions{Mode: "select", Detail: " 3840x1080 "}); got != "RegionShot - select - 3840x1080 - v1.2.0" {
		t.Fatalf("windowTitle = %q", got)
	}
}

func TestResolveTheme(t *testing.T) {
	r := testRoot()
	r.config.Theme = "dark"
	if got := r.resolveTheme(); got.Name != "Dark" {
		t.Fatalf("config theme = %q", got.Name)
	}
	r.themeName = "default"
	if got := r.resolveTheme(); got.Name != "Default" {
		t.Fatalf("flag theme = %q", got.Name)
	}
	r.themeName = "no-such-theme"
	if got := r.resolveTheme(); got.Name != "Default" {
		t.Fatalf("missing theme fallback = %q", got.Name)
	}
}
