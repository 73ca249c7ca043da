package config

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/regionshot/internal/render"
	"github.com/example/regionshot/internal/theme"
)

func TestParse(t *testing.T) {
	input := `
theme = my_custom_theme
save_dir = /tmp/screens
hotkey = "alt+print"

[notify]
capture = true
save = false
copy = true

[selector]
detect_window = false
tolerance = 12
border_width = 3
border_style = dashed

[theme.my_custom_theme]
Border = #111111
Mask: #00000040
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Theme != "my_custom_theme" {
		t.Errorf("Expected theme 'my_custom_theme', got '%s'", cfg.Theme)
	}
	if cfg.SaveDir != "/tmp/screens" {
		t.Errorf("Expected save_dir '/tmp/screens', got '%s'", cfg.SaveDir)
	}
	if cfg.Hotkey != "alt+print" {
		t.Errorf("Expected quoted hotkey to be unwrapped, got %q", cfg.Hotkey)
	}
	if cfg.Notify != (Notify{Capture: true, Copy: true}) {
		t.Errorf("Unexpected notify section: %+v", cfg.Notify)
	}
	if cfg.Selector != (Selector{DetectWindow: false, Tolerance: 12, BorderWidth: 3, BorderStyle: render.BorderDashed}) {
		t.Errorf("Unexpected selector section: %+v", cfg.Selector)
	}

	th, ok := cfg.Themes["my_custom_theme"]
	if !ok {
		t.Fatal("Expected theme 'my_custom_theme' to be loaded")
	}
	if th.Border != (color.RGBA{0x11, 0x11, 0x11, 0xFF}) {
		t.Errorf("Unexpected Border color: %+v", th.Border)
	}
	if th.Mask.A != 0x40 {
		t.Errorf("Unexpected Mask color: %+v", th.Mask)
	}
}

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Selector.DetectWindow || cfg.Selector.Tolerance != 8 || cfg.Selector.BorderWidth != 1 {
		t.Fatalf("unexpected defaults: %+v", cfg.Selector)
	}
	if cfg.Hotkey != DefaultHotkey {
		t.Fatalf("hotkey = %q", cfg.Hotkey)
	}
}

func TestParseErrors(t *testing.T) {
	tests := map[string]string{
		"bad bool":       "[notify]\ncapture = maybe\n",
		"bad tolerance":  "[selector]\ntolerance = wide\n",
		"zero tolerance": "[selector]\ntolerance = 0\n",
		"bad detect":     "[selector]\ndetect_window = sometimes\n",
		"bad colour":     "[theme.x]\nBorder = red\n",
		"bad border":     "[selector]\nborder_style = dotted\n",
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(input)); err == nil {
				t.Fatalf("expected error for %q", input)
			}
		})
	}
}

func TestCircular(t *testing.T) {
	input := `theme = dark
save_dir = /home/user/shots

[notify]
capture = true
save = true
copy = false

[selector]
detect_window = false
tolerance = 6
border_width = 2
border_style = dashed

[theme.custom]
Name = custom
Border = #000000
InfoText = #FFFFFF80
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Initial parse failed: %v", err)
	}

	cfg2, err := Parse(strings.NewReader(cfg.String()))
	if err != nil {
		t.Fatalf("Circular parse failed: %v", err)
	}

	if cfg.Theme != cfg2.Theme {
		t.Errorf("Theme mismatch: %q vs %q", cfg.Theme, cfg2.Theme)
	}
	if cfg.SaveDir != cfg2.SaveDir {
		t.Errorf("SaveDir mismatch: %q vs %q", cfg.SaveDir, cfg2.SaveDir)
	}
	if cfg.Notify != cfg2.Notify {
		t.Errorf("Notify mismatch: %+v vs %+v", cfg.Notify, cfg2.Notify)
	}
	if cfg.Selector != cfg2.Selector {
		t.Errorf("Selector mismatch: %+v vs %+v", cfg.Selector, cfg2.Selector)
	}

	t1 := cfg.Themes["custom"]
	t2 := cfg2.Themes["custom"]
	if t1 == nil || t2 == nil {
		t.Fatalf("Custom theme missing in one config")
	}
	if *t1 != *t2 {
		t.Errorf("Theme mismatch: %+v vs %+v", t1, t2)
	}
}

func TestResolveTheme(t *testing.T) {
	cfg := New()
	cfg.Theme = "inline"
	cfg.Themes["inline"] = &theme.Theme{Name: "inline"}
	got, err := cfg.ResolveTheme(&theme.Loader{})
	if err != nil || got.Name != "inline" {
		t.Fatalf("ResolveTheme = %+v, %v", got, err)
	}

	cfg.Theme = "dark"
	got, err = cfg.ResolveTheme(&theme.Loader{})
	if err != nil || got.Name != "Dark" {
		t.Fatalf("ResolveTheme(dark) = %+v, %v", got, err)
	}
}

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := New()
	err := ApplyEnv(cfg, envMap(map[string]string{
		"REGIONSHOT_THEME":         "contrast",
		"REGIONSHOT_DETECT_WINDOW": "false",
		"REGIONSHOT_TOLERANCE":     "10",
		"REGIONSHOT_BORDER_WIDTH":  " 2 ",
		"REGIONSHOT_BORDER_STYLE":  "dashed",
		"REGIONSHOT_SAVE_DIR":      "",
	}))
	if err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if cfg.Theme != "contrast" || cfg.Selector.DetectWindow || cfg.Selector.Tolerance != 10 || cfg.Selector.BorderWidth != 2 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Selector.BorderStyle != render.BorderDashed {
		t.Fatalf("border style = %v", cfg.Selector.BorderStyle)
	}
	if cfg.SaveDir != "" {
		t.Fatalf("empty env values should be ignored")
	}

	if err := ApplyEnv(New(), envMap(map[string]string{"REGIONSHOT_TOLERANCE": "-1"})); err == nil {
		t.Fatalf("expected error for negative tolerance")
	}
}

func TestLoaderPrecedence(t *testing.T) {
	dir := t.TempDir()
	rc := filepath.Join(dir, "regionshot.rc")
	if err := os.WriteFile(rc, []byte("theme = dark\n[selector]\ntolerance = 4\nborder_width = 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	envFile := filepath.Join(dir, "overrides.env")
	if err := os.WriteFile(envFile, []byte("REGIONSHOT_TOLERANCE=6\nREGIONSHOT_THEME=contrast\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	l := NewLoader("1.0.0", rc)
	l.LookupEnv = envMap(map[string]string{
		EnvFileVar:         envFile,
		"REGIONSHOT_THEME": "default",
	})
	cfg, err := l.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Path != rc {
		t.Errorf("Path = %q", cfg.Path)
	}
	if cfg.Theme != "default" {
		t.Errorf("process env should beat .env, theme = %q", cfg.Theme)
	}
	if cfg.Selector.Tolerance != 6 {
		t.Errorf(".env should beat the file, tolerance = %d", cfg.Selector.Tolerance)
	}
	if cfg.Selector.BorderWidth != 5 {
		t.Errorf("file value lost, border_width = %d", cfg.Selector.BorderWidth)
	}
}

func TestLoaderWithoutFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	l := NewLoader("1.0.0", filepath.Join(t.TempDir(), "missing.rc"))
	l.LookupEnv = envMap(nil)
	cfg, err := l.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Path != "" || cfg.Selector.Tolerance != 8 {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}
